// Package geocode resolves device coordinates into a human-readable address
// for the checkout address field. Lookup is best-effort: callers fall back to
// raw coordinates when the upstream service is slow or unavailable.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/logger"

	"go.uber.org/zap"
)

const defaultTimeout = 5 * time.Second

// Reverser turns coordinates into an address line.
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// Client calls a Nominatim-compatible reverse geocoding endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Reverse looks up the address for the given coordinates. An empty
// display_name from the upstream is treated as a failed lookup.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "geocode"),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
	)

	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("geocode: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("reverse lookup failed", zap.Error(err))
		return "", fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("reverse lookup non-200", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geocode: decode response: %w", err)
	}
	if body.DisplayName == "" {
		return "", fmt.Errorf("geocode: empty result")
	}

	return body.DisplayName, nil
}

// Fallback renders coordinates as plain text for manual correction when the
// lookup cannot produce an address.
func Fallback(lat, lon float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}
