package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Generates an id when the client sends none", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)

		r.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Echoes a client-supplied id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "client-id-1")

		r.ServeHTTP(w, req)

		assert.Equal(t, "client-id-1", w.Header().Get(RequestIDHeader))
	})
}

func signToken(t *testing.T, secret, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func adminRouter(secret string) *gin.Engine {
	r := gin.New()
	r.Use(Auth(secret))
	admin := r.Group("/admin", RequireAdmin())
	admin.GET("/orders", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuth_RequireAdmin(t *testing.T) {
	const secret = "test-secret"

	t.Run("Admin token passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "admin"))

		adminRouter(secret).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Missing token is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)

		adminRouter(secret).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Non-admin role is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "customer"))

		adminRouter(secret).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Token signed with another secret is ignored", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "admin"))

		adminRouter(secret).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit())
	r.POST("/api/checkout", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/api/products", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("Checkout burst is exhausted at the strict tier", func(t *testing.T) {
		var last int
		for i := 0; i < burstStrict+1; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
			req.Header.Set("X-Session-ID", "limit-test-checkout")
			r.ServeHTTP(w, req)
			last = w.Code
		}

		assert.Equal(t, http.StatusTooManyRequests, last)
	})

	t.Run("Browsing quota is separate from checkout quota", func(t *testing.T) {
		// Same session just exhausted its strict bucket; reads still pass.
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("X-Session-ID", "limit-test-checkout")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Sessions have independent buckets", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		req.Header.Set("X-Session-ID", "limit-test-other")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
