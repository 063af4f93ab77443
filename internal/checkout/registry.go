package checkout

import (
	"sync"

	"github.com/Javohirbek070/toliq-shop-reimagined/internal/cart"
	"github.com/Javohirbek070/toliq-shop-reimagined/internal/geocode"
)

// Registry keeps one Flow per storefront session, created on first touch.
// Flows share a single validator and submitter.
type Registry struct {
	validator *Validator
	submitter Submitter
	geocoder  geocode.Reverser

	mu    sync.Mutex
	flows map[string]*Flow
}

func NewRegistry(submitter Submitter, geocoder geocode.Reverser) *Registry {
	return &Registry{
		validator: NewValidator(),
		submitter: submitter,
		geocoder:  geocoder,
		flows:     make(map[string]*Flow),
	}
}

// Get returns the session's flow, creating one bound to the session's cart
// when the session has not checked out before. A flow still holding a cart
// the session no longer owns (the session was evicted and its token reused)
// is replaced, so Submit always snapshots the cart the client is mutating.
func (r *Registry) Get(sessionID string, c *cart.Cart) *Flow {
	r.mu.Lock()
	defer r.mu.Unlock()

	fl, ok := r.flows[sessionID]
	if !ok || !fl.boundTo(c) {
		fl = NewFlow(c, r.validator, r.submitter, r.geocoder)
		fl.OnComplete(func() { r.Drop(sessionID) })
		r.flows[sessionID] = fl
	}
	return fl
}

// Drop removes a session's flow, called when the session itself is evicted.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.flows, sessionID)
	r.mu.Unlock()
}
