package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultSessionTTL      = 2 * time.Hour
	sessionCleanupInterval = time.Minute
)

// session holds a cart and the last time its owner touched it.
type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Store keeps one cart per storefront session token. Idle sessions are
// evicted by a background sweep to prevent unbounded growth.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	onEvict  func(id string)
}

func NewStore() *Store {
	s := &Store{
		sessions: make(map[string]*session),
		ttl:      defaultSessionTTL,
	}
	go s.cleanupLoop()
	return s
}

// NewSession issues a fresh session token with an empty cart.
func (s *Store) NewSession() (string, *Cart) {
	id := uuid.New().String()
	c := New()

	s.mu.Lock()
	s.sessions[id] = &session{cart: c, lastSeen: time.Now()}
	s.mu.Unlock()

	return id, c
}

// Get returns the cart for a session token, creating the session when the
// token is unknown (expired sessions start over with an empty cart).
func (s *Store) Get(id string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[id]
	if !exists {
		sess = &session{cart: New()}
		s.sessions[id] = sess
	}

	sess.lastSeen = time.Now()
	return sess.cart
}

// OnEvict registers a callback invoked with the token of every evicted
// session, so per-session state held elsewhere can be released with it.
func (s *Store) OnEvict(fn func(id string)) {
	s.mu.Lock()
	s.onEvict = fn
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// cleanupLoop removes idle sessions to prevent memory leaks.
func (s *Store) cleanupLoop() {
	for {
		time.Sleep(sessionCleanupInterval)
		s.evictIdle()
	}
}

func (s *Store) evictIdle() {
	s.mu.Lock()
	var evicted []string
	for id, sess := range s.sessions {
		if time.Since(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	fn := s.onEvict
	s.mu.Unlock()

	if fn == nil {
		return
	}
	for _, id := range evicted {
		fn(id)
	}
}
