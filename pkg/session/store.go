package session

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultSize = 1024
	DefaultTTL  = 24 * time.Hour
)

// Store keeps the last extraction result of every session in memory.
// Results left untouched for longer than the TTL, or evicted once the
// store is full, behave as if they had been cleared.
type Store struct {
	mu      sync.Mutex
	results *expirable.LRU[string, string]

	crossSite bool
}

type Option func(*storeConfig)

type storeConfig struct {
	size int
	ttl  time.Duration

	crossSite bool
}

func WithSize(size int) Option {
	return func(c *storeConfig) {
		c.size = size
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(c *storeConfig) {
		c.ttl = ttl
	}
}

// WithCrossSite issues session cookies with SameSite=None and Secure, so
// browsers send them on credentialed requests from other origins.
func WithCrossSite() Option {
	return func(c *storeConfig) {
		c.crossSite = true
	}
}

func New(options ...Option) *Store {
	cfg := &storeConfig{
		size: DefaultSize,
		ttl:  DefaultTTL,
	}

	for _, option := range options {
		option(cfg)
	}

	if cfg.size <= 0 {
		cfg.size = DefaultSize
	}

	if cfg.ttl <= 0 {
		cfg.ttl = DefaultTTL
	}

	return &Store{
		results: expirable.NewLRU[string, string](cfg.size, nil, cfg.ttl),

		crossSite: cfg.crossSite,
	}
}

// Session returns the handle for the session with the given ID.
func (s *Store) Session(id string) *Session {
	return &Session{
		id:    id,
		store: s,
	}
}

// Len returns the number of sessions currently holding a result.
func (s *Store) Len() int {
	return s.results.Len()
}

type Session struct {
	id    string
	store *Store
}

func (s *Session) ID() string {
	return s.id
}

// Set stores result, replacing any previous one.
func (s *Session) Set(result string) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.results.Add(s.id, result)
}

// Get returns the stored result, or false when there is none. Reading a
// result restarts its TTL.
func (s *Session) Get() (string, bool) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	result, ok := s.store.results.Get(s.id)

	if ok {
		s.store.results.Add(s.id, result)
	}

	return result, ok
}

func (s *Session) Clear() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	s.store.results.Remove(s.id)
}
