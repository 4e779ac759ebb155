package cart

import (
	"sync"

	"storefront/internal/kv"
)

// SlotPrefix namespaces mirror slots: one per visitor session.
const SlotPrefix = "cart:"

// Manager hands out one Store per session id, creating it lazily from its
// mirrored slot on first use. The same lifecycle contract applies: using a
// Manager after Close panics.
type Manager struct {
	mirror *kv.Store

	mu     sync.Mutex
	carts  map[string]*Store
	closed bool
}

func NewManager(mirror *kv.Store) *Manager {
	return &Manager{mirror: mirror, carts: map[string]*Store{}}
}

// Get returns the session's cart, opening it from the mirror if needed.
func (m *Manager) Get(sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		panic("cart: manager used after Close")
	}
	s, ok := m.carts[sessionID]
	if !ok {
		s = New(m.mirror, SlotPrefix+sessionID)
		m.carts[sessionID] = s
	}
	return s
}

// Close releases every open cart. Mirrored state survives for the next run.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for _, s := range m.carts {
		s.Close()
	}
	m.carts = nil
}
