// Package cart holds a visitor's cart in memory and mirrors it into a kv
// slot. The mirror is best-effort; the in-memory mapping is the source of
// truth for the life of the store.
package cart

import (
	"encoding/json"
	"sort"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/kv"
	applog "storefront/internal/log"
)

// Store is one cart: product id -> item. Construct with New, release with
// Close. Calling any operation after Close is a programming error and panics;
// the lifecycle contract fails loudly instead of returning stale defaults.
type Store struct {
	slot   string
	mirror *kv.Store
	sub    *kv.Subscription

	mu     sync.Mutex
	items  map[int]domain.CartItem
	closed bool
	done   chan struct{}
}

// New loads the slot's last mirrored state (an absent or unreadable slot
// means an empty cart) and starts watching for external writes to the same
// slot, replacing local state wholesale when one arrives.
func New(mirror *kv.Store, slot string) *Store {
	s := &Store{slot: slot, mirror: mirror, items: map[int]domain.CartItem{}, done: make(chan struct{})}
	mirror.Load(slot, &s.items)
	if s.items == nil {
		s.items = map[int]domain.CartItem{}
	}
	s.sub = mirror.Subscribe(slot)
	go s.watch()
	return s
}

func (s *Store) watch() {
	for {
		select {
		case <-s.done:
			return
		case raw := <-s.sub.C:
			next := map[int]domain.CartItem{}
			if err := json.Unmarshal(raw, &next); err != nil {
				applog.Warn(nil, "cart.sync.corrupt", map[string]any{"slot": s.slot, "err": err.Error()})
				continue
			}
			s.mu.Lock()
			if !s.closed {
				s.items = next
			}
			s.mu.Unlock()
		}
	}
}

// Close detaches the store from its mirror. The mirrored state stays put for
// the next Store opened on the same slot.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	close(s.done)
	s.sub.Close()
}

func (s *Store) ensureOpen() {
	if s.closed {
		panic("cart: store used after Close")
	}
}

// persist mirrors the current mapping. Called with s.mu held.
func (s *Store) persist() {
	s.mirror.SaveFrom(s.sub, s.slot, s.items)
}

// Add inserts the product with quantity 1, or bumps the quantity by 1 if it
// is already in the cart.
func (s *Store) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	it, ok := s.items[p.ID]
	if !ok {
		it = domain.CartItem{Product: p}
	}
	it.Quantity++
	s.items[p.ID] = it
	s.persist()
}

// Remove deletes the entry; removing an absent id is a no-op.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	if _, ok := s.items[productID]; !ok {
		return
	}
	delete(s.items, productID)
	s.persist()
}

// UpdateQuantity sets the entry's quantity. qty <= 0 removes the entry;
// updating an id that is not in the cart is a no-op.
func (s *Store) UpdateQuantity(productID, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	it, ok := s.items[productID]
	if !ok {
		return
	}
	if qty <= 0 {
		delete(s.items, productID)
	} else {
		it.Quantity = qty
		s.items[productID] = it
	}
	s.persist()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	s.items = map[int]domain.CartItem{}
	s.persist()
}

// Items returns the cart contents ordered by product id.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	out := make([]domain.CartItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.ID < out[j].Product.ID })
	return out
}

// TotalItems is the sum of all quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price x quantity over all entries.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureOpen()
	total := 0.0
	for _, it := range s.items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}
