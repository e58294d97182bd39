// Package sale owns the in-progress cart per session and the checkout
// flow that turns it into a backend invoice.
package sale

import (
	"sync"
	"time"

	"github.com/inventra/frontend/internal/domain/catalog"
	"github.com/inventra/frontend/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// cartTTL reclaims abandoned carts. A cart is otherwise discarded on
// checkout success and on sign-out.
const cartTTL = 4 * time.Hour

// Snapshot is a point-in-time copy of a session's cart used for rendering
// and for building the checkout payload.
type Snapshot struct {
	Lines []sale.Line
	Note  string
	Total decimal.Decimal
}

// CartStore holds one cart per session, serialized under the store lock.
// Carts live in process memory only: an unsaved sale is deliberately not
// persisted anywhere.
type CartStore struct {
	mu      sync.Mutex
	entries map[string]*cartEntry
	done    chan struct{}
	once    sync.Once
}

type cartEntry struct {
	cart      *sale.Cart
	note      string
	touchedAt time.Time
}

// NewCartStore creates a cart store and starts its sweep goroutine.
func NewCartStore() *CartStore {
	s := &CartStore{
		entries: make(map[string]*cartEntry),
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

func (s *CartStore) entry(sessionID string) *cartEntry {
	e, ok := s.entries[sessionID]
	if !ok {
		e = &cartEntry{cart: sale.NewCart()}
		s.entries[sessionID] = e
	}
	e.touchedAt = time.Now()
	return e
}

// Add merges a product into the session's cart, snapshotting its current
// selling price.
func (s *CartStore) Add(sessionID string, p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(sessionID).cart.Add(p)
}

// SetQuantityInput applies a raw quantity edit; invalid input is ignored.
func (s *CartStore) SetQuantityInput(sessionID, productID, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(sessionID).cart.SetQuantityInput(productID, raw)
}

// Remove deletes a line from the session's cart.
func (s *CartStore) Remove(sessionID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(sessionID).cart.Remove(productID)
}

// SetNote stores the draft note alongside the cart.
func (s *CartStore) SetNote(sessionID, note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(sessionID).note = note
}

// Snapshot copies the session's cart state.
func (s *CartStore) Snapshot(sessionID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(sessionID)
	return Snapshot{
		Lines: e.cart.Lines(),
		Note:  e.note,
		Total: e.cart.Total(),
	}
}

// Clear discards the session's cart and note.
func (s *CartStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Close stops the sweep goroutine.
func (s *CartStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *CartStore) janitor() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *CartStore) sweep() {
	cutoff := time.Now().Add(-cartTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if e.touchedAt.Before(cutoff) {
			delete(s.entries, id)
		}
	}
}
