package inventory

import (
	"fmt"
	"strings"
	"sync"

	"marigold-suites/internal/domain"
)

// Store owns all room, menu, and table state for the process lifetime.
// Every check-and-mutate runs inside the store lock, so two concurrent
// callers can never both pass an availability check before either writes.
type Store struct {
	mu     sync.Mutex
	rooms  []*domain.Room
	menu   []*domain.MenuItem
	tables []*domain.Table
}

func NewStore(rooms []domain.Room, menu []domain.MenuItem, tables []domain.Table) *Store {
	s := &Store{}
	for i := range rooms {
		r := rooms[i]
		s.rooms = append(s.rooms, &r)
	}
	for i := range menu {
		m := menu[i]
		m.Available = m.Quantity > 0
		s.menu = append(s.menu, &m)
	}
	for i := range tables {
		t := tables[i]
		s.tables = append(s.tables, &t)
	}
	return s
}

// Rooms returns a snapshot in configuration order.
func (s *Store) Rooms() []domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, *r)
	}
	return out
}

func (s *Store) MenuItems() []domain.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.MenuItem, 0, len(s.menu))
	for _, m := range s.menu {
		out = append(out, *m)
	}
	return out
}

func (s *Store) Tables() []domain.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, *t)
	}
	return out
}

// FindMenuItem looks up an item by case-insensitive exact name match.
func (s *Store) FindMenuItem(name string) (domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.findItem(name)
	if item == nil {
		return domain.MenuItem{}, fmt.Errorf("menu item %q: %w", name, domain.ErrNotFound)
	}
	return *item, nil
}

// ReserveRoom atomically claims the first available room of the given
// type, in configuration order. The snapshot of the claimed room is
// returned with Available already false.
func (s *Store) ReserveRoom(roomType domain.RoomType) (domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.Type == roomType && r.Available {
			r.Available = false
			return *r, nil
		}
	}
	return domain.Room{}, fmt.Errorf("no %s rooms: %w", roomType, domain.ErrResourceUnavailable)
}

// ReleaseRoom returns a room to availability. No public operation calls
// this today; once booked a room stays booked for the process lifetime.
func (s *Store) ReleaseRoom(number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.Number == number {
			r.Available = true
			return nil
		}
	}
	return fmt.Errorf("room %d: %w", number, domain.ErrNotFound)
}

// DecrementStock consumes quantity from a menu item. The availability
// flag is derived from the new quantity under the same lock, so
// Available == (Quantity > 0) holds at every observable point.
func (s *Store) DecrementStock(name string, quantity int) (domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.findItem(name)
	if item == nil {
		return domain.MenuItem{}, fmt.Errorf("menu item %q: %w", name, domain.ErrNotFound)
	}
	if quantity > item.Quantity {
		return domain.MenuItem{}, &domain.StockError{Item: item.Name, Requested: quantity, Available: item.Quantity}
	}
	item.Quantity -= quantity
	item.Available = item.Quantity > 0
	return *item, nil
}

// RestoreStock returns previously consumed quantity to an item and
// forces it available again. Forcing availability even while other
// reservations exist matches the cancel-and-restore semantics of the
// reservation registry; there is no per-batch ledger.
func (s *Store) RestoreStock(name string, quantity int) (domain.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.findItem(name)
	if item == nil {
		return domain.MenuItem{}, fmt.Errorf("menu item %q: %w", name, domain.ErrNotFound)
	}
	item.Quantity += quantity
	item.Available = item.Quantity > 0
	return *item, nil
}

// ReserveTable claims a specific table if it is free and large enough.
func (s *Store) ReserveTable(tableNumber, partySize int, customer, date, timeOfDay string, durationHours int) (domain.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := s.findTable(tableNumber)
	if table == nil {
		return domain.Table{}, fmt.Errorf("table %d: %w", tableNumber, domain.ErrNotFound)
	}
	if !table.Available || table.Capacity < partySize {
		return domain.Table{}, fmt.Errorf("table %d is not available or too small for %d people: %w",
			tableNumber, partySize, domain.ErrResourceUnavailable)
	}
	s.claimTable(table, customer, date, timeOfDay, durationHours)
	return *table, nil
}

// ReserveBestTable claims the available table with the smallest capacity
// that still fits the party, minimizing wasted seats.
func (s *Store) ReserveBestTable(partySize int, customer, date, timeOfDay string, durationHours int) (domain.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *domain.Table
	for _, t := range s.tables {
		if !t.Available || t.Capacity < partySize {
			continue
		}
		if best == nil || t.Capacity < best.Capacity {
			best = t
		}
	}
	if best == nil {
		return domain.Table{}, fmt.Errorf("no tables for %d people: %w", partySize, domain.ErrResourceUnavailable)
	}
	s.claimTable(best, customer, date, timeOfDay, durationHours)
	return *best, nil
}

// ReleaseTable clears the reservation fields together with the
// availability flag, keeping the iff invariant between them.
func (s *Store) ReleaseTable(tableNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := s.findTable(tableNumber)
	if table == nil {
		return fmt.Errorf("table %d: %w", tableNumber, domain.ErrNotFound)
	}
	table.Available = true
	table.ReservedBy = ""
	table.ReservedDate = ""
	table.ReservedTime = ""
	table.ReservationDuration = 0
	return nil
}

func (s *Store) claimTable(t *domain.Table, customer, date, timeOfDay string, durationHours int) {
	t.Available = false
	t.ReservedBy = customer
	t.ReservedDate = date
	t.ReservedTime = timeOfDay
	t.ReservationDuration = durationHours
}

func (s *Store) findItem(name string) *domain.MenuItem {
	for _, m := range s.menu {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return nil
}

func (s *Store) findTable(number int) *domain.Table {
	for _, t := range s.tables {
		if t.TableNumber == number {
			return t
		}
	}
	return nil
}
