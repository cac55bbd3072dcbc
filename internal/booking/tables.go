package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marigold-suites/internal/domain"
	"marigold-suites/internal/inventory"
)

type TableServiceInterface interface {
	CheckTableAvailability(partySize int, date, timeOfDay string) (domain.TableAvailability, error)
	ReserveTable(ctx context.Context, req TableRequest) (domain.TableReservation, error)
	CancelTableReservation(ctx context.Context, reservationID string) (int, error)
	ListTableReservations(filter ReservationFilter) []domain.TableReservation
	GetAllTablesStatus() domain.TablesStatus
	Lookup(reservationID string) (domain.TableReservation, bool)
}

type TableRequest struct {
	CustomerName    string `json:"customer_name"`
	PartySize       int    `json:"party_size"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationHours   int    `json:"duration_hours"`
	PreferredTable  int    `json:"preferred_table,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

type ReservationFilter struct {
	CustomerName string
	Date         string
	TableNumber  int
}

type TableService struct {
	store     *inventory.Store
	publisher EventPublisher

	mu           sync.Mutex
	reservations map[string]domain.TableReservation
}

func NewTableService(store *inventory.Store, publisher EventPublisher) *TableService {
	return &TableService{
		store:        store,
		publisher:    publisher,
		reservations: make(map[string]domain.TableReservation),
	}
}

// CheckTableAvailability lists free tables with capacity >= party size,
// grouped by capacity. Date and time are informational only: each table
// carries a single availability flag, not a per-slot calendar.
func (s *TableService) CheckTableAvailability(partySize int, date, timeOfDay string) (domain.TableAvailability, error) {
	byCapacity := make(map[int][]int)
	count := 0
	for _, table := range s.store.Tables() {
		if table.Available && table.Capacity >= partySize {
			byCapacity[table.Capacity] = append(byCapacity[table.Capacity], table.TableNumber)
			count++
		}
	}
	if count == 0 {
		return domain.TableAvailability{PartySize: partySize}, fmt.Errorf("no tables for %d people: %w", partySize, domain.ErrResourceUnavailable)
	}
	return domain.TableAvailability{
		PartySize:        partySize,
		AvailableCount:   count,
		TablesByCapacity: byCapacity,
	}, nil
}

func (s *TableService) ReserveTable(ctx context.Context, req TableRequest) (domain.TableReservation, error) {
	if req.DurationHours <= 0 {
		req.DurationHours = 2
	}

	var table domain.Table
	var err error
	if req.PreferredTable > 0 {
		table, err = s.store.ReserveTable(req.PreferredTable, req.PartySize, req.CustomerName, req.Date, req.Time, req.DurationHours)
	} else {
		table, err = s.store.ReserveBestTable(req.PartySize, req.CustomerName, req.Date, req.Time, req.DurationHours)
	}
	if err != nil {
		return domain.TableReservation{}, err
	}

	now := time.Now()
	reservation := domain.TableReservation{
		ReservationID:   fmt.Sprintf("TBL-%s-%02d", now.Format("20060102150405"), table.TableNumber),
		TableNumber:     table.TableNumber,
		Capacity:        table.Capacity,
		Location:        table.Location,
		CustomerName:    req.CustomerName,
		PartySize:       req.PartySize,
		ReservedDate:    req.Date,
		ReservedTime:    req.Time,
		DurationHours:   req.DurationHours,
		SpecialRequests: req.SpecialRequests,
		Status:          domain.StatusConfirmed,
		CreatedAt:       now,
	}

	s.mu.Lock()
	s.reservations[reservation.ReservationID] = reservation
	s.mu.Unlock()

	if s.publisher != nil {
		_ = s.publisher.PublishEvent(ctx, domain.Event{
			Type:      "table_reserved",
			Reference: reservation.ReservationID,
			Timestamp: now,
		})
	}

	return reservation, nil
}

// CancelTableReservation frees the table, clears its reservation fields
// and removes the record. Returns the freed table number.
func (s *TableService) CancelTableReservation(ctx context.Context, reservationID string) (int, error) {
	s.mu.Lock()
	reservation, ok := s.reservations[reservationID]
	if ok {
		delete(s.reservations, reservationID)
	}
	s.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("table reservation %s: %w", reservationID, domain.ErrNotFound)
	}

	if err := s.store.ReleaseTable(reservation.TableNumber); err != nil {
		return 0, err
	}

	if s.publisher != nil {
		_ = s.publisher.PublishEvent(ctx, domain.Event{
			Type:      "table_reservation_cancelled",
			Reference: reservationID,
			Timestamp: time.Now(),
		})
	}

	return reservation.TableNumber, nil
}

func (s *TableService) ListTableReservations(filter ReservationFilter) []domain.TableReservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TableReservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		if filter.CustomerName != "" && r.CustomerName != filter.CustomerName {
			continue
		}
		if filter.Date != "" && r.ReservedDate != filter.Date {
			continue
		}
		if filter.TableNumber > 0 && r.TableNumber != filter.TableNumber {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *TableService) GetAllTablesStatus() domain.TablesStatus {
	status := domain.TablesStatus{ByCapacity: make(map[int]domain.TableGroup)}
	for _, table := range s.store.Tables() {
		group := status.ByCapacity[table.Capacity]
		if table.Available {
			group.Available = append(group.Available, table)
			status.TotalAvailable++
		} else {
			group.Reserved = append(group.Reserved, table)
			status.TotalReserved++
		}
		status.ByCapacity[table.Capacity] = group
	}
	return status
}

func (s *TableService) Lookup(reservationID string) (domain.TableReservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[reservationID]
	return reservation, ok
}

var _ TableServiceInterface = (*TableService)(nil)
