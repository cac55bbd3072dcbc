package booking

import (
	"context"
	"fmt"
	"time"

	"marigold-suites/internal/domain"
	"marigold-suites/internal/inventory"
)

type RoomServiceInterface interface {
	CheckRoomAvailability(roomType domain.RoomType) (domain.RoomAvailability, error)
	BookRoom(ctx context.Context, roomType domain.RoomType, nights int) (domain.RoomBooking, error)
}

// EventPublisher is satisfied by the Kafka publisher; nil disables
// publishing.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event domain.Event) error
}

type RoomService struct {
	store     *inventory.Store
	publisher EventPublisher
}

func NewRoomService(store *inventory.Store, publisher EventPublisher) *RoomService {
	return &RoomService{store: store, publisher: publisher}
}

// CheckRoomAvailability is read-only; an empty match reports
// ErrResourceUnavailable without mutating anything.
func (s *RoomService) CheckRoomAvailability(roomType domain.RoomType) (domain.RoomAvailability, error) {
	var numbers []int
	for _, room := range s.store.Rooms() {
		if room.Type == roomType && room.Available {
			numbers = append(numbers, room.Number)
		}
	}
	if len(numbers) == 0 {
		return domain.RoomAvailability{RoomType: roomType}, fmt.Errorf("no %s rooms available: %w", roomType, domain.ErrResourceUnavailable)
	}
	return domain.RoomAvailability{
		RoomType:       roomType,
		AvailableCount: len(numbers),
		RoomNumbers:    numbers,
	}, nil
}

func (s *RoomService) BookRoom(ctx context.Context, roomType domain.RoomType, nights int) (domain.RoomBooking, error) {
	if nights <= 0 {
		return domain.RoomBooking{}, fmt.Errorf("nights must be positive: %w", domain.ErrValidation)
	}
	room, err := s.store.ReserveRoom(roomType)
	if err != nil {
		return domain.RoomBooking{}, err
	}

	booking := domain.RoomBooking{
		RoomNumber: room.Number,
		RoomType:   room.Type,
		Floor:      room.Floor,
		Nights:     nights,
		TotalCost:  room.PricePerNight * float64(nights),
	}

	if s.publisher != nil {
		_ = s.publisher.PublishEvent(ctx, domain.Event{
			Type:      "room_booked",
			Reference: fmt.Sprintf("room-%d", room.Number),
			Amount:    booking.TotalCost,
			Timestamp: time.Now(),
		})
	}

	return booking, nil
}

var _ RoomServiceInterface = (*RoomService)(nil)
