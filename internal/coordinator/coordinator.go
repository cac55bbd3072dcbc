// Package coordinator runs the two halves of a combined room+food
// request concurrently against the shared inventory and feeds both
// results into the billing pipeline once both complete.
package coordinator

import (
	"context"
	"fmt"
	"time"

	"marigold-suites/internal/billing"
	"marigold-suites/internal/booking"
	"marigold-suites/internal/domain"
	"marigold-suites/internal/ordering"
)

type CoordinatorInterface interface {
	CombinedRequest(ctx context.Context, req CombinedRequest) (domain.CombinedResult, error)
	CombinedRequestWithTimeout(ctx context.Context, req CombinedRequest, timeout time.Duration) (domain.CombinedResult, error)
}

type RoomPart struct {
	RoomType domain.RoomType `json:"room_type"`
	Nights   int             `json:"nights"`
}

type FoodPart struct {
	Lines              []domain.OrderLine `json:"items"`
	TableReservationID string             `json:"table_reservation_id,omitempty"`
}

type CombinedRequest struct {
	Room         *RoomPart `json:"room,omitempty"`
	Food         *FoodPart `json:"food,omitempty"`
	CustomerName string    `json:"customer_name,omitempty"`
}

type Coordinator struct {
	rooms   booking.RoomServiceInterface
	orders  ordering.ServiceInterface
	billing billing.ServiceInterface
}

func New(rooms booking.RoomServiceInterface, orders ordering.ServiceInterface, billingSvc billing.ServiceInterface) *Coordinator {
	return &Coordinator{rooms: rooms, orders: orders, billing: billingSvc}
}

type roomOutcome struct {
	booking domain.RoomBooking
	err     error
}

type foodOutcome struct {
	order domain.FoodOrder
	err   error
}

// CombinedRequest launches the room and food operations as independent
// goroutines and joins on both before assembling the invoice. The two
// touch disjoint resources, so no cross-operation ordering is needed;
// each is internally atomic against concurrent callers.
func (c *Coordinator) CombinedRequest(ctx context.Context, req CombinedRequest) (domain.CombinedResult, error) {
	if req.Room == nil && req.Food == nil {
		return domain.CombinedResult{}, fmt.Errorf("empty combined request: %w", domain.ErrValidation)
	}

	roomCh := make(chan roomOutcome, 1)
	foodCh := make(chan foodOutcome, 1)

	if req.Room != nil {
		go func() {
			roomBooking, err := c.rooms.BookRoom(ctx, req.Room.RoomType, req.Room.Nights)
			roomCh <- roomOutcome{booking: roomBooking, err: err}
		}()
	} else {
		roomCh <- roomOutcome{err: errSkipped}
	}

	if req.Food != nil {
		go func() {
			order, err := c.orders.OrderFood(ctx, req.Food.Lines, req.Food.TableReservationID)
			foodCh <- foodOutcome{order: order, err: err}
		}()
	} else {
		foodCh <- foodOutcome{err: errSkipped}
	}

	var room roomOutcome
	var food foodOutcome
	for i := 0; i < 2; i++ {
		select {
		case room = <-roomCh:
			roomCh = nil
		case food = <-foodCh:
			foodCh = nil
		case <-ctx.Done():
			return domain.CombinedResult{}, ctx.Err()
		}
	}

	result := domain.CombinedResult{CompletedAt: time.Now()}

	var bookedRoom *domain.RoomBooking
	if req.Room != nil {
		if room.err != nil {
			result.RoomError = room.err.Error()
		} else {
			bookedRoom = &room.booking
			result.RoomBooking = &room.booking
		}
	}

	var foodOrder *domain.FoodOrder
	if req.Food != nil {
		if food.err != nil {
			result.FoodError = food.err.Error()
		} else {
			foodOrder = &food.order
			result.FoodOrder = &food.order
		}
	}

	items := c.billing.ConvertOrderToReceiptItems(bookedRoom, foodOrder)
	if len(items) == 0 {
		return result, fmt.Errorf("neither part of the combined request succeeded: %w", domain.ErrResourceUnavailable)
	}

	invoice, err := c.billing.GenerateInvoice(ctx, billing.InvoiceRequest{
		Items:        items,
		CustomerName: req.CustomerName,
		RoomNumber:   roomNumber(bookedRoom),
	})
	if err != nil {
		return result, err
	}
	result.Invoice = &invoice

	return result, nil
}

// CombinedRequestWithTimeout bounds the whole combined operation. The
// original system had no deadlines; dispatchers get one here.
func (c *Coordinator) CombinedRequestWithTimeout(ctx context.Context, req CombinedRequest, timeout time.Duration) (domain.CombinedResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.CombinedRequest(ctx, req)
}

var errSkipped = fmt.Errorf("not requested")

func roomNumber(roomBooking *domain.RoomBooking) int {
	if roomBooking == nil {
		return 0
	}
	return roomBooking.RoomNumber
}

var _ CoordinatorInterface = (*Coordinator)(nil)
