package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marigold-suites/internal/billing"
	"marigold-suites/internal/booking"
	"marigold-suites/internal/domain"
	"marigold-suites/internal/inventory"
	"marigold-suites/internal/ordering"
)

func newTestCoordinator() (*Coordinator, *inventory.Store) {
	store := inventory.NewStore(
		[]domain.Room{
			{Number: 201, Type: domain.RoomDouble, Floor: 2, PricePerNight: 150, Available: true},
		},
		[]domain.MenuItem{
			{Name: "Pepperoni Pizza", Category: "main", Price: 15, Quantity: 20},
			{Name: "Soft Drink", Category: "beverage", Price: 2, Quantity: 50},
		},
		nil,
	)
	rooms := booking.NewRoomService(store, nil)
	orders := ordering.NewService(store, nil, nil, nil)
	billingSvc := billing.NewService(nil, nil, 0, 0)
	return New(rooms, orders, billingSvc), store
}

func TestCombinedRequestRoomAndFood(t *testing.T) {
	coordinator, store := newTestCoordinator()

	result, err := coordinator.CombinedRequest(context.Background(), CombinedRequest{
		Room:         &RoomPart{RoomType: domain.RoomDouble, Nights: 3},
		Food:         &FoodPart{Lines: []domain.OrderLine{{Name: "Pepperoni Pizza", Quantity: 2}}},
		CustomerName: "Dana",
	})
	require.NoError(t, err)

	require.NotNil(t, result.RoomBooking)
	assert.Equal(t, 201, result.RoomBooking.RoomNumber)
	assert.InDelta(t, 450.0, result.RoomBooking.TotalCost, 0.001)
	assert.Empty(t, result.RoomError)

	require.NotNil(t, result.FoodOrder)
	assert.Len(t, result.FoodOrder.OrderedItems, 1)
	assert.Empty(t, result.FoodError)

	require.NotNil(t, result.Invoice)
	assert.Equal(t, "Dana", result.Invoice.CustomerName)
	assert.Equal(t, 201, result.Invoice.RoomNumber)
	assert.Len(t, result.Invoice.Items, 2)
	assert.InDelta(t, 480.0, result.Invoice.Subtotal, 0.001)
	assert.False(t, result.CompletedAt.IsZero())

	item, err := store.FindMenuItem("Pepperoni Pizza")
	require.NoError(t, err)
	assert.Equal(t, 18, item.Quantity)
}

func TestCombinedRequestFoodOnly(t *testing.T) {
	coordinator, _ := newTestCoordinator()

	result, err := coordinator.CombinedRequest(context.Background(), CombinedRequest{
		Food: &FoodPart{Lines: []domain.OrderLine{{Name: "Soft Drink", Quantity: 3}}},
	})
	require.NoError(t, err)
	assert.Nil(t, result.RoomBooking)
	assert.Empty(t, result.RoomError)
	require.NotNil(t, result.Invoice)
	assert.Zero(t, result.Invoice.RoomNumber)
	assert.InDelta(t, 6.0, result.Invoice.Subtotal, 0.001)
}

func TestCombinedRequestPartialFailure(t *testing.T) {
	coordinator, _ := newTestCoordinator()

	// No triple rooms exist; the food half still succeeds and gets invoiced.
	result, err := coordinator.CombinedRequest(context.Background(), CombinedRequest{
		Room: &RoomPart{RoomType: domain.RoomTriple, Nights: 2},
		Food: &FoodPart{Lines: []domain.OrderLine{{Name: "Soft Drink", Quantity: 1}}},
	})
	require.NoError(t, err)
	assert.Nil(t, result.RoomBooking)
	assert.NotEmpty(t, result.RoomError)
	require.NotNil(t, result.FoodOrder)
	require.NotNil(t, result.Invoice)
	assert.InDelta(t, 2.0, result.Invoice.Subtotal, 0.001)
}

func TestCombinedRequestBothFail(t *testing.T) {
	coordinator, _ := newTestCoordinator()

	result, err := coordinator.CombinedRequest(context.Background(), CombinedRequest{
		Room: &RoomPart{RoomType: domain.RoomTriple, Nights: 2},
		Food: &FoodPart{Lines: []domain.OrderLine{{Name: "Mystery Dish", Quantity: 1}}},
	})
	assert.ErrorIs(t, err, domain.ErrResourceUnavailable)
	assert.NotEmpty(t, result.RoomError)
	assert.NotEmpty(t, result.FoodError)
	assert.Nil(t, result.Invoice)
}

func TestCombinedRequestEmpty(t *testing.T) {
	coordinator, _ := newTestCoordinator()

	_, err := coordinator.CombinedRequest(context.Background(), CombinedRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCombinedRequestWithTimeout(t *testing.T) {
	coordinator, _ := newTestCoordinator()

	result, err := coordinator.CombinedRequestWithTimeout(context.Background(), CombinedRequest{
		Room: &RoomPart{RoomType: domain.RoomDouble, Nights: 1},
	}, 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, result.Invoice)
}

type slowRoomService struct{}

func (slowRoomService) CheckRoomAvailability(domain.RoomType) (domain.RoomAvailability, error) {
	return domain.RoomAvailability{}, nil
}

func (slowRoomService) BookRoom(ctx context.Context, _ domain.RoomType, _ int) (domain.RoomBooking, error) {
	select {
	case <-ctx.Done():
		return domain.RoomBooking{}, ctx.Err()
	case <-time.After(time.Minute):
		return domain.RoomBooking{}, nil
	}
}

func TestCombinedRequestTimesOut(t *testing.T) {
	_, store := newTestCoordinator()
	orders := ordering.NewService(store, nil, nil, nil)
	coordinator := New(slowRoomService{}, orders, billing.NewService(nil, nil, 0, 0))

	_, err := coordinator.CombinedRequestWithTimeout(context.Background(), CombinedRequest{
		Room: &RoomPart{RoomType: domain.RoomDouble, Nights: 1},
	}, 50*time.Millisecond)
	assert.Error(t, err)
}
