package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marigold-suites/internal/domain"
	"marigold-suites/internal/inventory"
	"marigold-suites/internal/ordering"
)

// 2026-09-07 is a Monday, 2026-09-11 a Friday.
const (
	monday = "2026-09-07"
	friday = "2026-09-11"
)

type capturedEvents struct {
	mu     sync.Mutex
	events []domain.Event
}

func (c *capturedEvents) PublishEvent(_ context.Context, event domain.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func allDays() []string {
	return []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
}

func schedulingStore() *inventory.Store {
	return inventory.NewStore(nil, []domain.MenuItem{
		{
			Name: "Caesar Salad", Category: "starter", Price: 8, Quantity: 10,
			MealTypes:     []domain.MealType{domain.MealLunch, domain.MealDinner},
			AvailableDays: allDays(),
		},
		{
			Name: "Saffron Joojeh Kabab", Category: "main", Price: 22, Quantity: 5,
			MealTypes:     []domain.MealType{domain.MealDinner},
			AvailableDays: []string{"friday", "saturday"},
		},
		{
			Name: "Sold Out Soup", Category: "starter", Price: 5, Quantity: 0,
			MealTypes:     []domain.MealType{domain.MealLunch},
			AvailableDays: allDays(),
		},
	}, nil)
}

func testProgram() map[string]map[domain.MealType]string {
	program := make(map[string]map[domain.MealType]string)
	for _, day := range allDays() {
		program[day] = map[domain.MealType]string{
			domain.MealBreakfast: "Caesar Salad",
			domain.MealLunch:     "Sold Out Soup",
			domain.MealDinner:    "Caesar Salad",
		}
	}
	program["friday"][domain.MealDinner] = "Saffron Joojeh Kabab"
	return program
}

func newTestService(publisher EventPublisher) (*Service, *inventory.Store) {
	store := schedulingStore()
	return NewService(store, testProgram(), nil, publisher), store
}

func TestCheckFoodAvailabilityByDate(t *testing.T) {
	tests := []struct {
		name          string
		item          string
		date          string
		mealType      domain.MealType
		wantAvailable bool
		wantReason    string
		wantErr       error
	}{
		{
			name: "available", item: "Caesar Salad", date: monday,
			mealType: domain.MealLunch, wantAvailable: true,
		},
		{
			name: "case insensitive name", item: "caesar salad", date: monday,
			mealType: domain.MealDinner, wantAvailable: true,
		},
		{
			name: "wrong day", item: "Saffron Joojeh Kabab", date: monday,
			mealType: domain.MealDinner, wantReason: "Saffron Joojeh Kabab is not available on monday",
		},
		{
			name: "right day", item: "Saffron Joojeh Kabab", date: friday,
			mealType: domain.MealDinner, wantAvailable: true,
		},
		{
			name: "wrong meal type", item: "Caesar Salad", date: monday,
			mealType: domain.MealBreakfast, wantReason: "Caesar Salad is not available for breakfast",
		},
		{
			name: "out of stock", item: "Sold Out Soup", date: monday,
			mealType: domain.MealLunch, wantReason: "Sold Out Soup is out of stock",
		},
		{
			name: "unknown item", item: "Mystery Dish", date: monday,
			mealType: domain.MealLunch, wantErr: domain.ErrNotFound,
		},
		{
			name: "bad date", item: "Caesar Salad", date: "07/09/2026",
			mealType: domain.MealLunch, wantErr: domain.ErrInvalidDateFormat,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			service, _ := newTestService(nil)
			availability, err := service.CheckFoodAvailabilityByDate(testCase.item, testCase.date, testCase.mealType)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantAvailable, availability.Available)
			assert.Equal(t, testCase.wantReason, availability.Reason)
		})
	}
}

func TestMakeFoodReservation(t *testing.T) {
	events := &capturedEvents{}
	service, store := newTestService(events)

	reservation, err := service.MakeFoodReservation(context.Background(), ReservationRequest{
		FoodItem:     "Saffron Joojeh Kabab",
		Date:         friday,
		MealType:     domain.MealDinner,
		Quantity:     2,
		CustomerName: "Dana",
		RoomNumber:   201,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, reservation.Status)
	assert.Equal(t, "19:00", reservation.ScheduledTime)
	assert.Equal(t, 44.0, reservation.TotalPrice)
	assert.Contains(t, reservation.ReservationID, "RES-")

	item, err := store.FindMenuItem("Saffron Joojeh Kabab")
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	require.Len(t, events.events, 1)
	assert.Equal(t, "food_reservation_made", events.events[0].Type)
}

func TestMakeFoodReservationDefaultsQuantity(t *testing.T) {
	service, store := newTestService(nil)

	reservation, err := service.MakeFoodReservation(context.Background(), ReservationRequest{
		FoodItem: "Caesar Salad",
		Date:     monday,
		MealType: domain.MealLunch,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, reservation.Quantity)

	item, err := store.FindMenuItem("Caesar Salad")
	require.NoError(t, err)
	assert.Equal(t, 9, item.Quantity)
}

func TestMakeFoodReservationRejectsUnavailable(t *testing.T) {
	service, _ := newTestService(nil)

	_, err := service.MakeFoodReservation(context.Background(), ReservationRequest{
		FoodItem: "Saffron Joojeh Kabab",
		Date:     monday,
		MealType: domain.MealDinner,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrResourceUnavailable)
}

type snapshotCache struct {
	menu []domain.MenuItem
}

func (c *snapshotCache) GetMenu(context.Context) ([]domain.MenuItem, error) {
	if c.menu == nil {
		return nil, domain.ErrNotFound
	}
	return c.menu, nil
}

func (c *snapshotCache) SetMenu(_ context.Context, items []domain.MenuItem) error {
	c.menu = items
	return nil
}

func (c *snapshotCache) Invalidate(context.Context) error {
	c.menu = nil
	return nil
}

func TestReservationsInvalidateMenuCache(t *testing.T) {
	store := schedulingStore()
	cache := &snapshotCache{}
	service := NewService(store, testProgram(), cache, nil)
	menu := ordering.NewService(store, cache, nil, nil)
	ctx := context.Background()

	menu.GetMenuItems(ctx)
	require.NotNil(t, cache.menu)

	reservation, err := service.MakeFoodReservation(ctx, ReservationRequest{
		FoodItem: "Caesar Salad",
		Date:     monday,
		MealType: domain.MealLunch,
		Quantity: 4,
	})
	require.NoError(t, err)
	assert.Nil(t, cache.menu)

	// The next read reflects the decremented stock.
	for _, item := range menu.GetMenuItems(ctx) {
		if item.Name == "Caesar Salad" {
			assert.Equal(t, 6, item.Quantity)
		}
	}

	require.NoError(t, service.CancelFoodReservation(ctx, reservation.ReservationID))
	assert.Nil(t, cache.menu)
}

func TestCancelFoodReservationRestoresStock(t *testing.T) {
	service, store := newTestService(nil)

	reservation, err := service.MakeFoodReservation(context.Background(), ReservationRequest{
		FoodItem: "Caesar Salad",
		Date:     monday,
		MealType: domain.MealLunch,
		Quantity: 4,
	})
	require.NoError(t, err)

	require.NoError(t, service.CancelFoodReservation(context.Background(), reservation.ReservationID))

	item, err := store.FindMenuItem("Caesar Salad")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
	assert.True(t, item.Available)

	err = service.CancelFoodReservation(context.Background(), reservation.ReservationID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFoodReservationsFilters(t *testing.T) {
	service, _ := newTestService(nil)

	_, err := service.MakeFoodReservation(context.Background(), ReservationRequest{
		FoodItem: "Caesar Salad", Date: monday, MealType: domain.MealLunch, CustomerName: "Dana", RoomNumber: 201,
	})
	require.NoError(t, err)
	_, err = service.MakeFoodReservation(context.Background(), ReservationRequest{
		FoodItem: "Caesar Salad", Date: friday, MealType: domain.MealDinner, CustomerName: "Omid", RoomNumber: 305,
	})
	require.NoError(t, err)

	assert.Len(t, service.ListFoodReservations(ReservationFilter{}), 2)

	byName := service.ListFoodReservations(ReservationFilter{CustomerName: "dana"})
	require.Len(t, byName, 1)
	assert.Equal(t, "Dana", byName[0].CustomerName)

	byRoom := service.ListFoodReservations(ReservationFilter{RoomNumber: 305})
	require.Len(t, byRoom, 1)
	assert.Equal(t, "Omid", byRoom[0].CustomerName)

	byDate := service.ListFoodReservations(ReservationFilter{Date: monday})
	require.Len(t, byDate, 1)
	assert.Equal(t, 201, byDate[0].RoomNumber)
}

func TestGetMealOfTheDay(t *testing.T) {
	service, _ := newTestService(nil)

	program, err := service.GetMealOfTheDay(friday)
	require.NoError(t, err)
	assert.Equal(t, "friday", program.Day)
	assert.Equal(t, "Saffron Joojeh Kabab", program.Dinner.Name)
	assert.True(t, program.Dinner.Available)
	assert.Equal(t, 22.0, program.Dinner.Price)

	// Lunch points at an out of stock item, still listed but flagged.
	assert.Equal(t, "Sold Out Soup", program.Lunch.Name)
	assert.False(t, program.Lunch.Available)

	_, err = service.GetMealOfTheDay("not-a-date")
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
}

func TestGetWeeklySchedule(t *testing.T) {
	service, _ := newTestService(nil)

	schedule, err := service.GetWeeklySchedule("2026-09-09")
	require.NoError(t, err)
	assert.Equal(t, monday, schedule.WeekStart)
	assert.Equal(t, "2026-09-13", schedule.WeekEnd)
	require.Len(t, schedule.DailyPrograms, 7)
	assert.Equal(t, "monday", schedule.DailyPrograms[0].Day)
	assert.Equal(t, "sunday", schedule.DailyPrograms[6].Day)
	assert.Equal(t, "Saffron Joojeh Kabab", schedule.DailyPrograms[4].Dinner.Name)

	_, err = service.GetWeeklySchedule("bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidDateFormat)
}

func TestFutureDate(t *testing.T) {
	now := time.Date(2026, 9, 9, 10, 0, 0, 0, time.UTC) // a Wednesday

	future := FutureDate(now, 5)
	assert.Equal(t, "2026-09-14", future.Date)
	assert.Equal(t, "monday", future.DayOfWeek)
	assert.Equal(t, 5, future.DaysAhead)

	today := FutureDate(now, 0)
	assert.Equal(t, "2026-09-09", today.Date)
	assert.Equal(t, "wednesday", today.DayOfWeek)
}

func TestCurrentDateInfo(t *testing.T) {
	now := time.Date(2026, 9, 9, 15, 30, 0, 0, time.UTC) // a Wednesday

	info := CurrentDateInfo(now)
	assert.Equal(t, "2026-09-09", info.CurrentDate)
	assert.Equal(t, "wednesday", info.DayOfWeek)
	assert.Equal(t, "2026-09-10", info.Tomorrow)
	assert.Equal(t, monday, info.WeekStart)
	assert.Equal(t, "2026-09-13", info.WeekEnd)
	assert.Equal(t, now.Unix(), info.Unix)
}
