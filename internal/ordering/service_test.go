package ordering

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marigold-suites/internal/domain"
	"marigold-suites/internal/inventory"
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

type fakeCache struct {
	menu        []domain.MenuItem
	invalidated int
}

func (c *fakeCache) GetMenu(context.Context) ([]domain.MenuItem, error) {
	if c.menu == nil {
		return nil, domain.ErrNotFound
	}
	return c.menu, nil
}

func (c *fakeCache) SetMenu(_ context.Context, items []domain.MenuItem) error {
	c.menu = items
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.menu = nil
	c.invalidated++
	return nil
}

type fakeTables struct {
	reservations map[string]domain.TableReservation
}

func (t *fakeTables) Lookup(id string) (domain.TableReservation, bool) {
	reservation, ok := t.reservations[id]
	return reservation, ok
}

func orderingStore() *inventory.Store {
	return inventory.NewStore(nil, []domain.MenuItem{
		{
			Name: "Pepperoni Pizza", Category: "main", Price: 15, Quantity: 20, Customizable: true,
			Options: map[domain.CustomizationCategory]map[string]domain.CustomizationOption{
				domain.CategorySize: {
					"medium": {Name: "Medium", PriceModifier: 0},
					"large":  {Name: "Large", PriceModifier: 3},
				},
			},
			Defaults: map[domain.CustomizationCategory]string{domain.CategorySize: "medium"},
		},
		{Name: "Soft Drink", Category: "beverage", Price: 2, Quantity: 50},
		{Name: "Caesar Salad", Category: "starter", Price: 8, Quantity: 3},
		{Name: "Sold Out Soup", Category: "starter", Price: 5, Quantity: 0},
	}, nil)
}

func TestGetMenuItemsCacheReadThrough(t *testing.T) {
	store := orderingStore()
	cache := &fakeCache{}
	service := NewService(store, cache, nil, nil)

	items := service.GetMenuItems(context.Background())
	assert.Len(t, items, 4)
	assert.Len(t, cache.menu, 4)

	// Second read is served from the cache snapshot.
	cache.menu = cache.menu[:1]
	cached := service.GetMenuItems(context.Background())
	assert.Len(t, cached, 1)
}

func TestOrderFood(t *testing.T) {
	tests := []struct {
		name            string
		lines           []domain.OrderLine
		wantOrdered     int
		wantUnavailable int
		wantTotal       float64
		wantService     string
		wantReasons     []string
		wantErr         error
	}{
		{
			name:        "simple order decrements stock",
			lines:       []domain.OrderLine{{Name: "Soft Drink", Quantity: 5}},
			wantOrdered: 1,
			wantTotal:   10,
			wantService: ServiceTakeaway,
		},
		{
			name: "customized item priced through the engine",
			lines: []domain.OrderLine{{
				Name:     "Pepperoni Pizza",
				Quantity: 2,
				Customizations: []domain.CustomizationSelection{
					{Category: domain.CategorySize, Options: []string{"large"}},
				},
			}},
			wantOrdered: 1,
			wantTotal:   36,
			wantService: ServiceTakeaway,
		},
		{
			name: "partial success keeps the good lines",
			lines: []domain.OrderLine{
				{Name: "Soft Drink", Quantity: 2},
				{Name: "Caesar Salad", Quantity: 5},
				{Name: "Mystery Dish", Quantity: 1},
			},
			wantOrdered:     1,
			wantUnavailable: 2,
			wantTotal:       4,
			wantService:     ServiceTakeaway,
			wantReasons:     []string{"only 3 available", "not on menu or out of stock"},
		},
		{
			name:            "out of stock item reported",
			lines:           []domain.OrderLine{{Name: "Sold Out Soup", Quantity: 1}},
			wantUnavailable: 1,
			wantReasons:     []string{"not on menu or out of stock"},
			wantErr:         domain.ErrResourceUnavailable,
		},
		{
			name: "dine in dominates mixed service types",
			lines: []domain.OrderLine{
				{Name: "Soft Drink", Quantity: 1, ServiceType: ServiceTakeaway},
				{Name: "Caesar Salad", Quantity: 1, ServiceType: ServiceDineIn},
			},
			wantOrdered: 2,
			wantTotal:   10,
			wantService: ServiceDineIn,
		},
		{
			name:            "nothing orderable fails the call",
			lines:           []domain.OrderLine{{Name: "Mystery Dish", Quantity: 1}},
			wantUnavailable: 1,
			wantErr:         domain.ErrResourceUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			service := NewService(orderingStore(), nil, nil, nil)
			order, err := service.OrderFood(context.Background(), testCase.lines, "")
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, order.OrderedItems, testCase.wantOrdered)
			assert.Len(t, order.UnavailableItems, testCase.wantUnavailable)
			assert.InDelta(t, testCase.wantTotal, order.TotalCost, 0.001)
			if testCase.wantService != "" {
				assert.Equal(t, testCase.wantService, order.ServiceType)
			}
			for i, reason := range testCase.wantReasons {
				assert.Equal(t, reason, order.UnavailableItems[i].Reason)
			}
		})
	}
}

func TestOrderFoodStockIsConsumed(t *testing.T) {
	store := orderingStore()
	service := NewService(store, nil, nil, nil)

	_, err := service.OrderFood(context.Background(), []domain.OrderLine{{Name: "Soft Drink", Quantity: 5}}, "")
	require.NoError(t, err)

	item, err := store.FindMenuItem("Soft Drink")
	require.NoError(t, err)
	assert.Equal(t, 45, item.Quantity)
}

func TestOrderFoodLinksTableReservation(t *testing.T) {
	tables := &fakeTables{reservations: map[string]domain.TableReservation{
		"TBL-1": {ReservationID: "TBL-1", TableNumber: 7},
	}}
	service := NewService(orderingStore(), nil, nil, tables)

	order, err := service.OrderFood(context.Background(), []domain.OrderLine{
		{Name: "Soft Drink", Quantity: 1, ServiceType: ServiceDineIn},
	}, "TBL-1")
	require.NoError(t, err)
	assert.Equal(t, 7, order.TableNumber)
	assert.Equal(t, ServiceDineIn, order.ServiceType)
}

func TestOrderFoodInvalidatesCacheAndPublishes(t *testing.T) {
	cache := &fakeCache{}
	events := &capturedEvents{}
	service := NewService(orderingStore(), cache, events, nil)

	_, err := service.OrderFood(context.Background(), []domain.OrderLine{{Name: "Soft Drink", Quantity: 1}}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, cache.invalidated)
	require.Len(t, events.events, 1)
	assert.Equal(t, "order_placed", events.events[0].Type)
	assert.InDelta(t, 2.0, events.events[0].Amount, 0.001)
}
