package ordering

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"marigold-suites/internal/domain"
	"marigold-suites/internal/inventory"
	"marigold-suites/internal/pricing"
)

const (
	ServiceDineIn   = "dine_in"
	ServiceTakeaway = "takeaway"
)

type ServiceInterface interface {
	GetMenuItems(ctx context.Context) []domain.MenuItem
	OrderFood(ctx context.Context, lines []domain.OrderLine, tableReservationID string) (domain.FoodOrder, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event domain.Event) error
}

// MenuCache is optional; nil means every read hits the store.
type MenuCache interface {
	GetMenu(ctx context.Context) ([]domain.MenuItem, error)
	SetMenu(ctx context.Context, items []domain.MenuItem) error
	Invalidate(ctx context.Context) error
}

// TableResolver resolves a table reservation id to its table number.
type TableResolver interface {
	Lookup(reservationID string) (domain.TableReservation, bool)
}

type Service struct {
	store     *inventory.Store
	cache     MenuCache
	publisher EventPublisher
	tables    TableResolver
}

func NewService(store *inventory.Store, cache MenuCache, publisher EventPublisher, tables TableResolver) *Service {
	return &Service{store: store, cache: cache, publisher: publisher, tables: tables}
}

func (s *Service) GetMenuItems(ctx context.Context) []domain.MenuItem {
	if s.cache != nil {
		if items, err := s.cache.GetMenu(ctx); err == nil {
			return items
		}
	}
	items := s.store.MenuItems()
	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, items); err != nil {
			log.Printf("menu cache update failed: %v", err)
		}
	}
	return items
}

// OrderFood is best-effort: each line succeeds or lands on the
// unavailable list, and the call as a whole fails only when no line
// succeeded at all.
func (s *Service) OrderFood(ctx context.Context, lines []domain.OrderLine, tableReservationID string) (domain.FoodOrder, error) {
	order := domain.FoodOrder{ServiceType: ServiceTakeaway}

	for _, line := range lines {
		if line.ServiceType == ServiceDineIn {
			order.ServiceType = ServiceDineIn
		}

		item, err := s.store.FindMenuItem(line.Name)
		if err != nil || !item.Available {
			order.UnavailableItems = append(order.UnavailableItems, domain.UnavailableItem{
				Name:   line.Name,
				Reason: "not on menu or out of stock",
			})
			continue
		}

		unitPrice := item.Price
		var customizations []string
		if pricing.HasCustomizations(item, line.Customizations) {
			quote := pricing.UnitPrice(item, line.Customizations)
			unitPrice = quote.UnitPrice
			customizations = quote.Customizations
		}

		if _, err := s.store.DecrementStock(item.Name, line.Quantity); err != nil {
			order.UnavailableItems = append(order.UnavailableItems, domain.UnavailableItem{
				Name:   line.Name,
				Reason: stockReason(err),
			})
			continue
		}

		order.OrderedItems = append(order.OrderedItems, domain.OrderedItem{
			Name:                item.Name,
			Quantity:            line.Quantity,
			UnitPrice:           unitPrice,
			TotalPrice:          unitPrice * float64(line.Quantity),
			Customizations:      customizations,
			SpecialInstructions: line.SpecialInstructions,
		})
		order.TotalCost += unitPrice * float64(line.Quantity)
	}

	if tableReservationID != "" && s.tables != nil {
		if reservation, ok := s.tables.Lookup(tableReservationID); ok {
			order.TableNumber = reservation.TableNumber
		}
	}

	if len(order.OrderedItems) == 0 {
		return order, fmt.Errorf("no requested items could be ordered: %w", domain.ErrResourceUnavailable)
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	if s.publisher != nil {
		_ = s.publisher.PublishEvent(ctx, domain.Event{
			Type:      "order_placed",
			Reference: order.ServiceType,
			Amount:    order.TotalCost,
			Timestamp: time.Now(),
		})
	}

	return order, nil
}

func stockReason(err error) string {
	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		if stockErr.Available == 0 {
			return "out of stock"
		}
		return fmt.Sprintf("only %d available", stockErr.Available)
	}
	return err.Error()
}

var _ ServiceInterface = (*Service)(nil)
