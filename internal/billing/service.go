package billing

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"marigold-suites/internal/domain"
)

const (
	DefaultTaxRate     = 0.08
	DefaultServiceRate = 0.10
)

type ServiceInterface interface {
	CalculateReceiptTotal(items []domain.ReceiptItem, taxRate, serviceRate float64, discounts []domain.DiscountRule) (domain.ReceiptCalculation, error)
	ApplyDiscountRules(items []domain.ReceiptItem, discountType domain.DiscountType, value float64, conditions *domain.DiscountConditions) (domain.DiscountResult, error)
	GenerateInvoice(ctx context.Context, req InvoiceRequest) (domain.Invoice, error)
	GetInvoice(invoiceID string) (domain.Invoice, error)
	InvoiceQRCode(invoiceID string) ([]byte, error)
	ConvertOrderToReceiptItems(roomBooking *domain.RoomBooking, foodOrder *domain.FoodOrder) []domain.ReceiptItem
	GeneratePaymentSummary(invoices []domain.Invoice) (domain.PaymentSummary, error)
	CalculateStayCost(roomNumber int, pricePerNight float64, checkIn, checkOut string, serviceItems []domain.ReceiptItem) (domain.StayCost, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event domain.Event) error
}

type InvoiceRequest struct {
	Items        []domain.ReceiptItem  `json:"items"`
	CustomerName string                `json:"customer_name,omitempty"`
	RoomNumber   int                   `json:"room_number,omitempty"`
	CheckInDate  string                `json:"check_in_date,omitempty"`
	CheckOutDate string                `json:"check_out_date,omitempty"`
	TaxRate      float64               `json:"tax_rate,omitempty"`
	ServiceRate  float64               `json:"service_rate,omitempty"`
	Discounts    []domain.DiscountRule `json:"discounts,omitempty"`
}

type Service struct {
	qr          QRGenerator
	publisher   EventPublisher
	taxRate     float64
	serviceRate float64

	mu       sync.Mutex
	invoices map[string]domain.Invoice
}

// NewService takes the venue-wide rates; zero falls back to the
// defaults. Invoice requests can still override per invoice.
func NewService(qr QRGenerator, publisher EventPublisher, taxRate, serviceRate float64) *Service {
	if taxRate == 0 {
		taxRate = DefaultTaxRate
	}
	if serviceRate == 0 {
		serviceRate = DefaultServiceRate
	}
	return &Service{
		qr:          qr,
		publisher:   publisher,
		taxRate:     taxRate,
		serviceRate: serviceRate,
		invoices:    make(map[string]domain.Invoice),
	}
}

// CalculateReceiptTotal applies discounts in list order against the
// pre-discount subtotal, then computes service charge and tax on the
// discounted base.
func (s *Service) CalculateReceiptTotal(items []domain.ReceiptItem, taxRate, serviceRate float64, discounts []domain.DiscountRule) (domain.ReceiptCalculation, error) {
	if len(items) == 0 {
		return domain.ReceiptCalculation{}, fmt.Errorf("no items to calculate: %w", domain.ErrValidation)
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.TotalPrice
	}

	discountAmount := 0.0
	var applied []string
	for _, rule := range discounts {
		switch rule.RuleType {
		case domain.DiscountPercentage:
			amount := subtotal * (rule.Value / 100)
			discountAmount += amount
			applied = append(applied, fmt.Sprintf("%s: -%g%% (-$%.2f)", rule.Description, rule.Value, amount))
		case domain.DiscountFixed:
			discountAmount += rule.Value
			applied = append(applied, fmt.Sprintf("%s: -$%.2f", rule.Description, rule.Value))
		case domain.DiscountBuyXGetY:
			conditions := rule.Conditions
			if conditions == nil {
				conditions = &domain.DiscountConditions{}
			}
			minItems := conditions.MinItems
			if minItems == 0 {
				minItems = 2
			}
			freeItems := conditions.FreeItems
			if freeItems == 0 {
				freeItems = 1
			}
			category := conditions.Category
			if category == "" {
				category = domain.CategoryFood
			}

			eligible := itemsOfCategory(items, category)
			if len(eligible) < minItems {
				continue
			}
			sort.Slice(eligible, func(i, j int) bool { return eligible[i].UnitPrice < eligible[j].UnitPrice })
			if freeItems > len(eligible) {
				freeItems = len(eligible)
			}
			for i := 0; i < freeItems; i++ {
				discountAmount += eligible[i].UnitPrice
				applied = append(applied, fmt.Sprintf("%s: Free %s", rule.Description, eligible[i].ItemName))
			}
		}
	}

	base := subtotal - discountAmount
	serviceCharge := base * serviceRate
	taxAmount := base * taxRate

	return domain.ReceiptCalculation{
		Subtotal:         round2(subtotal),
		DiscountAmount:   round2(discountAmount),
		AppliedDiscounts: applied,
		ServiceCharge:    round2(serviceCharge),
		TaxAmount:        round2(taxAmount),
		TotalAmount:      round2(base + serviceCharge + taxAmount),
	}, nil
}

// ApplyDiscountRules evaluates a single rule standalone. The room_stay
// tiers check the longer threshold first, so a 7+ night stay gets the
// weekly 15% rather than the 3-night 10%.
func (s *Service) ApplyDiscountRules(items []domain.ReceiptItem, discountType domain.DiscountType, value float64, conditions *domain.DiscountConditions) (domain.DiscountResult, error) {
	if len(items) == 0 {
		return domain.DiscountResult{}, fmt.Errorf("no items to apply discount: %w", domain.ErrValidation)
	}
	if conditions == nil {
		conditions = &domain.DiscountConditions{}
	}

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.TotalPrice
	}

	switch discountType {
	case domain.DiscountPercentage:
		if value < 0 || value > 100 {
			return domain.DiscountResult{}, fmt.Errorf("percentage %g out of range: %w", value, domain.ErrInvalidDiscountValue)
		}
		amount := subtotal * (value / 100)
		return domain.DiscountResult{
			DiscountAmount: round2(amount),
			Description:    fmt.Sprintf("Applied %g%% discount: -$%.2f", value, amount),
		}, nil

	case domain.DiscountFixed:
		amount := math.Min(value, subtotal)
		return domain.DiscountResult{
			DiscountAmount: round2(amount),
			Description:    fmt.Sprintf("Applied fixed discount: -$%.2f", amount),
		}, nil

	case domain.DiscountRoomStay:
		nights := conditions.Nights
		switch {
		case nights >= 7:
			amount := subtotal * 0.15
			return domain.DiscountResult{
				DiscountAmount: round2(amount),
				Description:    fmt.Sprintf("Weekly stay discount: -$%.2f", amount),
			}, nil
		case nights >= 3:
			amount := subtotal * 0.10
			return domain.DiscountResult{
				DiscountAmount: round2(amount),
				Description:    fmt.Sprintf("Long stay discount (3+ nights): -$%.2f", amount),
			}, nil
		}
		return domain.DiscountResult{}, nil

	case domain.DiscountBuyXGetY:
		category := conditions.Category
		if category == "" {
			category = domain.CategoryFood
		}
		minItems := conditions.MinItems
		if minItems == 0 {
			minItems = 2
		}
		eligible := itemsOfCategory(items, category)
		if len(eligible) < minItems {
			return domain.DiscountResult{}, nil
		}
		cheapest := eligible[0]
		for _, item := range eligible[1:] {
			if item.UnitPrice < cheapest.UnitPrice {
				cheapest = item
			}
		}
		return domain.DiscountResult{
			DiscountAmount: round2(cheapest.UnitPrice),
			Description:    fmt.Sprintf("Buy %d get 1 free: %s (-$%.2f)", minItems, cheapest.ItemName, cheapest.UnitPrice),
		}, nil
	}

	return domain.DiscountResult{}, fmt.Errorf("unknown discount type %q: %w", discountType, domain.ErrValidation)
}

// GenerateInvoice delegates totals to CalculateReceiptTotal. Invoices
// are immutable once generated and kept for summary/QR lookup.
func (s *Service) GenerateInvoice(ctx context.Context, req InvoiceRequest) (domain.Invoice, error) {
	taxRate := req.TaxRate
	if taxRate == 0 {
		taxRate = s.taxRate
	}
	serviceRate := req.ServiceRate
	if serviceRate == 0 {
		serviceRate = s.serviceRate
	}

	calculation, err := s.CalculateReceiptTotal(req.Items, taxRate, serviceRate, req.Discounts)
	if err != nil {
		return domain.Invoice{}, err
	}

	now := time.Now()
	invoice := domain.Invoice{
		InvoiceID:     fmt.Sprintf("INV-%s-%s", now.Format("20060102"), uuid.NewString()[:8]),
		CustomerName:  req.CustomerName,
		RoomNumber:    req.RoomNumber,
		CheckInDate:   req.CheckInDate,
		CheckOutDate:  req.CheckOutDate,
		Items:         req.Items,
		Subtotal:      calculation.Subtotal,
		Discounts:     calculation.AppliedDiscounts,
		TaxRate:       taxRate,
		TaxAmount:     calculation.TaxAmount,
		ServiceCharge: calculation.ServiceCharge,
		TotalAmount:   calculation.TotalAmount,
		PaymentStatus: "pending",
		CreatedAt:     now,
	}

	s.mu.Lock()
	s.invoices[invoice.InvoiceID] = invoice
	s.mu.Unlock()

	if s.publisher != nil {
		_ = s.publisher.PublishEvent(ctx, domain.Event{
			Type:      "invoice_generated",
			Reference: invoice.InvoiceID,
			Amount:    invoice.TotalAmount,
			Timestamp: now,
		})
	}

	return invoice, nil
}

func (s *Service) GetInvoice(invoiceID string) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invoice, ok := s.invoices[invoiceID]
	if !ok {
		return domain.Invoice{}, fmt.Errorf("invoice %s: %w", invoiceID, domain.ErrNotFound)
	}
	return invoice, nil
}

func (s *Service) InvoiceQRCode(invoiceID string) ([]byte, error) {
	invoice, err := s.GetInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	if s.qr == nil {
		return nil, fmt.Errorf("qr generation disabled: %w", domain.ErrNotFound)
	}
	return s.qr.Generate(invoice)
}

// ConvertOrderToReceiptItems folds a room booking into a single room
// line (unit price = cost per night) and each ordered dish into a food
// line. Failed halves are simply skipped.
func (s *Service) ConvertOrderToReceiptItems(roomBooking *domain.RoomBooking, foodOrder *domain.FoodOrder) []domain.ReceiptItem {
	var items []domain.ReceiptItem

	if roomBooking != nil && roomBooking.Nights > 0 {
		items = append(items, domain.ReceiptItem{
			ItemName:   fmt.Sprintf("Room %d - %s", roomBooking.RoomNumber, roomBooking.RoomType),
			Quantity:   roomBooking.Nights,
			UnitPrice:  roomBooking.TotalCost / float64(roomBooking.Nights),
			TotalPrice: roomBooking.TotalCost,
			Category:   domain.CategoryRoom,
			Customizations: []string{
				fmt.Sprintf("Floor %d", roomBooking.Floor),
				fmt.Sprintf("%d nights", roomBooking.Nights),
			},
		})
	}

	if foodOrder != nil {
		for _, ordered := range foodOrder.OrderedItems {
			items = append(items, domain.ReceiptItem{
				ItemName:            ordered.Name,
				Quantity:            ordered.Quantity,
				UnitPrice:           ordered.UnitPrice,
				TotalPrice:          ordered.TotalPrice,
				Category:            domain.CategoryFood,
				Customizations:      ordered.Customizations,
				SpecialInstructions: ordered.SpecialInstructions,
			})
		}
	}

	return items
}

// GeneratePaymentSummary aggregates already-generated invoices; it
// never mutates them.
func (s *Service) GeneratePaymentSummary(invoices []domain.Invoice) (domain.PaymentSummary, error) {
	if len(invoices) == 0 {
		return domain.PaymentSummary{}, fmt.Errorf("no invoices to summarize: %w", domain.ErrValidation)
	}

	var summary domain.PaymentSummary
	for _, invoice := range invoices {
		for _, item := range invoice.Items {
			summary.ItemsCount += item.Quantity
			switch item.Category {
			case domain.CategoryRoom:
				summary.TotalRoomsRevenue += item.TotalPrice
			case domain.CategoryFood:
				summary.TotalFoodRevenue += item.TotalPrice
			default:
				summary.TotalServiceRevenue += item.TotalPrice
			}
		}
		summary.TotalTaxes += invoice.TaxAmount
		summary.TotalDiscounts += invoice.Subtotal - (invoice.TotalAmount - invoice.TaxAmount - invoice.ServiceCharge)
	}

	gross := summary.TotalRoomsRevenue + summary.TotalFoodRevenue + summary.TotalServiceRevenue
	summary.NetRevenue = round2(gross - summary.TotalDiscounts + summary.TotalTaxes)
	summary.TotalRoomsRevenue = round2(summary.TotalRoomsRevenue)
	summary.TotalFoodRevenue = round2(summary.TotalFoodRevenue)
	summary.TotalServiceRevenue = round2(summary.TotalServiceRevenue)
	summary.TotalDiscounts = round2(summary.TotalDiscounts)
	summary.TotalTaxes = round2(summary.TotalTaxes)
	return summary, nil
}

func (s *Service) CalculateStayCost(roomNumber int, pricePerNight float64, checkIn, checkOut string, serviceItems []domain.ReceiptItem) (domain.StayCost, error) {
	checkInDate, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return domain.StayCost{}, fmt.Errorf("%q: %w", checkIn, domain.ErrInvalidDateFormat)
	}
	checkOutDate, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return domain.StayCost{}, fmt.Errorf("%q: %w", checkOut, domain.ErrInvalidDateFormat)
	}
	if !checkOutDate.After(checkInDate) {
		return domain.StayCost{}, fmt.Errorf("check-out must be after check-in: %w", domain.ErrValidation)
	}

	nights := int(checkOutDate.Sub(checkInDate).Hours() / 24)
	roomCost := float64(nights) * pricePerNight
	serviceCost := 0.0
	for _, item := range serviceItems {
		serviceCost += item.TotalPrice
	}

	return domain.StayCost{
		RoomNumber:    roomNumber,
		Nights:        nights,
		PricePerNight: pricePerNight,
		RoomCost:      round2(roomCost),
		ServiceCost:   round2(serviceCost),
		TotalCost:     round2(roomCost + serviceCost),
		CheckIn:       checkIn,
		CheckOut:      checkOut,
	}, nil
}

func itemsOfCategory(items []domain.ReceiptItem, category domain.ReceiptCategory) []domain.ReceiptItem {
	var out []domain.ReceiptItem
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var _ ServiceInterface = (*Service)(nil)
