package scheduling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"marigold-suites/internal/domain"
	"marigold-suites/internal/inventory"
)

type ServiceInterface interface {
	CheckFoodAvailabilityByDate(item, date string, mealType domain.MealType) (domain.FoodAvailability, error)
	MakeFoodReservation(ctx context.Context, req ReservationRequest) (domain.FoodReservation, error)
	CancelFoodReservation(ctx context.Context, reservationID string) error
	ListFoodReservations(filter ReservationFilter) []domain.FoodReservation
	GetMealOfTheDay(date string) (domain.DayMealProgram, error)
	GetWeeklySchedule(startDate string) (domain.WeeklySchedule, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event domain.Event) error
}

// MenuCache is invalidated after stock mutations so menu reads never
// serve stale quantities; nil disables it.
type MenuCache interface {
	Invalidate(ctx context.Context) error
}

type ReservationRequest struct {
	FoodItem            string          `json:"food_item"`
	Date                string          `json:"date"`
	MealType            domain.MealType `json:"meal_type"`
	Quantity            int             `json:"quantity"`
	CustomerName        string          `json:"customer_name,omitempty"`
	RoomNumber          int             `json:"room_number,omitempty"`
	Customizations      []string        `json:"customizations,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

type ReservationFilter struct {
	CustomerName string
	RoomNumber   int
	Date         string
}

// mealTimes are the fixed serving times per meal type.
var mealTimes = map[domain.MealType]string{
	domain.MealBreakfast: "08:00",
	domain.MealLunch:     "12:00",
	domain.MealDinner:    "19:00",
}

type Service struct {
	store     *inventory.Store
	program   map[string]map[domain.MealType]string
	cache     MenuCache
	publisher EventPublisher

	mu           sync.Mutex
	reservations map[string]domain.FoodReservation
}

func NewService(store *inventory.Store, program map[string]map[domain.MealType]string, cache MenuCache, publisher EventPublisher) *Service {
	return &Service{
		store:        store,
		program:      program,
		cache:        cache,
		publisher:    publisher,
		reservations: make(map[string]domain.FoodReservation),
	}
}

// CheckFoodAvailabilityByDate runs the reservation preconditions in
// order (item exists, weekday, meal type, stock) and reports the first
// one that fails.
func (s *Service) CheckFoodAvailabilityByDate(itemName, date string, mealType domain.MealType) (domain.FoodAvailability, error) {
	day, err := weekday(date)
	if err != nil {
		return domain.FoodAvailability{}, err
	}

	result := domain.FoodAvailability{FoodItem: itemName, Date: date, MealType: mealType}

	item, err := s.store.FindMenuItem(itemName)
	if err != nil {
		return result, err
	}
	result.FoodItem = item.Name

	if !contains(item.AvailableDays, day) {
		result.Reason = fmt.Sprintf("%s is not available on %s", item.Name, day)
		return result, nil
	}
	if !containsMeal(item.MealTypes, mealType) {
		result.Reason = fmt.Sprintf("%s is not available for %s", item.Name, mealType)
		return result, nil
	}

	result.QuantityAvailable = item.Quantity
	result.Available = item.Quantity > 0
	if !result.Available {
		result.Reason = fmt.Sprintf("%s is out of stock", item.Name)
	}
	return result, nil
}

// MakeFoodReservation decrements stock exactly like ordering does and
// appends the confirmed record to the registry.
func (s *Service) MakeFoodReservation(ctx context.Context, req ReservationRequest) (domain.FoodReservation, error) {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	availability, err := s.CheckFoodAvailabilityByDate(req.FoodItem, req.Date, req.MealType)
	if err != nil {
		return domain.FoodReservation{Status: domain.StatusFailed}, err
	}
	if availability.Reason != "" && !availability.Available {
		return domain.FoodReservation{Status: domain.StatusFailed},
			fmt.Errorf("%s: %w", availability.Reason, domain.ErrResourceUnavailable)
	}

	item, err := s.store.DecrementStock(availability.FoodItem, req.Quantity)
	if err != nil {
		return domain.FoodReservation{Status: domain.StatusFailed}, err
	}

	now := time.Now()
	reservation := domain.FoodReservation{
		ReservationID:       fmt.Sprintf("RES-%s-%s", now.Format("20060102150405"), uuid.NewString()[:8]),
		CustomerName:        req.CustomerName,
		RoomNumber:          req.RoomNumber,
		FoodItem:            item.Name,
		MealType:            req.MealType,
		ScheduledDate:       req.Date,
		ScheduledTime:       mealTimes[req.MealType],
		Quantity:            req.Quantity,
		UnitPrice:           item.Price,
		TotalPrice:          item.Price * float64(req.Quantity),
		Customizations:      req.Customizations,
		SpecialInstructions: req.SpecialInstructions,
		Status:              domain.StatusConfirmed,
		CreatedAt:           now,
	}

	s.mu.Lock()
	s.reservations[reservation.ReservationID] = reservation
	s.mu.Unlock()

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	if s.publisher != nil {
		_ = s.publisher.PublishEvent(ctx, domain.Event{
			Type:      "food_reservation_made",
			Reference: reservation.ReservationID,
			Amount:    reservation.TotalPrice,
			Timestamp: now,
		})
	}

	return reservation, nil
}

// CancelFoodReservation restores the full reserved quantity and removes
// the record. The item is forced available even if other reservations
// still hold stock; there is no per-batch ledger.
func (s *Service) CancelFoodReservation(ctx context.Context, reservationID string) error {
	s.mu.Lock()
	reservation, ok := s.reservations[reservationID]
	if ok {
		delete(s.reservations, reservationID)
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("food reservation %s: %w", reservationID, domain.ErrNotFound)
	}

	if _, err := s.store.RestoreStock(reservation.FoodItem, reservation.Quantity); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
	if s.publisher != nil {
		_ = s.publisher.PublishEvent(ctx, domain.Event{
			Type:      "food_reservation_cancelled",
			Reference: reservationID,
			Timestamp: time.Now(),
		})
	}

	return nil
}

func (s *Service) ListFoodReservations(filter ReservationFilter) []domain.FoodReservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.FoodReservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		if filter.CustomerName != "" && !strings.EqualFold(r.CustomerName, filter.CustomerName) {
			continue
		}
		if filter.RoomNumber > 0 && r.RoomNumber != filter.RoomNumber {
			continue
		}
		if filter.Date != "" && r.ScheduledDate != filter.Date {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GetMealOfTheDay resolves the day's program against the live menu for
// price and availability.
func (s *Service) GetMealOfTheDay(date string) (domain.DayMealProgram, error) {
	day, err := weekday(date)
	if err != nil {
		return domain.DayMealProgram{}, err
	}
	dayProgram, ok := s.program[day]
	if !ok {
		return domain.DayMealProgram{}, fmt.Errorf("meal program for %s: %w", day, domain.ErrNotFound)
	}

	program := domain.DayMealProgram{Day: day, Date: date}
	program.Breakfast = s.resolveMeal(domain.MealBreakfast, dayProgram)
	program.Lunch = s.resolveMeal(domain.MealLunch, dayProgram)
	program.Dinner = s.resolveMeal(domain.MealDinner, dayProgram)
	return program, nil
}

func (s *Service) GetWeeklySchedule(startDate string) (domain.WeeklySchedule, error) {
	base := time.Now()
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return domain.WeeklySchedule{}, fmt.Errorf("%q: %w", startDate, domain.ErrInvalidDateFormat)
		}
		base = parsed
	}

	weekStart := startOfWeek(base)
	schedule := domain.WeeklySchedule{
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekStart.AddDate(0, 0, 6).Format("2006-01-02"),
	}
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i).Format("2006-01-02")
		program, err := s.GetMealOfTheDay(date)
		if err != nil {
			return domain.WeeklySchedule{}, err
		}
		schedule.DailyPrograms = append(schedule.DailyPrograms, program)
	}
	return schedule, nil
}

func (s *Service) resolveMeal(mealType domain.MealType, dayProgram map[domain.MealType]string) domain.MealOfTheDay {
	meal := domain.MealOfTheDay{MealType: mealType, Name: dayProgram[mealType]}
	if item, err := s.store.FindMenuItem(meal.Name); err == nil {
		meal.Price = item.Price
		meal.Available = item.Available
	}
	return meal
}

func weekday(date string) (string, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("%q: %w", date, domain.ErrInvalidDateFormat)
	}
	return strings.ToLower(parsed.Weekday().String()), nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsMeal(values []domain.MealType, v domain.MealType) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

var _ ServiceInterface = (*Service)(nil)
