package domain

import "time"

type RoomAvailability struct {
	RoomType       RoomType `json:"room_type"`
	AvailableCount int      `json:"available_count"`
	RoomNumbers    []int    `json:"room_numbers"`
}

type RoomBooking struct {
	RoomNumber int      `json:"room_number"`
	RoomType   RoomType `json:"room_type"`
	Floor      int      `json:"floor"`
	Nights     int      `json:"nights"`
	TotalCost  float64  `json:"total_cost"`
}

type TableAvailability struct {
	PartySize        int           `json:"party_size"`
	AvailableCount   int           `json:"available_count"`
	TablesByCapacity map[int][]int `json:"tables_by_capacity"`
}

type TableGroup struct {
	Available []Table `json:"available"`
	Reserved  []Table `json:"reserved"`
}

type TablesStatus struct {
	ByCapacity     map[int]TableGroup `json:"tables_by_capacity"`
	TotalAvailable int                `json:"total_available"`
	TotalReserved  int                `json:"total_reserved"`
}

type OrderLine struct {
	Name                string                   `json:"name"`
	Quantity            int                      `json:"quantity"`
	Customizations      []CustomizationSelection `json:"customizations,omitempty"`
	SpecialInstructions string                   `json:"special_instructions,omitempty"`
	ServiceType         string                   `json:"service_type,omitempty"`
}

// CustomizationSelection is a caller-supplied override for one category.
type CustomizationSelection struct {
	Category CustomizationCategory `json:"category"`
	Options  []string              `json:"options"`
}

type OrderedItem struct {
	Name                string   `json:"name"`
	Quantity            int      `json:"quantity"`
	UnitPrice           float64  `json:"unit_price"`
	TotalPrice          float64  `json:"total_price"`
	Customizations      []string `json:"customizations_applied,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

type UnavailableItem struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type FoodOrder struct {
	OrderedItems     []OrderedItem     `json:"ordered_items"`
	UnavailableItems []UnavailableItem `json:"unavailable_items"`
	TotalCost        float64           `json:"total_cost"`
	ServiceType      string            `json:"service_type"`
	TableNumber      int               `json:"table_number,omitempty"`
}

type FoodAvailability struct {
	FoodItem          string   `json:"food_item"`
	Date              string   `json:"date"`
	MealType          MealType `json:"meal_type"`
	Available         bool     `json:"available"`
	QuantityAvailable int      `json:"quantity_available"`
	Reason            string   `json:"reason,omitempty"`
}

type MealOfTheDay struct {
	MealType  MealType `json:"meal_type"`
	Name      string   `json:"name"`
	Available bool     `json:"available"`
	Price     float64  `json:"price"`
}

type DayMealProgram struct {
	Day       string       `json:"day"`
	Date      string       `json:"date"`
	Breakfast MealOfTheDay `json:"breakfast"`
	Lunch     MealOfTheDay `json:"lunch"`
	Dinner    MealOfTheDay `json:"dinner"`
}

type WeeklySchedule struct {
	WeekStart     string           `json:"week_start"`
	WeekEnd       string           `json:"week_end"`
	DailyPrograms []DayMealProgram `json:"daily_programs"`
}

type ReceiptCalculation struct {
	Subtotal         float64  `json:"subtotal"`
	DiscountAmount   float64  `json:"discount_amount"`
	AppliedDiscounts []string `json:"applied_discounts"`
	ServiceCharge    float64  `json:"service_charge"`
	TaxAmount        float64  `json:"tax_amount"`
	TotalAmount      float64  `json:"total_amount"`
}

type DiscountResult struct {
	DiscountAmount float64 `json:"discount_amount"`
	Description    string  `json:"description"`
}

type StayCost struct {
	RoomNumber    int     `json:"room_number"`
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"price_per_night"`
	RoomCost      float64 `json:"room_cost"`
	ServiceCost   float64 `json:"service_cost"`
	TotalCost     float64 `json:"total_cost"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
}

type PaymentSummary struct {
	TotalRoomsRevenue   float64 `json:"total_rooms_revenue"`
	TotalFoodRevenue    float64 `json:"total_food_revenue"`
	TotalServiceRevenue float64 `json:"total_service_revenue"`
	TotalDiscounts      float64 `json:"total_discounts"`
	TotalTaxes          float64 `json:"total_taxes"`
	NetRevenue          float64 `json:"net_revenue"`
	ItemsCount          int     `json:"items_count"`
}

type FutureDate struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	DaysAhead int    `json:"days_ahead"`
}

type DateInfo struct {
	CurrentDate string `json:"current_date"`
	DayOfWeek   string `json:"day_of_week"`
	Tomorrow    string `json:"tomorrow_date"`
	WeekStart   string `json:"week_start"`
	WeekEnd     string `json:"week_end"`
	Unix        int64  `json:"unix_timestamp"`
}

// CombinedResult joins the two halves of a room+food request with the
// invoice assembled from whatever succeeded.
type CombinedResult struct {
	RoomBooking *RoomBooking `json:"room_booking,omitempty"`
	RoomError   string       `json:"room_error,omitempty"`
	FoodOrder   *FoodOrder   `json:"food_order,omitempty"`
	FoodError   string       `json:"food_error,omitempty"`
	Invoice     *Invoice     `json:"invoice,omitempty"`
	CompletedAt time.Time    `json:"completed_at"`
}
