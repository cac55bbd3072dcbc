package domain

import "time"

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomTriple RoomType = "triple"
)

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// CustomizationCategory is a named axis of product variation (size,
// toppings, ...). HalfToppings is special-cased by the pricing engine:
// exactly two selections make a split item priced at the average of the
// two modifiers.
type CustomizationCategory string

const (
	CategorySize         CustomizationCategory = "size"
	CategoryToppings     CustomizationCategory = "toppings"
	CategoryHalfToppings CustomizationCategory = "half_toppings"
	CategoryExtras       CustomizationCategory = "extras"
	CategorySauce        CustomizationCategory = "sauce"
)

type Room struct {
	Number        int      `json:"number"`
	Type          RoomType `json:"type"`
	Floor         int      `json:"floor"`
	PricePerNight float64  `json:"price_per_night"`
	Available     bool     `json:"available"`
}

// CustomizationOption is one priced alternative within a category.
type CustomizationOption struct {
	Name          string  `json:"name"`
	PriceModifier float64 `json:"price_modifier"`
}

type MenuItem struct {
	Name          string                                                   `json:"name"`
	Category      string                                                   `json:"category"`
	Price         float64                                                  `json:"price"`
	Quantity      int                                                      `json:"quantity"`
	Available     bool                                                     `json:"available"`
	MealTypes     []MealType                                               `json:"meal_types"`
	AvailableDays []string                                                 `json:"available_days"`
	Customizable  bool                                                     `json:"customizable"`
	Options       map[CustomizationCategory]map[string]CustomizationOption `json:"customization_options,omitempty"`
	Defaults      map[CustomizationCategory]string                         `json:"defaults,omitempty"`
}

type Table struct {
	TableNumber int    `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location"`
	Available   bool   `json:"available"`
	// Reservation fields are set iff Available is false.
	ReservedBy          string `json:"reserved_by,omitempty"`
	ReservedDate        string `json:"reserved_date,omitempty"`
	ReservedTime        string `json:"reserved_time,omitempty"`
	ReservationDuration int    `json:"reservation_duration,omitempty"`
}

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusFailed    ReservationStatus = "failed"
	StatusCancelled ReservationStatus = "cancelled"
)

type FoodReservation struct {
	ReservationID       string            `json:"reservation_id"`
	CustomerName        string            `json:"customer_name,omitempty"`
	RoomNumber          int               `json:"room_number,omitempty"`
	FoodItem            string            `json:"food_item"`
	MealType            MealType          `json:"meal_type"`
	ScheduledDate       string            `json:"scheduled_date"`
	ScheduledTime       string            `json:"scheduled_time"`
	Quantity            int               `json:"quantity"`
	UnitPrice           float64           `json:"unit_price"`
	TotalPrice          float64           `json:"total_price"`
	Customizations      []string          `json:"customizations,omitempty"`
	SpecialInstructions string            `json:"special_instructions,omitempty"`
	Status              ReservationStatus `json:"status"`
	CreatedAt           time.Time         `json:"created_at"`
}

type TableReservation struct {
	ReservationID   string            `json:"reservation_id"`
	TableNumber     int               `json:"table_number"`
	Capacity        int               `json:"capacity"`
	Location        string            `json:"location"`
	CustomerName    string            `json:"customer_name"`
	PartySize       int               `json:"party_size"`
	ReservedDate    string            `json:"reserved_date"`
	ReservedTime    string            `json:"reserved_time"`
	DurationHours   int               `json:"duration_hours"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
}

type ReceiptCategory string

const (
	CategoryRoom    ReceiptCategory = "room"
	CategoryFood    ReceiptCategory = "food"
	CategoryService ReceiptCategory = "service"
)

// ReceiptItem is constructed per invoice and never stored on its own.
type ReceiptItem struct {
	ItemName            string          `json:"item_name"`
	Quantity            int             `json:"quantity"`
	UnitPrice           float64         `json:"unit_price"`
	TotalPrice          float64         `json:"total_price"`
	Category            ReceiptCategory `json:"category"`
	Customizations      []string        `json:"customizations,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed_amount"
	DiscountBuyXGetY   DiscountType = "buy_x_get_y"
	DiscountRoomStay   DiscountType = "room_stay"
)

type DiscountConditions struct {
	Category  ReceiptCategory `json:"category,omitempty"`
	MinItems  int             `json:"min_items,omitempty"`
	FreeItems int             `json:"free_items,omitempty"`
	Nights    int             `json:"nights,omitempty"`
}

type DiscountRule struct {
	RuleType    DiscountType        `json:"rule_type"`
	Value       float64             `json:"value"`
	Description string              `json:"description"`
	Conditions  *DiscountConditions `json:"conditions,omitempty"`
}

type Invoice struct {
	InvoiceID     string        `json:"invoice_id"`
	CustomerName  string        `json:"customer_name,omitempty"`
	RoomNumber    int           `json:"room_number,omitempty"`
	CheckInDate   string        `json:"check_in_date,omitempty"`
	CheckOutDate  string        `json:"check_out_date,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Discounts     []string      `json:"discounts"`
	TaxRate       float64       `json:"tax_rate"`
	TaxAmount     float64       `json:"tax_amount"`
	ServiceCharge float64       `json:"service_charge"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentStatus string        `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Event is published to Kafka after state-changing operations.
type Event struct {
	Type      string    `json:"type"`
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
