package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"marigold-suites/internal/billing"
	"marigold-suites/internal/booking"
	"marigold-suites/internal/coordinator"
	"marigold-suites/internal/domain"
	"marigold-suites/internal/ordering"
	"marigold-suites/internal/scheduling"
)

type Handler struct {
	Rooms       booking.RoomServiceInterface
	Tables      booking.TableServiceInterface
	Orders      ordering.ServiceInterface
	Scheduling  scheduling.ServiceInterface
	Billing     billing.ServiceInterface
	Coordinator coordinator.CoordinatorInterface
}

func NewHandler(rooms booking.RoomServiceInterface, tables booking.TableServiceInterface,
	orders ordering.ServiceInterface, schedulingSvc scheduling.ServiceInterface,
	billingSvc billing.ServiceInterface, coord coordinator.CoordinatorInterface) *Handler {
	return &Handler{
		Rooms:       rooms,
		Tables:      tables,
		Orders:      orders,
		Scheduling:  schedulingSvc,
		Billing:     billingSvc,
		Coordinator: coord,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/rooms/availability", h.checkRoomAvailability).Methods("GET")
	r.HandleFunc("/api/rooms/bookings", h.bookRoom).Methods("POST")

	r.HandleFunc("/api/menu", h.getMenuItems).Methods("GET")
	r.HandleFunc("/api/orders", h.orderFood).Methods("POST")

	r.HandleFunc("/api/tables/availability", h.checkTableAvailability).Methods("GET")
	r.HandleFunc("/api/tables/status", h.getAllTablesStatus).Methods("GET")
	r.HandleFunc("/api/tables/reservations", h.reserveTable).Methods("POST")
	r.HandleFunc("/api/tables/reservations", h.listTableReservations).Methods("GET")
	r.HandleFunc("/api/tables/reservations/{id}", h.cancelTableReservation).Methods("DELETE")

	r.HandleFunc("/api/food/availability", h.checkFoodAvailability).Methods("GET")
	r.HandleFunc("/api/food/reservations", h.makeFoodReservation).Methods("POST")
	r.HandleFunc("/api/food/reservations", h.listFoodReservations).Methods("GET")
	r.HandleFunc("/api/food/reservations/{id}", h.cancelFoodReservation).Methods("DELETE")

	r.HandleFunc("/api/meals/program", h.getMealOfTheDay).Methods("GET")
	r.HandleFunc("/api/meals/schedule", h.getWeeklySchedule).Methods("GET")
	r.HandleFunc("/api/dates/info", h.getDateInfo).Methods("GET")
	r.HandleFunc("/api/dates/future", h.getFutureDate).Methods("GET")

	r.HandleFunc("/api/billing/receipt-total", h.calculateReceiptTotal).Methods("POST")
	r.HandleFunc("/api/billing/discounts", h.applyDiscountRules).Methods("POST")
	r.HandleFunc("/api/billing/stay-cost", h.calculateStayCost).Methods("POST")
	r.HandleFunc("/api/billing/payment-summary", h.generatePaymentSummary).Methods("POST")

	r.HandleFunc("/api/invoices", h.generateInvoice).Methods("POST")
	r.HandleFunc("/api/invoices/{id}", h.getInvoice).Methods("GET")
	r.HandleFunc("/api/invoices/{id}/qrcode", h.getInvoiceQRCode).Methods("GET")

	r.HandleFunc("/api/requests/combined", h.combinedRequest).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "venue-core",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) checkRoomAvailability(w http.ResponseWriter, r *http.Request) {
	roomType := domain.RoomType(r.URL.Query().Get("type"))
	availability, err := h.Rooms.CheckRoomAvailability(roomType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func (h *Handler) bookRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomType domain.RoomType `json:"room_type"`
		Nights   int             `json:"nights"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bookingResult, err := h.Rooms.BookRoom(r.Context(), req.RoomType, req.Nights)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingResult)
}

func (h *Handler) getMenuItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Orders.GetMenuItems(r.Context()))
}

func (h *Handler) orderFood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items              []domain.OrderLine `json:"items"`
		TableReservationID string             `json:"table_reservation_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.OrderFood(r.Context(), req.Items, req.TableReservationID)
	if err != nil {
		// The order result still carries the unavailable list.
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"message": err.Error(),
			"order":   order,
		})
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) checkTableAvailability(w http.ResponseWriter, r *http.Request) {
	partySize, _ := strconv.Atoi(r.URL.Query().Get("party_size"))
	availability, err := h.Tables.CheckTableAvailability(partySize, r.URL.Query().Get("date"), r.URL.Query().Get("time"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func (h *Handler) getAllTablesStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tables.GetAllTablesStatus())
}

func (h *Handler) reserveTable(w http.ResponseWriter, r *http.Request) {
	var req booking.TableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reservation, err := h.Tables.ReserveTable(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) listTableReservations(w http.ResponseWriter, r *http.Request) {
	tableNumber, _ := strconv.Atoi(r.URL.Query().Get("table_number"))
	reservations := h.Tables.ListTableReservations(booking.ReservationFilter{
		CustomerName: r.URL.Query().Get("customer_name"),
		Date:         r.URL.Query().Get("date"),
		TableNumber:  tableNumber,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

func (h *Handler) cancelTableReservation(w http.ResponseWriter, r *http.Request) {
	tableNumber, err := h.Tables.CancelTableReservation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reservation_id": mux.Vars(r)["id"],
		"table_number":   tableNumber,
	})
}

func (h *Handler) checkFoodAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.Scheduling.CheckFoodAvailabilityByDate(
		r.URL.Query().Get("item"),
		r.URL.Query().Get("date"),
		domain.MealType(r.URL.Query().Get("meal_type")),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func (h *Handler) makeFoodReservation(w http.ResponseWriter, r *http.Request) {
	var req scheduling.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reservation, err := h.Scheduling.MakeFoodReservation(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) listFoodReservations(w http.ResponseWriter, r *http.Request) {
	roomNumber, _ := strconv.Atoi(r.URL.Query().Get("room_number"))
	reservations := h.Scheduling.ListFoodReservations(scheduling.ReservationFilter{
		CustomerName: r.URL.Query().Get("customer_name"),
		RoomNumber:   roomNumber,
		Date:         r.URL.Query().Get("date"),
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reservations": reservations,
		"count":        len(reservations),
	})
}

func (h *Handler) cancelFoodReservation(w http.ResponseWriter, r *http.Request) {
	if err := h.Scheduling.CancelFoodReservation(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reservation_id": mux.Vars(r)["id"]})
}

func (h *Handler) getMealOfTheDay(w http.ResponseWriter, r *http.Request) {
	program, err := h.Scheduling.GetMealOfTheDay(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, program)
}

func (h *Handler) getWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.Scheduling.GetWeeklySchedule(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (h *Handler) getDateInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scheduling.CurrentDateInfo(time.Now()))
}

func (h *Handler) getFutureDate(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 0 {
		writeError(w, fmt.Errorf("days must be a non-negative integer: %w", domain.ErrValidation))
		return
	}
	writeJSON(w, http.StatusOK, scheduling.FutureDate(time.Now(), days))
}

func (h *Handler) calculateReceiptTotal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items       []domain.ReceiptItem  `json:"items"`
		TaxRate     float64               `json:"tax_rate"`
		ServiceRate float64               `json:"service_rate"`
		Discounts   []domain.DiscountRule `json:"discounts,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TaxRate == 0 {
		req.TaxRate = billing.DefaultTaxRate
	}
	if req.ServiceRate == 0 {
		req.ServiceRate = billing.DefaultServiceRate
	}
	calculation, err := h.Billing.CalculateReceiptTotal(req.Items, req.TaxRate, req.ServiceRate, req.Discounts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calculation)
}

func (h *Handler) applyDiscountRules(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items        []domain.ReceiptItem       `json:"items"`
		DiscountType domain.DiscountType        `json:"discount_type"`
		Value        float64                    `json:"value"`
		Conditions   *domain.DiscountConditions `json:"conditions,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.Billing.ApplyDiscountRules(req.Items, req.DiscountType, req.Value, req.Conditions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) calculateStayCost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomNumber    int                  `json:"room_number"`
		PricePerNight float64              `json:"price_per_night"`
		CheckIn       string               `json:"check_in"`
		CheckOut      string               `json:"check_out"`
		ServiceItems  []domain.ReceiptItem `json:"room_service_items,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cost, err := h.Billing.CalculateStayCost(req.RoomNumber, req.PricePerNight, req.CheckIn, req.CheckOut, req.ServiceItems)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cost)
}

func (h *Handler) generatePaymentSummary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Invoices []domain.Invoice `json:"invoices"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := h.Billing.GeneratePaymentSummary(req.Invoices)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) generateInvoice(w http.ResponseWriter, r *http.Request) {
	var req billing.InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	invoice, err := h.Billing.GenerateInvoice(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Billing.GetInvoice(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

func (h *Handler) getInvoiceQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Billing.InvoiceQRCode(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) combinedRequest(w http.ResponseWriter, r *http.Request) {
	var req coordinator.CombinedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.Coordinator.CombinedRequestWithTimeout(r.Context(), req, 10*time.Second)
	if err != nil {
		writeJSON(w, statusFor(err), map[string]interface{}{
			"message": err.Error(),
			"result":  result,
		})
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"message": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrResourceUnavailable), errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidDateFormat), errors.Is(err, domain.ErrInvalidDiscountValue), errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
