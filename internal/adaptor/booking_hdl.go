package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	booking      usecase.BookingService
	availability usecase.AvailabilityService
	log          *zap.Logger
}

func NewBookingHandler(booking usecase.BookingService, availability usecase.AvailabilityService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		booking:      booking,
		availability: availability,
		log:          log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /bookings (public, rate limited)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	booking, err := h.booking.Submit(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, booking)
}

// ListBookings handles GET /bookings (admin only)
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := &request.ListBookingsQuery{
		Status: query.Get("status"),
		Type:   query.Get("type"),
		Date:   query.Get("date"),
		Limit:  utils.ParseInt(query.Get("limit"), 20),
		Offset: utils.ParseInt(query.Get("offset"), 0),
	}

	bookings, err := h.booking.ListBookings(r.Context(), q)
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, bookings)
}

// GetAvailability handles GET /bookings/availability (public)
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	availability, err := h.availability.GetAvailability(r.Context(), query.Get("type"), query.Get("date"))
	if err != nil {
		h.handleServiceError(w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, availability)
}

// ConfirmBooking handles POST /bookings/confirm (admin only)
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	booking, err := h.booking.UpdateStatus(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, booking)
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr *usecase.ValidationError
	var slotTakenErr *usecase.SlotTakenError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Any("fields", validationErr.Fields))
		utils.ResponseValidation(w, validationErr.Fields)

	case errors.As(err, &slotTakenErr):
		// Expected outcome of concurrent demand, not an anomaly.
		h.log.Info(operation+" refused, slot taken",
			zap.Int("conflicts", len(slotTakenErr.Conflicts)))
		utils.ResponseConflict(w, slotTakenErr.Error())

	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed, not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrStorageUnavailable):
		h.log.Error(operation+" failed, storage unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Service temporarily unavailable, retry later")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
