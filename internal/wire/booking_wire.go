package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"
	"studio-booking/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	limiter ratelimit.Limiter,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /bookings - submit a booking request (rate limited per IP)
	r.With(middleware.RateLimit(limiter, log)).Post("/bookings", bookingHandler.CreateBooking)

	// GET /bookings/availability - advisory free/busy partition for the wizard
	r.Get("/bookings/availability", bookingHandler.GetAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /bookings - dashboard listing with filters
		r.Get("/bookings", bookingHandler.ListBookings)

		// POST /bookings/confirm - lifecycle transitions
		r.Post("/bookings/confirm", bookingHandler.ConfirmBooking)
	})
}
