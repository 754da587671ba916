package wire

import (
	"net/http"
	"time"

	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/middleware"
	"studio-booking/pkg/ratelimit"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router and services.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	service, err := usecase.NewService(repo, config, logger)
	if err != nil {
		return nil, err
	}
	handler := adaptor.NewHandler(service, logger)

	limiter := ratelimit.NewWindowLimiter(
		time.Duration(config.RateLimit.WindowSeconds)*time.Second,
		config.RateLimit.MaxRequests,
	)

	router := setupRouter(handler, repo, limiter, logger)

	return &App{Router: router, Service: service}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	limiter ratelimit.Limiter,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireBooking(r, handler.Booking, repo, limiter, logger)
	wireAuth(r, handler.Auth, repo, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
