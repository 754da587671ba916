package usecase

import (
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Booking      BookingService
	Availability AvailabilityService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) (*Service, error) {
	hours, err := operatingHours(config.Booking)
	if err != nil {
		return nil, err
	}

	detector := NewConflictDetector(repo.Booking, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Booking:      NewBookingService(repo, detector, hours, log),
		Availability: NewAvailabilityService(detector, hours, log),
	}, nil
}

func operatingHours(config utils.BookingConfig) (entity.OperatingHours, error) {
	open, err := entity.ParseTimeOfDay(config.OpenTime)
	if err != nil {
		return entity.OperatingHours{}, fmt.Errorf("parse OPEN_TIME: %w", err)
	}
	close, err := entity.ParseTimeOfDay(config.CloseTime)
	if err != nil {
		return entity.OperatingHours{}, fmt.Errorf("parse CLOSE_TIME: %w", err)
	}
	if close <= open || config.SlotMinutes <= 0 {
		return entity.OperatingHours{}, fmt.Errorf("invalid operating hours %s-%s/%dmin",
			config.OpenTime, config.CloseTime, config.SlotMinutes)
	}

	return entity.OperatingHours{
		Open:        open,
		Close:       close,
		SlotMinutes: config.SlotMinutes,
	}, nil
}
