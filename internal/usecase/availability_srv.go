package usecase

import (
	"context"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/dto/response"

	"go.uber.org/zap"
)

type AvailabilityService interface {
	// GetAvailability partitions the day's slot grid into busy and free.
	// Advisory only: a slot reported free may still be refused at submission
	// if another client wins the race.
	GetAvailability(ctx context.Context, resourceType, date string) (*response.AvailabilityResponse, error)
}

type availabilityService struct {
	detector *ConflictDetector
	hours    entity.OperatingHours
	log      *zap.Logger
}

func NewAvailabilityService(detector *ConflictDetector, hours entity.OperatingHours, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		detector: detector,
		hours:    hours,
		log:      log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetAvailability(ctx context.Context, resourceType, date string) (*response.AvailabilityResponse, error) {
	rt := entity.ResourceType(resourceType)
	if !rt.Valid() {
		return nil, fieldError("type", "Must be one of: studio, coworking")
	}

	day, err := parseBookingDate(date)
	if err != nil {
		return nil, fieldError("date", "Must be an ISO-8601 date")
	}

	active, err := s.detector.ActiveBookings(ctx, rt, day)
	if err != nil {
		return nil, err
	}

	unavailable := []string{}
	available := []string{}
	for _, slot := range s.hours.Slots() {
		busy := false
		for _, booking := range active {
			if slot.Overlaps(booking.Slot()) {
				busy = true
				break
			}
		}
		if busy {
			unavailable = append(unavailable, slot.Start.String())
		} else {
			available = append(available, slot.Start.String())
		}
	}

	return &response.AvailabilityResponse{
		Date:             day.Format("2006-01-02"),
		Type:             rt,
		UnavailableSlots: unavailable,
		AvailableSlots:   available,
	}, nil
}
