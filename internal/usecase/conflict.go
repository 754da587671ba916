package usecase

import (
	"context"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"

	"go.uber.org/zap"
)

// ConflictDetector is the read-only overlap query shared by admission and
// availability. It never mutates state and never swallows storage errors.
type ConflictDetector struct {
	bookings repository.BookingRepository
	log      *zap.Logger
}

func NewConflictDetector(bookings repository.BookingRepository, log *zap.Logger) *ConflictDetector {
	return &ConflictDetector{
		bookings: bookings,
		log:      log.With(zap.String("component", "conflict_detector")),
	}
}

// FindConflicts returns the pending/confirmed bookings for the resource/date
// whose intervals overlap the candidate slot. A storage failure propagates as
// ErrStorageUnavailable, never as an empty result.
func (d *ConflictDetector) FindConflicts(ctx context.Context, resourceType entity.ResourceType, date time.Time, slot entity.TimeSlot) ([]*entity.Booking, error) {
	active, err := d.ActiveBookings(ctx, resourceType, date)
	if err != nil {
		return nil, err
	}

	var conflicts []*entity.Booking
	for _, booking := range active {
		if slot.Overlaps(booking.Slot()) {
			conflicts = append(conflicts, booking)
		}
	}

	return conflicts, nil
}

// ActiveBookings returns all pending/confirmed bookings for the resource/date.
func (d *ConflictDetector) ActiveBookings(ctx context.Context, resourceType entity.ResourceType, date time.Time) ([]*entity.Booking, error) {
	active, err := d.bookings.FindActiveByDate(ctx, resourceType, date)
	if err != nil {
		d.log.Error("Failed to query active bookings",
			zap.Error(err),
			zap.String("resource_type", string(resourceType)),
			zap.String("date", date.Format("2006-01-02")),
		)
		return nil, storageError("query active bookings", err)
	}

	return active, nil
}
