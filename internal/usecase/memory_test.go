package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"

	"github.com/google/uuid"
)

// memBookingRepo is an in-memory BookingRepository honoring the same
// atomic-insert contract as the Postgres implementation: the overlap check
// and the insert happen under one lock.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
	queries  int

	failAll bool
}

var errStorageDown = errors.New("storage down")

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *memBookingRepo) CreateIfFree(_ context.Context, booking *entity.Booking) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++

	if r.failAll {
		return nil, errStorageDown
	}

	var conflicts []*entity.Booking
	for _, existing := range r.bookings {
		if existing.ResourceType == booking.ResourceType &&
			existing.Date.Equal(booking.Date) &&
			existing.Status.Active() &&
			existing.Slot().Overlaps(booking.Slot()) {
			conflicts = append(conflicts, copyBooking(existing))
		}
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	r.bookings[booking.ID] = copyBooking(booking)
	return nil, nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++

	if r.failAll {
		return nil, errStorageDown
	}

	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(booking), nil
}

func (r *memBookingRepo) FindActiveByDate(_ context.Context, resourceType entity.ResourceType, date time.Time) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++

	if r.failAll {
		return nil, errStorageDown
	}

	var result []*entity.Booking
	for _, booking := range r.bookings {
		if booking.ResourceType == resourceType && booking.Date.Equal(date) && booking.Status.Active() {
			result = append(result, copyBooking(booking))
		}
	}
	return result, nil
}

func (r *memBookingRepo) FindFiltered(_ context.Context, filter repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries++

	if r.failAll {
		return nil, errStorageDown
	}

	matched := r.filtered(filter)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *memBookingRepo) CountFiltered(_ context.Context, filter repository.BookingFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failAll {
		return 0, errStorageDown
	}

	return int64(len(r.filtered(filter))), nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failAll {
		return false, errStorageDown
	}

	booking, ok := r.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	booking.UpdatedAt = time.Now()
	return true, nil
}

func (r *memBookingRepo) filtered(filter repository.BookingFilter) []*entity.Booking {
	var result []*entity.Booking
	for _, booking := range r.bookings {
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		if filter.ResourceType != nil && booking.ResourceType != *filter.ResourceType {
			continue
		}
		if filter.Date != nil && !booking.Date.Equal(*filter.Date) {
			continue
		}
		result = append(result, copyBooking(booking))
	}
	return result
}

func copyBooking(b *entity.Booking) *entity.Booking {
	clone := *b
	return &clone
}
