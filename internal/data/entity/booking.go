package entity

import (
	"time"
)

type ResourceType string

const (
	ResourceStudio    ResourceType = "studio"
	ResourceCoworking ResourceType = "coworking"
)

func (rt ResourceType) Valid() bool {
	return rt == ResourceStudio || rt == ResourceCoworking
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusCancelled
}

// CanTransitionTo encodes the status lifecycle: pending may be confirmed or
// cancelled, confirmed may be cancelled, cancelled is terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCancelled
	default:
		return false
	}
}

// Active reports whether the booking still occupies its slot.
func (s BookingStatus) Active() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

type Booking struct {
	Base
	ResourceType ResourceType  `db:"resource_type"`
	Date         time.Time     `db:"booking_date"`
	StartTime    TimeOfDay     `db:"start_min"`
	EndTime      TimeOfDay     `db:"end_min"`
	Status       BookingStatus `db:"status"`
	Name         string        `db:"name"`
	Email        string        `db:"email"`
	Phone        *string       `db:"phone"`
	Message      *string       `db:"message"`
}

func (b *Booking) Slot() TimeSlot {
	return TimeSlot{Start: b.StartTime, End: b.EndTime}
}
