package usecase

import (
	"context"
	"testing"

	"studio-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAvailabilityService(t *testing.T, mem *memBookingRepo) (AvailabilityService, BookingService) {
	t.Helper()
	log := zap.NewNop()
	detector := NewConflictDetector(mem, log)
	hours := testHours(t)
	booking := newTestBookingService(t, mem)
	return NewAvailabilityService(detector, hours, log), booking
}

func TestGetAvailabilityPartitionsGrid(t *testing.T) {
	availability, booking := newTestAvailabilityService(t, newMemBookingRepo())
	ctx := context.Background()

	_, err := booking.Submit(ctx, studioRequest("2030-08-12", "10:00", "12:00"))
	require.NoError(t, err)

	resp, err := availability.GetAvailability(ctx, "studio", "2030-08-12")
	require.NoError(t, err)

	assert.Equal(t, "2030-08-12", resp.Date)
	assert.Equal(t, []string{"10:00", "11:00"}, resp.UnavailableSlots)
	assert.Contains(t, resp.AvailableSlots, "09:00")
	assert.Contains(t, resp.AvailableSlots, "12:00")
	assert.NotContains(t, resp.AvailableSlots, "10:00")

	// 09:00-21:00 hourly grid has 12 slots in total.
	assert.Len(t, resp.AvailableSlots, 10)
}

func TestGetAvailabilityIgnoresOtherResource(t *testing.T) {
	availability, booking := newTestAvailabilityService(t, newMemBookingRepo())
	ctx := context.Background()

	_, err := booking.Submit(ctx, studioRequest("2030-08-12", "10:00", "12:00"))
	require.NoError(t, err)

	resp, err := availability.GetAvailability(ctx, "coworking", "2030-08-12")
	require.NoError(t, err)
	assert.Empty(t, resp.UnavailableSlots)
	assert.Len(t, resp.AvailableSlots, 12)
}

func TestGetAvailabilityIsIdempotent(t *testing.T) {
	availability, booking := newTestAvailabilityService(t, newMemBookingRepo())
	ctx := context.Background()

	_, err := booking.Submit(ctx, studioRequest("2030-08-12", "13:00", "14:00"))
	require.NoError(t, err)

	first, err := availability.GetAvailability(ctx, "studio", "2030-08-12")
	require.NoError(t, err)
	second, err := availability.GetAvailability(ctx, "studio", "2030-08-12")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetAvailabilityReflectsCancellation(t *testing.T) {
	availability, booking := newTestAvailabilityService(t, newMemBookingRepo())
	ctx := context.Background()

	created, err := booking.Submit(ctx, studioRequest("2030-08-12", "10:00", "11:00"))
	require.NoError(t, err)

	resp, err := availability.GetAvailability(ctx, "studio", "2030-08-12")
	require.NoError(t, err)
	assert.Contains(t, resp.UnavailableSlots, "10:00")

	_, err = booking.UpdateStatus(ctx, &request.ConfirmBookingRequest{
		BookingID: created.ID, Status: "cancelled",
	})
	require.NoError(t, err)

	resp, err = availability.GetAvailability(ctx, "studio", "2030-08-12")
	require.NoError(t, err)
	assert.Contains(t, resp.AvailableSlots, "10:00")
	assert.Empty(t, resp.UnavailableSlots)
}

func TestGetAvailabilityRejectsBadInput(t *testing.T) {
	availability, _ := newTestAvailabilityService(t, newMemBookingRepo())
	ctx := context.Background()

	var verr *ValidationError

	_, err := availability.GetAvailability(ctx, "garage", "2030-08-12")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")

	_, err = availability.GetAvailability(ctx, "studio", "not-a-date")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "date")
}

func TestGetAvailabilityStorageFailure(t *testing.T) {
	mem := newMemBookingRepo()
	mem.failAll = true
	availability, _ := newTestAvailabilityService(t, mem)

	_, err := availability.GetAvailability(context.Background(), "studio", "2030-08-12")
	require.ErrorIs(t, err, ErrStorageUnavailable)
}
