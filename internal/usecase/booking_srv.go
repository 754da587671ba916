package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Submit admits a public booking request: validates shape, runs the
	// conflict check and persists as pending in one atomic unit.
	Submit(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// ListBookings serves the admin dashboard with filters and pagination.
	ListBookings(ctx context.Context, q *request.ListBookingsQuery) (*response.BookingListResponse, error)

	// UpdateStatus drives the pending -> confirmed/cancelled lifecycle.
	// Cancelled is terminal.
	UpdateStatus(ctx context.Context, req *request.ConfirmBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo     *repository.Repository
	detector *ConflictDetector
	hours    entity.OperatingHours
	now      func() time.Time
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, detector *ConflictDetector, hours entity.OperatingHours, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		detector: detector,
		hours:    hours,
		now:      time.Now,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Submit(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// All validation happens before any storage round trip.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Booking validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	resourceType := entity.ResourceType(req.Type)

	date, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, fieldError("date", "Must be an ISO-8601 date")
	}

	slot, verr := parseSlot(req.StartTime, req.EndTime)
	if verr != nil {
		return nil, verr
	}

	today := civilDate(s.now())
	if date.Before(today) {
		return nil, fieldError("date", "Date must not be in the past")
	}

	if !s.hours.ValidSlot(slot) {
		return nil, fieldError("start_time", fmt.Sprintf(
			"Slot must end after it starts and lie on %d-minute marks between %s and %s",
			s.hours.SlotMinutes, s.hours.Open, s.hours.Close))
	}

	conflicts, err := s.detector.FindConflicts(ctx, resourceType, date, slot)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, slotTaken(conflicts)
	}

	now := s.now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ResourceType: resourceType,
		Date:         date,
		StartTime:    slot.Start,
		EndTime:      slot.End,
		Status:       entity.BookingStatusPending,
		Name:         utils.SanitizeText(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        sanitizeOptional(req.Phone),
		Message:      sanitizeOptional(req.Message),
	}

	// The repository re-checks and inserts under a per-(resource, date) lock:
	// a concurrent submit that won the race surfaces here as a conflict.
	raced, err := s.repo.Booking.CreateIfFree(ctx, booking)
	if err != nil {
		s.log.Error("Failed to admit booking",
			zap.Error(err),
			zap.String("resource_type", req.Type),
			zap.String("date", req.Date),
		)
		return nil, storageError("admit booking", err)
	}
	if len(raced) > 0 {
		return nil, slotTaken(raced)
	}

	s.log.Info("Booking admitted",
		zap.String("booking_id", booking.ID.String()),
		zap.String("resource_type", string(resourceType)),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("start", slot.Start.String()),
		zap.String("end", slot.End.String()),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, q *request.ListBookingsQuery) (*response.BookingListResponse, error) {
	filter, verr := buildFilter(q)
	if verr != nil {
		return nil, verr
	}

	limit := q.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	bookings, err := s.repo.Booking.FindFiltered(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, storageError("list bookings", err)
	}

	total, err := s.repo.Booking.CountFiltered(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, storageError("count bookings", err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = response.BookingToResponse(booking)
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	page := offset/limit + 1

	return &response.BookingListResponse{
		Bookings:   items,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		HasNext:    int64(offset+limit) < total,
		HasPrev:    offset > 0,
	}, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, req *request.ConfirmBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Status update validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	id, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fieldError("bookingId", "Must be a valid UUID")
	}
	target := entity.BookingStatus(req.Status)

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("find booking", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrNotFound)
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, fieldError("status", fmt.Sprintf(
			"Cannot transition from %s to %s", booking.Status, target))
	}

	// Compare-and-swap on the current status so two concurrent transitions
	// cannot both apply.
	updated, err := s.repo.Booking.UpdateStatus(ctx, id, booking.Status, target)
	if err != nil {
		return nil, storageError("update booking status", err)
	}
	if !updated {
		return nil, fieldError("status", "Booking status changed concurrently, retry")
	}

	booking.Status = target
	booking.UpdatedAt = s.now()

	s.log.Info("Booking status updated",
		zap.String("booking_id", req.BookingID),
		zap.String("status", req.Status),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// ==================== HELPERS ====================

func slotTaken(conflicts []*entity.Booking) *SlotTakenError {
	slots := make([]entity.TimeSlot, len(conflicts))
	for i, booking := range conflicts {
		slots[i] = booking.Slot()
	}
	return &SlotTakenError{Conflicts: slots}
}

// parseBookingDate accepts a plain date or a full ISO-8601 datetime and
// normalizes to a civil date.
func parseBookingDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return civilDate(t), nil
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseSlot(startValue, endValue string) (entity.TimeSlot, *ValidationError) {
	start, err := entity.ParseTimeOfDay(startValue)
	if err != nil {
		return entity.TimeSlot{}, fieldError("start_time", "Must be HH:MM")
	}
	end, err := entity.ParseTimeOfDay(endValue)
	if err != nil {
		return entity.TimeSlot{}, fieldError("end_time", "Must be HH:MM")
	}
	if end <= start {
		return entity.TimeSlot{}, fieldError("end_time", "Must be after start_time")
	}
	return entity.TimeSlot{Start: start, End: end}, nil
}

func sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := utils.SanitizeText(*value)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func buildFilter(q *request.ListBookingsQuery) (repository.BookingFilter, *ValidationError) {
	var filter repository.BookingFilter

	if q.Status != "" {
		status := entity.BookingStatus(q.Status)
		if !status.Valid() {
			return filter, fieldError("status", "Must be one of: pending, confirmed, cancelled")
		}
		filter.Status = &status
	}
	if q.Type != "" {
		resourceType := entity.ResourceType(q.Type)
		if !resourceType.Valid() {
			return filter, fieldError("type", "Must be one of: studio, coworking")
		}
		filter.ResourceType = &resourceType
	}
	if q.Date != "" {
		date, err := parseBookingDate(q.Date)
		if err != nil {
			return filter, fieldError("date", "Must be an ISO-8601 date")
		}
		filter.Date = &date
	}

	return filter, nil
}
