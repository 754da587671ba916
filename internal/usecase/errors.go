package usecase

import (
	"errors"
	"fmt"
	"strings"

	"studio-booking/internal/data/entity"
)

// Sentinel errors; handlers map them to HTTP statuses with errors.Is/As.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStorageUnavailable wraps persistence failures. A failed conflict
	// check aborts admission, it is never treated as "no conflict".
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError carries field-level messages for client self-correction.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var msgs []string
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// SlotTakenError is the expected negative outcome of concurrent demand, not
// an anomaly. Carries the conflicting time ranges so the client can offer
// alternatives.
type SlotTakenError struct {
	Conflicts []entity.TimeSlot
}

func (e *SlotTakenError) Error() string {
	ranges := make([]string, len(e.Conflicts))
	for i, slot := range e.Conflicts {
		ranges[i] = fmt.Sprintf("%s-%s", slot.Start, slot.End)
	}
	return "slot taken: overlaps existing booking " + strings.Join(ranges, ", ")
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
