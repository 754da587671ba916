package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBookingService struct {
	submitResp *response.BookingResponse
	submitErr  error
	updateResp *response.BookingResponse
	updateErr  error
	listResp   *response.BookingListResponse
	listErr    error
}

func (s *stubBookingService) Submit(context.Context, *request.CreateBookingRequest) (*response.BookingResponse, error) {
	return s.submitResp, s.submitErr
}

func (s *stubBookingService) ListBookings(context.Context, *request.ListBookingsQuery) (*response.BookingListResponse, error) {
	return s.listResp, s.listErr
}

func (s *stubBookingService) UpdateStatus(context.Context, *request.ConfirmBookingRequest) (*response.BookingResponse, error) {
	return s.updateResp, s.updateErr
}

type stubAvailabilityService struct {
	resp *response.AvailabilityResponse
	err  error
}

func (s *stubAvailabilityService) GetAvailability(context.Context, string, string) (*response.AvailabilityResponse, error) {
	return s.resp, s.err
}

func newTestHandler(booking usecase.BookingService, availability usecase.AvailabilityService) *BookingHandler {
	return NewBookingHandler(booking, availability, zap.NewNop())
}

func TestCreateBookingReturns201(t *testing.T) {
	handler := newTestHandler(&stubBookingService{
		submitResp: &response.BookingResponse{
			ID:     "abc",
			Status: entity.BookingStatusPending,
		},
	}, &stubAvailabilityService{})

	body := `{"name":"Jamie","email":"jamie@example.com","type":"studio","date":"2030-08-12","start_time":"10:00","end_time":"12:00"}`
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateBooking(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp response.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
}

func TestCreateBookingReturns409OnConflict(t *testing.T) {
	handler := newTestHandler(&stubBookingService{
		submitErr: &usecase.SlotTakenError{
			Conflicts: []entity.TimeSlot{{Start: 600, End: 720}},
		},
	}, &stubAvailabilityService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.CreateBooking(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "slot_taken", body["error"])
	assert.Contains(t, body["message"], "10:00-12:00")
}

func TestCreateBookingReturns400WithDetails(t *testing.T) {
	handler := newTestHandler(&stubBookingService{
		submitErr: &usecase.ValidationError{
			Fields: map[string]string{"email": "Invalid email format"},
		},
	}, &stubAvailabilityService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.CreateBooking(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body["error"])
	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Invalid email format", details["email"])
}

func TestCreateBookingReturns400OnBadJSON(t *testing.T) {
	handler := newTestHandler(&stubBookingService{}, &stubAvailabilityService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	handler.CreateBooking(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingReturns503OnStorageFailure(t *testing.T) {
	handler := newTestHandler(&stubBookingService{
		submitErr: fmt.Errorf("admit booking: %w", usecase.ErrStorageUnavailable),
	}, &stubAvailabilityService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.CreateBooking(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestConfirmBookingReturns404ForUnknownID(t *testing.T) {
	handler := newTestHandler(&stubBookingService{
		updateErr: fmt.Errorf("booking abc: %w", usecase.ErrNotFound),
	}, &stubAvailabilityService{})

	req := httptest.NewRequest(http.MethodPost, "/bookings/confirm",
		strings.NewReader(`{"bookingId":"abc","status":"confirmed"}`))
	rec := httptest.NewRecorder()

	handler.ConfirmBooking(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAvailabilityReturnsPartition(t *testing.T) {
	handler := newTestHandler(&stubBookingService{}, &stubAvailabilityService{
		resp: &response.AvailabilityResponse{
			Date:             "2030-08-12",
			Type:             entity.ResourceStudio,
			UnavailableSlots: []string{"10:00"},
			AvailableSlots:   []string{"09:00", "11:00"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/bookings/availability?type=studio&date=2030-08-12", nil)
	rec := httptest.NewRecorder()

	handler.GetAvailability(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2030-08-12", body["date"])
	assert.Equal(t, "studio", body["type"])
	assert.Equal(t, []any{"10:00"}, body["unavailableSlots"])
	assert.Equal(t, []any{"09:00", "11:00"}, body["availableSlots"])
}

func TestListBookingsReturnsPage(t *testing.T) {
	handler := newTestHandler(&stubBookingService{
		listResp: &response.BookingListResponse{
			Bookings:   []response.BookingResponse{{ID: "abc"}},
			Total:      1,
			Page:       1,
			TotalPages: 1,
		},
	}, &stubAvailabilityService{})

	req := httptest.NewRequest(http.MethodGet, "/bookings?limit=20", nil)
	rec := httptest.NewRecorder()

	handler.ListBookings(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["total"])
	require.Len(t, body["bookings"], 1)
}
