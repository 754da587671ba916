package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	Type      entity.ResourceType  `json:"type"`
	Date      string               `json:"date"`
	StartTime string               `json:"start_time"`
	EndTime   string               `json:"end_time"`
	Status    entity.BookingStatus `json:"status"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     *string              `json:"phone,omitempty"`
	Message   *string              `json:"message,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID.String(),
		Type:      b.ResourceType,
		Date:      b.Date.Format("2006-01-02"),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Status:    b.Status,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Message:   b.Message,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	HasNext    bool              `json:"hasNext"`
	HasPrev    bool              `json:"hasPrev"`
}

type AvailabilityResponse struct {
	Date             string              `json:"date"`
	Type             entity.ResourceType `json:"type"`
	UnavailableSlots []string            `json:"unavailableSlots"`
	AvailableSlots   []string            `json:"availableSlots"`
}
