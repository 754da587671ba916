package request

type CreateBookingRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Type      string  `json:"type" validate:"required,oneof=studio coworking"`
	Date      string  `json:"date" validate:"required"`
	StartTime string  `json:"start_time" validate:"required"`
	EndTime   string  `json:"end_time" validate:"required"`
	Message   *string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

type ConfirmBookingRequest struct {
	BookingID string `json:"bookingId" validate:"required,uuid4"`
	Status    string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

// ListBookingsQuery holds parsed admin listing filters. Empty strings mean
// "not filtered".
type ListBookingsQuery struct {
	Status string
	Type   string
	Date   string
	Limit  int
	Offset int
}
