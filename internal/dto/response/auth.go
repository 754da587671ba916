package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type AuthResponse struct {
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	Role      entity.UserRole `json:"role"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}
