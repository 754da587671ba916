package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	auth, err := h.service.Login(r.Context(), &req)
	if err != nil {
		var validationErr *usecase.ValidationError

		switch {
		case errors.As(err, &validationErr):
			utils.ResponseValidation(w, validationErr.Fields)
		case errors.Is(err, usecase.ErrInvalidCredentials):
			// Generic message, no hint at which part was wrong.
			utils.ResponseUnauthorized(w, "Invalid credentials")
		case errors.Is(err, usecase.ErrStorageUnavailable):
			utils.ResponseServiceUnavailable(w, "Service temporarily unavailable, retry later")
		default:
			h.log.Error("Failed to login", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
		}
		return
	}

	utils.ResponseSuccess(w, auth)
}

// Logout handles POST /auth/logout (requires auth)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.log.Error("Failed to logout", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, map[string]string{"message": "Logged out"})
}

// LogoutAll handles POST /auth/logout-all (requires auth)
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.LogoutAll(r.Context(), userID); err != nil {
		h.log.Error("Failed to revoke user sessions", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, map[string]string{"message": "All sessions revoked"})
}
