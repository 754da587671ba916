package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error

	// EnsureAdmin seeds the bootstrap admin account on startup. A blank
	// username disables seeding.
	EnsureAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("username", req.Username))
		return nil, storageError("find user", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, storageError("create session", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.AuthResponse{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Role:      user.Role,
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		s.log.Error("Failed to revoke user sessions",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return storageError("revoke user sessions", err)
	}

	s.log.Info("All sessions revoked", zap.String("user_id", userID.String()))
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}

	existing, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return storageError("find admin user", err)
	}
	if existing != nil {
		return nil
	}

	if len(password) < 8 {
		return fieldError("password", "Minimum length is 8")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return storageError("create admin user", err)
	}

	s.log.Info("Admin account created", zap.String("username", username))
	return nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fieldError("token", "Invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}
