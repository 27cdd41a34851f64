package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/J-CamiloG/AppKit-API/internal/auth"
	"github.com/J-CamiloG/AppKit-API/internal/config"
	"github.com/J-CamiloG/AppKit-API/internal/domain"
	"github.com/J-CamiloG/AppKit-API/internal/events"
	"github.com/J-CamiloG/AppKit-API/internal/repository"
	"github.com/J-CamiloG/AppKit-API/internal/validation"
	apperrors "github.com/J-CamiloG/AppKit-API/pkg/util"
)

// AuthService coordinates validation, hashing, persistence and token issuance
// for the register and login use cases.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDays),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new user account and returns it with a bearer token.
// The email and phone pre-checks are advisory; the store write is the
// authority on uniqueness and reports the conflicting field when a concurrent
// registration wins the race.
func (s *AuthService) Register(ctx context.Context, payload validation.RegisterPayload) (*domain.User, string, error) {
	if err := payload.Validate(); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewDuplicateField(apperrors.FieldEmail)
	} else if err != pgx.ErrNoRows {
		return nil, "", err
	}

	phone := strings.TrimSpace(payload.Phone)
	if _, err := s.users.GetByPhone(ctx, phone); err == nil {
		return nil, "", apperrors.NewDuplicateField(apperrors.FieldPhone)
	} else if err != pgx.ErrNoRows {
		return nil, "", err
	}

	hash, err := auth.HashPassword(payload.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		FullName:          payload.FullName,
		Email:             email,
		Phone:             phone,
		PasswordHash:      hash,
		CountryOfOrigin:   payload.CountryOfOrigin,
		PreferredLanguage: domain.PreferredLanguage(payload.PreferredLanguage),
		TravelerType:      domain.TravelerType(payload.TravelerType),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		FullName:          user.FullName,
		Email:             user.Email,
		PreferredLanguage: user.PreferredLanguage,
		TravelerType:      user.TravelerType,
	})

	return user, token, nil
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password produce the identical error.
func (s *AuthService) Login(ctx context.Context, payload validation.LoginPayload) (*domain.User, string, error) {
	if err := payload.Validate(); err != nil {
		return nil, "", err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", apperrors.NewInvalidCredentials()
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, payload.Password); err != nil {
		return nil, "", apperrors.NewInvalidCredentials()
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{Email: user.Email})

	return user, token, nil
}

// TokenManager exposes the underlying token manager for transport usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
