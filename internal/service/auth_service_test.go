package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/J-CamiloG/AppKit-API/internal/config"
	"github.com/J-CamiloG/AppKit-API/internal/domain"
	"github.com/J-CamiloG/AppKit-API/internal/events"
	"github.com/J-CamiloG/AppKit-API/internal/repository"
	"github.com/J-CamiloG/AppKit-API/internal/validation"
	apperrors "github.com/J-CamiloG/AppKit-API/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret",
			TokenTTLDays: 7,
			BcryptCost:   bcrypt.MinCost,
		},
	}
}

func registerPayload() validation.RegisterPayload {
	return validation.RegisterPayload{
		FullName:          "Juan Pérez",
		Email:             "juan@email.com",
		Phone:             "+57 300 123 4567",
		Password:          "password123",
		CountryOfOrigin:   "Colombia",
		PreferredLanguage: "es",
		TravelerType:      "couple",
	}
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

func newTestService() (*AuthService, *repository.InMemoryUserRepository, *recordingDispatcher) {
	repo := repository.NewInMemoryUserRepository()
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: repo, Dispatcher: dispatcher})
	return svc, repo, dispatcher
}

func TestRegister_ThenLogin(t *testing.T) {
	svc, repo, dispatcher := newTestService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, registerPayload())
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "juan@email.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.Equal(t, 1, repo.Count())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	logged, loginToken, err := svc.Login(ctx, validation.LoginPayload{
		Email:    "juan@email.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, loginToken)

	published := dispatcher.published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventUserRegistered, published[0].Type)
	assert.Equal(t, events.EventUserLoggedIn, published[1].Type)
}

func TestRegister_NormalizesEmailCase(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	payload := registerPayload()
	payload.Email = "Juan@Email.COM"

	user, _, err := svc.Register(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, "juan@email.com", user.Email)

	_, _, err = svc.Login(ctx, validation.LoginPayload{Email: "JUAN@email.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestRegister_ValidationFailureWritesNothing(t *testing.T) {
	svc, repo, dispatcher := newTestService()

	payload := registerPayload()
	payload.TravelerType = ""

	_, _, err := svc.Register(context.Background(), payload)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Contains(t, domainErr.Fields, "travelerType")
	assert.Equal(t, "El tipo de viajero es requerido", domainErr.Message)

	assert.Equal(t, 0, repo.Count())
	assert.Empty(t, dispatcher.published())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerPayload())
	require.NoError(t, err)

	// Same email, everything else different.
	payload := registerPayload()
	payload.FullName = "Otra Persona"
	payload.Phone = "+34 600 000 000"
	payload.Password = "otherpass"

	_, _, err = svc.Register(ctx, payload)
	field, ok := apperrors.IsDuplicateField(err)
	require.True(t, ok)
	assert.Equal(t, "email", field)
	assert.Equal(t, 1, repo.Count())
}

func TestRegister_DuplicatePhone(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerPayload())
	require.NoError(t, err)

	payload := registerPayload()
	payload.Email = "otro@email.com"

	_, _, err = svc.Register(ctx, payload)
	field, ok := apperrors.IsDuplicateField(err)
	require.True(t, ok)
	assert.Equal(t, "phone", field)
	assert.Equal(t, 1, repo.Count())
}

// blindRepo simulates losing the check-then-write race: the pre-checks see
// nothing, but the write itself reports the unique violation.
type blindRepo struct {
	createErr error
}

func (r *blindRepo) Create(context.Context, *domain.User) error { return r.createErr }
func (r *blindRepo) GetByID(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (r *blindRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (r *blindRepo) GetByPhone(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func TestRegister_WriteTimeDuplicateIsAuthoritative(t *testing.T) {
	repo := &blindRepo{createErr: apperrors.NewDuplicateField(apperrors.FieldEmail)}
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: repo})

	_, _, err := svc.Register(context.Background(), registerPayload())
	field, ok := apperrors.IsDuplicateField(err)
	require.True(t, ok)
	assert.Equal(t, "email", field)
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerPayload())
	require.NoError(t, err)

	_, _, wrongPass := svc.Login(ctx, validation.LoginPayload{
		Email:    "juan@email.com",
		Password: "wrongpass",
	})
	_, _, unknownEmail := svc.Login(ctx, validation.LoginPayload{
		Email:    "nadie@email.com",
		Password: "password123",
	})

	var errA, errB *apperrors.DomainError
	require.True(t, errors.As(wrongPass, &errA))
	require.True(t, errors.As(unknownEmail, &errB))

	// Identical error either way: no hint about which field was wrong.
	assert.Equal(t, errA.Code, errB.Code)
	assert.Equal(t, errA.Message, errB.Message)
	assert.Equal(t, errA.Fields, errB.Fields)
	assert.Equal(t, errA.HTTPStatus, errB.HTTPStatus)
}

func TestLogin_ValidationFailure(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Login(context.Background(), validation.LoginPayload{Email: "juan@email.com"})
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, []string{"password"}, domainErr.Fields)
}
