package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/J-CamiloG/AppKit-API/internal/domain"
	apperrors "github.com/J-CamiloG/AppKit-API/pkg/util"
)

// InMemoryUserRepository is a map-backed UserRepository used when no Postgres
// DSN is configured and by the test suites. It enforces the same uniqueness
// semantics as the users table: the write is authoritative and reports the
// conflicting field.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	store map[string]*domain.User
}

var _ UserRepository = (*InMemoryUserRepository)(nil)

// NewInMemoryUserRepository builds an empty repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{store: make(map[string]*domain.User)}
}

// Create assigns an id and timestamps and persists the user, failing with a
// duplicate-field error when email or phone is already taken.
func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.Normalize()
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = domain.DefaultPreferredLanguage
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.store {
		if existing.Email == user.Email {
			return apperrors.NewDuplicateField(apperrors.FieldEmail)
		}
	}
	for _, existing := range r.store {
		if existing.Phone == user.Phone {
			return apperrors.NewDuplicateField(apperrors.FieldPhone)
		}
	}

	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.store[stored.ID] = &stored
	return nil
}

// GetByID returns the user with the given id or pgx.ErrNoRows.
func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *user
	return &found, nil
}

// GetByEmail returns the user with the given email or pgx.ErrNoRows.
func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.store {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// GetByPhone returns the user with the given phone or pgx.ErrNoRows.
func (r *InMemoryUserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.store {
		if user.Phone == phone {
			found := *user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Count reports how many users have been persisted.
func (r *InMemoryUserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}
