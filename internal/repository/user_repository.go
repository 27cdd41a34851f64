package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/J-CamiloG/AppKit-API/internal/domain"
	apperrors "github.com/J-CamiloG/AppKit-API/pkg/util"
)

// UserRepository defines persistence access for registered users. Create is
// authoritative for uniqueness: callers may pre-check by email or phone, but
// only the write decides under concurrency.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// constraintFields maps unique constraint names to the payload field they guard.
var constraintFields = map[string]string{
	"users_email_key": apperrors.FieldEmail,
	"users_phone_key": apperrors.FieldPhone,
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	user.Normalize()
	if user.PreferredLanguage == "" {
		user.PreferredLanguage = domain.DefaultPreferredLanguage
	}

	const query = `
        INSERT INTO users (full_name, email, phone, password_hash, country_of_origin, preferred_language, traveler_type)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.CountryOfOrigin,
		user.PreferredLanguage,
		user.TravelerType,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
        SELECT id, full_name, email, phone, password_hash, country_of_origin, preferred_language, traveler_type, created_at, updated_at
        FROM users WHERE id=$1`

	return r.scanOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, full_name, email, phone, password_hash, country_of_origin, preferred_language, traveler_type, created_at, updated_at
        FROM users WHERE email=$1`

	return r.scanOne(ctx, query, email)
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	const query = `
        SELECT id, full_name, email, phone, password_hash, country_of_origin, preferred_language, traveler_type, created_at, updated_at
        FROM users WHERE phone=$1`

	return r.scanOne(ctx, query, phone)
}

func (r *userRepository) scanOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.CountryOfOrigin,
		&user.PreferredLanguage,
		&user.TravelerType,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// translateUniqueViolation converts a Postgres unique violation into the
// typed duplicate-field error, naming the field from whichever constraint
// fired. Other errors pass through untouched.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	field, ok := constraintFields[pgErr.ConstraintName]
	if !ok {
		return err
	}
	return apperrors.NewDuplicateField(field)
}
