package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/travelwise/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	AppendBooking(ctx context.Context, userID, bookingID string) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, profile_picture, booking_ids, favorite_destinations, interests, created_at, updated_at`

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := r.db.QueryRow(ctx, `INSERT INTO users (id, name, email, password_hash, profile_picture)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		user.ID, user.Name, user.Email, user.PasswordHash, user.ProfilePicture).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return storeError("create user", err)
	}
	return nil
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// AppendBooking is not idempotent: the caller appends at most once per booking.
func (r *PGUserRepository) AppendBooking(ctx context.Context, userID, bookingID string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET booking_ids = array_append(booking_ids, $2), updated_at = now() WHERE id = $1`, userID, bookingID)
	if err != nil {
		return storeError("append booking", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.ProfilePicture,
		&u.BookingIDs, &u.Preferences.FavoriteDestinations, &u.Preferences.Interests,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeError("scan user", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}

var _ UserRepository = (*PGUserRepository)(nil)
