package repository

import (
	"context"
	"fmt"

	"feastly/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements UserRepository using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetByID retrieves a user by id.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT id, name, COALESCE(email, ''), password_hash, cash_balance FROM users WHERE id = $1`, id)
}

// GetByName retrieves a user by their unique name.
func (r *userRepository) GetByName(ctx context.Context, name string) (*model.User, error) {
	return r.getOne(ctx, `SELECT id, name, COALESCE(email, ''), password_hash, cash_balance FROM users WHERE name = $1`, name)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CashBalance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

// Create inserts a user and fills in their generated ID.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, cash_balance)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.CashBalance).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("name", u.Name).Msg("user name already taken")
			return model.ErrNameTaken
		}
		r.logger.Error().Err(err).Str("name", u.Name).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// UpdateCredentials rewrites a user's password hash and email.
func (r *userRepository) UpdateCredentials(ctx context.Context, name, passwordHash, email string) error {
	query := `
		UPDATE users
		SET password_hash = $1, email = NULLIF($2, '')
		WHERE name = $3
	`

	tag, err := r.pool.Exec(ctx, query, passwordHash, email, name)
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to update user credentials")
		return fmt.Errorf("failed to update user credentials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCredentials
	}

	return nil
}

// Delete removes a user by name.
func (r *userRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE name = $1`, name)
	if err != nil {
		r.logger.Error().Err(err).Str("name", name).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCredentials
	}

	return nil
}

// AdjustBalance adds delta to a user's cash balance, inside tx when given.
func (r *userRepository) AdjustBalance(ctx context.Context, tx pgx.Tx, id int64, delta float64) error {
	query := `
		UPDATE users
		SET cash_balance = cash_balance + $1
		WHERE id = $2
	`

	var tag pgconn.CommandTag
	var err error
	if tx != nil {
		tag, err = tx.Exec(ctx, query, delta, id)
	} else {
		tag, err = r.pool.Exec(ctx, query, delta, id)
	}
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to adjust user balance")
		return fmt.Errorf("failed to adjust user balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCredentials
	}

	return nil
}
