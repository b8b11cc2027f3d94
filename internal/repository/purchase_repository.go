package repository

import (
	"context"
	"fmt"

	"feastly/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// purchaseRepository implements PurchaseRepository using PostgreSQL.
type purchaseRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPurchaseRepository creates a new PostgreSQL-backed purchase repository.
func NewPurchaseRepository(pool *pgxpool.Pool, logger zerolog.Logger) PurchaseRepository {
	return &purchaseRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "purchase").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *purchaseRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreatePurchases inserts purchase records within the provided transaction.
func (r *purchaseRepository) CreatePurchases(ctx context.Context, tx pgx.Tx, purchases []model.Purchase) error {
	query := `
		INSERT INTO purchases (id, user_id, menu_id, dish_name, amount, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, p := range purchases {
		_, err := tx.Exec(ctx, query, p.ID, p.UserID, p.MenuID, p.DishName, p.Amount, p.TransactionDate)
		if err != nil {
			r.logger.Error().Err(err).
				Str("purchase_id", p.ID.String()).
				Int64("menu_id", p.MenuID).
				Msg("failed to create purchase")
			return fmt.Errorf("failed to create purchase: %w", err)
		}
	}

	return nil
}

// GetByUser retrieves a user's purchase history, most recent first.
func (r *purchaseRepository) GetByUser(ctx context.Context, userID int64) ([]model.Purchase, error) {
	query := `
		SELECT id, user_id, menu_id, dish_name, amount, transaction_date
		FROM purchases
		WHERE user_id = $1
		ORDER BY transaction_date DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query purchases")
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		var p model.Purchase
		err := rows.Scan(&p.ID, &p.UserID, &p.MenuID, &p.DishName, &p.Amount, &p.TransactionDate)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan purchase row")
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating purchase rows")
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	return purchases, nil
}
