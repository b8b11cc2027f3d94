package repository

import (
	"context"
	"fmt"

	"feastly/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// menuRepository implements MenuRepository using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

// GetByID retrieves a single dish.
func (r *menuRepository) GetByID(ctx context.Context, id int64) (*model.Menu, error) {
	query := `
		SELECT id, restaurant_id, dish_name, price
		FROM menus
		WHERE id = $1
	`

	var m model.Menu
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.RestaurantID, &m.DishName, &m.Price)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("menu_id", id).Msg("menu not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("menu_id", id).Msg("failed to query menu")
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}

	return &m, nil
}

// GetByIDs retrieves multiple dishes by their IDs.
func (r *menuRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Menu, error) {
	if len(ids) == 0 {
		return []model.Menu{}, nil
	}

	query := `
		SELECT id, restaurant_id, dish_name, price
		FROM menus
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query menus by IDs")
		return nil, fmt.Errorf("failed to query menus by IDs: %w", err)
	}
	defer rows.Close()

	var menus []model.Menu
	for rows.Next() {
		var m model.Menu
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.DishName, &m.Price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu row")
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu rows")
		return nil, fmt.Errorf("error iterating menus: %w", err)
	}

	return menus, nil
}

// Create inserts a dish and fills in its generated ID.
func (r *menuRepository) Create(ctx context.Context, m *model.Menu) error {
	query := `
		INSERT INTO menus (restaurant_id, dish_name, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, m.RestaurantID, m.DishName, m.Price).Scan(&m.ID)
	if err != nil {
		r.logger.Error().Err(err).
			Int64("restaurant_id", m.RestaurantID).
			Str("dish_name", m.DishName).
			Msg("failed to create menu")
		return fmt.Errorf("failed to create menu: %w", err)
	}

	return nil
}

// Update rewrites a dish's name and price.
func (r *menuRepository) Update(ctx context.Context, m *model.Menu) error {
	query := `
		UPDATE menus
		SET dish_name = $1, price = $2
		WHERE id = $3
	`

	tag, err := r.pool.Exec(ctx, query, m.DishName, m.Price, m.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_id", m.ID).Msg("failed to update menu")
		return fmt.Errorf("failed to update menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMenuNotFound
	}

	return nil
}

// Delete removes a dish.
func (r *menuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_id", id).Msg("failed to delete menu")
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMenuNotFound
	}

	return nil
}
