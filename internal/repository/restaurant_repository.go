package repository

import (
	"context"
	"errors"
	"fmt"

	"feastly/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// restaurantRepository implements RestaurantRepository using PostgreSQL.
type restaurantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRestaurantRepository creates a new PostgreSQL-backed restaurant repository.
func NewRestaurantRepository(pool *pgxpool.Pool, logger zerolog.Logger) RestaurantRepository {
	return &restaurantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "restaurant").Logger(),
	}
}

// GetAllWithMenus retrieves every restaurant together with its menu.
// A single left join keeps restaurants without dishes in the result;
// ordering by id keeps the retrieval order stable across requests.
func (r *restaurantRepository) GetAllWithMenus(ctx context.Context) ([]model.Restaurant, error) {
	query := `
		SELECT r.id, r.restaurant_name, r.opening_hours, r.cash_balance, r.owner_id,
		       m.id, m.dish_name, m.price
		FROM restaurants r
		LEFT JOIN menus m ON m.restaurant_id = r.id
		ORDER BY r.id, m.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query restaurants with menus")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	var restaurants []model.Restaurant
	var current *model.Restaurant

	for rows.Next() {
		var (
			rest     model.Restaurant
			menuID   *int64
			dishName *string
			price    *float64
		)
		err := rows.Scan(&rest.ID, &rest.Name, &rest.OpeningHours, &rest.CashBalance, &rest.OwnerID,
			&menuID, &dishName, &price)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan restaurant row")
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}

		if current == nil || current.ID != rest.ID {
			restaurants = append(restaurants, rest)
			current = &restaurants[len(restaurants)-1]
		}
		if menuID != nil {
			current.Menus = append(current.Menus, model.Menu{
				ID:           *menuID,
				RestaurantID: current.ID,
				DishName:     *dishName,
				Price:        *price,
			})
		}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating restaurant rows")
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}

	return restaurants, nil
}

// GetByID retrieves a single restaurant with its menu.
func (r *restaurantRepository) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	query := `
		SELECT id, restaurant_name, opening_hours, cash_balance, owner_id
		FROM restaurants
		WHERE id = $1
	`

	var rest model.Restaurant
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&rest.ID, &rest.Name, &rest.OpeningHours, &rest.CashBalance, &rest.OwnerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("restaurant_id", id).Msg("restaurant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to query restaurant")
		return nil, fmt.Errorf("failed to query restaurant: %w", err)
	}

	menuQuery := `
		SELECT id, restaurant_id, dish_name, price
		FROM menus
		WHERE restaurant_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, menuQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to query menus")
		return nil, fmt.Errorf("failed to query menus: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m model.Menu
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.DishName, &m.Price); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu row")
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		rest.Menus = append(rest.Menus, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu rows")
		return nil, fmt.Errorf("error iterating menus: %w", err)
	}

	return &rest, nil
}

// Create inserts a restaurant and fills in its generated ID.
func (r *restaurantRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	query := `
		INSERT INTO restaurants (restaurant_name, opening_hours, cash_balance, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, rest.Name, rest.OpeningHours, rest.CashBalance, rest.OwnerID).
		Scan(&rest.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Debug().Str("name", rest.Name).Msg("restaurant name already taken")
			return model.ErrNameTaken
		}
		r.logger.Error().Err(err).Str("name", rest.Name).Msg("failed to create restaurant")
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

// Update rewrites a restaurant's name and opening hours.
func (r *restaurantRepository) Update(ctx context.Context, rest *model.Restaurant) error {
	query := `
		UPDATE restaurants
		SET restaurant_name = $1, opening_hours = $2
		WHERE id = $3
	`

	tag, err := r.pool.Exec(ctx, query, rest.Name, rest.OpeningHours, rest.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrNameTaken
		}
		r.logger.Error().Err(err).Int64("restaurant_id", rest.ID).Msg("failed to update restaurant")
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}

// Delete removes a restaurant; menus go with it by cascade.
func (r *restaurantRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to delete restaurant")
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}

// AdjustBalance adds delta to a restaurant's cash balance within tx.
func (r *restaurantRepository) AdjustBalance(ctx context.Context, tx pgx.Tx, id int64, delta float64) error {
	query := `
		UPDATE restaurants
		SET cash_balance = cash_balance + $1
		WHERE id = $2
	`

	tag, err := tx.Exec(ctx, query, delta, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to adjust restaurant balance")
		return fmt.Errorf("failed to adjust restaurant balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRestaurantNotFound
	}

	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint breach.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
