package repository

import (
	"context"

	"feastly/internal/model"

	"github.com/jackc/pgx/v5"
)

// RestaurantRepository defines the interface for restaurant data access operations.
type RestaurantRepository interface {
	// GetAllWithMenus retrieves every restaurant together with its menu,
	// in stable id order. This is the discovery pipeline's data feed.
	GetAllWithMenus(ctx context.Context) ([]model.Restaurant, error)

	// GetByID retrieves a single restaurant with its menu.
	GetByID(ctx context.Context, id int64) (*model.Restaurant, error)

	// Create inserts a restaurant and fills in its generated ID.
	Create(ctx context.Context, r *model.Restaurant) error

	// Update rewrites a restaurant's name and opening hours.
	Update(ctx context.Context, r *model.Restaurant) error

	// Delete removes a restaurant and, by cascade, its menu.
	Delete(ctx context.Context, id int64) error

	// AdjustBalance adds delta to a restaurant's cash balance within the
	// provided transaction.
	AdjustBalance(ctx context.Context, tx pgx.Tx, id int64, delta float64) error
}

// MenuRepository defines the interface for menu data access operations.
type MenuRepository interface {
	// GetByID retrieves a single dish.
	GetByID(ctx context.Context, id int64) (*model.Menu, error)

	// GetByIDs retrieves multiple dishes by their IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Menu, error)

	// Create inserts a dish and fills in its generated ID.
	Create(ctx context.Context, m *model.Menu) error

	// Update rewrites a dish's name and price.
	Update(ctx context.Context, m *model.Menu) error

	// Delete removes a dish.
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// GetByName retrieves a user by their unique name.
	GetByName(ctx context.Context, name string) (*model.User, error)

	// Create inserts a user and fills in their generated ID.
	Create(ctx context.Context, u *model.User) error

	// UpdateCredentials rewrites a user's password hash and email.
	UpdateCredentials(ctx context.Context, name, passwordHash, email string) error

	// Delete removes a user by name.
	Delete(ctx context.Context, name string) error

	// AdjustBalance adds delta to a user's cash balance. It runs within
	// tx when one is given, otherwise on the pool.
	AdjustBalance(ctx context.Context, tx pgx.Tx, id int64, delta float64) error
}

// PurchaseRepository defines the interface for purchase data access operations.
type PurchaseRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreatePurchases inserts purchase records within the provided transaction.
	CreatePurchases(ctx context.Context, tx pgx.Tx, purchases []model.Purchase) error

	// GetByUser retrieves a user's purchase history, most recent first.
	GetByUser(ctx context.Context, userID int64) ([]model.Purchase, error)
}
