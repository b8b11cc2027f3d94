package service

import (
	"context"

	"feastly/internal/discovery"
	"feastly/internal/model"
	"feastly/internal/paging"
)

// RestaurantService defines operations for restaurant discovery and management.
type RestaurantService interface {
	// List returns one page of restaurant summaries after applying the
	// discovery filters.
	List(ctx context.Context, f discovery.Filters) (paging.Page[model.RestaurantSummary], error)

	// Search ranks restaurants by relevance to a free-text query.
	Search(ctx context.Context, query string, page, itemsPerPage int) (paging.Page[model.RestaurantWithRelevance], error)

	// GetByID retrieves a single restaurant with its menu.
	GetByID(ctx context.Context, id int64) (*model.Restaurant, error)

	// Create registers a new restaurant owned by the calling user.
	Create(ctx context.Context, ownerID int64, req *model.RestaurantRequest) (*model.Restaurant, error)

	// Update rewrites a restaurant's name and opening hours. Only the owner
	// may update.
	Update(ctx context.Context, ownerID, id int64, req *model.RestaurantRequest) (*model.Restaurant, error)

	// Delete removes a restaurant and its menu. Only the owner may delete.
	Delete(ctx context.Context, ownerID, id int64) error

	// AddDish adds a dish to a restaurant's menu. Only the owner may add.
	AddDish(ctx context.Context, ownerID, restaurantID int64, req *model.MenuRequest) (*model.Menu, error)

	// UpdateDish rewrites a dish's name and price. Only the owner may update.
	UpdateDish(ctx context.Context, ownerID, restaurantID, menuID int64, req *model.MenuRequest) (*model.Menu, error)

	// DeleteDish removes a dish from a restaurant's menu. Only the owner may
	// delete.
	DeleteDish(ctx context.Context, ownerID, restaurantID, menuID int64) error
}

// UserService defines operations for account management.
type UserService interface {
	// Register creates a new account and returns a signed session token.
	Register(ctx context.Context, creds *model.Credentials) (*model.TokenResponse, error)

	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, creds *model.Credentials) (*model.TokenResponse, error)

	// ChangePassword verifies the current password and replaces it.
	ChangePassword(ctx context.Context, req *model.PasswordChange) error

	// DeleteAccount verifies the password and removes the account.
	DeleteAccount(ctx context.Context, creds *model.Credentials) error

	// TopUp adds funds to a user's balance and returns the updated account.
	TopUp(ctx context.Context, userID int64, amount float64) (*model.User, error)

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// PurchaseService defines operations for buying dishes.
type PurchaseService interface {
	// Purchase buys the requested dishes, moving money from the user to the
	// owning restaurants in a single transaction.
	Purchase(ctx context.Context, userID int64, req *model.PurchaseRequest) ([]model.Purchase, error)

	// History retrieves the user's purchases, most recent first.
	History(ctx context.Context, userID int64) ([]model.Purchase, error)
}
