package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. PasswordHash never leaves the
// service layer.
type User struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Email        string  `json:"email,omitempty" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	CashBalance  float64 `json:"cashBalance" db:"cash_balance"`
}

// Safe returns the user without credential material, for API responses.
func (u User) Safe() User {
	u.PasswordHash = ""
	return u
}

// Purchase is one dish bought by a user, recorded at transaction time.
type Purchase struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          int64     `json:"userId" db:"user_id"`
	MenuID          int64     `json:"menuId" db:"menu_id"`
	DishName        string    `json:"dishName" db:"dish_name"`
	Amount          float64   `json:"transactionAmount" db:"amount"`
	TransactionDate time.Time `json:"transactionDate" db:"transaction_date"`
}

// PurchaseRequest is the payload for buying one or more dishes.
type PurchaseRequest struct {
	Items []PurchaseItemRequest `json:"items"`
}

// PurchaseItemRequest is a single dish line in a purchase request.
type PurchaseItemRequest struct {
	MenuID   int64 `json:"menuId"`
	Quantity int   `json:"quantity"`
}

// TokenResponse carries a signed session token back to the client.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Credentials is the register/login payload.
type Credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// PasswordChange is the change-password payload.
type PasswordChange struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
	Email       string `json:"email,omitempty"`
}

// TopUpRequest adds funds to the caller's balance.
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// RestaurantRequest is the create/update payload for a restaurant.
type RestaurantRequest struct {
	Name         string `json:"restaurantName"`
	OpeningHours string `json:"openingHours"`
}

// MenuRequest is the create/update payload for a dish.
type MenuRequest struct {
	DishName string  `json:"dishName"`
	Price    float64 `json:"price"`
}
