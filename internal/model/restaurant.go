package model

// Restaurant represents a restaurant together with its menu.
type Restaurant struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"restaurantName" db:"restaurant_name"`
	OpeningHours string  `json:"openingHours" db:"opening_hours"`
	CashBalance  float64 `json:"cashBalance" db:"cash_balance"`
	OwnerID      int64   `json:"ownerId" db:"owner_id"`
	Menus        []Menu  `json:"menus,omitempty"`
}

// Menu represents a single dish on a restaurant's menu.
type Menu struct {
	ID           int64   `json:"id" db:"id"`
	RestaurantID int64   `json:"restaurantId" db:"restaurant_id"`
	DishName     string  `json:"dishName" db:"dish_name"`
	Price        float64 `json:"price" db:"price"`
}

/// RestaurantSummary is the lightweight listing view: the menu is dropped,
// detail-by-id returns the full record.
type RestaurantSummary struct {
	ID           int64   `json:"id"`
	Name         string  `json:"restaurantName"`
	OpeningHours string  `json:"openingHours"`
	CashBalance  float64 `json:"cashBalance"`
}

// RestaurantWithRelevance is the search view: a summary annotated with the
// request-scoped relevance score.
type RestaurantWithRelevance struct {
	RestaurantSummary
	Relevance float64 `json:"relevance"`
}

// Summary projects a restaurant to its listing view.
func (r Restaurant) Summary() RestaurantSummary {
	return RestaurantSummary{
		ID:           r.ID,
		Name:         r.Name,
		OpeningHours: r.OpeningHours,
		CashBalance:  r.CashBalance,
	}
}
