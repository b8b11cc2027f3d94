package seed

// RestaurantRecord is one entry of the sample restaurant dataset. Opening
// hours come as a free-form weekly description and are canonicalised before
// storage.
type RestaurantRecord struct {
	Name         string       `json:"restaurantName"`
	CashBalance  float64      `json:"cashBalance"`
	OpeningHours string       `json:"openingHours"`
	Menu         []MenuRecord `json:"menu"`
}

// MenuRecord is one dish of a sample restaurant.
type MenuRecord struct {
	DishName string  `json:"dishName"`
	Price    float64 `json:"price"`
}

// UserRecord is one entry of the sample user dataset.
type UserRecord struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	CashBalance     float64          `json:"cashBalance"`
	PurchaseHistory []PurchaseRecord `json:"purchaseHistory"`
}

// PurchaseRecord is one historical purchase of a sample user. The dish is
// referenced by name within its restaurant.
type PurchaseRecord struct {
	DishName        string  `json:"dishName"`
	RestaurantName  string  `json:"restaurantName"`
	Amount          float64 `json:"transactionAmount"`
	TransactionDate string  `json:"transactionDate"`
}
