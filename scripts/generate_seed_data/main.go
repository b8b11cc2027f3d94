package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"feastly/internal/seed"
)

// generateSeedData writes a small sample dataset to data/seed/ in the same
// shape the seeder consumes, for local development without the real export.
func main() {
	dataDir := "data/seed"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	restaurants := []seed.RestaurantRecord{
		{
			Name:         "Economic Bee Hon",
			CashBalance:  1320.10,
			OpeningHours: "Mon - Sun 8 am - 10 pm",
			Menu: []seed.MenuRecord{
				{DishName: "Fried Bee Hon", Price: 3.50},
				{DishName: "Laksa", Price: 5.20},
				{DishName: "Mee Goreng", Price: 4.80},
			},
		},
		{
			Name:         "Golden Palace",
			CashBalance:  8250.00,
			OpeningHours: "Mon - Fri 11 am - 10:30 pm",
			Menu: []seed.MenuRecord{
				{DishName: "Peking Duck", Price: 48.00},
				{DishName: "Dim Sum Platter", Price: 22.50},
			},
		},
		{
			Name:         "Kopitiam Corner",
			CashBalance:  640.75,
			OpeningHours: "Mon - Sat 7 am - 8 pm / Sun 8 am - 2 pm",
			Menu: []seed.MenuRecord{
				{DishName: "Kaya Toast", Price: 2.80},
				{DishName: "Kopi", Price: 1.60},
				{DishName: "Half-Boiled Eggs", Price: 2.20},
			},
		},
	}

	users := []seed.UserRecord{
		{
			ID:          1,
			Name:        "Edith Johnson",
			CashBalance: 700.70,
			PurchaseHistory: []seed.PurchaseRecord{
				{
					DishName:        "Kaya Toast",
					RestaurantName:  "Kopitiam Corner",
					Amount:          2.80,
					TransactionDate: "02/10/2020 04:09 AM",
				},
				{
					DishName:        "Laksa",
					RestaurantName:  "Economic Bee Hon",
					Amount:          5.20,
					TransactionDate: "03/21/2020 12:30 PM",
				},
			},
		},
		{
			ID:          2,
			Name:        "Marcus Tan",
			CashBalance: 150.00,
			PurchaseHistory: []seed.PurchaseRecord{
				{
					DishName:        "Peking Duck",
					RestaurantName:  "Golden Palace",
					Amount:          48.00,
					TransactionDate: "05/02/2020 07:45 PM",
				},
			},
		},
	}

	if err := writeJSON(filepath.Join(dataDir, "restaurant_with_menu.json"), restaurants); err != nil {
		log.Fatalf("Failed to write restaurant dataset: %v", err)
	}
	if err := writeJSON(filepath.Join(dataDir, "users_with_purchase_history.json"), users); err != nil {
		log.Fatalf("Failed to write user dataset: %v", err)
	}

	fmt.Printf("Wrote %d restaurants and %d users to %s\n", len(restaurants), len(users), dataDir)
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode: %w", err)
	}

	return nil
}
