package integration

import (
	"context"
	"testing"
	"time"

	"feastly/internal/model"
	"feastly/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewRestaurantRepository(testDB.Pool, logger)
	ctx := context.Background()

	t.Run("full lifecycle of a restaurant", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ownerID := SeedUser(t, testDB.Pool, "owner", "secret123", 0)

		restaurant := &model.Restaurant{
			Name:         "Lifecycle Diner",
			OpeningHours: testHours,
			OwnerID:      ownerID,
		}
		require.NoError(t, repo.Create(ctx, restaurant))
		require.NotZero(t, restaurant.ID)

		fetched, err := repo.GetByID(ctx, restaurant.ID)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, "Lifecycle Diner", fetched.Name)

		fetched.Name = "Lifecycle Diner 2.0"
		require.NoError(t, repo.Update(ctx, fetched))

		updated, err := repo.GetByID(ctx, restaurant.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lifecycle Diner 2.0", updated.Name)

		require.NoError(t, repo.Delete(ctx, restaurant.ID))

		gone, err := repo.GetByID(ctx, restaurant.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("GetAllWithMenus groups dishes under their restaurant", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ownerID := SeedUser(t, testDB.Pool, "owner", "secret123", 0)
		SeedRestaurants(t, testDB.Pool, ownerID)

		restaurants, err := repo.GetAllWithMenus(ctx)
		require.NoError(t, err)
		require.Len(t, restaurants, 3)

		byName := make(map[string]model.Restaurant, len(restaurants))
		for _, r := range restaurants {
			byName[r.Name] = r
		}
		assert.Len(t, byName["Economic Bee Hon"].Menus, 2)
		assert.Len(t, byName["Golden Palace"].Menus, 1)
		assert.Len(t, byName["Kopitiam Corner"].Menus, 2)
	})
}

func TestPurchaseRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	restaurantRepo := repository.NewRestaurantRepository(testDB.Pool, logger)
	userRepo := repository.NewUserRepository(testDB.Pool, logger)
	purchaseRepo := repository.NewPurchaseRepository(testDB.Pool, logger)
	ctx := context.Background()

	t.Run("balances move atomically with the purchase records", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ownerID := SeedUser(t, testDB.Pool, "owner", "secret123", 0)
		seeded := SeedRestaurants(t, testDB.Pool, ownerID)
		buyerID := SeedUser(t, testDB.Pool, "buyer", "secret123", 50)

		dish := seeded[0].Menus[0] // Fried Bee Hon 3.50

		tx, err := purchaseRepo.BeginTx(ctx)
		require.NoError(t, err)

		purchases := []model.Purchase{{
			ID:              uuid.New(),
			UserID:          buyerID,
			MenuID:          dish.ID,
			DishName:        dish.DishName,
			Amount:          dish.Price,
			TransactionDate: time.Now(),
		}}
		require.NoError(t, purchaseRepo.CreatePurchases(ctx, tx, purchases))
		require.NoError(t, userRepo.AdjustBalance(ctx, tx, buyerID, -dish.Price))
		require.NoError(t, restaurantRepo.AdjustBalance(ctx, tx, seeded[0].ID, dish.Price))
		require.NoError(t, tx.Commit(ctx))

		buyer, err := userRepo.GetByID(ctx, buyerID)
		require.NoError(t, err)
		assert.InDelta(t, 46.50, buyer.CashBalance, 0.001)

		restaurant, err := restaurantRepo.GetByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.InDelta(t, 3.50, restaurant.CashBalance, 0.001)

		history, err := purchaseRepo.GetByUser(ctx, buyerID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, dish.DishName, history[0].DishName)
	})

	t.Run("rollback leaves balances and history untouched", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ownerID := SeedUser(t, testDB.Pool, "owner", "secret123", 0)
		seeded := SeedRestaurants(t, testDB.Pool, ownerID)
		buyerID := SeedUser(t, testDB.Pool, "buyer", "secret123", 50)

		dish := seeded[0].Menus[0]

		tx, err := purchaseRepo.BeginTx(ctx)
		require.NoError(t, err)

		purchases := []model.Purchase{{
			ID:              uuid.New(),
			UserID:          buyerID,
			MenuID:          dish.ID,
			DishName:        dish.DishName,
			Amount:          dish.Price,
			TransactionDate: time.Now(),
		}}
		require.NoError(t, purchaseRepo.CreatePurchases(ctx, tx, purchases))
		require.NoError(t, userRepo.AdjustBalance(ctx, tx, buyerID, -dish.Price))
		require.NoError(t, tx.Rollback(ctx))

		buyer, err := userRepo.GetByID(ctx, buyerID)
		require.NoError(t, err)
		assert.InDelta(t, 50.0, buyer.CashBalance, 0.001)

		history, err := purchaseRepo.GetByUser(ctx, buyerID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
