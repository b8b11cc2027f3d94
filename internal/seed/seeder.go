package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"feastly/internal/auth"
	"feastly/internal/model"
	"feastly/internal/repository"
	"feastly/internal/schedule"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// transactionDateLayout is the timestamp format of the user dataset.
const transactionDateLayout = "01/02/2006 03:04 PM"

// ownerName is the system account that owns every seeded restaurant.
const ownerName = "dataset-admin"

// Seeder loads the sample datasets into the database. Records whose name is
// already taken are skipped, so re-running against a populated database is
// harmless.
type Seeder struct {
	loader         Loader
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
	userRepo       repository.UserRepository
	purchaseRepo   repository.PurchaseRepository
	logger         zerolog.Logger
}

// NewSeeder creates a dataset seeder.
func NewSeeder(
	loader Loader,
	restaurantRepo repository.RestaurantRepository,
	menuRepo repository.MenuRepository,
	userRepo repository.UserRepository,
	purchaseRepo repository.PurchaseRepository,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		loader:         loader,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		userRepo:       userRepo,
		purchaseRepo:   purchaseRepo,
		logger:         logger.With().Str("component", "seeder").Logger(),
	}
}

// Run seeds restaurants from restaurantsPath and, when usersPath is not
// empty, users with their purchase history from usersPath.
func (s *Seeder) Run(ctx context.Context, restaurantsPath, usersPath string) error {
	ownerID, err := s.seedOwner(ctx)
	if err != nil {
		return err
	}

	dishIDs, err := s.seedRestaurants(ctx, restaurantsPath, ownerID)
	if err != nil {
		return err
	}

	if usersPath == "" {
		return nil
	}

	return s.seedUsers(ctx, usersPath, dishIDs)
}

// seedOwner ensures the system account owning seeded restaurants exists.
func (s *Seeder) seedOwner(ctx context.Context) (int64, error) {
	existing, err := s.userRepo.GetByName(ctx, ownerName)
	if err != nil {
		return 0, fmt.Errorf("failed to look up seed owner: %w", err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	// A random password nobody knows; the account is never logged into.
	hash, err := auth.HashPassword(uuid.NewString())
	if err != nil {
		return 0, fmt.Errorf("failed to hash seed owner password: %w", err)
	}

	owner := &model.User{Name: ownerName, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, owner); err != nil {
		return 0, fmt.Errorf("failed to create seed owner: %w", err)
	}

	s.logger.Info().Int64("user_id", owner.ID).Msg("seed owner created")

	return owner.ID, nil
}

// dishKey identifies a dish by restaurant and name within the datasets.
type dishKey struct {
	restaurant string
	dish       string
}

// seedRestaurants creates every restaurant of the dataset and returns a
// lookup from restaurant and dish name to menu id, for purchase resolution.
func (s *Seeder) seedRestaurants(ctx context.Context, path string, ownerID int64) (map[dishKey]int64, error) {
	data, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	var records []RestaurantRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode restaurant dataset: %w", err)
	}

	dishIDs := make(map[dishKey]int64)
	created, skipped := 0, 0

	for _, rec := range records {
		hours, err := schedule.ConvertDescription(rec.OpeningHours)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("restaurant", rec.Name).
				Msg("skipping restaurant with undecodable opening hours")
			skipped++
			continue
		}

		restaurant := &model.Restaurant{
			Name:         rec.Name,
			OpeningHours: hours,
			CashBalance:  rec.CashBalance,
			OwnerID:      ownerID,
		}

		if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
			if errors.Is(err, model.ErrNameTaken) {
				s.logger.Debug().Str("restaurant", rec.Name).Msg("restaurant already seeded")
				skipped++
				continue
			}
			return nil, fmt.Errorf("failed to seed restaurant %q: %w", rec.Name, err)
		}

		for _, dish := range rec.Menu {
			menu := &model.Menu{
				RestaurantID: restaurant.ID,
				DishName:     dish.DishName,
				Price:        dish.Price,
			}
			if err := s.menuRepo.Create(ctx, menu); err != nil {
				return nil, fmt.Errorf("failed to seed dish %q: %w", dish.DishName, err)
			}
			dishIDs[dishKey{restaurant: rec.Name, dish: dish.DishName}] = menu.ID
		}

		created++
	}

	s.logger.Info().
		Int("created", created).
		Int("skipped", skipped).
		Msg("restaurant dataset seeded")

	return dishIDs, nil
}

// seedUsers creates every user of the dataset together with their purchase
// history. Purchases referencing unknown dishes are dropped.
func (s *Seeder) seedUsers(ctx context.Context, path string, dishIDs map[dishKey]int64) error {
	data, err := s.loader.Load(ctx, path)
	if err != nil {
		return err
	}

	var records []UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to decode user dataset: %w", err)
	}

	created, skipped := 0, 0

	for _, rec := range records {
		// Seeded accounts have no password; a throwaway hash keeps them
		// from being logged into until a real password is set.
		hash, err := auth.HashPassword(uuid.NewString())
		if err != nil {
			return fmt.Errorf("failed to hash password for %q: %w", rec.Name, err)
		}

		user := &model.User{
			Name:         rec.Name,
			PasswordHash: hash,
			CashBalance:  rec.CashBalance,
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, model.ErrNameTaken) {
				s.logger.Debug().Str("user", rec.Name).Msg("user already seeded")
				skipped++
				continue
			}
			return fmt.Errorf("failed to seed user %q: %w", rec.Name, err)
		}

		if err := s.seedPurchases(ctx, user.ID, rec, dishIDs); err != nil {
			return err
		}

		created++
	}

	s.logger.Info().
		Int("created", created).
		Int("skipped", skipped).
		Msg("user dataset seeded")

	return nil
}

func (s *Seeder) seedPurchases(ctx context.Context, userID int64, rec UserRecord, dishIDs map[dishKey]int64) error {
	purchases := make([]model.Purchase, 0, len(rec.PurchaseHistory))

	for _, p := range rec.PurchaseHistory {
		menuID, ok := dishIDs[dishKey{restaurant: p.RestaurantName, dish: p.DishName}]
		if !ok {
			s.logger.Warn().
				Str("user", rec.Name).
				Str("restaurant", p.RestaurantName).
				Str("dish", p.DishName).
				Msg("dropping purchase of unknown dish")
			continue
		}

		at, err := time.Parse(transactionDateLayout, p.TransactionDate)
		if err != nil {
			s.logger.Warn().
				Str("user", rec.Name).
				Str("transaction_date", p.TransactionDate).
				Msg("dropping purchase with undecodable date")
			continue
		}

		purchases = append(purchases, model.Purchase{
			ID:              uuid.New(),
			UserID:          userID,
			MenuID:          menuID,
			DishName:        p.DishName,
			Amount:          p.Amount,
			TransactionDate: at,
		})
	}

	if len(purchases) == 0 {
		return nil
	}

	tx, err := s.purchaseRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin purchase transaction: %w", err)
	}

	if err := s.purchaseRepo.CreatePurchases(ctx, tx, purchases); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return fmt.Errorf("failed to seed purchases for %q: %w", rec.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit purchase transaction: %w", err)
	}

	return nil
}
