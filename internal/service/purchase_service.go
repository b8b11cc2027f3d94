package service

import (
	"context"
	"fmt"
	"time"

	"feastly/internal/model"
	"feastly/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// purchaseService implements PurchaseService.
type purchaseService struct {
	purchaseRepo   repository.PurchaseRepository
	menuRepo       repository.MenuRepository
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	logger         zerolog.Logger
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	menuRepo repository.MenuRepository,
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	logger zerolog.Logger,
) PurchaseService {
	return &purchaseService{
		purchaseRepo:   purchaseRepo,
		menuRepo:       menuRepo,
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		logger:         logger.With().Str("service", "purchase").Logger(),
	}
}

// Purchase buys the requested dishes. The user's balance is debited and each
// owning restaurant credited in the same transaction as the purchase records,
// so a failure anywhere leaves every balance untouched.
func (s *purchaseService) Purchase(ctx context.Context, userID int64, req *model.PurchaseRequest) ([]model.Purchase, error) {
	if err := validatePurchaseRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get user")
		return nil, fmt.Errorf("failed to purchase: %w", err)
	}
	if user == nil {
		return nil, model.ErrCredentials
	}

	menuIDs := make([]int64, len(req.Items))
	for i, item := range req.Items {
		menuIDs[i] = item.MenuID
	}

	menus, err := s.menuRepo.GetByIDs(ctx, menuIDs)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(menuIDs)).Msg("failed to get dishes")
		return nil, fmt.Errorf("failed to purchase: %w", err)
	}

	menuByID := make(map[int64]model.Menu, len(menus))
	for _, m := range menus {
		menuByID[m.ID] = m
	}

	// Price everything before touching the database.
	now := time.Now()
	total := 0.0
	restaurantTotals := make(map[int64]float64)
	purchases := make([]model.Purchase, 0, len(req.Items))

	for _, item := range req.Items {
		menu, ok := menuByID[item.MenuID]
		if !ok {
			s.logger.Warn().Int64("menu_id", item.MenuID).Msg("dish not found")
			return nil, model.ErrMenuNotFound
		}

		amount := menu.Price * float64(item.Quantity)
		total += amount
		restaurantTotals[menu.RestaurantID] += amount

		purchases = append(purchases, model.Purchase{
			ID:              uuid.New(),
			UserID:          userID,
			MenuID:          menu.ID,
			DishName:        menu.DishName,
			Amount:          amount,
			TransactionDate: now,
		})
	}

	if user.CashBalance < total {
		s.logger.Warn().
			Int64("user_id", userID).
			Float64("balance", user.CashBalance).
			Float64("total", total).
			Msg("insufficient balance")
		return nil, model.ErrInsufficientBalance
	}

	tx, err := s.purchaseRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to purchase: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.purchaseRepo.CreatePurchases(ctx, tx, purchases); err != nil {
		s.logger.Error().Err(err).Int("count", len(purchases)).Msg("failed to create purchases")
		return nil, fmt.Errorf("failed to purchase: %w", err)
	}

	if err = s.userRepo.AdjustBalance(ctx, tx, userID, -total); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to debit user")
		return nil, fmt.Errorf("failed to purchase: %w", err)
	}

	for restaurantID, amount := range restaurantTotals {
		if err = s.restaurantRepo.AdjustBalance(ctx, tx, restaurantID, amount); err != nil {
			s.logger.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("failed to credit restaurant")
			return nil, fmt.Errorf("failed to purchase: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to purchase: %w", err)
	}

	s.logger.Info().
		Int64("user_id", userID).
		Int("item_count", len(purchases)).
		Float64("total", total).
		Msg("purchase completed")

	return purchases, nil
}

// History retrieves the user's purchases, most recent first.
func (s *purchaseService) History(ctx context.Context, userID int64) ([]model.Purchase, error) {
	purchases, err := s.purchaseRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get purchases")
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}

	return purchases, nil
}

// validatePurchaseRequest validates a purchase payload.
func validatePurchaseRequest(req *model.PurchaseRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.NewValidationError("purchase must contain at least one item")
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
