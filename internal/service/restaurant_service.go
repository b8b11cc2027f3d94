package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feastly/internal/discovery"
	"feastly/internal/model"
	"feastly/internal/paging"
	"feastly/internal/repository"
	"feastly/internal/schedule"

	"github.com/rs/zerolog"
)

// restaurantService implements RestaurantService.
type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
	engine         *discovery.Engine
	logger         zerolog.Logger
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(
	restaurantRepo repository.RestaurantRepository,
	menuRepo repository.MenuRepository,
	engine *discovery.Engine,
	logger zerolog.Logger,
) RestaurantService {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		engine:         engine,
		logger:         logger.With().Str("service", "restaurant").Logger(),
	}
}

// List returns one page of restaurant summaries after applying the discovery
// filters.
func (s *restaurantService) List(ctx context.Context, f discovery.Filters) (paging.Page[model.RestaurantSummary], error) {
	restaurants, err := s.restaurantRepo.GetAllWithMenus(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load restaurants")
		return paging.Page[model.RestaurantSummary]{}, fmt.Errorf("failed to list restaurants: %w", err)
	}

	return s.engine.List(restaurants, f)
}

// Search ranks restaurants by relevance to a free-text query.
func (s *restaurantService) Search(ctx context.Context, query string, page, itemsPerPage int) (paging.Page[model.RestaurantWithRelevance], error) {
	if strings.TrimSpace(query) == "" {
		return paging.Page[model.RestaurantWithRelevance]{}, model.ErrMissingQuery
	}

	restaurants, err := s.restaurantRepo.GetAllWithMenus(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load restaurants")
		return paging.Page[model.RestaurantWithRelevance]{}, fmt.Errorf("failed to search restaurants: %w", err)
	}

	return s.engine.Search(restaurants, query, page, itemsPerPage)
}

// GetByID retrieves a single restaurant with its menu.
func (s *restaurantService) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to get restaurant")
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant == nil {
		s.logger.Debug().Int64("restaurant_id", id).Msg("restaurant not found")
		return nil, model.ErrRestaurantNotFound
	}

	return restaurant, nil
}

// Create registers a new restaurant owned by the calling user.
func (s *restaurantService) Create(ctx context.Context, ownerID int64, req *model.RestaurantRequest) (*model.Restaurant, error) {
	if err := validateRestaurantRequest(req); err != nil {
		return nil, err
	}

	restaurant := &model.Restaurant{
		Name:         strings.TrimSpace(req.Name),
		OpeningHours: req.OpeningHours,
		OwnerID:      ownerID,
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		if errors.Is(err, model.ErrNameTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("name", restaurant.Name).Msg("failed to create restaurant")
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.logger.Info().
		Int64("restaurant_id", restaurant.ID).
		Str("name", restaurant.Name).
		Msg("restaurant created")

	return restaurant, nil
}

// Update rewrites a restaurant's name and opening hours. Only the owner may
// update.
func (s *restaurantService) Update(ctx context.Context, ownerID, id int64, req *model.RestaurantRequest) (*model.Restaurant, error) {
	if err := validateRestaurantRequest(req); err != nil {
		return nil, err
	}

	restaurant, err := s.ownedRestaurant(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	restaurant.Name = strings.TrimSpace(req.Name)
	restaurant.OpeningHours = req.OpeningHours

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		if errors.Is(err, model.ErrNameTaken) || errors.Is(err, model.ErrRestaurantNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to update restaurant")
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	return restaurant, nil
}

// Delete removes a restaurant and its menu. Only the owner may delete.
func (s *restaurantService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.ownedRestaurant(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.restaurantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrRestaurantNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to delete restaurant")
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	s.logger.Info().Int64("restaurant_id", id).Msg("restaurant deleted")

	return nil
}

// AddDish adds a dish to a restaurant's menu. Only the owner may add.
func (s *restaurantService) AddDish(ctx context.Context, ownerID, restaurantID int64, req *model.MenuRequest) (*model.Menu, error) {
	if err := validateMenuRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.ownedRestaurant(ctx, ownerID, restaurantID); err != nil {
		return nil, err
	}

	menu := &model.Menu{
		RestaurantID: restaurantID,
		DishName:     strings.TrimSpace(req.DishName),
		Price:        req.Price,
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("failed to create dish")
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	return menu, nil
}

// UpdateDish rewrites a dish's name and price. Only the owner may update.
func (s *restaurantService) UpdateDish(ctx context.Context, ownerID, restaurantID, menuID int64, req *model.MenuRequest) (*model.Menu, error) {
	if err := validateMenuRequest(req); err != nil {
		return nil, err
	}

	menu, err := s.ownedDish(ctx, ownerID, restaurantID, menuID)
	if err != nil {
		return nil, err
	}

	menu.DishName = strings.TrimSpace(req.DishName)
	menu.Price = req.Price

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		if errors.Is(err, model.ErrMenuNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("menu_id", menuID).Msg("failed to update dish")
		return nil, fmt.Errorf("failed to update dish: %w", err)
	}

	return menu, nil
}

// DeleteDish removes a dish from a restaurant's menu. Only the owner may
// delete.
func (s *restaurantService) DeleteDish(ctx context.Context, ownerID, restaurantID, menuID int64) error {
	if _, err := s.ownedDish(ctx, ownerID, restaurantID, menuID); err != nil {
		return err
	}

	if err := s.menuRepo.Delete(ctx, menuID); err != nil {
		if errors.Is(err, model.ErrMenuNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("menu_id", menuID).Msg("failed to delete dish")
		return fmt.Errorf("failed to delete dish: %w", err)
	}

	return nil
}

// ownedRestaurant loads a restaurant and verifies the caller owns it.
func (s *restaurantService) ownedRestaurant(ctx context.Context, ownerID, id int64) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", id).Msg("failed to get restaurant")
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}

	if restaurant.OwnerID != ownerID {
		s.logger.Warn().
			Int64("restaurant_id", id).
			Int64("owner_id", restaurant.OwnerID).
			Int64("caller_id", ownerID).
			Msg("ownership check failed")
		return nil, model.ErrOwnerRequired
	}

	return restaurant, nil
}

// ownedDish loads a dish and verifies it belongs to a restaurant the caller
// owns.
func (s *restaurantService) ownedDish(ctx context.Context, ownerID, restaurantID, menuID int64) (*model.Menu, error) {
	if _, err := s.ownedRestaurant(ctx, ownerID, restaurantID); err != nil {
		return nil, err
	}

	menu, err := s.menuRepo.GetByID(ctx, menuID)
	if err != nil {
		s.logger.Error().Err(err).Int64("menu_id", menuID).Msg("failed to get dish")
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}

	if menu == nil || menu.RestaurantID != restaurantID {
		return nil, model.ErrMenuNotFound
	}

	return menu, nil
}

// validateRestaurantRequest validates a create/update restaurant payload.
func validateRestaurantRequest(req *model.RestaurantRequest) error {
	if req == nil {
		return model.NewValidationError("request body is required")
	}

	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("restaurantName is required")
	}

	if _, err := schedule.Parse(req.OpeningHours); err != nil {
		return model.ErrInvalidOpeningHours
	}

	return nil
}

// validateMenuRequest validates a create/update dish payload.
func validateMenuRequest(req *model.MenuRequest) error {
	if req == nil {
		return model.NewValidationError("request body is required")
	}

	if strings.TrimSpace(req.DishName) == "" {
		return model.NewValidationError("dishName is required")
	}

	if req.Price < 0 {
		return model.NewValidationError("price must not be negative")
	}

	return nil
}
