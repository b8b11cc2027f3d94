package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feastly/internal/auth"
	"feastly/internal/model"
	"feastly/internal/repository"

	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	issuer   *auth.TokenIssuer
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, issuer *auth.TokenIssuer, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Register creates a new account and returns a signed session token.
func (s *userService) Register(ctx context.Context, creds *model.Credentials) (*model.TokenResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(creds.Name),
		Email:        creds.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrNameTaken) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("name", user.Name).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("name", user.Name).Msg("user registered")

	return s.token(user)
}

// Login verifies credentials and returns a signed session token. A wrong name
// and a wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, creds *model.Credentials) (*model.TokenResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	user, err := s.verify(ctx, creds.Name, creds.Password)
	if err != nil {
		return nil, err
	}

	return s.token(user)
}

// ChangePassword verifies the current password and replaces it.
func (s *userService) ChangePassword(ctx context.Context, req *model.PasswordChange) error {
	if req == nil {
		return model.NewValidationError("request body is required")
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		return model.NewValidationError("newPassword is required")
	}

	user, err := s.verify(ctx, req.Name, req.Password)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return fmt.Errorf("failed to change password: %w", err)
	}

	email := user.Email
	if req.Email != "" {
		email = req.Email
	}

	if err := s.userRepo.UpdateCredentials(ctx, user.Name, hash, email); err != nil {
		if errors.Is(err, model.ErrCredentials) {
			return err
		}
		s.logger.Error().Err(err).Str("name", user.Name).Msg("failed to update credentials")
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.logger.Info().Str("name", user.Name).Msg("password changed")

	return nil
}

// DeleteAccount verifies the password and removes the account.
func (s *userService) DeleteAccount(ctx context.Context, creds *model.Credentials) error {
	if err := validateCredentials(creds); err != nil {
		return err
	}

	user, err := s.verify(ctx, creds.Name, creds.Password)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user.Name); err != nil {
		if errors.Is(err, model.ErrCredentials) {
			return err
		}
		s.logger.Error().Err(err).Str("name", user.Name).Msg("failed to delete user")
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info().Str("name", user.Name).Msg("account deleted")

	return nil
}

// TopUp adds funds to a user's balance and returns the updated account.
func (s *userService) TopUp(ctx context.Context, userID int64, amount float64) (*model.User, error) {
	if amount <= 0 {
		return nil, model.NewValidationError("amount must be greater than zero")
	}

	if err := s.userRepo.AdjustBalance(ctx, nil, userID, amount); err != nil {
		if errors.Is(err, model.ErrCredentials) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to top up balance")
		return nil, fmt.Errorf("failed to top up: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get user")
		return nil, fmt.Errorf("failed to top up: %w", err)
	}
	if user == nil {
		return nil, model.ErrCredentials
	}

	s.logger.Info().
		Int64("user_id", userID).
		Float64("amount", amount).
		Msg("balance topped up")

	return user, nil
}

// GetByID retrieves a user by id.
func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrCredentials
	}
	return user, nil
}

// verify loads a user by name and checks their password.
func (s *userService) verify(ctx context.Context, name, password string) (*model.User, error) {
	user, err := s.userRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get user by name")
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Warn().Str("name", name).Msg("credential check failed")
		return nil, model.ErrCredentials
	}

	return user, nil
}

// token signs an access token for the user.
func (s *userService) token(user *model.User) (*model.TokenResponse, error) {
	signed, err := s.issuer.Sign(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &model.TokenResponse{AccessToken: signed}, nil
}

// validateCredentials validates a register/login payload.
func validateCredentials(creds *model.Credentials) error {
	if creds == nil {
		return model.NewValidationError("request body is required")
	}
	if strings.TrimSpace(creds.Name) == "" {
		return model.NewValidationError("name is required")
	}
	if creds.Password == "" {
		return model.NewValidationError("password is required")
	}
	return nil
}
