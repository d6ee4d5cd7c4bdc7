package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models"
	"github.com/haguru/cookbook/pkg/helper"
)

type UserService struct {
	UserRepo interfaces.UserRepository
	Hasher   interfaces.PasswordHasher
	Logger   interfaces.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(repo interfaces.UserRepository, hasher interfaces.PasswordHasher, logger interfaces.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		Hasher:   hasher,
		Logger:   logger,
	}
}

// NormalizeUsername is the canonical stored form of a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// RegisterUser hashes the password and stores the user under the lowercased
// name. A taken name, in any casing, fails with apperrors.ErrDuplicateUser.
func (s *UserService) RegisterUser(ctx context.Context, username, password string) (*models.User, error) {
	funcName := helper.GetFuncName()
	username = NormalizeUsername(username)
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	if username == "" {
		return nil, errors.New(ErrEmptyUsername)
	}

	hashedPassword, err := s.Hasher.Hash(password)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	user := models.NewUser(username, hashedPassword)
	userID, err := s.UserRepo.AddUser(ctx, *user)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			s.Logger.Info("Username already taken", "func", funcName, "user", username)
		} else {
			s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "user", username, "error", err)
		}
		return nil, fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}
	user.ID = userID

	s.Logger.Info("User registered successfully", "func", funcName, "user", username, "ID", userID)
	return user, nil
}

// AuthenticateUser verifies credentials. Both an unknown username and a wrong
// password wrap apperrors.ErrInvalidCredentials; only the logs tell them apart.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	funcName := helper.GetFuncName()
	username = NormalizeUsername(username)
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	defer s.Logger.Debug("Exiting function", "func", funcName, "user", username)

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		s.Logger.Warn(ErrUserNotFound, "func", funcName, "user", username)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidCredentials, ErrUserNotFound)
	}

	if !s.Hasher.Verify(password, user.HashedPassword) {
		s.Logger.Warn(ErrInvalidPassword, "func", funcName, "user", username)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidCredentials, ErrInvalidPassword)
	}

	s.Logger.Info("User authenticated successfully", "func", funcName, "user", username)
	return user, nil
}

// GetProfile loads the user behind a session.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	funcName := helper.GetFuncName()
	username = NormalizeUsername(username)
	s.Logger.Debug("Entering function", "func", funcName, "user", username)

	user, err := s.UserRepo.GetUserByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrRetrievingUser, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
	}
	return user, nil
}
