package interfaces

import (
	"context"

	"github.com/haguru/cookbook/internal/models"
)

// UserRepository defines the contract for storing and retrieving User data.
type UserRepository interface {
	// AddUser fails with apperrors.ErrDuplicateUser when the username is taken.
	AddUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername returns nil, nil when no user matches.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	EnsureIndices(ctx context.Context) error
}
