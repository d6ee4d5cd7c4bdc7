package interfaces

import (
	"context"

	"github.com/haguru/cookbook/internal/models"
)

type UserService interface {
	RegisterUser(ctx context.Context, username, password string) (*models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (*models.User, error)
	GetProfile(ctx context.Context, username string) (*models.User, error)
}
