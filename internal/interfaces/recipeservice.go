package interfaces

import (
	"context"

	"github.com/haguru/cookbook/internal/models"
)

type RecipeService interface {
	ListRecipes(ctx context.Context, query string) ([]models.Recipe, error)
	SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error)
	ViewRecipe(ctx context.Context, id string) (*models.Recipe, []models.Category, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	AddRecipe(ctx context.Context, username string, input models.RecipeInput) (string, error)
	UpdateRecipe(ctx context.Context, username, id string, input models.RecipeInput) error
	DeleteRecipe(ctx context.Context, username, id string) error
}
