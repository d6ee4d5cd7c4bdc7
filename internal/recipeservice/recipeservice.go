package recipeservice

import (
	"context"
	"fmt"
	"time"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models"
	"github.com/haguru/cookbook/pkg/helper"
)

// RecipeService enforces ownership and insert stamping on top of the repositories.
type RecipeService struct {
	RecipeRepo   interfaces.RecipeRepository
	CategoryRepo interfaces.CategoryRepository
	Logger       interfaces.Logger
	Clock        func() time.Time
}

func NewRecipeService(recipes interfaces.RecipeRepository, categories interfaces.CategoryRepository, logger interfaces.Logger) *RecipeService {
	return &RecipeService{
		RecipeRepo:   recipes,
		CategoryRepo: categories,
		Logger:       logger,
		Clock:        time.Now,
	}
}

// ListRecipes searches when query is set and lists everything otherwise.
func (s *RecipeService) ListRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	if query != "" {
		return s.SearchRecipes(ctx, query)
	}

	recipes, err := s.RecipeRepo.ListAll(ctx)
	if err != nil {
		s.Logger.Error(ErrListingRecipes, "func", helper.GetFuncName(), "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingRecipes, err)
	}
	return recipes, nil
}

// SearchRecipes passes query to the store's full-text search unchanged and
// returns at most SearchLimit recipes.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Searching recipes", "func", funcName, "query", query)

	recipes, err := s.RecipeRepo.Search(ctx, query, SearchLimit)
	if err != nil {
		s.Logger.Error(ErrSearchingRecipes, "func", funcName, "query", query, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrSearchingRecipes, err)
	}
	return recipes, nil
}

// GetRecipe loads a recipe without counting a view.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	recipe, err := s.RecipeRepo.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFindingRecipe, err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("%w: recipe %s", apperrors.ErrNotFound, id)
	}
	return recipe, nil
}

// ViewRecipe loads a recipe, counts the view and lists the categories. The
// returned recipe was read before the increment, so its Views lags by one.
func (s *RecipeService) ViewRecipe(ctx context.Context, id string) (*models.Recipe, []models.Category, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "id", id)

	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if err := s.RecipeRepo.IncrementViews(ctx, id); err != nil {
		s.Logger.Error(ErrCountingView, "func", funcName, "id", id, "error", err)
		return nil, nil, fmt.Errorf("%s: %w", ErrCountingView, err)
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	return recipe, categories, nil
}

// ListCategories returns all categories sorted by name.
func (s *RecipeService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.CategoryRepo.ListCategories(ctx)
	if err != nil {
		s.Logger.Error(ErrListingCategory, "func", helper.GetFuncName(), "error", err)
		return nil, fmt.Errorf("%s: %w", ErrListingCategory, err)
	}
	return categories, nil
}

// AddRecipe stores a new recipe owned by username, stamped with the current
// UTC time and zero views.
func (s *RecipeService) AddRecipe(ctx context.Context, username string, input models.RecipeInput) (string, error) {
	funcName := helper.GetFuncName()
	if username == "" {
		return "", apperrors.ErrUnauthenticated
	}

	recipe := models.NewRecipe(input, username, s.Clock().UTC())
	id, err := s.RecipeRepo.AddRecipe(ctx, *recipe)
	if err != nil {
		s.Logger.Error(ErrAddingRecipe, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrAddingRecipe, err)
	}

	s.Logger.Info("Recipe added", "func", funcName, "user", username, "id", id)
	return id, nil
}

// UpdateRecipe replaces the editable fields of a recipe owned by username.
// views and added_on are carried over so the counter never goes backwards.
func (s *RecipeService) UpdateRecipe(ctx context.Context, username, id string, input models.RecipeInput) error {
	funcName := helper.GetFuncName()
	if username == "" {
		return apperrors.ErrUnauthenticated
	}

	existing, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if !existing.OwnedBy(username) {
		s.Logger.Warn("Refusing edit of recipe owned by another user", "func", funcName, "user", username, "id", id)
		return fmt.Errorf("%w: recipe %s", apperrors.ErrUnauthorized, id)
	}

	replacement := models.NewRecipe(input, username, existing.AddedOn)
	replacement.Views = existing.Views
	if err := s.RecipeRepo.ReplaceRecipe(ctx, id, *replacement); err != nil {
		s.Logger.Error(ErrUpdatingRecipe, "func", funcName, "user", username, "id", id, "error", err)
		return fmt.Errorf("%s: %w", ErrUpdatingRecipe, err)
	}

	s.Logger.Info("Recipe updated", "func", funcName, "user", username, "id", id)
	return nil
}

// DeleteRecipe removes a recipe owned by username. Deleting a recipe that no
// longer exists succeeds.
func (s *RecipeService) DeleteRecipe(ctx context.Context, username, id string) error {
	funcName := helper.GetFuncName()
	if username == "" {
		return apperrors.ErrUnauthenticated
	}

	existing, err := s.RecipeRepo.GetRecipeByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrFindingRecipe, err)
	}
	if existing == nil {
		s.Logger.Debug("Recipe already gone", "func", funcName, "id", id)
		return nil
	}
	if !existing.OwnedBy(username) {
		s.Logger.Warn("Refusing delete of recipe owned by another user", "func", funcName, "user", username, "id", id)
		return fmt.Errorf("%w: recipe %s", apperrors.ErrUnauthorized, id)
	}

	if err := s.RecipeRepo.DeleteRecipe(ctx, id); err != nil {
		s.Logger.Error(ErrDeletingRecipe, "func", funcName, "user", username, "id", id, "error", err)
		return fmt.Errorf("%s: %w", ErrDeletingRecipe, err)
	}

	s.Logger.Info("Recipe deleted", "func", funcName, "user", username, "id", id)
	return nil
}
