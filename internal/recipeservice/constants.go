package recipeservice

const (
	// SearchLimit caps every search result.
	SearchLimit int64 = 10

	ErrListingRecipes   = "failed to list recipes"
	ErrSearchingRecipes = "failed to search recipes"
	ErrFindingRecipe    = "failed to find recipe"
	ErrCountingView     = "failed to count recipe view"
	ErrListingCategory  = "failed to list categories"
	ErrAddingRecipe     = "failed to add recipe"
	ErrUpdatingRecipe   = "failed to update recipe"
	ErrDeletingRecipe   = "failed to delete recipe"
)
