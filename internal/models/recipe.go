package models

import "time"

// RecipeInput is the user-editable part of a recipe, as submitted by the
// add and edit forms.
type RecipeInput struct {
	CategoryName     string
	RecipeName       string
	ShortDescription string
	Ingredients      string
	Steps            string
	PrepTime         string
	CookingTime      string
	ImageURL         string
}

// Recipe is a stored recipe document.
type Recipe struct {
	ID               string    `db:"id"`
	CategoryName     string    `db:"category_name"`
	RecipeName       string    `db:"recipe_name"`
	ShortDescription string    `db:"recipe_short_description"`
	Ingredients      string    `db:"recipe_ingredients"`
	Steps            string    `db:"recipe_steps"`
	PrepTime         string    `db:"recipe_prep_time"`
	CookingTime      string    `db:"recipe_cooking_time"`
	ImageURL         string    `db:"recipe_image_url"`
	CreatedBy        string    `db:"created_by"`
	Views            int64     `db:"views"`
	AddedOn          time.Time `db:"added_on"`
}

// NewRecipe builds a recipe that has not been viewed yet.
func NewRecipe(input RecipeInput, createdBy string, addedOn time.Time) *Recipe {
	return &Recipe{
		CategoryName:     input.CategoryName,
		RecipeName:       input.RecipeName,
		ShortDescription: input.ShortDescription,
		Ingredients:      input.Ingredients,
		Steps:            input.Steps,
		PrepTime:         input.PrepTime,
		CookingTime:      input.CookingTime,
		ImageURL:         input.ImageURL,
		CreatedBy:        createdBy,
		Views:            0,
		AddedOn:          addedOn,
	}
}

// Input returns the editable fields, used to prefill the edit form.
func (r Recipe) Input() RecipeInput {
	return RecipeInput{
		CategoryName:     r.CategoryName,
		RecipeName:       r.RecipeName,
		ShortDescription: r.ShortDescription,
		Ingredients:      r.Ingredients,
		Steps:            r.Steps,
		PrepTime:         r.PrepTime,
		CookingTime:      r.CookingTime,
		ImageURL:         r.ImageURL,
	}
}

// OwnedBy reports whether username created the recipe. Recipes without a
// recorded creator are owned by nobody.
func (r Recipe) OwnedBy(username string) bool {
	return r.CreatedBy != "" && r.CreatedBy == username
}
