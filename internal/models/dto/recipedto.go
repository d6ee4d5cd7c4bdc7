package dto

import (
	"strings"

	"github.com/haguru/cookbook/internal/models"
)

// RecipeRequestDTO is the add/edit recipe form. Field names match the
// form inputs and the stored document fields.
type RecipeRequestDTO struct {
	CategoryName     string `mapstructure:"category_name" validate:"required,max=100"`
	RecipeName       string `mapstructure:"recipe_name" validate:"required,max=200"`
	ShortDescription string `mapstructure:"recipe_short_description" validate:"max=500"`
	Ingredients      string `mapstructure:"recipe_ingredients" validate:"required"`
	Steps            string `mapstructure:"recipe_steps" validate:"required"`
	PrepTime         string `mapstructure:"recipe_prep_time" validate:"max=50"`
	CookingTime      string `mapstructure:"recipe_cooking_time" validate:"max=50"`
	ImageURL         string `mapstructure:"recipe_image_url" validate:"omitempty,url"`
}

// ToInput trims surrounding whitespace and converts the form to a model input.
func (d RecipeRequestDTO) ToInput() models.RecipeInput {
	return models.RecipeInput{
		CategoryName:     strings.TrimSpace(d.CategoryName),
		RecipeName:       strings.TrimSpace(d.RecipeName),
		ShortDescription: strings.TrimSpace(d.ShortDescription),
		Ingredients:      strings.TrimSpace(d.Ingredients),
		Steps:            strings.TrimSpace(d.Steps),
		PrepTime:         strings.TrimSpace(d.PrepTime),
		CookingTime:      strings.TrimSpace(d.CookingTime),
		ImageURL:         strings.TrimSpace(d.ImageURL),
	}
}
