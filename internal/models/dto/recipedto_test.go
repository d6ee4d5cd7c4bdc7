package dto

import (
	"strings"
	"testing"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/haguru/cookbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecipeDTO() RecipeRequestDTO {
	return RecipeRequestDTO{
		CategoryName: "Dessert",
		RecipeName:   "  Chocolate Cake ",
		Ingredients:  "flour\ncocoa\n",
		Steps:        "bake",
		ImageURL:     "https://example.com/cake.jpg",
	}
}

func TestRecipeRequestDTO_ToInput(t *testing.T) {
	got := validRecipeDTO().ToInput()

	assert.Equal(t, models.RecipeInput{
		CategoryName: "Dessert",
		RecipeName:   "Chocolate Cake",
		Ingredients:  "flour\ncocoa",
		Steps:        "bake",
		ImageURL:     "https://example.com/cake.jpg",
	}, got)
}

func TestRecipeRequestDTO_Validation(t *testing.T) {
	validator := structValidator.New()

	tests := []struct {
		name    string
		mutate  func(d *RecipeRequestDTO)
		wantErr bool
	}{
		{name: "valid", mutate: func(d *RecipeRequestDTO) {}, wantErr: false},
		{name: "no image", mutate: func(d *RecipeRequestDTO) { d.ImageURL = "" }, wantErr: false},
		{name: "missing name", mutate: func(d *RecipeRequestDTO) { d.RecipeName = "" }, wantErr: true},
		{name: "missing category", mutate: func(d *RecipeRequestDTO) { d.CategoryName = "" }, wantErr: true},
		{name: "bad image url", mutate: func(d *RecipeRequestDTO) { d.ImageURL = "not a url" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validRecipeDTO()
			tt.mutate(&d)
			err := validator.Struct(d)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserSignupRequestDTO_Validation(t *testing.T) {
	validator := structValidator.New()
	require.NoError(t, RegisterValidations(validator))

	tests := []struct {
		name    string
		dto     UserSignupRequestDTO
		wantErr bool
	}{
		{name: "valid", dto: UserSignupRequestDTO{Username: "Alice", Password: "secret1"}, wantErr: false},
		{name: "short username", dto: UserSignupRequestDTO{Username: "al", Password: "secret1"}, wantErr: true},
		{name: "username with space", dto: UserSignupRequestDTO{Username: "al ice", Password: "secret1"}, wantErr: true},
		{name: "username with tab", dto: UserSignupRequestDTO{Username: "al\tice", Password: "secret1"}, wantErr: true},
		{name: "username with dot", dto: UserSignupRequestDTO{Username: "john.doe", Password: "secret1"}, wantErr: false},
		{name: "username with underscore", dto: UserSignupRequestDTO{Username: "mary_k", Password: "secret1"}, wantErr: false},
		{name: "unicode username", dto: UserSignupRequestDTO{Username: "zoë", Password: "secret1"}, wantErr: false},
		{name: "72 byte password", dto: UserSignupRequestDTO{Username: "alice", Password: strings.Repeat("a", 72)}, wantErr: false},
		{name: "73 byte password", dto: UserSignupRequestDTO{Username: "alice", Password: strings.Repeat("a", 73)}, wantErr: true},
		{name: "multibyte password over 72 bytes", dto: UserSignupRequestDTO{Username: "alice", Password: strings.Repeat("é", 40)}, wantErr: true},
		{name: "missing password", dto: UserSignupRequestDTO{Username: "alice"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Struct(tt.dto)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoginRequestDTO_Validation(t *testing.T) {
	validator := structValidator.New()
	require.NoError(t, RegisterValidations(validator))

	assert.NoError(t, validator.Struct(LoginRequestDTO{Username: "alice", Password: "secret1"}))
	assert.Error(t, validator.Struct(LoginRequestDTO{Username: "alice", Password: strings.Repeat("é", 40)}))
}

func TestMaxBytes_BadParam(t *testing.T) {
	validator := structValidator.New()
	require.NoError(t, RegisterValidations(validator))

	assert.Error(t, validator.Var("abc", "maxbytes=lots"))
	assert.NoError(t, validator.Var("abc", "maxbytes=3"))
	assert.Error(t, validator.Var("abcd", "maxbytes=3"))
}
