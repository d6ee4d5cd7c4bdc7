package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/constants"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models"
	"github.com/haguru/cookbook/pkg/databases/postgres"

	"github.com/google/uuid"
)

const (
	textSearchConfig = "english"

	recipeColumns = `id, category_name, recipe_name, recipe_short_description, recipe_ingredients,
		recipe_steps, recipe_prep_time, recipe_cooking_time, recipe_image_url, created_by, views, added_on`
)

// recipesSchema keeps a generated tsvector over every text column, which
// plays the role of Mongo's wildcard text index.
var recipesSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + constants.RecipesCollection + ` (
		id UUID PRIMARY KEY,
		category_name TEXT NOT NULL DEFAULT '',
		recipe_name TEXT NOT NULL DEFAULT '',
		recipe_short_description TEXT NOT NULL DEFAULT '',
		recipe_ingredients TEXT NOT NULL DEFAULT '',
		recipe_steps TEXT NOT NULL DEFAULT '',
		recipe_prep_time TEXT NOT NULL DEFAULT '',
		recipe_cooking_time TEXT NOT NULL DEFAULT '',
		recipe_image_url TEXT NOT NULL DEFAULT '',
		created_by TEXT NOT NULL DEFAULT '',
		views BIGINT NOT NULL DEFAULT 0,
		added_on TIMESTAMPTZ NOT NULL DEFAULT now(),
		search_vector tsvector GENERATED ALWAYS AS (
			to_tsvector('` + textSearchConfig + `',
				category_name || ' ' || recipe_name || ' ' || recipe_short_description || ' ' ||
				recipe_ingredients || ' ' || recipe_steps || ' ' || recipe_prep_time || ' ' ||
				recipe_cooking_time || ' ' || created_by)
		) STORED
	)`,
	`CREATE INDEX IF NOT EXISTS recipes_search_idx ON ` + constants.RecipesCollection + ` USING GIN (search_vector)`,
	`CREATE INDEX IF NOT EXISTS recipes_added_on_idx ON ` + constants.RecipesCollection + ` (added_on DESC)`,
}

// PostgresRecipeRepository implements RecipeRepository with UUID keys.
type PostgresRecipeRepository struct {
	dbClient *postgres.PostgresDatabaseClient
}

var _ interfaces.RecipeRepository = (*PostgresRecipeRepository)(nil)

func NewPostgresRecipeRepository(dbClient *postgres.PostgresDatabaseClient) (*PostgresRecipeRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &PostgresRecipeRepository{dbClient: dbClient}, nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", apperrors.ErrMalformedIdentifier, id)
	}
	return parsed, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (models.Recipe, error) {
	var r models.Recipe
	err := row.Scan(&r.ID, &r.CategoryName, &r.RecipeName, &r.ShortDescription, &r.Ingredients,
		&r.Steps, &r.PrepTime, &r.CookingTime, &r.ImageURL, &r.CreatedBy, &r.Views, &r.AddedOn)
	if err == nil {
		r.AddedOn = r.AddedOn.UTC()
	}
	return r, err
}

func (r *PostgresRecipeRepository) queryRecipes(ctx context.Context, op, query string, args ...interface{}) ([]models.Recipe, error) {
	rows, err := r.dbClient.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.WrapError(op, err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, postgres.WrapError(op, err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.WrapError(op, err)
	}
	return recipes, nil
}

// ListAll returns every recipe, newest first.
func (r *PostgresRecipeRepository) ListAll(ctx context.Context) ([]models.Recipe, error) {
	return r.queryRecipes(ctx, "list recipes",
		`SELECT `+recipeColumns+` FROM `+constants.RecipesCollection+` ORDER BY added_on DESC, id DESC`)
}

// Search matches any of the query's words, ranked with ts_rank.
func (r *PostgresRecipeRepository) Search(ctx context.Context, query string, limit int64) ([]models.Recipe, error) {
	tsQuery := buildTSQuery(query)
	if tsQuery == "" {
		return []models.Recipe{}, nil
	}

	return r.queryRecipes(ctx, "search recipes",
		`SELECT `+recipeColumns+` FROM `+constants.RecipesCollection+`
		WHERE search_vector @@ to_tsquery('`+textSearchConfig+`', $1)
		ORDER BY ts_rank(search_vector, to_tsquery('`+textSearchConfig+`', $1)) DESC
		LIMIT $2`,
		tsQuery, limit)
}

// buildTSQuery ORs the alphanumeric words of query, which mirrors how a
// Mongo $text search treats separate terms. Punctuation is dropped so user
// input can never form tsquery operators.
func buildTSQuery(query string) string {
	var terms []string
	for _, word := range strings.Fields(query) {
		term := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToLower(r)
			}
			return -1
		}, word)
		if term != "" {
			terms = append(terms, term)
		}
	}
	return strings.Join(terms, " | ")
}

// GetRecipeByID returns nil, nil for a well-formed id with no match.
func (r *PostgresRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}

	recipe, err := scanRecipe(r.dbClient.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM `+constants.RecipesCollection+` WHERE id = $1`, parsed.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.WrapError("get recipe", err)
	}
	return &recipe, nil
}

// IncrementViews is a single UPDATE, so concurrent viewers never lose counts.
func (r *PostgresRecipeRepository) IncrementViews(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.dbClient.Exec(ctx,
		`UPDATE `+constants.RecipesCollection+` SET views = views + 1 WHERE id = $1`, parsed.String())
	return checkAffected("increment views", id, res, err)
}

// AddRecipe inserts the recipe under a new UUID.
func (r *PostgresRecipeRepository) AddRecipe(ctx context.Context, recipe models.Recipe) (string, error) {
	id := uuid.NewString()

	_, err := r.dbClient.Exec(ctx,
		`INSERT INTO `+constants.RecipesCollection+` (`+recipeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		id, recipe.CategoryName, recipe.RecipeName, recipe.ShortDescription, recipe.Ingredients,
		recipe.Steps, recipe.PrepTime, recipe.CookingTime, recipe.ImageURL, recipe.CreatedBy,
		recipe.Views, recipe.AddedOn)
	if err != nil {
		return "", postgres.WrapError("add recipe", err)
	}
	return id, nil
}

// ReplaceRecipe overwrites every column except the id.
func (r *PostgresRecipeRepository) ReplaceRecipe(ctx context.Context, id string, recipe models.Recipe) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.dbClient.Exec(ctx,
		`UPDATE `+constants.RecipesCollection+` SET
			category_name = $2, recipe_name = $3, recipe_short_description = $4,
			recipe_ingredients = $5, recipe_steps = $6, recipe_prep_time = $7,
			recipe_cooking_time = $8, recipe_image_url = $9, created_by = $10,
			views = $11, added_on = $12
		WHERE id = $1`,
		parsed.String(), recipe.CategoryName, recipe.RecipeName, recipe.ShortDescription,
		recipe.Ingredients, recipe.Steps, recipe.PrepTime, recipe.CookingTime, recipe.ImageURL,
		recipe.CreatedBy, recipe.Views, recipe.AddedOn)
	return checkAffected("replace recipe", id, res, err)
}

// DeleteRecipe removes the recipe; a missing id is not an error.
func (r *PostgresRecipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	if _, err := r.dbClient.Exec(ctx,
		`DELETE FROM `+constants.RecipesCollection+` WHERE id = $1`, parsed.String()); err != nil {
		return postgres.WrapError("delete recipe", err)
	}
	return nil
}

// EnsureIndices creates the recipes table with its search and added_on indexes.
func (r *PostgresRecipeRepository) EnsureIndices(ctx context.Context) error {
	if err := r.dbClient.EnsureSchema(ctx, constants.RecipesCollection, recipesSchema); err != nil {
		return postgres.WrapError("ensure recipes table", err)
	}
	return nil
}

func checkAffected(op, id string, res sql.Result, err error) error {
	if err != nil {
		return postgres.WrapError(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return postgres.WrapError(op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w: recipe %s", op, apperrors.ErrNotFound, id)
	}
	return nil
}
