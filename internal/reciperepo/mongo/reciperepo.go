package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/constants"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models"
	mongoClient "github.com/haguru/cookbook/pkg/databases/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	textIndexName    = "recipes_text"
	addedOnIndexName = "recipes_added_on"
)

// recipeDocument is the stored shape of a recipe. Documents written before
// added_on or views existed decode with zero values.
type recipeDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	CategoryName     string             `bson:"category_name"`
	RecipeName       string             `bson:"recipe_name"`
	ShortDescription string             `bson:"recipe_short_description"`
	Ingredients      string             `bson:"recipe_ingredients"`
	Steps            string             `bson:"recipe_steps"`
	PrepTime         string             `bson:"recipe_prep_time"`
	CookingTime      string             `bson:"recipe_cooking_time"`
	ImageURL         string             `bson:"recipe_image_url"`
	CreatedBy        string             `bson:"created_by"`
	Views            int64              `bson:"views"`
	AddedOn          time.Time          `bson:"added_on"`
}

func (d recipeDocument) toModel() models.Recipe {
	return models.Recipe{
		ID:               d.ID.Hex(),
		CategoryName:     d.CategoryName,
		RecipeName:       d.RecipeName,
		ShortDescription: d.ShortDescription,
		Ingredients:      d.Ingredients,
		Steps:            d.Steps,
		PrepTime:         d.PrepTime,
		CookingTime:      d.CookingTime,
		ImageURL:         d.ImageURL,
		CreatedBy:        d.CreatedBy,
		Views:            d.Views,
		AddedOn:          d.AddedOn,
	}
}

// recipeFields maps a recipe to the stored field names, without the id.
func recipeFields(r models.Recipe) bson.M {
	return bson.M{
		"category_name":            r.CategoryName,
		"recipe_name":              r.RecipeName,
		"recipe_short_description": r.ShortDescription,
		"recipe_ingredients":       r.Ingredients,
		"recipe_steps":             r.Steps,
		"recipe_prep_time":         r.PrepTime,
		"recipe_cooking_time":      r.CookingTime,
		"recipe_image_url":         r.ImageURL,
		"created_by":               r.CreatedBy,
		"views":                    r.Views,
		"added_on":                 r.AddedOn,
	}
}

// parseID converts a hex id, failing with apperrors.ErrMalformedIdentifier.
func parseID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", apperrors.ErrMalformedIdentifier, id)
	}
	return objID, nil
}

// MongoRecipeRepository implements RecipeRepository on the generic DBClient.
type MongoRecipeRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoRecipeRepository creates a new MongoDB recipe repository.
func NewMongoRecipeRepository(dbClient interfaces.DBClient) (interfaces.RecipeRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoRecipeRepository{dbClient: dbClient}, nil
}

func (r *MongoRecipeRepository) findMany(ctx context.Context, op string, filter bson.M, opts interfaces.FindOptions) ([]models.Recipe, error) {
	var docs []recipeDocument
	if err := r.dbClient.FindMany(ctx, constants.RecipesCollection, filter, &docs, opts); err != nil {
		return nil, mongoClient.WrapError(op, err)
	}

	recipes := make([]models.Recipe, 0, len(docs))
	for _, doc := range docs {
		recipes = append(recipes, doc.toModel())
	}
	return recipes, nil
}

// ListAll returns every recipe, newest first. Ties fall back to insertion order.
func (r *MongoRecipeRepository) ListAll(ctx context.Context) ([]models.Recipe, error) {
	return r.findMany(ctx, "list recipes", bson.M{}, interfaces.FindOptions{
		Sort: []interfaces.SortField{
			{Field: "added_on", Descending: true},
			{Field: "_id", Descending: true},
		},
	})
}

// Search runs a $text query, ordered by textScore. The query is passed to the
// server as typed.
func (r *MongoRecipeRepository) Search(ctx context.Context, query string, limit int64) ([]models.Recipe, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	return r.findMany(ctx, "search recipes", filter, interfaces.FindOptions{
		ByTextScore: true,
		Limit:       limit,
	})
}

// GetRecipeByID returns nil, nil for a well-formed id with no match.
func (r *MongoRecipeRepository) GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	objID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc recipeDocument
	if err := r.dbClient.FindOne(ctx, constants.RecipesCollection, bson.M{"_id": objID}, &doc); err != nil {
		if errors.Is(err, mongosdk.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mongoClient.WrapError("get recipe", err)
	}

	recipe := doc.toModel()
	return &recipe, nil
}

// IncrementViews applies a single $inc, so concurrent viewers never lose counts.
func (r *MongoRecipeRepository) IncrementViews(ctx context.Context, id string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	matched, err := r.dbClient.UpdateOne(ctx, constants.RecipesCollection,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	if err != nil {
		return mongoClient.WrapError("increment views", err)
	}
	if matched == 0 {
		return fmt.Errorf("increment views: %w: recipe %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// AddRecipe inserts the recipe and returns the generated id.
func (r *MongoRecipeRepository) AddRecipe(ctx context.Context, recipe models.Recipe) (string, error) {
	insertedID, err := r.dbClient.InsertOne(ctx, constants.RecipesCollection, recipeFields(recipe))
	if err != nil {
		return "", mongoClient.WrapError("add recipe", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to ObjectID, got %T", insertedID)
	}
	return objID.Hex(), nil
}

// ReplaceRecipe overwrites every field of the stored document.
func (r *MongoRecipeRepository) ReplaceRecipe(ctx context.Context, id string, recipe models.Recipe) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	matched, err := r.dbClient.ReplaceOne(ctx, constants.RecipesCollection, bson.M{"_id": objID}, recipeFields(recipe))
	if err != nil {
		return mongoClient.WrapError("replace recipe", err)
	}
	if matched == 0 {
		return fmt.Errorf("replace recipe: %w: recipe %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// DeleteRecipe removes the recipe; a missing id is not an error.
func (r *MongoRecipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	objID, err := parseID(id)
	if err != nil {
		return err
	}

	if _, err := r.dbClient.DeleteOne(ctx, constants.RecipesCollection, bson.M{"_id": objID}); err != nil {
		return mongoClient.WrapError("delete recipe", err)
	}
	return nil
}

// EnsureIndices creates the wildcard text index used by Search and the
// added_on index used by ListAll.
func (r *MongoRecipeRepository) EnsureIndices(ctx context.Context) error {
	indexes := []mongosdk.IndexModel{
		{
			Keys:    bson.D{{Key: "$**", Value: "text"}},
			Options: options.Index().SetName(textIndexName),
		},
		{
			Keys:    bson.D{{Key: "added_on", Value: -1}},
			Options: options.Index().SetName(addedOnIndexName),
		},
	}
	if err := r.dbClient.EnsureSchema(ctx, constants.RecipesCollection, indexes); err != nil {
		return mongoClient.WrapError("ensure recipe indices", err)
	}
	return nil
}
