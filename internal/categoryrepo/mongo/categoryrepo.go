package mongo

import (
	"context"
	"fmt"

	"github.com/haguru/cookbook/internal/constants"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models"
	mongoClient "github.com/haguru/cookbook/pkg/databases/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongosdk "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type categoryDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CategoryName string             `bson:"category_name"`
}

// MongoCategoryRepository reads categories through the generic DBClient.
type MongoCategoryRepository struct {
	dbClient interfaces.DBClient
}

func NewMongoCategoryRepository(dbClient interfaces.DBClient) (interfaces.CategoryRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoCategoryRepository{dbClient: dbClient}, nil
}

// ListCategories returns every category ordered by name.
func (r *MongoCategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var docs []categoryDocument
	err := r.dbClient.FindMany(ctx, constants.CategoriesCollection, bson.M{}, &docs, interfaces.FindOptions{
		Sort: []interfaces.SortField{{Field: "category_name"}},
	})
	if err != nil {
		return nil, mongoClient.WrapError("list categories", err)
	}

	categories := make([]models.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, models.Category{ID: doc.ID.Hex(), CategoryName: doc.CategoryName})
	}
	return categories, nil
}

// EnsureIndices creates the category_name index used for sorting.
func (r *MongoCategoryRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "category_name", Value: 1}},
		Options: options.Index().SetName("categories_name"),
	}
	if err := r.dbClient.EnsureSchema(ctx, constants.CategoriesCollection, indexModel); err != nil {
		return mongoClient.WrapError("ensure category indices", err)
	}
	return nil
}
