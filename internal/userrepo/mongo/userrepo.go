package mongo

import (
	"context"
	"errors"
	"fmt"

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
	MAXLENGTH_USERNAME = 64
	usernameIndexName  = "users_username_unique"
)

// userDocument is the stored shape of a user.
type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	Password string             `bson:"password"`
}

// MongoUserRepository implements UserRepository using the generic DBClient.
type MongoUserRepository struct {
	dbClient interfaces.DBClient
}

// NewMongoUserRepository creates a new MongoDB repository instance.
func NewMongoUserRepository(dbClient interfaces.DBClient) (interfaces.UserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &MongoUserRepository{dbClient: dbClient}, nil
}

// AddUser inserts the user. The unique index on username turns a concurrent
// duplicate registration into apperrors.ErrDuplicateUser.
func (r *MongoUserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	doc := bson.M{
		"username": user.Username,
		"password": user.HashedPassword,
	}

	insertedID, err := r.dbClient.InsertOne(ctx, constants.UsersCollection, doc)
	if err != nil {
		if mongosdk.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: %q", apperrors.ErrDuplicateUser, user.Username)
		}
		return "", mongoClient.WrapError("add user", err)
	}

	objID, ok := insertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to assert inserted ID to ObjectID, got %T", insertedID)
	}
	return objID.Hex(), nil
}

// GetUserByUsername returns nil, nil when no user has that exact username.
func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if len(username) == 0 || len(username) > MAXLENGTH_USERNAME {
		return nil, nil
	}

	var doc userDocument
	err := r.dbClient.FindOne(ctx, constants.UsersCollection, bson.M{"username": username}, &doc)
	if err != nil {
		if errors.Is(err, mongosdk.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mongoClient.WrapError("get user by username", err)
	}

	return &models.User{
		ID:             doc.ID.Hex(),
		Username:       doc.Username,
		HashedPassword: doc.Password,
	}, nil
}

// EnsureIndices creates the unique username index.
func (r *MongoUserRepository) EnsureIndices(ctx context.Context) error {
	indexModel := mongosdk.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(usernameIndexName),
	}
	if err := r.dbClient.EnsureSchema(ctx, constants.UsersCollection, indexModel); err != nil {
		return mongoClient.WrapError("ensure user indices", err)
	}
	return nil
}
