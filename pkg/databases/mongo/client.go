package mongo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/haguru/cookbook/config"
	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

const (
	MAXPOOLSIZE = 20
	IDFIELD     = "_id"
	SCOREFIELD  = "score"
)

// allowedOperators are the only $-prefixed keys that survive sanitizing.
var allowedOperators = map[string]bool{
	"$inc":    true,
	"$set":    true,
	"$text":   true,
	"$search": true,
	"$meta":   true,
}

// MongoDBClient implements the interfaces.DBClient interface for MongoDB operations.
type MongoDBClient struct {
	ServerOpts       *options.ServerAPIOptions
	client           *mongo.Client
	db               *mongo.Database
	databaseName     string
	timeout          time.Duration
	validCollections map[string]bool
	validFields      map[string]bool
	logger           interfaces.Logger
}

// NewMongoDB returns a client that is ready to Connect.
func NewMongoDB(dbConfig *config.MongoDBConfig, logger interfaces.Logger) (interfaces.DBClient, error) {
	if dbConfig == nil {
		return nil, fmt.Errorf("MongoDBClient: config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("MongoDBClient: logger cannot be nil")
	}

	db := &MongoDBClient{
		databaseName:     dbConfig.DatabaseName,
		timeout:          dbConfig.Timeout,
		validCollections: config.ListToMap(dbConfig.ValidCollections),
		validFields:      config.ListToMap(dbConfig.ValidFields),
		logger:           logger,
	}
	if dbConfig.Options.APIVersion != "" {
		db.ServerOpts = config.BuildServerAPIOptions(dbConfig.Options)
	}

	return db, nil
}

// Connect opens the client and selects the configured database, or the
// database named in the DSN path when none is configured.
func (m *MongoDBClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("MongoDBClient: DSN is empty")
	}
	if !strings.HasPrefix(dsn, "mongodb://") && !strings.HasPrefix(dsn, "mongodb+srv://") {
		return fmt.Errorf("MongoDBClient: Invalid DSN format, expected 'mongodb://' or 'mongodb+srv://'")
	}

	databaseName := m.databaseName
	if databaseName == "" {
		var err error
		databaseName, err = getDBNameFromMongoDSN(dsn)
		if err != nil {
			return fmt.Errorf("MongoDBClient: Failed to extract database name from datasource name(dsn): %w", err)
		}
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	clientOptions := options.Client().ApplyURI(dsn)
	if m.ServerOpts != nil {
		clientOptions.SetServerAPIOptions(m.ServerOpts)
	}
	clientOptions.SetMaxPoolSize(MAXPOOLSIZE)
	clientOptions.SetReadPreference(readpref.PrimaryPreferred())
	if m.timeout > 0 {
		clientOptions.SetServerSelectionTimeout(m.timeout)
		clientOptions.SetTimeout(m.timeout)
	}

	m.logger.Info("connecting to MongoDB", "database", databaseName)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("MongoDBClient: connect: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("MongoDBClient: Failed to connect to MongoDB server: %w", err)
	}

	m.client = client
	m.db = client.Database(databaseName)
	m.logger.Info("connected to MongoDB", "database", databaseName)
	return nil
}

// Disconnect closes the connection to the MongoDB database.
func (m *MongoDBClient) Disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	m.logger.Info("disconnecting from MongoDB")
	return m.client.Disconnect(ctx)
}

// Ping verifies the MongoDB connection health using a ping command.
func (m *MongoDBClient) Ping(ctx context.Context) error {
	if m.client == nil {
		return mongo.ErrClientDisconnected
	}
	return m.client.Ping(ctx, nil)
}

// collection returns the named collection after checking it against the
// configured whitelist.
func (m *MongoDBClient) collection(collectionName string) (*mongo.Collection, error) {
	if collectionName == "" {
		return nil, fmt.Errorf("MongoDBClient: Collection name cannot be empty")
	}
	if !m.validCollections[collectionName] {
		return nil, fmt.Errorf("MongoDBClient: Invalid collection name: %s", collectionName)
	}
	if m.db == nil {
		return nil, mongo.ErrClientDisconnected
	}
	return m.db.Collection(collectionName), nil
}

// InsertOne inserts a document and returns its ID. Any _id in the document
// is dropped so the driver generates one.
func (m *MongoDBClient) InsertOne(ctx context.Context, collectionName string, document interfaces.Document) (interface{}, error) {
	m.logger.Debug("inserting one", "collection", collectionName)

	coll, err := m.collection(collectionName)
	if err != nil {
		return nil, err
	}

	sanitized, err := m.sanitizeDocument(document, false)
	if err != nil {
		return nil, err
	}

	res, err := coll.InsertOne(ctx, sanitized)
	if err != nil {
		return nil, fmt.Errorf("MongoDBClient: Failed to insert one into %s: %w", collectionName, err)
	}

	return res.InsertedID, nil
}

// FindOne decodes the first document matching filter into result. The
// error wraps mongo.ErrNoDocuments when nothing matches.
func (m *MongoDBClient) FindOne(ctx context.Context, collectionName string, filter interfaces.Document, result interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	sanitizedFilter, err := m.sanitizeDocument(filter, true)
	if err != nil {
		return err
	}

	if err := coll.FindOne(ctx, sanitizedFilter).Decode(result); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to find one in %s: %w", collectionName, err)
	}

	return nil
}

// FindMany decodes every matching document into results, a pointer to a slice.
func (m *MongoDBClient) FindMany(ctx context.Context, collectionName string, filter interfaces.Document, results interfaces.Document, opts interfaces.FindOptions) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	sanitizedFilter, err := m.sanitizeDocument(filter, true)
	if err != nil {
		return err
	}

	cursor, err := coll.Find(ctx, sanitizedFilter, buildFindOptions(opts))
	if err != nil {
		return fmt.Errorf("MongoDBClient: Finding many in %s failed: %w", collectionName, err)
	}

	// All closes the cursor.
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("MongoDBClient: Failed to decode cursor for %s: %w", collectionName, err)
	}

	return nil
}

// buildFindOptions translates the driver-neutral options.
func buildFindOptions(opts interfaces.FindOptions) *options.FindOptions {
	findOpts := options.Find()

	if opts.ByTextScore {
		score := bson.M{"$meta": "textScore"}
		findOpts.SetProjection(bson.M{SCOREFIELD: score})
		findOpts.SetSort(bson.D{{Key: SCOREFIELD, Value: score}})
	} else if len(opts.Sort) > 0 {
		sort := bson.D{}
		for _, field := range opts.Sort {
			direction := 1
			if field.Descending {
				direction = -1
			}
			sort = append(sort, bson.E{Key: field.Field, Value: direction})
		}
		findOpts.SetSort(sort)
	}

	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	return findOpts
}

// UpdateOne applies an update document such as {"$inc": {...}} to the first match.
// Returns the count of matched documents.
func (m *MongoDBClient) UpdateOne(ctx context.Context, collectionName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	m.logger.Debug("updating one", "collection", collectionName)

	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	sanitizedFilter, err := m.sanitizeDocument(filter, true)
	if err != nil {
		return 0, err
	}
	sanitizedUpdate, err := m.sanitizeDocument(update, false)
	if err != nil {
		return 0, err
	}

	res, err := coll.UpdateOne(ctx, sanitizedFilter, sanitizedUpdate)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed updating one in %s: %w", collectionName, err)
	}

	return res.MatchedCount, nil
}

// ReplaceOne overwrites the first match while keeping its _id.
// Returns the count of matched documents.
func (m *MongoDBClient) ReplaceOne(ctx context.Context, collectionName string, filter interfaces.Document, replacement interfaces.Document) (int64, error) {
	m.logger.Debug("replacing one", "collection", collectionName)

	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	sanitizedFilter, err := m.sanitizeDocument(filter, true)
	if err != nil {
		return 0, err
	}
	sanitizedReplacement, err := m.sanitizeDocument(replacement, false)
	if err != nil {
		return 0, err
	}

	res, err := coll.ReplaceOne(ctx, sanitizedFilter, sanitizedReplacement)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed replacing one in %s: %w", collectionName, err)
	}

	return res.MatchedCount, nil
}

// DeleteOne removes a single document from the specified collection using a filter.
// Returns the count of deleted documents and an error if the operation fails.
func (m *MongoDBClient) DeleteOne(ctx context.Context, collectionName string, filter interfaces.Document) (int64, error) {
	m.logger.Debug("deleting one", "collection", collectionName)

	coll, err := m.collection(collectionName)
	if err != nil {
		return 0, err
	}

	sanitizedFilter, err := m.sanitizeDocument(filter, true)
	if err != nil {
		return 0, err
	}

	res, err := coll.DeleteOne(ctx, sanitizedFilter)
	if err != nil {
		return 0, fmt.Errorf("MongoDBClient: Failed deleting one from %s: %w", collectionName, err)
	}

	return res.DeletedCount, nil
}

// EnsureSchema creates indexes on a collection. schema must be a
// mongo.IndexModel or a []mongo.IndexModel. Creating an index that already
// exists with the same definition is a no-op on the server.
func (m *MongoDBClient) EnsureSchema(ctx context.Context, collectionName string, schema interfaces.Document) error {
	coll, err := m.collection(collectionName)
	if err != nil {
		return err
	}

	var models []mongo.IndexModel
	switch s := schema.(type) {
	case mongo.IndexModel:
		models = []mongo.IndexModel{s}
	case []mongo.IndexModel:
		models = s
	default:
		return fmt.Errorf("MongoDBClient: EnsureSchema expects mongo.IndexModel or []mongo.IndexModel, got %T", schema)
	}
	if len(models) == 0 {
		return nil
	}

	names, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return fmt.Errorf("MongoDBClient: Failed creating indexes on %s: %w", collectionName, err)
	}
	m.logger.Info("indexes ensured", "collection", collectionName, "indexes", names)
	return nil
}

// IsUnavailable reports whether err means the server could not be reached
// in time, as opposed to a rejected or malformed operation.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var selectionErr topology.ServerSelectionError
	return errors.As(err, &selectionErr)
}

// WrapError annotates err with op. Connectivity failures additionally wrap
// apperrors.ErrDataStoreUnavailable.
func WrapError(op string, err error) error {
	if IsUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrDataStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// getDBNameFromMongoDSN extracts the database name from a MongoDB DSN.
func getDBNameFromMongoDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to parse MongoDB DSN: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if idx := strings.Index(dbName, "/"); idx != -1 {
		dbName = dbName[:idx]
	}
	if dbName == "" {
		return "", fmt.Errorf("no database name found in MongoDB DSN path")
	}

	return dbName, nil
}

// sanitizeDocument copies document keeping only whitelisted field names and
// operators. Nested documents are only accepted under operators, so a form
// value can never smuggle in a query operator. _id is kept only when allowID
// is set, which is the case for filters.
func (m *MongoDBClient) sanitizeDocument(document interfaces.Document, allowID bool) (bson.M, error) {
	if document == nil {
		return bson.M{}, nil
	}

	var docMap map[string]interface{}
	switch d := document.(type) {
	case bson.M:
		docMap = d
	case map[string]interface{}:
		docMap = d
	default:
		return nil, fmt.Errorf("MongoDBClient: document must be a map, got %T", document)
	}

	sanitized := make(bson.M, len(docMap))
	for key, value := range docMap {
		switch {
		case key == IDFIELD:
			if allowID {
				sanitized[key] = value
			}
		case strings.HasPrefix(key, "$"):
			if !allowedOperators[key] {
				m.logger.Warn("dropping unsupported operator", "operator", key)
				continue
			}
			nested, isDoc := asMap(value)
			if !isDoc {
				sanitized[key] = value
				continue
			}
			inner, err := m.sanitizeDocument(nested, false)
			if err != nil {
				return nil, err
			}
			sanitized[key] = inner
		default:
			if !m.validFields[key] || strings.ContainsAny(key, "$.") {
				m.logger.Warn("dropping invalid or unsafe field name", "field", key)
				continue
			}
			if _, isDoc := asMap(value); isDoc {
				m.logger.Warn("dropping nested document value", "field", key)
				continue
			}
			sanitized[key] = value
		}
	}

	return sanitized, nil
}

func asMap(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case bson.M:
		return v, true
	case map[string]interface{}:
		return v, true
	default:
		return nil, false
	}
}
