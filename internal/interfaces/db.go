package interfaces

import "context"

// Document is a generic interface to represent data that can be stored
// and retrieved from the database. It could be a struct, a map[string]interface{},
// or any type that can be marshaled/unmarshaled by the specific database driver.
type Document interface{}

// SortField orders a FindMany result by one field.
type SortField struct {
	Field      string
	Descending bool
}

// FindOptions shapes a FindMany query.
type FindOptions struct {
	// Sort is applied in order; ignored when ByTextScore is set.
	Sort []SortField
	// Limit caps the number of results; zero means no limit.
	Limit int64
	// ByTextScore orders results by full-text relevance.
	ByTextScore bool
}

// DBConnector is the connection lifecycle shared by every database client.
type DBConnector interface {
	// Connect establishes a connection to the database.
	// It takes a context for cancellation and timeouts, and a DSN (Data Source Name) string.
	// Returns an error if the connection fails.
	Connect(ctx context.Context, dsn string) error

	// Disconnect closes the database connection.
	// Returns an error if the disconnection fails.
	Disconnect(ctx context.Context) error

	// Ping checks the health of the database connection.
	// Returns an error if the database is unreachable or unhealthy.
	Ping(ctx context.Context) error

	// EnsureSchema provisions indexes or tables for a collection/table.
	// The schema argument is driver specific.
	EnsureSchema(ctx context.Context, collectionName string, schema Document) error
}

// DBClient defines the interface for a generic document database client.
type DBClient interface {
	DBConnector

	// InsertOne inserts a single document into the specified collection.
	// Returns the ID of the inserted document and an error.
	InsertOne(ctx context.Context, collectionName string, document Document) (interface{}, error)

	// FindOne decodes the first document matching filter into result.
	// The returned error wraps the driver's "no documents" error when nothing matches.
	FindOne(ctx context.Context, collectionName string, filter Document, result Document) error

	// FindMany decodes every document matching filter into results,
	// which must be a pointer to a slice.
	FindMany(ctx context.Context, collectionName string, filter Document, results Document, opts FindOptions) error

	// UpdateOne applies update to the first document matching filter.
	// Returns the count of matched documents and an error.
	UpdateOne(ctx context.Context, collectionName string, filter Document, update Document) (int64, error)

	// ReplaceOne overwrites the first document matching filter.
	// Returns the count of matched documents and an error.
	ReplaceOne(ctx context.Context, collectionName string, filter Document, replacement Document) (int64, error)

	// DeleteOne deletes a single document from the specified collection
	// that matches the provided filter.
	// Returns the count of deleted documents and an error.
	DeleteOne(ctx context.Context, collectionName string, filter Document) (int64, error)
}
