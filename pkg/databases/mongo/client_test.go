package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/haguru/cookbook/config"
	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

func testConfig() *config.MongoDBConfig {
	return &config.MongoDBConfig{
		DSN:              "mongodb://localhost:27017/cookbook",
		DatabaseName:     "cookbook",
		Timeout:          time.Second,
		ValidCollections: []string{"users", "recipes"},
		ValidFields:      []string{"username", "password", "recipe_name", "views"},
		Options: config.MongoServerOptions{
			APIVersion: "1",
		},
	}
}

func newTestClient(t *testing.T) *MongoDBClient {
	t.Helper()
	client, err := NewMongoDB(testConfig(), zerolog.NewZerologLoggerWithWriter("test", io.Discard))
	require.NoError(t, err)
	return client.(*MongoDBClient)
}

func TestNewMongoDB(t *testing.T) {
	logger := zerolog.NewZerologLoggerWithWriter("test", io.Discard)

	_, err := NewMongoDB(nil, logger)
	assert.Error(t, err)

	_, err = NewMongoDB(testConfig(), nil)
	assert.Error(t, err)

	client, err := NewMongoDB(testConfig(), logger)
	require.NoError(t, err)
	m := client.(*MongoDBClient)
	assert.Equal(t, "cookbook", m.databaseName)
	assert.NotNil(t, m.ServerOpts)
	assert.True(t, m.validCollections["recipes"])
	assert.False(t, m.validCollections["categories"])
}

func TestMongoDBClient_Connect_InvalidDSN(t *testing.T) {
	m := newTestClient(t)

	tests := []struct {
		name string
		dsn  string
	}{
		{name: "empty", dsn: ""},
		{name: "wrong scheme", dsn: "postgres://localhost/cookbook"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, m.Connect(context.Background(), tt.dsn))
		})
	}
}

func TestMongoDBClient_NotConnected(t *testing.T) {
	m := newTestClient(t)
	ctx := context.Background()

	assert.ErrorIs(t, m.Ping(ctx), mongo.ErrClientDisconnected)
	assert.NoError(t, m.Disconnect(ctx))

	_, err := m.InsertOne(ctx, "recipes", bson.M{"recipe_name": "x"})
	assert.ErrorIs(t, err, mongo.ErrClientDisconnected)
	assert.True(t, IsUnavailable(err))
}

func TestMongoDBClient_CollectionWhitelist(t *testing.T) {
	m := newTestClient(t)
	ctx := context.Background()

	_, err := m.InsertOne(ctx, "", bson.M{})
	assert.Error(t, err)

	err = m.FindOne(ctx, "secrets", bson.M{}, &bson.M{})
	assert.Error(t, err)
	assert.False(t, IsUnavailable(err))

	err = m.EnsureSchema(ctx, "secrets", mongo.IndexModel{})
	assert.Error(t, err)
}

func TestMongoDBClient_sanitizeDocument(t *testing.T) {
	m := newTestClient(t)
	id := primitive.NewObjectID()

	tests := []struct {
		name    string
		doc     interfaces.Document
		allowID bool
		want    bson.M
		wantErr bool
	}{
		{
			name: "nil document becomes empty filter",
			doc:  nil,
			want: bson.M{},
		},
		{
			name:    "filter keeps _id",
			doc:     bson.M{"_id": id},
			allowID: true,
			want:    bson.M{"_id": id},
		},
		{
			name: "insert drops _id",
			doc:  bson.M{"_id": id, "recipe_name": "soup"},
			want: bson.M{"recipe_name": "soup"},
		},
		{
			name: "plain map is accepted",
			doc:  map[string]interface{}{"username": "alice"},
			want: bson.M{"username": "alice"},
		},
		{
			name: "unknown and dotted fields are dropped",
			doc:  bson.M{"username": "alice", "role": "admin", "profile.name": "x"},
			want: bson.M{"username": "alice"},
		},
		{
			name: "operator injection in a value is dropped",
			doc:  bson.M{"username": bson.M{"$ne": ""}},
			want: bson.M{},
		},
		{
			name: "whitelisted operators recurse",
			doc:  bson.M{"$inc": bson.M{"views": 1, "password": 2, "$where": "1"}},
			want: bson.M{"$inc": bson.M{"views": 1, "password": 2}},
		},
		{
			name:    "text search",
			doc:     bson.M{"$text": bson.M{"$search": "chocolate cake"}},
			allowID: true,
			want:    bson.M{"$text": bson.M{"$search": "chocolate cake"}},
		},
		{
			name: "unsupported operator is dropped",
			doc:  bson.M{"$where": "this.views > 1"},
			want: bson.M{},
		},
		{
			name:    "struct documents are rejected",
			doc:     struct{ Username string }{Username: "alice"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.sanitizeDocument(tt.doc, tt.allowID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildFindOptions(t *testing.T) {
	t.Run("sort and limit", func(t *testing.T) {
		opts := buildFindOptions(interfaces.FindOptions{
			Sort:  []interfaces.SortField{{Field: "added_on", Descending: true}, {Field: "recipe_name"}},
			Limit: 5,
		})
		assert.Equal(t, bson.D{{Key: "added_on", Value: -1}, {Key: "recipe_name", Value: 1}}, opts.Sort)
		require.NotNil(t, opts.Limit)
		assert.Equal(t, int64(5), *opts.Limit)
		assert.Nil(t, opts.Projection)
	})

	t.Run("text score wins over sort", func(t *testing.T) {
		opts := buildFindOptions(interfaces.FindOptions{
			Sort:        []interfaces.SortField{{Field: "added_on"}},
			ByTextScore: true,
		})
		score := bson.M{"$meta": "textScore"}
		assert.Equal(t, bson.D{{Key: SCOREFIELD, Value: score}}, opts.Sort)
		assert.Equal(t, bson.M{SCOREFIELD: score}, opts.Projection)
		assert.Nil(t, opts.Limit)
	})
}

func TestGetDBNameFromMongoDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "simple", dsn: "mongodb://localhost:27017/cookbook", want: "cookbook"},
		{name: "with options", dsn: "mongodb://u:p@db:27017/recipes?authSource=admin", want: "recipes"},
		{name: "extra segments", dsn: "mongodb://localhost/cookbook/recipes", want: "cookbook"},
		{name: "srv", dsn: "mongodb+srv://cluster.example.net/cookbook", want: "cookbook"},
		{name: "missing", dsn: "mongodb://localhost:27017", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getDBNameFromMongoDSN(tt.dsn)
			if (err != nil) != tt.wantErr {
				t.Fatalf("getDBNameFromMongoDSN() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "no documents", err: fmt.Errorf("find: %w", mongo.ErrNoDocuments), want: false},
		{name: "deadline", err: fmt.Errorf("find: %w", context.DeadlineExceeded), want: true},
		{name: "disconnected", err: mongo.ErrClientDisconnected, want: true},
		{name: "network label", err: mongo.CommandError{Labels: []string{"NetworkError"}}, want: true},
		{name: "server selection", err: fmt.Errorf("insert: %w", topology.ServerSelectionError{Wrapped: errors.New("no servers")}), want: true},
		{name: "duplicate key", err: mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnavailable(tt.err))
		})
	}
}

func TestWrapError(t *testing.T) {
	err := WrapError("find recipe", fmt.Errorf("x: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, apperrors.ErrDataStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	err = WrapError("find recipe", errors.New("bad query"))
	assert.NotErrorIs(t, err, apperrors.ErrDataStoreUnavailable)
	assert.Contains(t, err.Error(), "find recipe")
}
