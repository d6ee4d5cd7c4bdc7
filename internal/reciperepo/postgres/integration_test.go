package postgres

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/haguru/cookbook/config"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models"
	"github.com/haguru/cookbook/pkg/databases/postgres"
	"github.com/haguru/cookbook/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPostgresURIEnv = "COOKBOOK_TEST_POSTGRES_URI"

// connectTestStore creates a throwaway schema on the server named by
// COOKBOOK_TEST_POSTGRES_URI and drops it when the test ends.
func connectTestStore(t *testing.T) interfaces.RecipeRepository {
	t.Helper()
	uri := os.Getenv(testPostgresURIEnv)
	if uri == "" {
		t.Skipf("%s not set", testPostgresURIEnv)
	}

	ctx := context.Background()
	logger := zerolog.NewZerologLoggerWithWriter("test", io.Discard)
	schema := fmt.Sprintf("cookbook_test_%d", time.Now().UnixNano())

	admin := postgres.NewPostgresDatabaseClient(config.PostgresServerOptions{}, logger)
	require.NoError(t, admin.Connect(ctx, uri))
	_, err := admin.Exec(ctx, `CREATE SCHEMA `+schema)
	require.NoError(t, err)

	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	db := postgres.NewPostgresDatabaseClient(config.PostgresServerOptions{}, logger)
	require.NoError(t, db.Connect(ctx, uri+sep+"search_path="+schema))

	t.Cleanup(func() {
		_ = db.Disconnect(context.Background())
		_, _ = admin.Exec(context.Background(), `DROP SCHEMA `+schema+` CASCADE`)
		_ = admin.Disconnect(context.Background())
	})

	repo, err := NewPostgresRecipeRepository(db)
	require.NoError(t, err)
	require.NoError(t, repo.EnsureIndices(ctx))
	return repo
}

func integrationRecipe() models.Recipe {
	return models.Recipe{
		CategoryName:     "Dessert",
		RecipeName:       "Chocolate Cake",
		ShortDescription: "Rich and moist",
		Ingredients:      "flour\nsugar\ncocoa",
		Steps:            "mix\nbake",
		CreatedBy:        "alice",
		AddedOn:          time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestIntegration_InsertThenFind(t *testing.T) {
	repo := connectTestStore(t)
	ctx := context.Background()

	recipe := integrationRecipe()
	id, err := repo.AddRecipe(ctx, recipe)
	require.NoError(t, err)

	got, err := repo.GetRecipeByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)

	recipe.ID = id
	assert.Equal(t, recipe, *got)
}

func TestIntegration_ConcurrentIncrements(t *testing.T) {
	repo := connectTestStore(t)
	ctx := context.Background()

	id, err := repo.AddRecipe(ctx, integrationRecipe())
	require.NoError(t, err)

	const viewers = 25
	var wg sync.WaitGroup
	errs := make(chan error, viewers)
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.IncrementViews(ctx, id)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.GetRecipeByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(viewers), got.Views)
}

func TestIntegration_SearchRanksMatchFirst(t *testing.T) {
	repo := connectTestStore(t)
	ctx := context.Background()

	cakeID, err := repo.AddRecipe(ctx, integrationRecipe())
	require.NoError(t, err)
	_, err = repo.AddRecipe(ctx, models.Recipe{RecipeName: "Lentil Soup", CreatedBy: "bob", AddedOn: time.Now().UTC()})
	require.NoError(t, err)

	got, err := repo.Search(ctx, "chocolate cake", 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, cakeID, got[0].ID)
}
