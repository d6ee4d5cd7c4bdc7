package postgres

import (
	"context"
	"io"
	"testing"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/models"
	"github.com/haguru/cookbook/pkg/databases/postgres"
	"github.com/haguru/cookbook/pkg/zerolog"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresCategoryRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	client := postgres.NewPostgresDatabaseClientWithDB(db, zerolog.NewZerologLoggerWithWriter("test", io.Discard))
	repo, err := NewPostgresCategoryRepository(client)
	require.NoError(t, err)
	return repo, mock
}

func TestNewPostgresCategoryRepository(t *testing.T) {
	_, err := NewPostgresCategoryRepository(nil)
	assert.Error(t, err)
}

func TestCategoriesSchema(t *testing.T) {
	assert.Contains(t, categoriesSchema[0], "IF NOT EXISTS categories")
}

func TestPostgresCategoryRepository_ListCategories(t *testing.T) {
	const query = `SELECT id, category_name FROM categories ORDER BY category_name ASC`

	tests := []struct {
		name    string
		rows    *sqlmock.Rows
		err     error
		want    []models.Category
		wantErr error
	}{
		{
			name: "ordered by name",
			rows: sqlmock.NewRows([]string{"id", "category_name"}).
				AddRow("c-1", "Breakfast").
				AddRow("c-2", "Dessert"),
			want: []models.Category{{ID: "c-1", CategoryName: "Breakfast"}, {ID: "c-2", CategoryName: "Dessert"}},
		},
		{
			name: "none seeded",
			rows: sqlmock.NewRows([]string{"id", "category_name"}),
			want: []models.Category{},
		},
		{
			name:    "unreachable",
			err:     &pq.Error{Code: "08006"},
			wantErr: apperrors.ErrDataStoreUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			exp := mock.ExpectQuery(query)
			if tt.err != nil {
				exp.WillReturnError(tt.err)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			got, err := repo.ListCategories(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresCategoryRepository_EnsureIndices(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS categories`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureIndices(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
