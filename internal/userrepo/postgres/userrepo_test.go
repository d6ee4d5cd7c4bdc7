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

func newRepoWithMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	client := postgres.NewPostgresDatabaseClientWithDB(db, zerolog.NewZerologLoggerWithWriter("test", io.Discard))
	repo, err := NewPostgresUserRepository(client)
	require.NoError(t, err)
	return repo, mock
}

func TestNewPostgresUserRepository(t *testing.T) {
	_, err := NewPostgresUserRepository(nil)
	assert.Error(t, err)
}

func TestUsersSchema(t *testing.T) {
	assert.Len(t, usersSchema, 1)
	assert.Contains(t, usersSchema[0], "IF NOT EXISTS users")
	assert.Contains(t, usersSchema[0], "UNIQUE (username)")
}

func TestPostgresUserRepository_AddUser(t *testing.T) {
	const insert = `INSERT INTO users \(id, username, password\) VALUES \(\$1, \$2, \$3\)`
	user := models.User{Username: "alice", HashedPassword: "hash"}

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "inserted"},
		{name: "duplicate", execErr: &pq.Error{Code: postgres.UniqueViolation}, wantErr: apperrors.ErrDuplicateUser},
		{name: "unreachable", execErr: &pq.Error{Code: "08006"}, wantErr: apperrors.ErrDataStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			exp := mock.ExpectExec(insert).WithArgs(sqlmock.AnyArg(), "alice", "hash")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			id, err := repo.AddUser(context.Background(), user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, id)
			} else {
				require.NoError(t, err)
				assert.Len(t, id, 36)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresUserRepository_GetUserByUsername(t *testing.T) {
	const query = `SELECT id, username, password FROM users WHERE username = \$1`

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(query).WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}).AddRow("u-1", "alice", "hash"))

		got, err := repo.GetUserByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, &models.User{ID: "u-1", Username: "alice", HashedPassword: "hash"}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(query).WithArgs("bob").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}))

		got, err := repo.GetUserByUsername(context.Background(), "bob")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unreachable", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(query).WithArgs("alice").WillReturnError(&pq.Error{Code: "08006"})

		_, err := repo.GetUserByUsername(context.Background(), "alice")
		assert.ErrorIs(t, err, apperrors.ErrDataStoreUnavailable)
	})
}

func TestPostgresUserRepository_EnsureIndices(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureIndices(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
