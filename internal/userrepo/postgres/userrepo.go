package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/constants"
	"github.com/haguru/cookbook/internal/interfaces"
	"github.com/haguru/cookbook/internal/models"
	"github.com/haguru/cookbook/pkg/databases/postgres"

	"github.com/google/uuid"
)

// usersSchema is idempotent; the unique constraint backs duplicate detection.
var usersSchema = []string{
	`CREATE TABLE IF NOT EXISTS ` + constants.UsersCollection + ` (
		id UUID PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		password TEXT NOT NULL,
		CONSTRAINT users_username_unique UNIQUE (username)
	)`,
}

// PostgresUserRepository implements UserRepository for PostgreSQL databases.
type PostgresUserRepository struct {
	dbClient *postgres.PostgresDatabaseClient
}

var _ interfaces.UserRepository = (*PostgresUserRepository)(nil)

// NewPostgresUserRepository creates a new PostgreSQL repository instance.
func NewPostgresUserRepository(dbClient *postgres.PostgresDatabaseClient) (*PostgresUserRepository, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("dbClient cannot be nil")
	}
	return &PostgresUserRepository{dbClient: dbClient}, nil
}

// AddUser saves a new user with a generated UUID.
func (r *PostgresUserRepository) AddUser(ctx context.Context, user models.User) (string, error) {
	id := uuid.NewString()

	_, err := r.dbClient.Exec(ctx,
		`INSERT INTO `+constants.UsersCollection+` (id, username, password) VALUES ($1, $2, $3)`,
		id, user.Username, user.HashedPassword,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return "", fmt.Errorf("%w: %q", apperrors.ErrDuplicateUser, user.Username)
		}
		return "", postgres.WrapError("add user", err)
	}
	return id, nil
}

// GetUserByUsername returns nil, nil when no row matches.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.dbClient.QueryRow(ctx,
		`SELECT id, username, password FROM `+constants.UsersCollection+` WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.HashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, postgres.WrapError("get user by username", err)
	}
	return &user, nil
}

// EnsureIndices creates the users table and its unique username constraint.
func (r *PostgresUserRepository) EnsureIndices(ctx context.Context) error {
	if err := r.dbClient.EnsureSchema(ctx, constants.UsersCollection, usersSchema); err != nil {
		return postgres.WrapError("ensure users table", err)
	}
	return nil
}
