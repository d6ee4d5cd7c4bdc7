package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/haguru/cookbook/config"
	"github.com/haguru/cookbook/internal/apperrors"
	"github.com/haguru/cookbook/internal/interfaces"

	"github.com/lib/pq"
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections to the database.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused.
	DefaultConnMaxLifetime = 30 * time.Second

	// UniqueViolation is the SQLSTATE for a unique constraint violation.
	UniqueViolation = "23505"
	// connectionExceptionClass is the SQLSTATE class for connection failures.
	connectionExceptionClass = "08"
)

// PostgresDatabaseClient owns the connection pool. Repositories write their
// own SQL against it through Exec, Query and QueryRow.
type PostgresDatabaseClient struct {
	db              *sql.DB
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	logger          interfaces.Logger
}

var _ interfaces.DBConnector = (*PostgresDatabaseClient)(nil)

// NewPostgresDatabaseClient applies the defaults for unset pool options.
func NewPostgresDatabaseClient(opts config.PostgresServerOptions, logger interfaces.Logger) *PostgresDatabaseClient {
	p := &PostgresDatabaseClient{
		MaxOpenConns:    opts.MaxOpenConns,
		MaxIdleConns:    opts.MaxIdleConns,
		ConnMaxLifetime: opts.ConnMaxLifetime,
		logger:          logger,
	}
	if p.MaxOpenConns <= 0 {
		p.MaxOpenConns = DefaultMaxOpenConns
	}
	if p.MaxIdleConns <= 0 {
		p.MaxIdleConns = DefaultMaxIdleConns
	}
	if p.ConnMaxLifetime <= 0 {
		p.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	return p
}

// NewPostgresDatabaseClientWithDB wraps an already opened pool. Pool options
// are left as the caller configured them.
func NewPostgresDatabaseClientWithDB(db *sql.DB, logger interfaces.Logger) *PostgresDatabaseClient {
	p := NewPostgresDatabaseClient(config.PostgresServerOptions{}, logger)
	p.db = db
	return p
}

// Connect establishes a connection to a PostgreSQL database.
func (p *PostgresDatabaseClient) Connect(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("PostgresDatabaseClient: DSN is empty")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	db.SetMaxOpenConns(p.MaxOpenConns)
	db.SetMaxIdleConns(p.MaxIdleConns)
	db.SetConnMaxLifetime(p.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to reach PostgreSQL: %w", err)
	}

	p.db = db
	p.logger.Info("connected to PostgreSQL")
	return nil
}

// Disconnect closes the PostgreSQL database connection.
func (p *PostgresDatabaseClient) Disconnect(ctx context.Context) error {
	if p.db == nil {
		return nil
	}
	p.logger.Info("disconnecting from PostgreSQL")
	return p.db.Close()
}

// Ping checks the health of the PostgreSQL connection.
func (p *PostgresDatabaseClient) Ping(ctx context.Context) error {
	if p.db == nil {
		return sql.ErrConnDone
	}
	return p.db.PingContext(ctx)
}

// EnsureSchema runs DDL for tableName. schema must be a statement string or
// a []string executed in order; statements should be idempotent
// (CREATE ... IF NOT EXISTS).
func (p *PostgresDatabaseClient) EnsureSchema(ctx context.Context, tableName string, schema interfaces.Document) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected to a database")
	}

	var statements []string
	switch s := schema.(type) {
	case string:
		statements = []string{s}
	case []string:
		statements = s
	default:
		return fmt.Errorf("EnsureSchema expects a DDL string or []string for %s, got %T", tableName, schema)
	}

	for _, stmt := range statements {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema for %s: %w", tableName, err)
		}
	}
	p.logger.Info("schema ensured", "table", tableName)
	return nil
}

// Exec runs a statement that returns no rows.
func (p *PostgresDatabaseClient) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if p.db == nil {
		return nil, sql.ErrConnDone
	}
	return p.db.ExecContext(ctx, query, args...)
}

// Query runs a statement that returns rows. The caller closes the rows.
func (p *PostgresDatabaseClient) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	if p.db == nil {
		return nil, sql.ErrConnDone
	}
	return p.db.QueryContext(ctx, query, args...)
}

// QueryRow runs a statement expected to return at most one row. It must only
// be called on a connected client.
func (p *PostgresDatabaseClient) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return p.db.QueryRowContext(ctx, query, args...)
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == UniqueViolation
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == connectionExceptionClass
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// WrapError annotates err with op. Connectivity failures additionally wrap
// apperrors.ErrDataStoreUnavailable.
func WrapError(op string, err error) error {
	if IsUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, apperrors.ErrDataStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
