// Package pg is the PostgreSQL storage for users, groups, posts, comments and
// follow edges.
//
// Public methods satisfy the storage interfaces declared in package service.
// Each of them owns its timeout; the query logic lives in unexported methods
// that take a Querier so they work on the pool and inside a transaction alike.
package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/yatube-dev/yatube/internal/config"
	"github.com/yatube-dev/yatube/internal/logger"
)

//go:embed migrations/init.sql
var schema string

const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
	checkViolation      pq.ErrorCode = "23514"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 5 * time.Second
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Storage struct {
	db *sql.DB
}

// ConnectionConfig holds database connection pool settings.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// New connects to the database described by cfg and applies the schema.
func New(cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "dbname", cfg.Dbname)
	db, err := Connect(cfg, DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}

	if err := Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("db is ready")
	return &Storage{db: db}, nil
}

func Connect(cfg config.Pg, connCfg ConnectionConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(connCfg.MaxOpenConns)
	db.SetMaxIdleConns(connCfg.MaxIdleConns)
	db.SetConnMaxLifetime(connCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connCfg.ConnMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction, committing only if fn returns nil.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return WithTx(ctx, s.db, fn)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func isPgError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
