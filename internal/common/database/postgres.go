// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bizcoach-workers/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// schema is applied on start-up; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS connector_metrics (
		tenant_id   TEXT NOT NULL,
		connector   TEXT NOT NULL,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL,
		value       DOUBLE PRECISION NOT NULL,
		target      DOUBLE PRECISION NOT NULL,
		unit        TEXT NOT NULL DEFAULT '',
		observed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (tenant_id, connector, name)
	)`,
	`CREATE TABLE IF NOT EXISTS action_plans (
		id          UUID PRIMARY KEY,
		tenant_id   TEXT NOT NULL,
		week_start  DATE NOT NULL,
		status      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		UNIQUE (tenant_id, week_start)
	)`,
	`CREATE TABLE IF NOT EXISTS action_plan_tasks (
		id          UUID PRIMARY KEY,
		plan_id     UUID NOT NULL REFERENCES action_plans(id) ON DELETE CASCADE,
		goal_id     TEXT NOT NULL,
		title       TEXT NOT NULL,
		category    TEXT NOT NULL,
		priority    INT NOT NULL,
		completed   BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS audit_log (
		id          BIGSERIAL PRIMARY KEY,
		tenant_id   TEXT NOT NULL,
		action      TEXT NOT NULL,
		entity_id   TEXT NOT NULL,
		details     JSONB NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables the workers read and write.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
