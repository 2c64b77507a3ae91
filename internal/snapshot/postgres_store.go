package snapshot

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/minichain-network/minichain/internal/chain"
)

//go:embed migrations/*
var migrationsFS embed.FS

// PostgresStore persists the chain in a PostgreSQL table, one JSONB row per
// block keyed by index.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	store := &PostgresStore{pool: pool}

	// Run migrations. This is idempotent.
	if err = store.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// DB returns a database/sql handle over the underlying pool, for consumers
// that speak database/sql such as the metrics collectors.
func (s *PostgresStore) DB() *sql.DB {
	return stdlib.OpenDBFromPool(s.pool)
}

func (s *PostgresStore) Save(ctx context.Context, blocks []chain.Block) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Ensure rollback if commit is not reached

	for _, block := range blocks {
		data, err := json.Marshal(block)
		if err != nil {
			return fmt.Errorf("failed to encode block %d: %w", block.Index, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO minichain.blocks (id, data) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data;
		`, block.Index, data)
		if err != nil {
			return fmt.Errorf("failed to write block %d: %w", block.Index, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]chain.Block, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT data
		FROM minichain.blocks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot blocks: %w", err)
	}
	defer rows.Close()

	var blocks []chain.Block
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot block: %w", err)
		}
		var block chain.Block
		if err := json.Unmarshal(data, &block); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot block: %w", err)
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot blocks: %w", err)
	}

	return blocks, nil
}

func (s *PostgresStore) runMigrations() error {
	slog.Info("Running PostgreSQL migrations...")

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(s.pool), &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	slog.Info("Closing PostgreSQL connection pool")
	s.pool.Close()
	return nil
}
