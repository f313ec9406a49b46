package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Per-service schemas. Each binary runs only its own statements at
// startup when POSTGRES_RUN_MIGRATIONS is enabled.
var (
	AuthSchema = []string{
		`CREATE TABLE IF NOT EXISTS credentials (
            user_id       BIGINT PRIMARY KEY,
            email         TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS roles (
            id   SERIAL PRIMARY KEY,
            name TEXT NOT NULL UNIQUE
        )`,
		`INSERT INTO roles (name) VALUES ('USER'), ('ADMIN')
            ON CONFLICT (name) DO NOTHING`,
		`CREATE TABLE IF NOT EXISTS credential_roles (
            user_id BIGINT NOT NULL REFERENCES credentials(user_id) ON DELETE CASCADE,
            role_id INT NOT NULL REFERENCES roles(id),
            PRIMARY KEY (user_id, role_id)
        )`,
	}

	UserSchema = []string{
		`CREATE TABLE IF NOT EXISTS users (
            id         BIGSERIAL PRIMARY KEY,
            email      TEXT NOT NULL UNIQUE,
            name       TEXT NOT NULL,
            surname    TEXT NOT NULL DEFAULT '',
            birth_date DATE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS cards (
            id              BIGSERIAL PRIMARY KEY,
            user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            number          VARCHAR(30) NOT NULL,
            holder          VARCHAR(100) NOT NULL DEFAULT '',
            expiration_date DATE,
            created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_cards_user_id ON cards(user_id)`,
	}

	OrderSchema = []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id         BIGSERIAL PRIMARY KEY,
            user_id    BIGINT NOT NULL,
            item       TEXT NOT NULL,
            quantity   INT NOT NULL DEFAULT 1,
            price      NUMERIC(12,2) NOT NULL,
            status     TEXT NOT NULL DEFAULT 'CREATED',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id)`,
		`CREATE TABLE IF NOT EXISTS items (
            id         BIGSERIAL PRIMARY KEY,
            name       TEXT NOT NULL UNIQUE,
            price      NUMERIC(12,2) NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`INSERT INTO items (name, price) VALUES
            ('keyboard', 45.50), ('mouse', 19.90), ('monitor', 229.00)
            ON CONFLICT (name) DO NOTHING`,
	}

	PaymentSchema = []string{
		`CREATE TABLE IF NOT EXISTS payments (
            id         TEXT PRIMARY KEY,
            order_id   BIGINT NOT NULL UNIQUE,
            user_id    BIGINT NOT NULL,
            amount     NUMERIC(12,2) NOT NULL,
            status     TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	}
)

// RunMigrations executes the given schema statements in order.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger, statements []string) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	for i, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", i, err)
		}
	}

	logger.Info("migrations applied", zap.Int("statements", len(statements)))
	return nil
}
