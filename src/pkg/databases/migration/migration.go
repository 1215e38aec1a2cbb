// Package migration holds the customer-service schema for every supported dialect.
package migration

import (
	"context"
	"fmt"

	"customer-service/src/pkg/databases/rdbms"

	"github.com/jmoiron/sqlx"
)

// DefaultSources are the registration channels every deployment starts with.
var DefaultSources = []struct {
	Prefix string
	Name   string
}{
	{"T", "Telegram"},
	{"S", "Store"},
	{"M", "Messenger"},
	{"W", "WhatsApp"},
	{"A", "Admin"},
	{"U", "Unknown"},
}

// Statements returns the DDL for dialect, one statement per entry.
func Statements(dialect rdbms.Dialect) ([]string, error) {
	switch dialect {
	case rdbms.MySQL:
		return mysqlSchema, nil
	case rdbms.Postgres:
		return postgresSchema, nil
	case rdbms.SQLite:
		return sqliteSchema, nil
	}
	return nil, fmt.Errorf("no schema for dialect %q", dialect)
}

func seedStatement(dialect rdbms.Dialect) string {
	switch dialect {
	case rdbms.MySQL:
		return "INSERT IGNORE INTO sources (name, prefix, is_active, created_at) VALUES (?, ?, TRUE, CURRENT_TIMESTAMP)"
	case rdbms.SQLite:
		return "INSERT OR IGNORE INTO sources (name, prefix, is_active, created_at) VALUES (?, ?, 1, CURRENT_TIMESTAMP)"
	}
	return "INSERT INTO sources (name, prefix, is_active, created_at) VALUES (?, ?, TRUE, CURRENT_TIMESTAMP) ON CONFLICT (prefix) DO NOTHING"
}

// Apply creates the schema and seeds the default sources. Every statement is idempotent.
func Apply(ctx context.Context, db *sqlx.DB, dialect rdbms.Dialect) error {
	stmts, err := Statements(dialect)
	if err != nil {
		return err
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d: %w", i, err)
		}
	}

	seed := db.Rebind(seedStatement(dialect))
	for _, src := range DefaultSources {
		if _, err := db.ExecContext(ctx, seed, src.Name, src.Prefix); err != nil {
			return fmt.Errorf("seed source %s: %w", src.Prefix, err)
		}
	}
	return nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS sources (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		prefix CHAR(1) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME(6) NOT NULL,
		CONSTRAINT uq_sources_prefix UNIQUE (prefix)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(15) NOT NULL,
		serial VARCHAR(18) NOT NULL,
		pin_hash VARCHAR(100) NOT NULL,
		source_id BIGINT NULL,
		referrer_id BIGINT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_trial_active BOOLEAN NOT NULL DEFAULT TRUE,
		trial_expires_at DATETIME(6) NOT NULL,
		total_referrals BIGINT NOT NULL DEFAULT 0,
		referral_earnings BIGINT NOT NULL DEFAULT 0,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		CONSTRAINT uq_customers_phone UNIQUE (phone),
		CONSTRAINT uq_customers_serial UNIQUE (serial),
		CONSTRAINT fk_customers_source FOREIGN KEY (source_id) REFERENCES sources (id) ON DELETE SET NULL,
		CONSTRAINT fk_customers_referrer FOREIGN KEY (referrer_id) REFERENCES customers (id) ON DELETE SET NULL,
		INDEX idx_customers_referrer (referrer_id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		balance BIGINT NOT NULL DEFAULT 0,
		total_deposited BIGINT NOT NULL DEFAULT 0,
		total_spent BIGINT NOT NULL DEFAULT 0,
		total_rewarded BIGINT NOT NULL DEFAULT 0,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		CONSTRAINT uq_wallets_customer UNIQUE (customer_id),
		CONSTRAINT fk_wallets_customer FOREIGN KEY (customer_id) REFERENCES customers (id),
		CONSTRAINT ck_wallets_balance CHECK (balance >= 0)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS wallet_transactions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		reference_id CHAR(36) NOT NULL,
		customer_id BIGINT NOT NULL,
		type VARCHAR(20) NOT NULL,
		amount BIGINT NOT NULL,
		balance_after BIGINT NOT NULL,
		description TEXT NOT NULL,
		source_id BIGINT NULL,
		created_at DATETIME(6) NOT NULL,
		CONSTRAINT uq_wallet_transactions_reference UNIQUE (reference_id),
		CONSTRAINT fk_wallet_transactions_customer FOREIGN KEY (customer_id) REFERENCES customers (id),
		INDEX idx_wallet_transactions_history (customer_id, created_at, id)
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS token_audit_logs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		action VARCHAR(32) NOT NULL,
		token_fingerprint VARCHAR(64) NOT NULL,
		description VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_token_audit_logs_customer (customer_id)
	) ENGINE=InnoDB`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS sources (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		prefix CHAR(1) NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT uq_sources_prefix UNIQUE (prefix)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(15) NOT NULL,
		serial VARCHAR(18) NOT NULL,
		pin_hash VARCHAR(100) NOT NULL,
		source_id BIGINT NULL REFERENCES sources (id) ON DELETE SET NULL,
		referrer_id BIGINT NULL REFERENCES customers (id) ON DELETE SET NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_trial_active BOOLEAN NOT NULL DEFAULT TRUE,
		trial_expires_at TIMESTAMPTZ NOT NULL,
		total_referrals BIGINT NOT NULL DEFAULT 0,
		referral_earnings BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT uq_customers_phone UNIQUE (phone),
		CONSTRAINT uq_customers_serial UNIQUE (serial)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_referrer ON customers (referrer_id)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers (id),
		balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
		total_deposited BIGINT NOT NULL DEFAULT 0,
		total_spent BIGINT NOT NULL DEFAULT 0,
		total_rewarded BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT uq_wallets_customer UNIQUE (customer_id)
	)`,
	`CREATE TABLE IF NOT EXISTS wallet_transactions (
		id BIGSERIAL PRIMARY KEY,
		reference_id UUID NOT NULL,
		customer_id BIGINT NOT NULL REFERENCES customers (id),
		type VARCHAR(20) NOT NULL,
		amount BIGINT NOT NULL,
		balance_after BIGINT NOT NULL,
		description TEXT NOT NULL,
		source_id BIGINT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT uq_wallet_transactions_reference UNIQUE (reference_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_transactions_history ON wallet_transactions (customer_id, created_at, id)`,
	`CREATE TABLE IF NOT EXISTS token_audit_logs (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		action VARCHAR(32) NOT NULL,
		token_fingerprint VARCHAR(64) NOT NULL,
		description VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_token_audit_logs_customer ON token_audit_logs (customer_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		prefix TEXT NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE,
		serial TEXT NOT NULL UNIQUE,
		pin_hash TEXT NOT NULL,
		source_id INTEGER NULL REFERENCES sources (id) ON DELETE SET NULL,
		referrer_id INTEGER NULL REFERENCES customers (id) ON DELETE SET NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_trial_active BOOLEAN NOT NULL DEFAULT 1,
		trial_expires_at DATETIME NOT NULL,
		total_referrals INTEGER NOT NULL DEFAULT 0,
		referral_earnings INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_referrer ON customers (referrer_id)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL UNIQUE REFERENCES customers (id),
		balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
		total_deposited INTEGER NOT NULL DEFAULT 0,
		total_spent INTEGER NOT NULL DEFAULT 0,
		total_rewarded INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wallet_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		reference_id TEXT NOT NULL UNIQUE,
		customer_id INTEGER NOT NULL REFERENCES customers (id),
		type TEXT NOT NULL,
		amount INTEGER NOT NULL,
		balance_after INTEGER NOT NULL,
		description TEXT NOT NULL,
		source_id INTEGER NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wallet_transactions_history ON wallet_transactions (customer_id, created_at, id)`,
	`CREATE TABLE IF NOT EXISTS token_audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		customer_id INTEGER NOT NULL,
		action TEXT NOT NULL,
		token_fingerprint TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_token_audit_logs_customer ON token_audit_logs (customer_id)`,
}
