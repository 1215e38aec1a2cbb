// Package rdbms opens the relational store behind sqlx and hides the few places
// where MySQL, PostgreSQL and SQLite disagree.
package rdbms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"customer-service/src/pkg/log"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	return string(d)
}

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case MySQL, Postgres, SQLite:
		return Dialect(s), nil
	case "":
		return MySQL, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", s)
}

type DBInterface interface {
	GetDB() (*sqlx.DB, error)
	Dialect() Dialect
	Close() error
}

type Config struct {
	Driver      string
	DSN         string
	Host        string
	Port        int
	Username    string
	Password    string
	Name        string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
}

func ConfigFromViper(v *viper.Viper) Config {
	return Config{
		Driver:      v.GetString("database.driver"),
		DSN:         v.GetString("database.dsn"),
		Host:        v.GetString("database.host"),
		Port:        v.GetInt("database.port"),
		Username:    v.GetString("database.username"),
		Password:    v.GetString("database.password"),
		Name:        v.GetString("database.name"),
		MaxIdle:     v.GetInt("database.pool.idle"),
		MaxOpen:     v.GetInt("database.pool.max"),
		MaxLifetime: v.GetDuration("database.pool.lifetime"),
	}
}

// BuildDSN returns DSN verbatim when set, otherwise assembles one from the parts.
func (c Config) BuildDSN(d Dialect) string {
	if c.DSN != "" {
		return c.DSN
	}
	switch d {
	case Postgres:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", c.Username, c.Password, c.Host, c.Port, c.Name)
	case SQLite:
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", c.Name)
	}
	cfg := mysql.NewConfig()
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	cfg.DBName = c.Name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN()
}

type database struct {
	db      *sqlx.DB
	dialect Dialect
}

// New wraps an already opened handle, mostly for tests.
func New(db *sqlx.DB, dialect Dialect) DBInterface {
	return &database{db: db, dialect: dialect}
}

func InitConnection(v *viper.Viper, log log.Log) (DBInterface, error) {
	return Open(ConfigFromViper(v), log)
}

func Open(cfg Config, log log.Log) (DBInterface, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(dialect.DriverName(), cfg.BuildDSN(dialect))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}
	if cfg.MaxOpen > 0 {
		db.SetMaxOpenConns(cfg.MaxOpen)
	}
	if dialect == SQLite {
		// one writer at a time, concurrent transactions would hit SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}
	if cfg.MaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	log.Info("database", fmt.Sprintf("connected to %s", dialect), "InitConnection", cfg.Name)
	return &database{db: db, dialect: dialect}, nil
}

func (d *database) GetDB() (*sqlx.DB, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("database is not initialized")
	}
	return d.db, nil
}

func (d *database) Dialect() Dialect {
	return d.dialect
}

func (d *database) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// InsertReturningID runs an INSERT and returns the generated id column.
// MySQL has no RETURNING, so it falls back to LastInsertId.
func InsertReturningID(ctx context.Context, q sqlx.ExtContext, dialect Dialect, query string, args ...interface{}) (int64, error) {
	if dialect == MySQL {
		res, err := q.ExecContext(ctx, q.Rebind(query), args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}
	var id int64
	if err := q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
