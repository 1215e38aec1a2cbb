package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// sqlxGet rebinds query for q's driver and maps sql.ErrNoRows to ErrNotFound.
func sqlxGet(ctx context.Context, q sqlx.ExtContext, dest interface{}, query string, args ...interface{}) error {
	return notFound(sqlx.GetContext(ctx, q, dest, q.Rebind(query), args...))
}

func sqlxSelect(ctx context.Context, q sqlx.ExtContext, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, q, dest, q.Rebind(query), args...)
}
