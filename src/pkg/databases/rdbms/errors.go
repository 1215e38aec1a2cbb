package rdbms

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

const (
	mysqlDuplicateEntry     = 1062
	postgresUniqueViolation = "23505"
	sqliteUniqueFailed      = "UNIQUE constraint failed"
)

// UniqueViolation reports whether err is a unique-constraint violation and
// returns whatever the driver tells about the offending key (constraint or column name).
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == mysqlDuplicateEntry {
			return myErr.Message, true
		}
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == postgresUniqueViolation {
			return pqErr.Constraint + " " + pqErr.Detail, true
		}
		return "", false
	}

	// modernc.org/sqlite only exposes the extended code, the text is stable enough
	if msg := err.Error(); strings.Contains(msg, sqliteUniqueFailed) {
		return msg, true
	}
	return "", false
}
