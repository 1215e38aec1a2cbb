package migration

import (
	"context"
	"testing"

	"customer-service/src/pkg/databases/rdbms"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyExecutesSchemaAndSeeds(t *testing.T) {
	for _, dialect := range []rdbms.Dialect{rdbms.MySQL, rdbms.Postgres, rdbms.SQLite} {
		t.Run(string(dialect), func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			stmts, err := Statements(dialect)
			require.NoError(t, err)
			for range stmts {
				mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
			}
			for _, src := range DefaultSources {
				mock.ExpectExec("INTO sources").
					WithArgs(src.Name, src.Prefix).
					WillReturnResult(sqlmock.NewResult(0, 1))
			}

			require.NoError(t, Apply(context.Background(), sqlx.NewDb(db, "sqlmock"), dialect))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStatementsUnknownDialect(t *testing.T) {
	_, err := Statements(rdbms.Dialect("oracle"))
	assert.Error(t, err)
}
