package repositories

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

type anyTime struct{}

func (anyTime) Match(v interface{}) bool {
	_, ok := v.(time.Time)
	return ok
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func pgViolation(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}
