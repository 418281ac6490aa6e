package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isForeignKeyViolation(err))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(errors.New("boom")))
	assert.False(t, isForeignKeyViolation(nil))
}

func TestDatabaseURLWithIPv4_IPLiteral(t *testing.T) {
	in := "postgres://u:p@127.0.0.1:6543/horarios?sslmode=disable"
	assert.Equal(t, in, databaseURLWithIPv4(in))
}
