package pgsql

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
)

func TestMapPgError(t *testing.T) {
	assert.NoError(t, mapPgError(nil, "x"))

	assert.True(t, errors.Is(mapPgError(pgx.ErrNoRows, "product p1"), apperrors.ErrNotFound))

	dup := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "products_code_key"}
	err := mapPgError(dup, "save product")
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
	assert.Contains(t, err.Error(), "products_code_key")

	assert.True(t, errors.Is(mapPgError(&pgconn.PgError{Code: pgLockNotAvailable}, "lock"), apperrors.ErrBusy))
	assert.True(t, errors.Is(mapPgError(&pgconn.PgError{Code: pgQueryCanceled}, "lock"), apperrors.ErrBusy))

	other := mapPgError(errors.New("connection reset"), "query")
	var appErr *apperrors.AppError
	assert.True(t, errors.As(other, &appErr))
	assert.Equal(t, 500, appErr.Code)
}

func TestJSONOrNil(t *testing.T) {
	b, err := jsonOrNil(nil)
	assert.NoError(t, err)
	assert.Nil(t, b)

	b, err = jsonOrNil(map[string]int{"qtyIn": 2})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"qtyIn":2}`, string(b))
}
