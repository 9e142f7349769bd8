package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

func TestWrapErr(t *testing.T) {
	assert.NoError(t, wrapErr("insert item", nil))

	unique := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "items_code_key"}
	err := wrapErr("insert item", unique)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), "items_code_key")

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr), "la causa del driver se conserva")

	err = wrapErr("list movements", errors.New("conn reset"))
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NotContains(t, err.Error(), "constraint")
}
