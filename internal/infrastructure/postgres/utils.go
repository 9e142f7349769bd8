package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Inventario-pos/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// wrapErr traduce errores del driver a errores de dominio. Las violaciones de integridad
// (único, FK, check) se reportan como ErrPersistence con el nombre del constraint.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation, codeCheckViolation:
			return domain.Persistence(fmt.Sprintf("%s: constraint %s", op, pgErr.ConstraintName), err)
		}
	}
	return domain.Persistence(op, err)
}
