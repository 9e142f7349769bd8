package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Se comparan con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrValidation   = errors.New("validación fallida")
	ErrPersistence  = errors.New("falla de persistencia")
	ErrNoCostBasis  = errors.New("venta sin costo base")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrUnauthorized = errors.New("no autorizado")
)

// Error agrega contexto (entidad, id, fila, campo) a un error de dominio.
// Unwrap devuelve el tipo (Kind) y la causa, así errors.Is funciona con ambos.
type Error struct {
	Kind    error
	Entity  string
	ID      int64
	Row     int // fila 1-based dentro de un lote (0 = no aplica)
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Entity != "" {
		b.WriteString(": " + e.Entity)
		if e.ID != 0 {
			fmt.Fprintf(&b, " %d", e.ID)
		}
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " (fila %d)", e.Row)
	}
	if e.Field != "" {
		b.WriteString(" [" + e.Field + "]")
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NotFound construye un ErrNotFound para la entidad e id dados.
func NotFound(entity string, id int64) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

// Invalid construye un ErrValidation sobre un campo.
func Invalid(field, message string) error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

// InvalidRow construye un ErrValidation para la fila row de un lote.
func InvalidRow(row int, field, message string) error {
	return &Error{Kind: ErrValidation, Row: row, Field: field, Message: message}
}

// Persistence envuelve un error del almacenamiento.
func Persistence(op string, err error) error {
	return &Error{Kind: ErrPersistence, Message: op, Err: err}
}

// AtRow agrega el número de fila a un error de dominio; otros errores se devuelven igual.
func AtRow(err error, row int) error {
	var de *Error
	if errors.As(err, &de) && de.Row == 0 {
		cp := *de
		cp.Row = row
		return &cp
	}
	return err
}
