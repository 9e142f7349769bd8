package inventory

import "context"

// RebuildLockKey clave del candado que serializa las reconstrucciones del inventario.
const RebuildLockKey = "lock:inventory:rebuild"

// Locker obtiene un candado exclusivo sin esperar; si está tomado devuelve domain.ErrConflict.
// La función devuelta lo libera.
type Locker interface {
	Obtain(ctx context.Context, key string) (func(ctx context.Context) error, error)
}
