package entity

import "time"

// Warehouse representa una bodega. Todo el stock está asociado a una bodega.
type Warehouse struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	CreatedAt time.Time `db:"created_at"`
}
