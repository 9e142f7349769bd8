package entity

import "time"

// Item representa un artículo del inventario. Code es único; la importación de hojas
// usa el nombre del artículo como código.
type Item struct {
	ID         int64     `db:"id"`
	Code       string    `db:"code"`
	Name       string    `db:"name"`
	CategoryID *int64    `db:"category_id"`
	CreatedAt  time.Time `db:"created_at"`
}
