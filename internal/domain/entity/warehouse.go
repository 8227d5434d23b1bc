package entity

import "time"

// Warehouse representa una bodega o punto de venta con inventario propio.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
