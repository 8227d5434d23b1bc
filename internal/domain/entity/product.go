package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// El stock no vive aquí: se maneja por bodega en InventoryRecord.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
