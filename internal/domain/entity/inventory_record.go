package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord es la cantidad disponible de un producto en una bodega.
// Identidad: (ProductID, WarehouseID), única. Invariante: Quantity >= 0 siempre;
// se muta únicamente a través del ledger (ApplyDelta), nunca por escritura directa.
type InventoryRecord struct {
	ProductID       string
	WarehouseID     string
	Quantity        decimal.Decimal
	MinStockLevel   decimal.Decimal
	MaxStockLevel   *decimal.Decimal // nil = sin tope
	LastRestockedAt *time.Time
	UpdatedAt       time.Time
}

// BelowMin indica si el registro está en stock bajo: cantidad <= mínimo configurado.
// Un mínimo en cero significa "sin umbral" y nunca alerta.
func (r *InventoryRecord) BelowMin() bool {
	return r.MinStockLevel.GreaterThan(decimal.Zero) &&
		r.Quantity.LessThanOrEqual(r.MinStockLevel)
}
