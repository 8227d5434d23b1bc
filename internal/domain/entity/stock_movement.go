package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. Deben coincidir con el CHECK de stock_movements.
const (
	MovementTypeSale       = "sale"
	MovementTypePurchase   = "purchase"
	MovementTypeAdjustment = "adjustment"
	MovementTypeTransfer   = "transfer"
	MovementTypeReturn     = "return"
)

// ValidMovementType verifica que el tipo sea uno de los soportados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeSale, MovementTypePurchase, MovementTypeAdjustment,
		MovementTypeTransfer, MovementTypeReturn:
		return true
	}
	return false
}

// StockMovement es el registro de auditoría de un cambio de cantidad.
// Inmutable una vez escrito; se persiste en la misma transacción que la
// mutación del InventoryRecord que describe (un movimiento por mutación).
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal // delta con signo: positivo entrada, negativo salida
	Notes       string
	EmployeeID  string
	CreatedAt   time.Time
}
