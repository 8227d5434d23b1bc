package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/pos-api/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/inventory/adjust.
// Quantity es un delta con signo; Reason mapea al tipo de movimiento.
type AdjustStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason"` // sale, purchase, adjustment, return
	Notes       string          `json:"notes,omitempty"`
}

// SetStockRequest body para POST /api/inventory/set ("stock a X").
type SetStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Notes       string          `json:"notes,omitempty"`
}

// DirectTransferRequest body para POST /api/inventory/transfer (solo admin).
type DirectTransferRequest struct {
	ProductID       string          `json:"product_id"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	Notes           string          `json:"notes,omitempty"`
}

// InventoryRecordResponse registro de inventario en respuestas.
type InventoryRecordResponse struct {
	ProductID       string           `json:"product_id"`
	WarehouseID     string           `json:"warehouse_id"`
	Quantity        decimal.Decimal  `json:"quantity"`
	MinStockLevel   decimal.Decimal  `json:"min_stock_level"`
	MaxStockLevel   *decimal.Decimal `json:"max_stock_level,omitempty"`
	LastRestockedAt *time.Time       `json:"last_restocked_at,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// MovementResponse movimiento de inventario en respuestas.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Notes       string          `json:"notes,omitempty"`
	EmployeeID  string          `json:"employee_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// InventoryListResponse página de registros de inventario.
type InventoryListResponse struct {
	Items []InventoryRecordResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToInventoryRecordResponse convierte la entidad a DTO de respuesta.
func ToInventoryRecordResponse(r *entity.InventoryRecord) InventoryRecordResponse {
	return InventoryRecordResponse{
		ProductID:       r.ProductID,
		WarehouseID:     r.WarehouseID,
		Quantity:        r.Quantity,
		MinStockLevel:   r.MinStockLevel,
		MaxStockLevel:   r.MaxStockLevel,
		LastRestockedAt: r.LastRestockedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToMovementResponse convierte la entidad a DTO de respuesta.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		EmployeeID:  m.EmployeeID,
		CreatedAt:   m.CreatedAt,
	}
}
