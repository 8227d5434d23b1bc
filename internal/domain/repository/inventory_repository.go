package repository

import (
	"context"

	"github.com/invorya/pos-api/internal/domain/entity"
)

// InventoryFilter filtros para listar registros de inventario.
type InventoryFilter struct {
	WarehouseID string // vacío = todas las bodegas
	Search      string // busca por SKU o nombre de producto
	LowStock    bool   // solo registros con cantidad <= mínimo
	// ScopeWarehouseIDs restringe a bodegas dentro del alcance del actor.
	// Vacío = sin restricción (admin).
	ScopeWarehouseIDs []string
}

// InventoryRepository define el puerto de persistencia del ledger de stock por (producto, bodega).
// Las mutaciones ocurren siempre dentro de una transacción del TxRunner; GetForUpdate
// bloquea la fila (SELECT FOR UPDATE) para serializar escritores concurrentes.
type InventoryRepository interface {
	// Get devuelve el registro o nil si no existe (sin error).
	Get(ctx context.Context, productID, warehouseID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila. Devuelve nil si no existe; ErrContention si
	// el bloqueo no se adquiere dentro del lock_timeout de la transacción.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryRecord, error)
	// EnsureExists materializa la fila en cero si no existe, sin tocarla si ya
	// existe. FOR UPDATE no bloquea filas inexistentes: los créditos que crean
	// el registro la insertan primero y vuelven a pedir el bloqueo.
	EnsureExists(ctx context.Context, productID, warehouseID string) error
	Upsert(ctx context.Context, record *entity.InventoryRecord) error
	List(ctx context.Context, filter InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error)
	// ListBelowMin devuelve los registros en stock bajo. warehouseIDs vacío = sin restricción.
	ListBelowMin(ctx context.Context, warehouseIDs []string) ([]*entity.InventoryRecord, error)
}
