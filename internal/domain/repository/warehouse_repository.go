package repository

import (
	"context"

	"github.com/invorya/pos-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia de bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	// GetByID devuelve la bodega o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
}
