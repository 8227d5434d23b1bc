package repository

import (
	"context"
	"time"

	"github.com/invorya/pos-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos.
type MovementFilter struct {
	WarehouseID string
	ProductID   string
	DateFrom    *time.Time
	DateTo      *time.Time
	// ScopeWarehouseIDs restringe a bodegas dentro del alcance del actor.
	// Vacío = sin restricción (admin).
	ScopeWarehouseIDs []string
}

// StockMovementRepository define el puerto del log de movimientos: append y consulta,
// sin lógica de negocio. Create se invoca siempre dentro de la transacción del caller,
// nunca de forma independiente.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve movimientos ordenados por created_at descendente.
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
}
