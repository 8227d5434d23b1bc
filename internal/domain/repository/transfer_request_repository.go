package repository

import (
	"context"

	"github.com/invorya/pos-api/internal/domain/entity"
)

// TransferFilter filtros para listar solicitudes de traslado.
type TransferFilter struct {
	Status      string // vacío = todos
	WarehouseID string // coincide con origen o destino
	// ScopeWarehouseIDs restringe a solicitudes cuyo origen o destino esté en el
	// conjunto (alcance del actor). Vacío = sin restricción (admin).
	ScopeWarehouseIDs []string
}

// TransferRequestRepository define el puerto de persistencia de solicitudes de traslado.
type TransferRequestRepository interface {
	Create(ctx context.Context, request *entity.TransferRequest) error
	// GetByID devuelve la solicitud o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.TransferRequest, error)
	// GetByIDForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE) para que
	// dos decisiones concurrentes sobre la misma solicitud se serialicen.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.TransferRequest, error)
	Update(ctx context.Context, request *entity.TransferRequest) error
	List(ctx context.Context, filter TransferFilter, limit, offset int) ([]*entity.TransferRequest, error)
}
