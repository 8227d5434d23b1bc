package inventory

import (
	"context"

	"github.com/invorya/pos-api/internal/application/scope"
	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
)

// QueryUseCase lecturas paginadas de inventario y movimientos, acotadas al
// alcance del actor.
type QueryUseCase struct {
	invRepo repository.InventoryRepository
	movRepo repository.StockMovementRepository
	scopes  scope.Resolver
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	scopes scope.Resolver,
) *QueryUseCase {
	return &QueryUseCase{invRepo: invRepo, movRepo: movRepo, scopes: scopes}
}

// ListInventory lista registros de inventario. Si se filtra por bodega, el actor
// debe tener alcance sobre ella; sin filtro, los no-admin ven solo sus bodegas.
func (uc *QueryUseCase) ListInventory(ctx context.Context, actorID string, filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	sc, err := uc.scopes.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if filter.WarehouseID != "" && !sc.CanAccessWarehouse(filter.WarehouseID) {
		return nil, domain.ErrScopeViolation
	}
	if sc.Role != entity.RoleAdmin {
		if len(sc.WarehouseIDs) == 0 {
			return []*entity.InventoryRecord{}, nil
		}
		filter.ScopeWarehouseIDs = sc.WarehouseIDs
	}
	return uc.invRepo.List(ctx, filter, limit, offset)
}

// ListMovements lista el log de movimientos, más reciente primero. Mismas reglas
// de alcance que ListInventory; el log en sí es de solo lectura.
func (uc *QueryUseCase) ListMovements(ctx context.Context, actorID string, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	sc, err := uc.scopes.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if filter.WarehouseID != "" && !sc.CanAccessWarehouse(filter.WarehouseID) {
		return nil, domain.ErrScopeViolation
	}
	if sc.Role != entity.RoleAdmin {
		if len(sc.WarehouseIDs) == 0 {
			return []*entity.StockMovement{}, nil
		}
		filter.ScopeWarehouseIDs = sc.WarehouseIDs
	}
	return uc.movRepo.List(ctx, filter, limit, offset)
}
