package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invorya/pos-api/internal/application/scope"
	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
)

// LowStockStatus resultado de evaluar un par (producto, bodega) contra su mínimo.
type LowStockStatus struct {
	BelowMin      bool
	Quantity      decimal.Decimal
	MinStockLevel decimal.Decimal
}

// LowStockUseCase lectura derivada: compara cantidad contra el mínimo configurado.
type LowStockUseCase struct {
	invRepo repository.InventoryRepository
	scopes  scope.Resolver
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(invRepo repository.InventoryRepository, scopes scope.Resolver) *LowStockUseCase {
	return &LowStockUseCase{invRepo: invRepo, scopes: scopes}
}

// Evaluate evalúa un par puntual dentro del alcance del actor. Sin registro
// equivale a cantidad cero sin umbral.
func (uc *LowStockUseCase) Evaluate(ctx context.Context, actorID, productID, warehouseID string) (LowStockStatus, error) {
	if productID == "" || warehouseID == "" {
		return LowStockStatus{}, domain.ErrInvalidInput
	}
	sc, err := uc.scopes.Resolve(ctx, actorID)
	if err != nil {
		return LowStockStatus{}, err
	}
	if !sc.CanAccessWarehouse(warehouseID) {
		return LowStockStatus{}, domain.ErrScopeViolation
	}
	rec, err := uc.invRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return LowStockStatus{}, err
	}
	if rec == nil {
		return LowStockStatus{Quantity: decimal.Zero, MinStockLevel: decimal.Zero}, nil
	}
	return LowStockStatus{
		BelowMin:      rec.BelowMin(),
		Quantity:      rec.Quantity,
		MinStockLevel: rec.MinStockLevel,
	}, nil
}

// ListBelowMin lista los registros en stock bajo dentro del alcance del actor:
// admin ve todas las bodegas, el resto solo las asignadas.
func (uc *LowStockUseCase) ListBelowMin(ctx context.Context, actorID string) ([]*entity.InventoryRecord, error) {
	sc, err := uc.scopes.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	var warehouseIDs []string
	if sc.Role != entity.RoleAdmin {
		if len(sc.WarehouseIDs) == 0 {
			return []*entity.InventoryRecord{}, nil
		}
		warehouseIDs = sc.WarehouseIDs
	}
	return uc.invRepo.ListBelowMin(ctx, warehouseIDs)
}
