package usecase

import (
	"context"

	"github.com/invorya/pos-api/internal/application/scope"
	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/repository"
)

// EmployeeUseCase administración de asignaciones de bodega por empleado
// (insumo del resolutor de alcance). Solo admin, gateado en el router.
type EmployeeUseCase struct {
	employeeRepo  repository.EmployeeRepository
	warehouseRepo repository.WarehouseRepository
	resolver      *scope.CatalogResolver
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	employeeRepo repository.EmployeeRepository,
	warehouseRepo repository.WarehouseRepository,
	resolver *scope.CatalogResolver,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		employeeRepo:  employeeRepo,
		warehouseRepo: warehouseRepo,
		resolver:      resolver,
	}
}

// SetWarehouses reemplaza el conjunto de bodegas asignadas a un empleado e
// invalida su alcance cacheado para que el cambio aplique de inmediato.
func (uc *EmployeeUseCase) SetWarehouses(ctx context.Context, employeeID string, warehouseIDs []string) error {
	emp, err := uc.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp == nil {
		return domain.ErrNotFound
	}
	for _, id := range warehouseIDs {
		if ok, err := uc.warehouseRepo.Exists(ctx, id); err != nil {
			return err
		} else if !ok {
			return domain.ErrNotFound
		}
	}
	if err := uc.employeeRepo.SetAssignedWarehouses(ctx, employeeID, warehouseIDs); err != nil {
		return err
	}
	uc.resolver.Invalidate(ctx, employeeID)
	return nil
}
