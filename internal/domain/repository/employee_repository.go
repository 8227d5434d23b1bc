package repository

import (
	"context"

	"github.com/invorya/pos-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia de empleados y sus
// asignaciones de bodega (insumo del resolutor de alcance).
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	// GetByID devuelve el empleado o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	// ListAssignedWarehouses devuelve los IDs de bodega asignados al empleado.
	ListAssignedWarehouses(ctx context.Context, employeeID string) ([]string, error)
	// SetAssignedWarehouses reemplaza el conjunto completo de asignaciones.
	SetAssignedWarehouses(ctx context.Context, employeeID string, warehouseIDs []string) error
}
