package entity

// Scope es el conjunto de bodegas sobre las que un actor puede operar, junto con su rol.
// Se resuelve una vez por petición y se pasa explícito a los casos de uso;
// nunca se consulta estado global.
type Scope struct {
	ActorID      string
	Role         string
	WarehouseIDs []string
}

// CanAccessWarehouse indica si el actor puede operar sobre la bodega.
// Admin no tiene restricción; el resto solo sus bodegas asignadas.
func (s Scope) CanAccessWarehouse(warehouseID string) bool {
	if s.Role == RoleAdmin {
		return true
	}
	for _, id := range s.WarehouseIDs {
		if id == warehouseID {
			return true
		}
	}
	return false
}

// CanUseTransferWorkflow indica si el rol participa del flujo de traslados.
// Los cajeros no crean, deciden, reciben ni listan solicitudes.
func (s Scope) CanUseTransferWorkflow() bool {
	return s.Role == RoleAdmin || s.Role == RoleManager
}
