package dto

import "time"

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmployeeResponse empleado en respuestas (nunca incluye el hash).
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + empleado autenticado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Employee EmployeeResponse `json:"employee"`
}

// SetWarehousesRequest body para PUT /api/employees/:id/warehouses (solo admin).
// Reemplaza el conjunto completo de bodegas asignadas.
type SetWarehousesRequest struct {
	WarehouseIDs []string `json:"warehouse_ids"`
}
