package entity

import "time"

// Roles del sistema POS. Deben coincidir con el CHECK de la tabla employees.
const (
	RoleAdmin   = "admin"   // sin restricción de bodega
	RoleManager = "manager" // limitado a sus bodegas asignadas
	RoleCashier = "cashier" // ventas y ajustes en sus bodegas; sin traslados
)

// Employee representa un empleado de la tienda (admin, encargado o cajero).
type Employee struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // ver constantes Role*
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
