package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/invorya/pos-api/internal/domain/entity"
)

func TestInventoryRecord_BelowMin(t *testing.T) {
	cases := []struct {
		nombre   string
		cantidad string
		minimo   string
		esperado bool
	}{
		{"bajo el mínimo", "3", "5", true},
		{"exactamente en el mínimo alerta", "5", "5", true},
		{"sobre el mínimo", "6", "5", false},
		{"mínimo en cero nunca alerta", "0", "0", false},
		{"sin umbral con stock", "100", "0", false},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			rec := &entity.InventoryRecord{
				Quantity:      decimal.RequireFromString(tc.cantidad),
				MinStockLevel: decimal.RequireFromString(tc.minimo),
			}
			assert.Equal(t, tc.esperado, rec.BelowMin())
		})
	}
}

func TestScope_CanAccessWarehouse(t *testing.T) {
	admin := entity.Scope{ActorID: "a", Role: entity.RoleAdmin}
	assert.True(t, admin.CanAccessWarehouse("cualquiera"), "admin no tiene restricción de bodega")

	manager := entity.Scope{ActorID: "m", Role: entity.RoleManager, WarehouseIDs: []string{"w1", "w2"}}
	assert.True(t, manager.CanAccessWarehouse("w1"))
	assert.False(t, manager.CanAccessWarehouse("w3"))

	sinAsignaciones := entity.Scope{ActorID: "c", Role: entity.RoleCashier}
	assert.False(t, sinAsignaciones.CanAccessWarehouse("w1"),
		"sin asignaciones el alcance es vacío, no global")
}

func TestScope_CanUseTransferWorkflow(t *testing.T) {
	assert.True(t, entity.Scope{Role: entity.RoleAdmin}.CanUseTransferWorkflow())
	assert.True(t, entity.Scope{Role: entity.RoleManager}.CanUseTransferWorkflow())
	assert.False(t, entity.Scope{Role: entity.RoleCashier}.CanUseTransferWorkflow(),
		"los cajeros no participan del flujo de traslados")
}
