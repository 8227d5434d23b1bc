package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/pos-api/internal/application/dto"
	"github.com/invorya/pos-api/internal/application/usecase"
)

// EmployeeHandler administración de asignaciones de bodega (solo admin).
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// SetWarehouses godoc
// @Summary      Reemplazar las bodegas asignadas a un empleado (solo admin)
// @Description  Invalida el alcance cacheado del empleado: el nuevo conjunto
//               aplica en su siguiente petición.
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "UUID del empleado"
// @Param        body  body  dto.SetWarehousesRequest  true  "warehouse_ids (conjunto completo)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/warehouses [put]
func (h *EmployeeHandler) SetWarehouses(c *fiber.Ctx) error {
	var in dto.SetWarehousesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetWarehouses(c.Context(), c.Params("id"), in.WarehouseIDs); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "asignaciones actualizadas"})
}
