package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/pos-api/internal/application/dto"
	"github.com/invorya/pos-api/internal/application/transfer"
	"github.com/invorya/pos-api/internal/domain/repository"
)

// TransferHandler maneja las peticiones HTTP del flujo de traslados (protegido).
type TransferHandler struct {
	uc *transfer.WorkflowUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.WorkflowUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear una solicitud de traslado entre bodegas
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "product_id, from_warehouse_id, to_warehouse_id, quantity opcional"
// @Success      201   {object}  dto.TransferRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer-requests [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), transfer.CreateInput{
		ActorID:           GetUserID(c),
		ProductID:         in.ProductID,
		FromWarehouseID:   in.FromWarehouseID,
		ToWarehouseID:     in.ToWarehouseID,
		RequestedQuantity: in.Quantity,
		Notes:             in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransferRequestResponse(req))
}

// Decide godoc
// @Summary      Aprobar o rechazar una solicitud pendiente
// @Description  Al aprobar se debita la bodega origen en la misma transacción;
//               la cantidad aprobada es obligatoria y puede diferir de la solicitada.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "UUID de la solicitud"
// @Param        body  body  dto.DecideTransferRequest  true  "status (approved|rejected), quantity al aprobar"
// @Success      200   {object}  dto.TransferRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer-requests/{id}/approve [put]
func (h *TransferHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Decide(c.Context(), transfer.DecideInput{
		ActorID:          GetUserID(c),
		RequestID:        c.Params("id"),
		Decision:         in.Status,
		ApprovedQuantity: in.Quantity,
		Notes:            in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferRequestResponse(req))
}

// Receive godoc
// @Summary      Confirmar la recepción física de un traslado aprobado
// @Description  Acredita la bodega destino y marca la solicitud como completed.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la solicitud"
// @Success      200  {object}  dto.TransferRequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer-requests/{id}/receive [put]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	req, err := h.uc.Receive(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferRequestResponse(req))
}

// Get godoc
// @Summary      Consultar una solicitud de traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la solicitud"
// @Success      200  {object}  dto.TransferRequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer-requests/{id} [get]
func (h *TransferHandler) Get(c *fiber.Ctx) error {
	req, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferRequestResponse(req))
}

// List godoc
// @Summary      Listar solicitudes de traslado visibles para el actor
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status        query  string  false  "pending | approved | rejected | completed"
// @Param        warehouse_id  query  string  false  "Origen o destino"
// @Param        page          query  int     false  "Página (desde 1)"
// @Param        limit         query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.TransferRequestListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer-requests [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.TransferFilter{
		Status:      c.Query("status"),
		WarehouseID: c.Query("warehouse_id"),
	}
	list, err := h.uc.List(c.Context(), GetUserID(c), filter, page.Limit, page.Offset())
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.TransferRequestResponse, 0, len(list))
	for _, req := range list {
		items = append(items, dto.ToTransferRequestResponse(req))
	}
	return c.JSON(dto.TransferRequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: page.Page, Limit: page.Limit},
	})
}
