package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/pos-api/internal/domain/entity"
)

// CreateTransferRequest body para POST /api/inventory/transfer-requests.
// Quantity es opcional: la cantidad definitiva se fija al aprobar.
type CreateTransferRequest struct {
	ProductID       string           `json:"product_id"`
	FromWarehouseID string           `json:"from_warehouse_id"`
	ToWarehouseID   string           `json:"to_warehouse_id"`
	Quantity        *decimal.Decimal `json:"quantity,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

// DecideTransferRequest body para PUT /api/inventory/transfer-requests/:id/approve.
type DecideTransferRequest struct {
	Status   string           `json:"status"` // approved | rejected
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Notes    string           `json:"notes,omitempty"`
}

// TransferRequestResponse solicitud de traslado en respuestas.
type TransferRequestResponse struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	FromWarehouseID   string           `json:"from_warehouse_id"`
	ToWarehouseID     string           `json:"to_warehouse_id"`
	RequestedQuantity *decimal.Decimal `json:"requested_quantity,omitempty"`
	ApprovedQuantity  *decimal.Decimal `json:"approved_quantity,omitempty"`
	Status            string           `json:"status"`
	Notes             string           `json:"notes,omitempty"`
	RequestedBy       string           `json:"requested_by"`
	ApprovedBy        string           `json:"approved_by,omitempty"`
	ReceivedBy        string           `json:"received_by,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TransferRequestListResponse página de solicitudes.
type TransferRequestListResponse struct {
	Items []TransferRequestResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// ToTransferRequestResponse convierte la entidad a DTO de respuesta.
func ToTransferRequestResponse(t *entity.TransferRequest) TransferRequestResponse {
	return TransferRequestResponse{
		ID:                t.ID,
		ProductID:         t.ProductID,
		FromWarehouseID:   t.FromWarehouseID,
		ToWarehouseID:     t.ToWarehouseID,
		RequestedQuantity: t.RequestedQuantity,
		ApprovedQuantity:  t.ApprovedQuantity,
		Status:            t.Status,
		Notes:             t.Notes,
		RequestedBy:       t.RequestedBy,
		ApprovedBy:        t.ApprovedBy,
		ReceivedBy:        t.ReceivedBy,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
