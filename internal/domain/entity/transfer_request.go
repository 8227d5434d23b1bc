package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/pos-api/internal/domain"
)

// Estados de una solicitud de traslado. Deben coincidir con el CHECK de transfer_requests.
//
// Transiciones permitidas:
//
//	pending  -> approved | rejected
//	approved -> completed
//
// rejected y completed son terminales. Ninguna transición es reversible.
const (
	TransferStatusPending   = "pending"
	TransferStatusApproved  = "approved"
	TransferStatusRejected  = "rejected"
	TransferStatusCompleted = "completed"
)

// ValidTransferStatus verifica que el estado sea uno de los soportados.
func ValidTransferStatus(s string) bool {
	switch s {
	case TransferStatusPending, TransferStatusApproved,
		TransferStatusRejected, TransferStatusCompleted:
		return true
	}
	return false
}

// TransferRequest media un traslado de stock propuesto entre dos bodegas.
// La cantidad solicitada es opcional al crear: se fija en la aprobación,
// porque el stock puede haberse movido entre solicitud y revisión.
type TransferRequest struct {
	ID                string
	ProductID         string
	FromWarehouseID   string
	ToWarehouseID     string
	RequestedQuantity *decimal.Decimal // nil hasta que el solicitante la indique
	ApprovedQuantity  *decimal.Decimal // solo se fija al aprobar
	Status            string
	Notes             string
	RequestedBy       string
	ApprovedBy        string // vacío hasta que se decide
	ReceivedBy        string // vacío hasta que se confirma recepción
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CanTransition indica si la arista status -> to es legal.
func (t *TransferRequest) CanTransition(to string) bool {
	switch t.Status {
	case TransferStatusPending:
		return to == TransferStatusApproved || to == TransferStatusRejected
	case TransferStatusApproved:
		return to == TransferStatusCompleted
	}
	// rejected y completed: terminales
	return false
}

// Transition aplica la transición o devuelve ErrInvalidStateTransition sin tocar el estado.
// Los reintentos de una decisión ya aplicada fallan: el exactly-once lo garantiza
// el caller al ejecutar esto bajo el bloqueo de fila de la solicitud.
func (t *TransferRequest) Transition(to string) error {
	if !t.CanTransition(to) {
		return domain.ErrInvalidStateTransition
	}
	t.Status = to
	return nil
}
