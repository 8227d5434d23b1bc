package transfer

import (
	"context"

	"github.com/invorya/pos-api/internal/domain/repository"
)

// TransferTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el flujo de traslados. Garantiza que el cambio de
// estado de la solicitud y el efecto en el ledger (débito al aprobar, crédito
// al recibir) se confirmen juntos o ninguno.
type TransferTxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		trRepo repository.TransferRequestRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
