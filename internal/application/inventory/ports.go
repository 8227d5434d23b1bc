package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la mutación del InventoryRecord y el StockMovement
// que la describe se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// LowStockAlert evento emitido cuando un registro queda en o bajo su mínimo
// después de confirmar una mutación del ledger.
type LowStockAlert struct {
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	At            time.Time       `json:"at"`
}

// LowStockNotifier despacha alertas de stock bajo al colaborador de notificaciones.
// Se invoca estrictamente después del commit, fuera de la transacción, y sus
// errores no afectan la operación del ledger.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alert LowStockAlert) error
}

// NopNotifier descarta las alertas. Se usa cuando AMQP no está configurado.
type NopNotifier struct{}

func (NopNotifier) NotifyLowStock(context.Context, LowStockAlert) error { return nil }
