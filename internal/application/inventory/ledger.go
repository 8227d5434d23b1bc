package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/pos-api/internal/application/scope"
	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
	"github.com/invorya/pos-api/pkg/logger"
)

// LedgerUseCase es el único punto de mutación de InventoryRecord: aplica deltas
// con signo de forma transaccional con bloqueo de fila (SELECT FOR UPDATE) y
// registra un StockMovement por cada mutación en la misma transacción.
// Ningún otro componente escribe cantidades directamente.
type LedgerUseCase struct {
	txRunner      TxRunner
	invRepo       repository.InventoryRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	scopes        scope.Resolver
	notifier      LowStockNotifier
	log           *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	scopes scope.Resolver,
	notifier LowStockNotifier,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		invRepo:       invRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		scopes:        scopes,
		notifier:      notifier,
		log:           log,
	}
}

// ApplyDeltaInput entrada para aplicar un delta al ledger.
type ApplyDeltaInput struct {
	ActorID     string
	ProductID   string
	WarehouseID string
	Delta       decimal.Decimal // con signo, distinto de cero
	Type        string          // ver entity.MovementType*
	Notes       string
}

// SetAbsoluteInput entrada para fijar la cantidad en un valor absoluto ("stock a X").
type SetAbsoluteInput struct {
	ActorID     string
	ProductID   string
	WarehouseID string
	NewQuantity decimal.Decimal // >= 0
	Notes       string
}

// DirectTransferInput entrada del traslado directo (sin flujo de aprobación, solo admin).
type DirectTransferInput struct {
	ActorID         string
	ProductID       string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal // > 0
	Notes           string
}

// ApplyDelta aplica un delta con signo al registro (producto, bodega) dentro de una
// transacción: bloquea la fila, verifica que la cantidad resultante no sea negativa,
// actualiza y guarda el movimiento. Los débitos nunca crean registros; los créditos
// crean el registro en cero si no existe. Tras el commit dispara la re-evaluación
// de stock bajo (fire-and-forget, fuera de la transacción).
func (uc *LedgerUseCase) ApplyDelta(ctx context.Context, input ApplyDeltaInput) (*entity.StockMovement, error) {
	if input.ProductID == "" || input.WarehouseID == "" || input.Delta.IsZero() || !entity.ValidMovementType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	if input.Type == entity.MovementTypeTransfer {
		// Los movimientos transfer nacen siempre en pares (débito + crédito)
		// dentro del flujo de traslados o del traslado directo, nunca sueltos.
		return nil, domain.ErrInvalidInput
	}
	sc, err := uc.scopes.Resolve(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !sc.CanAccessWarehouse(input.WarehouseID) {
		return nil, domain.ErrScopeViolation
	}
	if err := uc.checkReferences(ctx, input.ProductID, input.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	var (
		mov   *entity.StockMovement
		after entity.InventoryRecord
	)
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		m, rec, err := uc.ApplyDeltaInTx(ctx, invRepo, movRepo, input, now)
		if err != nil {
			return err
		}
		mov, after = m, *rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.NotifyIfBelowMin(after)
	return mov, nil
}

// ApplyDeltaInTx aplica el delta usando los repositorios proporcionados (misma
// transacción del caller). Lo usa el flujo de traslados para que el débito de la
// aprobación y el crédito de la recepción pasen por el mismo embudo del ledger.
// No valida alcance ni referencias: eso es responsabilidad del caller.
func (uc *LedgerUseCase) ApplyDeltaInTx(
	ctx context.Context,
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	input ApplyDeltaInput,
	now time.Time,
) (*entity.StockMovement, *entity.InventoryRecord, error) {
	// Bloquea la fila para serializar escritores del mismo (producto, bodega)
	rec, err := invRepo.GetForUpdate(ctx, input.ProductID, input.WarehouseID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		if input.Delta.IsNegative() {
			// Un débito nunca crea el registro implícitamente
			return nil, nil, domain.ErrNotFound
		}
		// FOR UPDATE sobre una fila inexistente no bloquea nada: dos créditos
		// concurrentes leerían ambos "sin registro" y el segundo pisaría al
		// primero. Se materializa la fila en cero y se vuelve a bloquear.
		if err := invRepo.EnsureExists(ctx, input.ProductID, input.WarehouseID); err != nil {
			return nil, nil, err
		}
		rec, err = invRepo.GetForUpdate(ctx, input.ProductID, input.WarehouseID)
		if err != nil {
			return nil, nil, err
		}
		if rec == nil {
			return nil, nil, domain.ErrNotFound
		}
	}
	newQty := rec.Quantity.Add(input.Delta)
	if newQty.IsNegative() {
		return nil, nil, domain.ErrInsufficientStock
	}
	rec.Quantity = newQty
	rec.UpdatedAt = now
	if input.Delta.IsPositive() &&
		(input.Type == entity.MovementTypePurchase || input.Type == entity.MovementTypeTransfer) {
		restocked := now
		rec.LastRestockedAt = &restocked
	}
	if err := invRepo.Upsert(ctx, rec); err != nil {
		return nil, nil, err
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   input.ProductID,
		WarehouseID: input.WarehouseID,
		Type:        input.Type,
		Quantity:    input.Delta,
		Notes:       input.Notes,
		EmployeeID:  input.ActorID,
		CreatedAt:   now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, nil, err
	}
	return mov, rec, nil
}

// GetQuantity devuelve la cantidad actual del par (producto, bodega) si la
// bodega está dentro del alcance del actor. Lectura puntual sin bloqueo;
// sin registro equivale a cero.
func (uc *LedgerUseCase) GetQuantity(ctx context.Context, actorID, productID, warehouseID string) (decimal.Decimal, error) {
	sc, err := uc.scopes.Resolve(ctx, actorID)
	if err != nil {
		return decimal.Zero, err
	}
	if !sc.CanAccessWarehouse(warehouseID) {
		return decimal.Zero, domain.ErrScopeViolation
	}
	rec, err := uc.invRepo.Get(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	if rec == nil {
		return decimal.Zero, nil
	}
	return rec.Quantity, nil
}

// SetAbsolute fija la cantidad en NewQuantity calculando el delta contra la cantidad
// actual dentro de la misma transacción (bloqueo primero, cálculo después, para no
// competir con otros escritores). Un delta resultante de cero es entrada inválida.
func (uc *LedgerUseCase) SetAbsolute(ctx context.Context, input SetAbsoluteInput) (*entity.StockMovement, error) {
	if input.ProductID == "" || input.WarehouseID == "" || input.NewQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	sc, err := uc.scopes.Resolve(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !sc.CanAccessWarehouse(input.WarehouseID) {
		return nil, domain.ErrScopeViolation
	}
	if err := uc.checkReferences(ctx, input.ProductID, input.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	var (
		mov   *entity.StockMovement
		after entity.InventoryRecord
	)
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		rec, err := invRepo.GetForUpdate(ctx, input.ProductID, input.WarehouseID)
		if err != nil {
			return err
		}
		current := decimal.Zero
		if rec != nil {
			current = rec.Quantity
		}
		delta := input.NewQuantity.Sub(current)
		if delta.IsZero() {
			return domain.ErrInvalidInput
		}
		m, updated, err := uc.ApplyDeltaInTx(ctx, invRepo, movRepo, ApplyDeltaInput{
			ActorID:     input.ActorID,
			ProductID:   input.ProductID,
			WarehouseID: input.WarehouseID,
			Delta:       delta,
			Type:        entity.MovementTypeAdjustment,
			Notes:       input.Notes,
		}, now)
		if err != nil {
			return err
		}
		mov, after = m, *updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.NotifyIfBelowMin(after)
	return mov, nil
}

// DirectTransfer mueve stock entre dos bodegas en una sola transacción: débito en
// origen y crédito en destino con dos movimientos tipo transfer. Reservado a admins
// para correcciones ya autorizadas; los encargados usan el flujo de solicitud.
func (uc *LedgerUseCase) DirectTransfer(ctx context.Context, input DirectTransferInput) (out, in *entity.StockMovement, err error) {
	if input.ProductID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" ||
		input.FromWarehouseID == input.ToWarehouseID || !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}
	sc, err := uc.scopes.Resolve(ctx, input.ActorID)
	if err != nil {
		return nil, nil, err
	}
	if sc.Role != entity.RoleAdmin {
		return nil, nil, domain.ErrScopeViolation
	}
	if err := uc.checkReferences(ctx, input.ProductID, input.FromWarehouseID); err != nil {
		return nil, nil, err
	}
	if ok, err := uc.warehouseRepo.Exists(ctx, input.ToWarehouseID); err != nil {
		return nil, nil, err
	} else if !ok {
		return nil, nil, domain.ErrNotFound
	}

	now := time.Now()
	var source, dest entity.InventoryRecord
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		outMov, fromRec, err := uc.ApplyDeltaInTx(ctx, invRepo, movRepo, ApplyDeltaInput{
			ActorID:     input.ActorID,
			ProductID:   input.ProductID,
			WarehouseID: input.FromWarehouseID,
			Delta:       input.Quantity.Neg(),
			Type:        entity.MovementTypeTransfer,
			Notes:       input.Notes,
		}, now)
		if err != nil {
			return err
		}
		inMov, toRec, err := uc.ApplyDeltaInTx(ctx, invRepo, movRepo, ApplyDeltaInput{
			ActorID:     input.ActorID,
			ProductID:   input.ProductID,
			WarehouseID: input.ToWarehouseID,
			Delta:       input.Quantity,
			Type:        entity.MovementTypeTransfer,
			Notes:       input.Notes,
		}, now)
		if err != nil {
			return err
		}
		out, in = outMov, inMov
		source, dest = *fromRec, *toRec
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	uc.NotifyIfBelowMin(source)
	uc.NotifyIfBelowMin(dest)
	return out, in, nil
}

func (uc *LedgerUseCase) checkReferences(ctx context.Context, productID, warehouseID string) error {
	if ok, err := uc.productRepo.Exists(ctx, productID); err != nil {
		return err
	} else if !ok {
		return domain.ErrNotFound
	}
	if ok, err := uc.warehouseRepo.Exists(ctx, warehouseID); err != nil {
		return err
	} else if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// NotifyIfBelowMin notifica en segundo plano si el registro quedó en o bajo su mínimo.
// Corre después del commit con contexto propio: nunca dentro de la transacción
// ni bloqueando la respuesta del caller.
func (uc *LedgerUseCase) NotifyIfBelowMin(rec entity.InventoryRecord) {
	if !rec.BelowMin() {
		return
	}
	alert := LowStockAlert{
		ProductID:     rec.ProductID,
		WarehouseID:   rec.WarehouseID,
		Quantity:      rec.Quantity,
		MinStockLevel: rec.MinStockLevel,
		At:            time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.notifier.NotifyLowStock(ctx, alert); err != nil {
			uc.log.Warn().Err(err).
				Str("product_id", alert.ProductID).
				Str("warehouse_id", alert.WarehouseID).
				Msg("no se pudo despachar la alerta de stock bajo")
		}
	}()
}
