package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invorya/pos-api/internal/application/inventory"
	"github.com/invorya/pos-api/internal/application/scope"
	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
	"github.com/invorya/pos-api/pkg/logger"
)

// WorkflowUseCase gobierna el ciclo de una solicitud de traslado entre bodegas:
// solicitud -> aprobación/rechazo -> recepción. La aprobación debita la bodega
// origen y la recepción acredita la destino, cada una en su propia transacción
// junto con el cambio de estado; entre ambas el stock está "en tránsito"
// (debitado del origen, aún no acreditado en destino). El flujo lee y escribe
// el ledger a través de LedgerUseCase, nunca muta InventoryRecord directamente.
type WorkflowUseCase struct {
	txRunner      TransferTxRunner
	ledger        *inventory.LedgerUseCase
	trRepo        repository.TransferRequestRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	scopes        scope.Resolver
	log           *logger.Logger
}

// NewWorkflowUseCase construye el caso de uso.
func NewWorkflowUseCase(
	txRunner TransferTxRunner,
	ledger *inventory.LedgerUseCase,
	trRepo repository.TransferRequestRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	scopes scope.Resolver,
	log *logger.Logger,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		trRepo:        trRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		scopes:        scopes,
		log:           log,
	}
}

// CreateInput entrada para crear una solicitud de traslado.
// RequestedQuantity es opcional: la cantidad definitiva se fija al aprobar,
// porque el stock puede haberse movido entre solicitud y revisión.
type CreateInput struct {
	ActorID           string
	ProductID         string
	FromWarehouseID   string
	ToWarehouseID     string
	RequestedQuantity *decimal.Decimal
	Notes             string
}

// DecideInput entrada para aprobar o rechazar una solicitud pendiente.
type DecideInput struct {
	ActorID          string
	RequestID        string
	Decision         string           // approved | rejected
	ApprovedQuantity *decimal.Decimal // obligatoria y > 0 al aprobar
	Notes            string
}

// Create registra una solicitud en estado pending. El solicitante debe participar
// del flujo (admin o encargado) y tener alcance sobre la bodega ORIGEN.
func (uc *WorkflowUseCase) Create(ctx context.Context, input CreateInput) (*entity.TransferRequest, error) {
	if input.ProductID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" ||
		input.FromWarehouseID == input.ToWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	if input.RequestedQuantity != nil && !input.RequestedQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	sc, err := uc.scopes.Resolve(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !sc.CanUseTransferWorkflow() || !sc.CanAccessWarehouse(input.FromWarehouseID) {
		return nil, domain.ErrScopeViolation
	}
	if ok, err := uc.productRepo.Exists(ctx, input.ProductID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrNotFound
	}
	for _, id := range []string{input.FromWarehouseID, input.ToWarehouseID} {
		if ok, err := uc.warehouseRepo.Exists(ctx, id); err != nil {
			return nil, err
		} else if !ok {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	req := &entity.TransferRequest{
		ID:                uuid.New().String(),
		ProductID:         input.ProductID,
		FromWarehouseID:   input.FromWarehouseID,
		ToWarehouseID:     input.ToWarehouseID,
		RequestedQuantity: input.RequestedQuantity,
		Status:            entity.TransferStatusPending,
		Notes:             input.Notes,
		RequestedBy:       input.ActorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.trRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Decide aprueba o rechaza una solicitud pendiente, exactamente una vez.
// El aprobador necesita alcance sobre la bodega ORIGEN (la que se debita):
// un encargado asignado solo al destino no puede aprobar.
//
// Al aprobar, la disponibilidad se verifica en este momento (no al solicitar)
// bajo el bloqueo de fila del inventario: el débito del origen y el paso a
// approved son una sola transacción, así que un débito fallido deja la
// solicitud en pending sin ningún efecto en el ledger.
func (uc *WorkflowUseCase) Decide(ctx context.Context, input DecideInput) (*entity.TransferRequest, error) {
	if input.RequestID == "" ||
		(input.Decision != entity.TransferStatusApproved && input.Decision != entity.TransferStatusRejected) {
		return nil, domain.ErrInvalidInput
	}
	if input.Decision == entity.TransferStatusApproved &&
		(input.ApprovedQuantity == nil || !input.ApprovedQuantity.GreaterThan(decimal.Zero)) {
		return nil, domain.ErrInvalidInput
	}
	sc, err := uc.scopes.Resolve(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !sc.CanUseTransferWorkflow() {
		return nil, domain.ErrScopeViolation
	}

	now := time.Now()
	var (
		decided *entity.TransferRequest
		source  *entity.InventoryRecord
	)
	err = uc.txRunner.RunTransfer(ctx, func(
		trRepo repository.TransferRequestRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la solicitud para serializar decisiones concurrentes
		req, err := trRepo.GetByIDForUpdate(ctx, input.RequestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !sc.CanAccessWarehouse(req.FromWarehouseID) {
			return domain.ErrScopeViolation
		}
		if err := req.Transition(input.Decision); err != nil {
			return err
		}
		if input.Decision == entity.TransferStatusApproved {
			// Débito del origen en la misma transacción que el cambio de estado
			_, rec, err := uc.ledger.ApplyDeltaInTx(ctx, invRepo, movRepo, inventory.ApplyDeltaInput{
				ActorID:     input.ActorID,
				ProductID:   req.ProductID,
				WarehouseID: req.FromWarehouseID,
				Delta:       input.ApprovedQuantity.Neg(),
				Type:        entity.MovementTypeTransfer,
				Notes:       input.Notes,
			}, now)
			if err != nil {
				return err
			}
			source = rec
			req.ApprovedQuantity = input.ApprovedQuantity
		}
		req.ApprovedBy = input.ActorID
		if input.Notes != "" {
			req.Notes = input.Notes
		}
		req.UpdatedAt = now
		if err := trRepo.Update(ctx, req); err != nil {
			return err
		}
		decided = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	if source != nil {
		uc.ledger.NotifyIfBelowMin(*source)
	}
	return decided, nil
}

// Receive confirma la recepción física de una solicitud aprobada: acredita la
// bodega DESTINO y marca la solicitud como completed, en una sola transacción.
// El receptor necesita alcance sobre la bodega destino.
func (uc *WorkflowUseCase) Receive(ctx context.Context, actorID, requestID string) (*entity.TransferRequest, error) {
	if requestID == "" {
		return nil, domain.ErrInvalidInput
	}
	sc, err := uc.scopes.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !sc.CanUseTransferWorkflow() {
		return nil, domain.ErrScopeViolation
	}

	now := time.Now()
	var (
		received *entity.TransferRequest
		dest     *entity.InventoryRecord
	)
	err = uc.txRunner.RunTransfer(ctx, func(
		trRepo repository.TransferRequestRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		req, err := trRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !sc.CanAccessWarehouse(req.ToWarehouseID) {
			return domain.ErrScopeViolation
		}
		if err := req.Transition(entity.TransferStatusCompleted); err != nil {
			return err
		}
		if req.ApprovedQuantity == nil {
			// Una solicitud aprobada siempre lleva cantidad; una fila sin ella
			// está corrupta y no se puede acreditar.
			return domain.ErrInvalidInput
		}
		// Crédito del destino: la segunda mitad del traslado. El débito ya
		// ocurrió al aprobar, por eso aquí la cantidad es la aprobada.
		_, rec, err := uc.ledger.ApplyDeltaInTx(ctx, invRepo, movRepo, inventory.ApplyDeltaInput{
			ActorID:     actorID,
			ProductID:   req.ProductID,
			WarehouseID: req.ToWarehouseID,
			Delta:       *req.ApprovedQuantity,
			Type:        entity.MovementTypeTransfer,
			Notes:       req.Notes,
		}, now)
		if err != nil {
			return err
		}
		dest = rec
		req.ReceivedBy = actorID
		req.UpdatedAt = now
		if err := trRepo.Update(ctx, req); err != nil {
			return err
		}
		received = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	if dest != nil {
		uc.ledger.NotifyIfBelowMin(*dest)
	}
	return received, nil
}

// Get devuelve una solicitud puntual. Admin y encargados con alcance sobre el
// origen o el destino pueden verla; el resto recibe ErrScopeViolation (la
// existencia puede revelarse, la acción se niega).
func (uc *WorkflowUseCase) Get(ctx context.Context, actorID, requestID string) (*entity.TransferRequest, error) {
	sc, err := uc.scopes.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !sc.CanUseTransferWorkflow() {
		return nil, domain.ErrScopeViolation
	}
	req, err := uc.trRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if !sc.CanAccessWarehouse(req.FromWarehouseID) && !sc.CanAccessWarehouse(req.ToWarehouseID) {
		return nil, domain.ErrScopeViolation
	}
	return req, nil
}

// List lista solicitudes visibles para el actor: admin todas, encargado las que
// tocan sus bodegas (origen o destino). Los cajeros no listan: la visibilidad
// también está gobernada por el alcance, no solo las acciones mutadoras.
func (uc *WorkflowUseCase) List(ctx context.Context, actorID string, filter repository.TransferFilter, limit, offset int) ([]*entity.TransferRequest, error) {
	if filter.Status != "" && !entity.ValidTransferStatus(filter.Status) {
		return nil, domain.ErrInvalidInput
	}
	sc, err := uc.scopes.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !sc.CanUseTransferWorkflow() {
		return nil, domain.ErrScopeViolation
	}
	if filter.WarehouseID != "" && !sc.CanAccessWarehouse(filter.WarehouseID) {
		return nil, domain.ErrScopeViolation
	}
	if sc.Role != entity.RoleAdmin {
		if len(sc.WarehouseIDs) == 0 {
			return []*entity.TransferRequest{}, nil
		}
		filter.ScopeWarehouseIDs = sc.WarehouseIDs
	}
	return uc.trRepo.List(ctx, filter, limit, offset)
}
