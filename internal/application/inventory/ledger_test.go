package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/pos-api/internal/application/inventory"
	"github.com/invorya/pos-api/internal/application/scope"
	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
	"github.com/invorya/pos-api/pkg/config"
	"github.com/invorya/pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El TxRunner emula el rollback restaurando un snapshot del
// estado si el callback falla, igual que haría la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvRepo struct {
	records map[string]*entity.InventoryRecord // clave productID|warehouseID
}

func newFakeInvRepo() *fakeInvRepo {
	return &fakeInvRepo{records: map[string]*entity.InventoryRecord{}}
}

func invKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (f *fakeInvRepo) Get(_ context.Context, productID, warehouseID string) (*entity.InventoryRecord, error) {
	rec, ok := f.records[invKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeInvRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryRecord, error) {
	return f.Get(ctx, productID, warehouseID)
}

func (f *fakeInvRepo) EnsureExists(_ context.Context, productID, warehouseID string) error {
	if _, ok := f.records[invKey(productID, warehouseID)]; !ok {
		f.records[invKey(productID, warehouseID)] = &entity.InventoryRecord{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    decimal.Zero,
		}
	}
	return nil
}

func (f *fakeInvRepo) Upsert(_ context.Context, rec *entity.InventoryRecord) error {
	cp := *rec
	f.records[invKey(rec.ProductID, rec.WarehouseID)] = &cp
	return nil
}

func (f *fakeInvRepo) List(_ context.Context, filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range f.records {
		if filter.WarehouseID != "" && rec.WarehouseID != filter.WarehouseID {
			continue
		}
		if len(filter.ScopeWarehouseIDs) > 0 && !contains(filter.ScopeWarehouseIDs, rec.WarehouseID) {
			continue
		}
		if filter.LowStock && !rec.BelowMin() {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeInvRepo) ListBelowMin(_ context.Context, warehouseIDs []string) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range f.records {
		if !rec.BelowMin() {
			continue
		}
		if len(warehouseIDs) > 0 && !contains(warehouseIDs, rec.WarehouseID) {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeInvRepo) snapshot() map[string]*entity.InventoryRecord {
	snap := make(map[string]*entity.InventoryRecord, len(f.records))
	for k, v := range f.records {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type fakeMovRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	f.movements = append(f.movements, &cp)
	return nil
}

func (f *fakeMovRepo) List(_ context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(f.movements) - 1; i >= 0; i-- { // más reciente primero
		m := f.movements[i]
		if filter.WarehouseID != "" && m.WarehouseID != filter.WarehouseID {
			continue
		}
		if len(filter.ScopeWarehouseIDs) > 0 && !contains(filter.ScopeWarehouseIDs, m.WarehouseID) {
			continue
		}
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTxRunner struct {
	inv *fakeInvRepo
	mov *fakeMovRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	snapInv := f.inv.snapshot()
	snapMovs := len(f.mov.movements)
	if err := fn(f.inv, f.mov); err != nil {
		f.inv.records = snapInv
		f.mov.movements = f.mov.movements[:snapMovs]
		return err
	}
	return nil
}

type fakeExistsRepo struct {
	ids map[string]bool
}

func (f *fakeExistsRepo) Exists(_ context.Context, id string) (bool, error) { return f.ids[id], nil }

type fakeProductRepo struct{ fakeExistsRepo }

func (f *fakeProductRepo) GetByID(context.Context, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) List(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type fakeWarehouseRepo struct{ fakeExistsRepo }

func (f *fakeWarehouseRepo) Create(context.Context, *entity.Warehouse) error { return nil }
func (f *fakeWarehouseRepo) GetByID(context.Context, string) (*entity.Warehouse, error) {
	return nil, nil
}
func (f *fakeWarehouseRepo) List(context.Context, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type fakeScopeResolver struct {
	scopes map[string]entity.Scope
}

func (f *fakeScopeResolver) Resolve(_ context.Context, actorID string) (entity.Scope, error) {
	sc, ok := f.scopes[actorID]
	if !ok {
		return entity.Scope{}, domain.ErrUnauthorized
	}
	return sc, nil
}

var _ scope.Resolver = (*fakeScopeResolver)(nil)

// chanNotifier captura las alertas en un canal para que el test pueda esperar
// la goroutine de notificación.
type chanNotifier struct {
	alerts chan inventory.LowStockAlert
}

func (n *chanNotifier) NotifyLowStock(_ context.Context, alert inventory.LowStockAlert) error {
	n.alerts <- alert
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

const (
	productoID  = "11111111-1111-1111-1111-111111111111"
	bodegaNorte = "22222222-2222-2222-2222-222222222222"
	bodegaSur   = "33333333-3333-3333-3333-333333333333"

	actorAdmin   = "aaaaaaaa-0000-0000-0000-000000000001"
	actorGerente = "aaaaaaaa-0000-0000-0000-000000000002"
	actorCajero  = "aaaaaaaa-0000-0000-0000-000000000003"
)

type ledgerHarness struct {
	uc       *inventory.LedgerUseCase
	inv      *fakeInvRepo
	mov      *fakeMovRepo
	notifier *chanNotifier
}

func newLedgerHarness(t *testing.T) *ledgerHarness {
	t.Helper()
	inv := newFakeInvRepo()
	mov := &fakeMovRepo{}
	notifier := &chanNotifier{alerts: make(chan inventory.LowStockAlert, 8)}
	uc := inventory.NewLedgerUseCase(
		&fakeTxRunner{inv: inv, mov: mov},
		inv,
		&fakeProductRepo{fakeExistsRepo{ids: map[string]bool{productoID: true}}},
		&fakeWarehouseRepo{fakeExistsRepo{ids: map[string]bool{bodegaNorte: true, bodegaSur: true}}},
		&fakeScopeResolver{scopes: map[string]entity.Scope{
			actorAdmin:   {ActorID: actorAdmin, Role: entity.RoleAdmin},
			actorGerente: {ActorID: actorGerente, Role: entity.RoleManager, WarehouseIDs: []string{bodegaNorte}},
			actorCajero:  {ActorID: actorCajero, Role: entity.RoleCashier, WarehouseIDs: []string{bodegaSur}},
		}},
		notifier,
		logger.New(config.AppConfig{Env: "production", Name: "pos-api-test", LogLevel: "error"}),
	)
	return &ledgerHarness{uc: uc, inv: inv, mov: mov, notifier: notifier}
}

func (h *ledgerHarness) seed(t *testing.T, warehouseID, qty, min string) {
	t.Helper()
	err := h.inv.Upsert(context.Background(), &entity.InventoryRecord{
		ProductID:     productoID,
		WarehouseID:   warehouseID,
		Quantity:      decimal.RequireFromString(qty),
		MinStockLevel: decimal.RequireFromString(min),
		UpdatedAt:     time.Now(),
	})
	require.NoError(t, err)
}

func (h *ledgerHarness) cantidad(t *testing.T, warehouseID string) decimal.Decimal {
	t.Helper()
	qty, err := h.uc.GetQuantity(context.Background(), actorAdmin, productoID, warehouseID)
	require.NoError(t, err)
	return qty
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_CreditoCreaRegistroDesdeCero(t *testing.T) {
	h := newLedgerHarness(t)

	mov, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("10"),
		Type:        entity.MovementTypePurchase,
	})
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.True(t, dec("10").Equal(h.cantidad(t, bodegaNorte)),
		"un crédito sin registro previo debe crearlo en cero y acreditarlo")
	assert.True(t, dec("10").Equal(mov.Quantity))
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
	assert.Equal(t, actorAdmin, mov.EmployeeID)
	assert.Len(t, h.mov.movements, 1, "exactamente un movimiento por mutación")

	rec, err := h.inv.Get(context.Background(), productoID, bodegaNorte)
	require.NoError(t, err)
	require.NotNil(t, rec.LastRestockedAt, "una compra debe marcar last_restocked_at")
}

// carreraInvRepo simula a otro escritor que gana la creación de la fila: cuando
// EnsureExists corre, el registro ya existe con la cantidad que la otra
// transacción dejó confirmada.
type carreraInvRepo struct {
	*fakeInvRepo
	comprometida decimal.Decimal
}

func (f *carreraInvRepo) EnsureExists(_ context.Context, productID, warehouseID string) error {
	if _, ok := f.records[invKey(productID, warehouseID)]; !ok {
		f.records[invKey(productID, warehouseID)] = &entity.InventoryRecord{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    f.comprometida,
		}
	}
	return nil
}

type directTxRunner struct {
	inv repository.InventoryRepository
	mov repository.StockMovementRepository
}

func (f *directTxRunner) Run(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(f.inv, f.mov)
}

func TestApplyDelta_CreditoConcurrenteNoPierdeLoConfirmado(t *testing.T) {
	// La fila no existe en la primera lectura con bloqueo, pero otra
	// transacción la crea y confirma su crédito antes de la relectura. El
	// segundo crédito debe sumarse a lo ya confirmado, no partir de cero.
	inv := &carreraInvRepo{fakeInvRepo: newFakeInvRepo(), comprometida: dec("5")}
	mov := &fakeMovRepo{}
	uc := inventory.NewLedgerUseCase(
		&directTxRunner{inv: inv, mov: mov},
		inv,
		&fakeProductRepo{fakeExistsRepo{ids: map[string]bool{productoID: true}}},
		&fakeWarehouseRepo{fakeExistsRepo{ids: map[string]bool{bodegaNorte: true}}},
		&fakeScopeResolver{scopes: map[string]entity.Scope{
			actorAdmin: {ActorID: actorAdmin, Role: entity.RoleAdmin},
		}},
		inventory.NopNotifier{},
		logger.New(config.AppConfig{Env: "production", Name: "pos-api-test", LogLevel: "error"}),
	)

	m, err := uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("10"),
		Type:        entity.MovementTypePurchase,
	})
	require.NoError(t, err)

	rec, err := inv.Get(context.Background(), productoID, bodegaNorte)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, dec("15").Equal(rec.Quantity),
		"la cantidad final debe ser lo confirmado por la otra transacción más este delta")
	assert.True(t, dec("10").Equal(m.Quantity))
	assert.Len(t, mov.movements, 1)
}

func TestApplyDelta_TipoTransferReservadoAlFlujo(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "10", "0")

	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("-4"),
		Type:        entity.MovementTypeTransfer,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput,
		"un movimiento transfer suelto queda sin contraparte; solo los flujos de traslado los emiten")
	assert.True(t, dec("10").Equal(h.cantidad(t, bodegaNorte)))
	assert.Empty(t, h.mov.movements)
}

func TestApplyDelta_DebitoSinRegistroNoCrea(t *testing.T) {
	h := newLedgerHarness(t)

	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("-1"),
		Type:        entity.MovementTypeSale,
	})
	require.ErrorIs(t, err, domain.ErrNotFound, "un débito nunca crea el registro implícitamente")
	assert.Empty(t, h.mov.movements, "una mutación fallida no deja movimiento")
}

func TestApplyDelta_StockInsuficienteNoMuta(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "3", "0")

	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("-5"),
		Type:        entity.MovementTypeSale,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, dec("3").Equal(h.cantidad(t, bodegaNorte)),
		"un débito rechazado no debe tocar la cantidad")
	assert.Empty(t, h.mov.movements)
}

func TestApplyDelta_DebitoExactoDejaCero(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "5", "0")

	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("-5"),
		Type:        entity.MovementTypeSale,
	})
	require.NoError(t, err, "debitar exactamente el stock disponible es válido")
	assert.True(t, h.cantidad(t, bodegaNorte).IsZero())
}

// La cantidad final es la suma de los deltas aplicados, y el log acumula
// exactamente un movimiento por mutación exitosa.
func TestApplyDelta_SumaDeDeltas(t *testing.T) {
	h := newLedgerHarness(t)

	deltas := []string{"10", "-3", "7", "-1", "-4"}
	esperado := decimal.Zero
	for _, d := range deltas {
		tipo := entity.MovementTypePurchase
		delta := dec(d)
		if delta.IsNegative() {
			tipo = entity.MovementTypeSale
		}
		_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
			ActorID:     actorAdmin,
			ProductID:   productoID,
			WarehouseID: bodegaNorte,
			Delta:       delta,
			Type:        tipo,
		})
		require.NoError(t, err)
		esperado = esperado.Add(delta)
	}

	assert.True(t, esperado.Equal(h.cantidad(t, bodegaNorte)))
	assert.Len(t, h.mov.movements, len(deltas))

	suma := decimal.Zero
	for _, m := range h.mov.movements {
		suma = suma.Add(m.Quantity)
	}
	assert.True(t, esperado.Equal(suma), "la suma del log debe reconstruir la cantidad")
}

func TestApplyDelta_EntradaInvalida(t *testing.T) {
	h := newLedgerHarness(t)

	cases := []struct {
		nombre string
		input  inventory.ApplyDeltaInput
	}{
		{"delta cero", inventory.ApplyDeltaInput{ActorID: actorAdmin, ProductID: productoID, WarehouseID: bodegaNorte, Delta: decimal.Zero, Type: entity.MovementTypeSale}},
		{"tipo desconocido", inventory.ApplyDeltaInput{ActorID: actorAdmin, ProductID: productoID, WarehouseID: bodegaNorte, Delta: dec("1"), Type: "theft"}},
		{"sin producto", inventory.ApplyDeltaInput{ActorID: actorAdmin, WarehouseID: bodegaNorte, Delta: dec("1"), Type: entity.MovementTypeSale}},
		{"sin bodega", inventory.ApplyDeltaInput{ActorID: actorAdmin, ProductID: productoID, Delta: dec("1"), Type: entity.MovementTypeSale}},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := h.uc.ApplyDelta(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestApplyDelta_ReferenciasInexistentes(t *testing.T) {
	h := newLedgerHarness(t)

	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   "no-existe",
		WarehouseID: bodegaNorte,
		Delta:       dec("1"),
		Type:        entity.MovementTypePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: "no-existe",
		Delta:       dec("1"),
		Type:        entity.MovementTypePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyDelta_FueraDeAlcance(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "10", "0")

	// El cajero está asignado solo a la bodega sur
	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorCajero,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("-1"),
		Type:        entity.MovementTypeSale,
	})
	require.ErrorIs(t, err, domain.ErrScopeViolation)
	assert.True(t, dec("10").Equal(h.cantidad(t, bodegaNorte)))
}

func TestApplyDelta_ActorDesconocido(t *testing.T) {
	h := newLedgerHarness(t)

	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     "fantasma",
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("1"),
		Type:        entity.MovementTypePurchase,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestApplyDelta_DisparaAlertaDeStockBajo(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "6", "5")

	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("-2"),
		Type:        entity.MovementTypeSale,
	})
	require.NoError(t, err)

	select {
	case alert := <-h.notifier.alerts:
		assert.Equal(t, productoID, alert.ProductID)
		assert.Equal(t, bodegaNorte, alert.WarehouseID)
		assert.True(t, dec("4").Equal(alert.Quantity))
		assert.True(t, dec("5").Equal(alert.MinStockLevel))
	case <-time.After(2 * time.Second):
		t.Fatal("la alerta de stock bajo nunca llegó")
	}
}

func TestApplyDelta_SinAlertaSobreElMinimo(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "10", "5")

	_, err := h.uc.ApplyDelta(context.Background(), inventory.ApplyDeltaInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		Delta:       dec("-2"),
		Type:        entity.MovementTypeSale,
	})
	require.NoError(t, err)

	select {
	case <-h.notifier.alerts:
		t.Fatal("no debe alertar si la cantidad queda sobre el mínimo")
	case <-time.After(100 * time.Millisecond):
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// SetAbsolute
// ──────────────────────────────────────────────────────────────────────────────

func TestSetAbsolute_CalculaElDelta(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "10", "0")

	mov, err := h.uc.SetAbsolute(context.Background(), inventory.SetAbsoluteInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		NewQuantity: dec("4"),
		Notes:       "conteo físico",
	})
	require.NoError(t, err)

	assert.True(t, dec("4").Equal(h.cantidad(t, bodegaNorte)))
	assert.True(t, dec("-6").Equal(mov.Quantity), "el movimiento registra el delta, no el absoluto")
	assert.Equal(t, entity.MovementTypeAdjustment, mov.Type)
}

func TestSetAbsolute_SinRegistroPrevio(t *testing.T) {
	h := newLedgerHarness(t)

	mov, err := h.uc.SetAbsolute(context.Background(), inventory.SetAbsoluteInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		NewQuantity: dec("7"),
	})
	require.NoError(t, err, "fijar sobre un registro inexistente parte de cero")
	assert.True(t, dec("7").Equal(mov.Quantity))
	assert.True(t, dec("7").Equal(h.cantidad(t, bodegaNorte)))
}

func TestSetAbsolute_MismoValorEsInvalido(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "10", "0")

	_, err := h.uc.SetAbsolute(context.Background(), inventory.SetAbsoluteInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		NewQuantity: dec("10"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero no genera movimiento")
	assert.Empty(t, h.mov.movements)
}

func TestSetAbsolute_NegativoEsInvalido(t *testing.T) {
	h := newLedgerHarness(t)

	_, err := h.uc.SetAbsolute(context.Background(), inventory.SetAbsoluteInput{
		ActorID:     actorAdmin,
		ProductID:   productoID,
		WarehouseID: bodegaNorte,
		NewQuantity: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// DirectTransfer
// ──────────────────────────────────────────────────────────────────────────────

func TestDirectTransfer_DebitaYAcredita(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "10", "0")

	out, in, err := h.uc.DirectTransfer(context.Background(), inventory.DirectTransferInput{
		ActorID:         actorAdmin,
		ProductID:       productoID,
		FromWarehouseID: bodegaNorte,
		ToWarehouseID:   bodegaSur,
		Quantity:        dec("4"),
	})
	require.NoError(t, err)

	assert.True(t, dec("6").Equal(h.cantidad(t, bodegaNorte)))
	assert.True(t, dec("4").Equal(h.cantidad(t, bodegaSur)))
	assert.True(t, dec("-4").Equal(out.Quantity))
	assert.True(t, dec("4").Equal(in.Quantity))
	assert.Equal(t, entity.MovementTypeTransfer, out.Type)
	assert.Equal(t, entity.MovementTypeTransfer, in.Type)
	assert.Len(t, h.mov.movements, 2, "un traslado directo deja dos movimientos")
}

func TestDirectTransfer_SoloAdmin(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "10", "0")

	_, _, err := h.uc.DirectTransfer(context.Background(), inventory.DirectTransferInput{
		ActorID:         actorGerente,
		ProductID:       productoID,
		FromWarehouseID: bodegaNorte,
		ToWarehouseID:   bodegaSur,
		Quantity:        dec("4"),
	})
	require.ErrorIs(t, err, domain.ErrScopeViolation,
		"los encargados usan el flujo de solicitud, no el traslado directo")
}

func TestDirectTransfer_StockInsuficienteNoDejaRastro(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaNorte, "3", "0")

	_, _, err := h.uc.DirectTransfer(context.Background(), inventory.DirectTransferInput{
		ActorID:         actorAdmin,
		ProductID:       productoID,
		FromWarehouseID: bodegaNorte,
		ToWarehouseID:   bodegaSur,
		Quantity:        dec("5"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, dec("3").Equal(h.cantidad(t, bodegaNorte)))
	assert.True(t, h.cantidad(t, bodegaSur).IsZero())
	assert.Empty(t, h.mov.movements)
}

func TestDirectTransfer_MismaBodegaEsInvalido(t *testing.T) {
	h := newLedgerHarness(t)

	_, _, err := h.uc.DirectTransfer(context.Background(), inventory.DirectTransferInput{
		ActorID:         actorAdmin,
		ProductID:       productoID,
		FromWarehouseID: bodegaNorte,
		ToWarehouseID:   bodegaNorte,
		Quantity:        dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetQuantity
// ──────────────────────────────────────────────────────────────────────────────

func TestGetQuantity_SinRegistroEsCero(t *testing.T) {
	h := newLedgerHarness(t)
	qty := h.cantidad(t, bodegaNorte)
	assert.True(t, qty.IsZero(), "sin registro equivale a cantidad cero, no a error")
}

func TestGetQuantity_FueraDeAlcance(t *testing.T) {
	h := newLedgerHarness(t)
	h.seed(t, bodegaSur, "42", "0")

	// El gerente está asignado a norte: la lectura puntual de sur se niega
	_, err := h.uc.GetQuantity(context.Background(), actorGerente, productoID, bodegaSur)
	assert.ErrorIs(t, err, domain.ErrScopeViolation,
		"la lectura puntual respeta el mismo alcance que los listados")
}
