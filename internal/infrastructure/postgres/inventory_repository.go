package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `product_id, warehouse_id, quantity, min_stock_level, max_stock_level, last_restocked_at, updated_at`

func scanInventoryRecord(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ProductID, &rec.WarehouseID, &rec.Quantity,
		&rec.MinStockLevel, &rec.MaxStockLevel,
		&rec.LastRestockedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *InventoryRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE product_id = $1 AND warehouse_id = $2`
	rec, err := scanInventoryRecord(r.q.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return rec, nil
}

// GetForUpdate bloquea la fila para serializar escritores concurrentes sobre el
// mismo (producto, bodega). Si la espera supera el lock_timeout de la transacción,
// PostgreSQL responde 55P03 y se traduce a ErrContention.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	rec, err := scanInventoryRecord(r.q.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockNotAvailable(err) {
			return nil, translateLockError(err)
		}
		return nil, fmt.Errorf("get inventory record for update: %w", err)
	}
	return rec, nil
}

// EnsureExists inserta la fila en cero si no existe. Con ON CONFLICT DO NOTHING
// dos transacciones concurrentes terminan ambas con la fila presente y el
// GetForUpdate posterior sí serializa sobre ella.
func (r *InventoryRepo) EnsureExists(ctx context.Context, productID, warehouseID string) error {
	query := `
		INSERT INTO inventory (product_id, warehouse_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query, productID, warehouseID)
	if err != nil {
		return fmt.Errorf("ensure inventory record: %w", err)
	}
	return nil
}

func (r *InventoryRepo) Upsert(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (product_id, warehouse_id, quantity, min_stock_level, max_stock_level, last_restocked_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET
			quantity          = EXCLUDED.quantity,
			min_stock_level   = EXCLUDED.min_stock_level,
			max_stock_level   = EXCLUDED.max_stock_level,
			last_restocked_at = EXCLUDED.last_restocked_at,
			updated_at        = now()`
	_, err := r.q.Exec(ctx, query,
		rec.ProductID, rec.WarehouseID, rec.Quantity,
		rec.MinStockLevel, rec.MaxStockLevel, rec.LastRestockedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT i.product_id, i.warehouse_id, i.quantity, i.min_stock_level, i.max_stock_level, i.last_restocked_at, i.updated_at
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE 1=1`
	var args []any
	n := 0

	next := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filter.WarehouseID != "" {
		query += ` AND i.warehouse_id = ` + next(filter.WarehouseID)
	}
	if len(filter.ScopeWarehouseIDs) > 0 {
		query += ` AND i.warehouse_id = ANY(` + next(filter.ScopeWarehouseIDs) + `)`
	}
	if filter.Search != "" {
		p := next("%" + filter.Search + "%")
		query += ` AND (p.sku ILIKE ` + p + ` OR p.name ILIKE ` + p + `)`
	}
	if filter.LowStock {
		query += ` AND i.min_stock_level > 0 AND i.quantity <= i.min_stock_level`
	}
	query += ` ORDER BY i.updated_at DESC LIMIT ` + next(limit) + ` OFFSET ` + next(offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(
			&rec.ProductID, &rec.WarehouseID, &rec.Quantity,
			&rec.MinStockLevel, &rec.MaxStockLevel,
			&rec.LastRestockedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) ListBelowMin(ctx context.Context, warehouseIDs []string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE min_stock_level > 0 AND quantity <= min_stock_level`
	var args []any
	if len(warehouseIDs) > 0 {
		query += ` AND warehouse_id = ANY($1)`
		args = append(args, warehouseIDs)
	}
	query += ` ORDER BY (min_stock_level - quantity) DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory below min: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(
			&rec.ProductID, &rec.WarehouseID, &rec.Quantity,
			&rec.MinStockLevel, &rec.MaxStockLevel,
			&rec.LastRestockedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
