package postgres

import (
	"context"
	"fmt"

	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
// La tabla es append-only: no hay Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Acepta pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, type, quantity, notes, employee_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, m.Type,
		m.Quantity, m.Notes, m.EmployeeID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, warehouse_id, type, quantity, notes, employee_id, created_at
		FROM stock_movements
		WHERE 1=1`
	var args []any
	n := 0

	next := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filter.WarehouseID != "" {
		query += ` AND warehouse_id = ` + next(filter.WarehouseID)
	}
	if len(filter.ScopeWarehouseIDs) > 0 {
		query += ` AND warehouse_id = ANY(` + next(filter.ScopeWarehouseIDs) + `)`
	}
	if filter.ProductID != "" {
		query += ` AND product_id = ` + next(filter.ProductID)
	}
	if filter.DateFrom != nil {
		query += ` AND created_at >= ` + next(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += ` AND created_at <= ` + next(*filter.DateTo)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + next(limit) + ` OFFSET ` + next(offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.WarehouseID, &m.Type,
			&m.Quantity, &m.Notes, &m.EmployeeID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
