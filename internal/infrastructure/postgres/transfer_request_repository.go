package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
)

var _ repository.TransferRequestRepository = (*TransferRequestRepo)(nil)

// TransferRequestRepo implementación de TransferRequestRepository sobre PostgreSQL.
type TransferRequestRepo struct {
	q Querier
}

// NewTransferRequestRepository construye el adaptador. Acepta pool o tx (Querier).
func NewTransferRequestRepository(q Querier) *TransferRequestRepo {
	return &TransferRequestRepo{q: q}
}

const transferColumns = `id, product_id, from_warehouse_id, to_warehouse_id,
		requested_quantity, approved_quantity, status, notes,
		requested_by, COALESCE(approved_by, ''), COALESCE(received_by, ''),
		created_at, updated_at`

func scanTransferRequest(row pgx.Row) (*entity.TransferRequest, error) {
	var t entity.TransferRequest
	err := row.Scan(
		&t.ID, &t.ProductID, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.RequestedQuantity, &t.ApprovedQuantity, &t.Status, &t.Notes,
		&t.RequestedBy, &t.ApprovedBy, &t.ReceivedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransferRequestRepo) Create(ctx context.Context, t *entity.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests
			(id, product_id, from_warehouse_id, to_warehouse_id, requested_quantity,
			 status, notes, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.FromWarehouseID, t.ToWarehouseID, t.RequestedQuantity,
		t.Status, t.Notes, t.RequestedBy, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create transfer request: %w", err)
	}
	return nil
}

func (r *TransferRequestRepo) GetByID(ctx context.Context, id string) (*entity.TransferRequest, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests
		WHERE id = $1`
	t, err := scanTransferRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer request: %w", err)
	}
	return t, nil
}

// GetByIDForUpdate bloquea la fila de la solicitud: dos decisiones concurrentes
// sobre la misma solicitud se serializan y la segunda ve el estado ya mutado.
func (r *TransferRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.TransferRequest, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests
		WHERE id = $1
		FOR UPDATE`
	t, err := scanTransferRequest(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockNotAvailable(err) {
			return nil, translateLockError(err)
		}
		return nil, fmt.Errorf("get transfer request for update: %w", err)
	}
	return t, nil
}

func (r *TransferRequestRepo) Update(ctx context.Context, t *entity.TransferRequest) error {
	query := `
		UPDATE transfer_requests SET
			requested_quantity = $2,
			approved_quantity  = $3,
			status             = $4,
			notes              = $5,
			approved_by        = NULLIF($6, ''),
			received_by        = NULLIF($7, ''),
			updated_at         = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.RequestedQuantity, t.ApprovedQuantity, t.Status, t.Notes,
		t.ApprovedBy, t.ReceivedBy, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer request: %w", err)
	}
	return nil
}

func (r *TransferRequestRepo) List(ctx context.Context, filter repository.TransferFilter, limit, offset int) ([]*entity.TransferRequest, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfer_requests
		WHERE 1=1`
	var args []any
	n := 0

	next := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}

	if filter.Status != "" {
		query += ` AND status = ` + next(filter.Status)
	}
	if filter.WarehouseID != "" {
		p := next(filter.WarehouseID)
		query += ` AND (from_warehouse_id = ` + p + ` OR to_warehouse_id = ` + p + `)`
	}
	if len(filter.ScopeWarehouseIDs) > 0 {
		p := next(filter.ScopeWarehouseIDs)
		query += ` AND (from_warehouse_id = ANY(` + p + `) OR to_warehouse_id = ANY(` + p + `))`
	}
	query += ` ORDER BY created_at DESC LIMIT ` + next(limit) + ` OFFSET ` + next(offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfer requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.TransferRequest
	for rows.Next() {
		var t entity.TransferRequest
		if err := rows.Scan(
			&t.ID, &t.ProductID, &t.FromWarehouseID, &t.ToWarehouseID,
			&t.RequestedQuantity, &t.ApprovedQuantity, &t.Status, &t.Notes,
			&t.RequestedBy, &t.ApprovedBy, &t.ReceivedBy,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer request: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
