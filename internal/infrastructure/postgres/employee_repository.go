package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL.
// Necesita el pool (no un Querier) porque SetAssignedWarehouses abre su propia
// transacción para reemplazar el conjunto de asignaciones de forma atómica.
type EmployeeRepo struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Email, e.PasswordHash, e.Name, e.Role, e.Status,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	query := `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Email, &e.PasswordHash, &e.Name, &e.Role, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	query := `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM employees WHERE email = $1`
	var e entity.Employee
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&e.ID, &e.Email, &e.PasswordHash, &e.Name, &e.Role, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepo) ListAssignedWarehouses(ctx context.Context, employeeID string) ([]string, error) {
	query := `
		SELECT warehouse_id FROM warehouse_assignments
		WHERE employee_id = $1
		ORDER BY warehouse_id`
	rows, err := r.pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list assigned warehouses: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan warehouse assignment: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetAssignedWarehouses reemplaza el conjunto completo de asignaciones del empleado.
// DELETE + INSERT en una transacción: nunca queda visible un estado intermedio.
func (r *EmployeeRepo) SetAssignedWarehouses(ctx context.Context, employeeID string, warehouseIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM warehouse_assignments WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("clear warehouse assignments: %w", err)
	}
	for _, warehouseID := range warehouseIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO warehouse_assignments (employee_id, warehouse_id, created_at) VALUES ($1, $2, now())`,
			employeeID, warehouseID,
		)
		if err != nil {
			return fmt.Errorf("insert warehouse assignment: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
