package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/invorya/pos-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// isLockNotAvailable verifica si un error es un vencimiento de lock_timeout (55P03).
func isLockNotAvailable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "55P03" // lock_not_available
}

// translateLockError convierte el vencimiento de lock_timeout en ErrContention
// (reintentable por el caller); el resto de errores pasa sin tocar.
func translateLockError(err error) error {
	if err != nil && isLockNotAvailable(err) {
		return domain.ErrContention
	}
	return err
}
