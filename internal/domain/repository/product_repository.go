package repository

import (
	"context"

	"github.com/invorya/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura del catálogo de productos.
// El CRUD completo del catálogo vive en otro servicio; aquí solo se necesita
// la verificación referencial y el listado de consulta.
type ProductRepository interface {
	// GetByID devuelve el producto o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Product, error)
}
