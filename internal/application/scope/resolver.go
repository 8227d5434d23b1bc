package scope

import (
	"context"
	"encoding/json"
	"time"

	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/entity"
	"github.com/invorya/pos-api/internal/domain/repository"
	"github.com/invorya/pos-api/pkg/logger"
)

// Resolver resuelve el alcance (rol + bodegas asignadas) de un actor.
// El ledger y el flujo de traslados lo consultan para decidir sobre qué
// bodegas puede actuar el caller; nunca lo mutan.
type Resolver interface {
	Resolve(ctx context.Context, actorID string) (entity.Scope, error)
}

// Cache puerto mínimo de cache clave/valor con TTL para la resolución de alcance.
// ok=false en Get significa miss (no es error).
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogResolver implementa Resolver sobre el catálogo de empleados y
// asignaciones de bodega, con cache opcional (Redis) por actor.
type CatalogResolver struct {
	employees repository.EmployeeRepository
	cache     Cache // nil = sin cache
	ttl       time.Duration
	log       *logger.Logger
}

// NewCatalogResolver construye el resolutor. cache puede ser nil.
func NewCatalogResolver(employees repository.EmployeeRepository, cache Cache, ttl time.Duration, log *logger.Logger) *CatalogResolver {
	return &CatalogResolver{employees: employees, cache: cache, ttl: ttl, log: log}
}

func cacheKey(actorID string) string {
	return "scope:" + actorID
}

// Resolve devuelve el alcance del actor. Un actor inexistente o inactivo
// resuelve a ErrUnauthorized. Los fallos del cache se degradan a consulta
// directa, nunca bloquean la petición.
func (r *CatalogResolver) Resolve(ctx context.Context, actorID string) (entity.Scope, error) {
	if actorID == "" {
		return entity.Scope{}, domain.ErrUnauthorized
	}
	if r.cache != nil {
		if raw, ok, err := r.cache.Get(ctx, cacheKey(actorID)); err == nil && ok {
			var s entity.Scope
			if err := json.Unmarshal([]byte(raw), &s); err == nil {
				return s, nil
			}
		} else if err != nil {
			r.log.Warn().Err(err).Str("actor_id", actorID).Msg("cache de alcance no disponible")
		}
	}

	emp, err := r.employees.GetByID(ctx, actorID)
	if err != nil {
		return entity.Scope{}, err
	}
	if emp == nil || emp.Status != "active" {
		return entity.Scope{}, domain.ErrUnauthorized
	}

	s := entity.Scope{ActorID: emp.ID, Role: emp.Role}
	// Admin opera sin restricción; no necesita el listado de asignaciones.
	if emp.Role != entity.RoleAdmin {
		ids, err := r.employees.ListAssignedWarehouses(ctx, actorID)
		if err != nil {
			return entity.Scope{}, err
		}
		s.WarehouseIDs = ids
	}

	if r.cache != nil {
		if raw, err := json.Marshal(s); err == nil {
			if err := r.cache.Set(ctx, cacheKey(actorID), string(raw), r.ttl); err != nil {
				r.log.Warn().Err(err).Str("actor_id", actorID).Msg("no se pudo cachear el alcance")
			}
		}
	}
	return s, nil
}

// Invalidate elimina la entrada cacheada de un actor. Se llama al cambiar
// sus asignaciones de bodega para que el nuevo alcance aplique de inmediato.
func (r *CatalogResolver) Invalidate(ctx context.Context, actorID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, cacheKey(actorID)); err != nil {
		r.log.Warn().Err(err).Str("actor_id", actorID).Msg("no se pudo invalidar el alcance cacheado")
	}
}
