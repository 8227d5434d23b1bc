package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrScopeViolation         = errors.New("sin alcance sobre la bodega solicitada")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrContention             = errors.New("fila bloqueada por otra operación, reintentar")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
)
