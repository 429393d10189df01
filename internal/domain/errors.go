package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrNotAuthorized     = errors.New("el usuario no es el mecánico asignado")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrAlreadyAssigned   = errors.New("la cita ya tiene mecánico asignado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDependencyFailure = errors.New("fallo de dependencia externa")
)
