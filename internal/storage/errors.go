package storage

import "errors"

var (
	// ErrOrdenNoEncontrada la orden no existe.
	ErrOrdenNoEncontrada = errors.New("orden de producción no encontrada")
	// ErrHistorialNoEncontrado no hay sesión activa para la orden.
	ErrHistorialNoEncontrado = errors.New("historial de producción no encontrado")
	// ErrTipoParoNoEncontrado el tipo de paro no existe en el catálogo.
	ErrTipoParoNoEncontrado = errors.New("tipo de paro no encontrado")
)
