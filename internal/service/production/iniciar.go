package production

import (
	"context"
	"errors"
	"fmt"

	"embotelladora-backend/internal/storage"
)

// IniciarSesion abre una sesión de trabajo para la orden. Cualquier sesión
// que haya quedado abierta se cierra primero, de modo que la invariante de
// una sola sesión activa por orden se sostiene también ante arranques
// consecutivos sin cierre explícito. Devuelve el id que el cliente debe
// regresar como activeHistorialId al finalizar.
func (s *Service) IniciarSesion(ctx context.Context, ordenID int) (int, error) {
	const op = "service.production.IniciarSesion"

	orden, err := s.storage.GetOrden(ctx, ordenID)
	if err != nil {
		if errors.Is(err, storage.ErrOrdenNoEncontrada) {
			return 0, err
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var historialID int
	err = s.storage.EnTransaccion(ctx, func(ctx context.Context) error {
		ahora := s.now()

		if err := s.storage.CerrarHistorialesActivos(ctx, orden.ID, ahora); err != nil {
			return err
		}

		historial := &storage.ProduccionHistorial{
			OrdenProduccionID: orden.ID,
			LineaProduccionID: orden.LineaProduccionID,
			ProductoID:        orden.ProductoID,
			FechaInicio:       ahora,
			Activo:            true,
		}
		if err := s.storage.CrearHistorial(ctx, historial); err != nil {
			return err
		}

		if _, err := s.storage.IncrementarCajas(ctx, orden.ID, 0, storage.EstadoEnProgreso, ahora); err != nil {
			return err
		}

		historialID = historial.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return historialID, nil
}
