package production

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"embotelladora-backend/internal/storage"
)

// ActualizarOrden aplica una actualización de avance y, si la llamada
// finaliza la producción, cierra la sesión de historial. Toda la secuencia
// corre en una transacción; los escritos secundarios (registro por hora,
// tiempo transcurrido) son best-effort y nunca abortan la actualización
// del contador.
func (s *Service) ActualizarOrden(ctx context.Context, ordenID int, req ActualizacionOrden) (*storage.OrdenProduccion, error) {
	const op = "service.production.ActualizarOrden"

	orden, err := s.storage.GetOrden(ctx, ordenID)
	if err != nil {
		if errors.Is(err, storage.ErrOrdenNoEncontrada) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var actualizada *storage.OrdenProduccion
	err = s.storage.EnTransaccion(ctx, func(ctx context.Context) error {
		ahora := s.now()
		incremento := calcularIncremento(req, orden.CajasProducidas)

		registroCreado := false
		if incremento > 0 {
			err := s.storage.CrearRegistroHora(ctx, &storage.ProduccionPorHora{
				OrdenProduccionID: orden.ID,
				CajasProducidas:   incremento,
				HoraRegistro:      ahora,
			})
			if err != nil {
				s.log.Warn("no se pudo guardar el registro por hora",
					slog.String("op", op),
					slog.Int("orden_id", orden.ID),
					slog.String("error", err.Error()),
				)
			} else {
				registroCreado = true
			}
		}

		estado := storage.EstadoEnProgreso
		if req.IsFinalizingProduction {
			estado = storage.EstadoCompletada
			if horas := horasTranscurridas(req, orden, ahora); horas > 0 {
				if err := s.storage.GuardarTiempoTranscurrido(ctx, orden.ID, horas); err != nil {
					s.log.Warn("no se pudo guardar el tiempo transcurrido",
						slog.String("op", op),
						slog.Int("orden_id", orden.ID),
						slog.String("error", err.Error()),
					)
				}
			}
		}

		o, err := s.storage.IncrementarCajas(ctx, orden.ID, incremento, estado, ahora)
		if err != nil {
			return err
		}
		actualizada = o

		s.crearParos(ctx, orden, req.Paros, ahora)

		if req.IsFinalizingProduction {
			if err := s.cerrarSesion(ctx, orden, req, incremento, registroCreado, ahora); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return actualizada, nil
}

// calcularIncremento resuelve el delta de cajas de la llamada. Un delta
// explícito gana; un total acumulado viejo (≤ al actual) se trata como
// dato rancio y el incremento queda en cero. Nunca se devuelve negativo.
func calcularIncremento(req ActualizacionOrden, actuales int) int {
	if req.HourlyProduction != nil {
		if *req.HourlyProduction < 0 {
			return 0
		}
		return *req.HourlyProduction
	}

	if req.CajasProducidas != nil {
		incremento := *req.CajasProducidas - actuales
		if incremento < 0 {
			return 0
		}
		return incremento
	}

	return 0
}

func horasTranscurridas(req ActualizacionOrden, orden *storage.OrdenProduccion, ahora time.Time) float64 {
	if req.TiempoTranscurridoHoras != nil {
		return *req.TiempoTranscurridoHoras
	}
	if orden.UltimaActualizacion != nil {
		return ahora.Sub(*orden.UltimaActualizacion).Hours()
	}
	return 0
}

// crearParos persiste los paros bien formados del lote. Las entradas
// inválidas se saltan y un fallo individual no detiene al resto.
func (s *Service) crearParos(ctx context.Context, orden *storage.OrdenProduccion, paros []ParoEntrada, ahora time.Time) {
	const op = "service.production.crearParos"

	for _, entrada := range paros {
		if !entrada.Valida() {
			continue
		}

		inicio := ahora
		if entrada.FechaInicio != nil {
			inicio = *entrada.FechaInicio
		}

		paro := &storage.Paro{
			OrdenProduccionID:   orden.ID,
			LineaProduccionID:   orden.LineaProduccionID,
			TipoParoID:          *entrada.TipoParoID,
			TiempoMinutos:       *entrada.TiempoMinutos,
			Descripcion:         entrada.Descripcion,
			SistemaID:           entrada.SistemaID,
			SubsistemaID:        entrada.SubsistemaID,
			SubsubsistemaID:     entrada.SubsubsistemaID,
			DesviacionCalidadID: entrada.DesviacionCalidadID,
			MateriaPrimaID:      entrada.MateriaPrimaID,
			FechaInicio:         inicio,
			FechaFin:            entrada.FechaFin,
		}

		if err := s.storage.CrearParo(ctx, paro); err != nil {
			s.log.Warn("no se pudo guardar un paro del lote",
				slog.String("op", op),
				slog.Int("orden_id", orden.ID),
				slog.Int("tipo_paro_id", *entrada.TipoParoID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// cerrarSesion resuelve la sesión activa y la cierra con los acumulados de
// paros y el total de cajas de la sesión. Sin sesión activa se fabrica una
// retroactiva de una hora y se cierra de inmediato: compensación ante
// estado parcial, no invariante estricta.
func (s *Service) cerrarSesion(ctx context.Context, orden *storage.OrdenProduccion, req ActualizacionOrden, incremento int, registroCreado bool, ahora time.Time) error {
	historial, sintetico, err := s.resolverHistorial(ctx, orden, req, ahora)
	if err != nil {
		return err
	}

	var resumen storage.ResumenParos
	switch {
	case req.ResumenParos != nil:
		resumen = *req.ResumenParos
	case sintetico:
		resumen = s.resumenDeEntradas(ctx, req.Paros)
	default:
		filas, err := s.storage.ParosPorCategoriaDesde(ctx, orden.ID, historial.FechaInicio)
		if err != nil {
			return err
		}
		for _, fila := range filas {
			switch fila.Categoria {
			case storage.CategoriaMantenimiento:
				resumen.CantidadMantenimiento += fila.Cantidad
				resumen.TiempoMantenimiento += fila.Minutos
			case storage.CategoriaCalidad:
				resumen.CantidadCalidad += fila.Cantidad
				resumen.TiempoCalidad += fila.Minutos
			default:
				resumen.CantidadOperacion += fila.Cantidad
				resumen.TiempoOperacion += fila.Minutos
			}
		}
	}

	cajas, err := s.storage.SumarCajasDesde(ctx, orden.ID, historial.FechaInicio)
	if err != nil {
		return err
	}
	if !registroCreado {
		// el incremento de esta llamada no quedó en los registros por
		// hora; se suma aquí para no perderlo ni contarlo dos veces
		cajas += incremento
	}

	return s.storage.CerrarHistorial(ctx, historial.ID, storage.CierreHistorial{
		FechaFin:        ahora,
		CajasProducidas: cajas,
		Resumen:         resumen,
	})
}

// resolverHistorial ubica la sesión a cerrar: primero el id que manda el
// cliente, luego la búsqueda de la sesión abierta, y como último recurso
// una sesión sintética retrodatada una hora.
func (s *Service) resolverHistorial(ctx context.Context, orden *storage.OrdenProduccion, req ActualizacionOrden, ahora time.Time) (*storage.ProduccionHistorial, bool, error) {
	const op = "service.production.resolverHistorial"

	if req.ActiveHistorialID != nil {
		historial, err := s.storage.GetHistorial(ctx, *req.ActiveHistorialID)
		if err == nil {
			return historial, false, nil
		}
		if !errors.Is(err, storage.ErrHistorialNoEncontrado) {
			return nil, false, err
		}
		s.log.Warn("el historial indicado no existe, se busca la sesión activa",
			slog.String("op", op),
			slog.Int("historial_id", *req.ActiveHistorialID),
		)
	}

	historial, err := s.storage.HistorialActivo(ctx, orden.ID)
	if err == nil {
		return historial, false, nil
	}
	if !errors.Is(err, storage.ErrHistorialNoEncontrado) {
		return nil, false, err
	}

	historial = &storage.ProduccionHistorial{
		OrdenProduccionID: orden.ID,
		LineaProduccionID: orden.LineaProduccionID,
		ProductoID:        orden.ProductoID,
		FechaInicio:       ahora.Add(-time.Hour),
		Activo:            true,
	}
	if err := s.storage.CrearHistorial(ctx, historial); err != nil {
		return nil, false, err
	}

	s.log.Warn("sin sesión activa al cierre, se fabricó una retroactiva",
		slog.String("op", op),
		slog.Int("orden_id", orden.ID),
		slog.Int("historial_id", historial.ID),
	)

	return historial, true, nil
}

// resumenDeEntradas arma el resumen directamente sobre los paros que trajo
// la llamada; se usa al cerrar una sesión sintética, donde no hay rango
// confiable para consultar la base.
func (s *Service) resumenDeEntradas(ctx context.Context, paros []ParoEntrada) storage.ResumenParos {
	var resumen storage.ResumenParos
	for _, entrada := range paros {
		if !entrada.Valida() {
			continue
		}

		categoria := storage.CategoriaOperacion
		if tipo, err := s.storage.GetTipoParo(ctx, *entrada.TipoParoID); err == nil {
			categoria = tipo.Categoria
		}

		resumen.Agregar(categoria, *entrada.TiempoMinutos)
	}

	return resumen
}
