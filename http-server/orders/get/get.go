package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"embotelladora-backend/internal/storage"
	"embotelladora-backend/internal/storage/gormdb"
)

type ResponseOrdenes struct {
	Orders  []*storage.OrdenProduccion `json:"orders"`
	Message string                     `json:"message,omitempty"`
}

type OrdenesLector interface {
	ListarOrdenes(ctx context.Context, f gormdb.FiltroOrdenes) ([]*storage.OrdenProduccion, error)
	GetOrden(ctx context.Context, id int) (*storage.OrdenProduccion, error)
	ListarParosOrden(ctx context.Context, ordenID int) ([]*storage.Paro, error)
}

// GetOrders atiende GET /api/production-orders con filtros opcionales
// from/to/estado/linea_produccion para el listado del dashboard.
func GetOrders(log *slog.Logger, lector OrdenesLector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.get.GetOrders"

		var filtro gormdb.FiltroOrdenes

		if v := r.URL.Query().Get("from"); v != "" {
			desde, err := parseFecha(v)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, ResponseOrdenes{Message: "Fecha 'from' inválida"})
				return
			}
			filtro.Desde = &desde
		}
		if v := r.URL.Query().Get("to"); v != "" {
			hasta, err := parseFecha(v)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, ResponseOrdenes{Message: "Fecha 'to' inválida"})
				return
			}
			filtro.Hasta = &hasta
		}
		filtro.Estado = r.URL.Query().Get("estado")
		if v := r.URL.Query().Get("linea_produccion"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, ResponseOrdenes{Message: "Línea de producción inválida"})
				return
			}
			filtro.LineaProduccionID = &id
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ordenes, err := lector.ListarOrdenes(ctx, filtro)
		if err != nil {
			log.Error("error al listar las órdenes", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseOrdenes{Message: err.Error()})
			return
		}

		render.JSON(w, r, ResponseOrdenes{Orders: ordenes})
	}
}

// GetOrder atiende GET /api/production-orders/{id}.
func GetOrder(log *slog.Logger, lector OrdenesLector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.get.GetOrder"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"message": "Identificador de orden inválido"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		orden, err := lector.GetOrden(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrOrdenNoEncontrada) {
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, map[string]string{"message": "Orden de producción no encontrada"})
				return
			}
			log.Error("error al obtener la orden", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"message": err.Error()})
			return
		}

		render.JSON(w, r, orden)
	}
}

// GetOrderParos atiende GET /api/production-orders/{id}/paros: la bitácora
// de tiempo muerto de una orden.
func GetOrderParos(log *slog.Logger, lector OrdenesLector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.get.GetOrderParos"

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"message": "Identificador de orden inválido"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		paros, err := lector.ListarParosOrden(ctx, id)
		if err != nil {
			log.Error("error al listar los paros de la orden", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"message": err.Error()})
			return
		}

		render.JSON(w, r, map[string]any{"paros": paros})
	}
}

func parseFecha(valor string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, valor); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", valor)
}
