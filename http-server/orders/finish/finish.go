package finish

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"embotelladora-backend/internal/service/production"
	"embotelladora-backend/internal/storage"
)

type Response struct {
	Message string                   `json:"message"`
	Order   *storage.OrdenProduccion `json:"order,omitempty"`
}

type OrdenActualizador interface {
	ActualizarOrden(ctx context.Context, ordenID int, req production.ActualizacionOrden) (*storage.OrdenProduccion, error)
}

var validate = validator.New()

// FinishOrder atiende POST /api/production-orders/{id}/finish: avance de
// cajas, paros del lote y, con isFinalizingProduction, el cierre de la
// orden y de su sesión de historial.
func FinishOrder(log *slog.Logger, service OrdenActualizador) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.finish.FinishOrder"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Message: "Identificador de orden inválido"})
			return
		}

		var req production.ActualizacionOrden
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && strings.HasPrefix(typeErr.Field, "paros") {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, Response{Message: "El arreglo de paros es inválido"})
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Message: "Cuerpo de la solicitud inválido"})
			return
		}

		if req.CajasProducidas == nil && req.HourlyProduction == nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Message: "Falta el número de cajas producidas"})
			return
		}

		if err := validate.Struct(req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Message: "Datos de la solicitud inválidos"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		orden, err := service.ActualizarOrden(ctx, id, req)
		if err != nil {
			if errors.Is(err, storage.ErrOrdenNoEncontrada) {
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, Response{Message: "Orden de producción no encontrada"})
				return
			}
			log.Error("error al actualizar la orden", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Message: err.Error()})
			return
		}

		render.JSON(w, r, Response{
			Message: "Orden actualizada correctamente",
			Order:   orden,
		})
	}
}
