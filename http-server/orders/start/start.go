package start

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"embotelladora-backend/internal/storage"
)

type Response struct {
	Message     string `json:"message"`
	HistorialID int    `json:"historialId,omitempty"`
}

type SesionIniciador interface {
	IniciarSesion(ctx context.Context, ordenID int) (int, error)
}

// StartOrder atiende POST /api/production-orders/{id}/start: abre la
// sesión de trabajo y devuelve el historialId que el cliente debe regresar
// al finalizar.
func StartOrder(log *slog.Logger, service SesionIniciador) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.orders.start.StartOrder"

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

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		historialID, err := service.IniciarSesion(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrOrdenNoEncontrada) {
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, Response{Message: "Orden de producción no encontrada"})
				return
			}
			log.Error("error al iniciar la sesión de producción", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Message: err.Error()})
			return
		}

		render.JSON(w, r, Response{
			Message:     "Sesión de producción iniciada",
			HistorialID: historialID,
		})
	}
}
