package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"embotelladora-backend/internal/storage"
)

type TiposParoLector interface {
	ListarTiposParo(ctx context.Context) ([]*storage.TipoParo, error)
}

// GetTiposParo atiende GET /api/catalog/tipos-paro.
func GetTiposParo(log *slog.Logger, lector TiposParoLector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.catalog.get.GetTiposParo"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		tipos, err := lector.ListarTiposParo(ctx)
		if err != nil {
			log.Error("error al listar el catálogo de tipos de paro", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"message": err.Error()})
			return
		}

		render.JSON(w, r, map[string]any{"tiposParo": tipos})
	}
}
