package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"embotelladora-backend/internal/service/catalogo"
	"embotelladora-backend/internal/storage"
)

type TiposParoEscritor interface {
	CrearTipoParo(ctx context.Context, tipo *storage.TipoParo) error
}

type Request struct {
	Nombre    string `json:"nombre"`
	Categoria string `json:"categoria"`
}

type Response struct {
	Message  string            `json:"message"`
	TipoParo *storage.TipoParo `json:"tipoParo,omitempty"`
}

// SaveTipoParo atiende POST /api/catalog/tipos-paro. La categoría se
// valida aquí, al dar de alta: si no viene se clasifica por el nombre una
// sola vez y queda guardada; ninguna consulta posterior infiere sobre
// texto libre.
func SaveTipoParo(log *slog.Logger, escritor TiposParoEscritor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.catalog.save.SaveTipoParo"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Message: "Cuerpo de la solicitud inválido"})
			return
		}

		req.Nombre = strings.TrimSpace(req.Nombre)
		if req.Nombre == "" {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Message: "Falta el nombre del tipo de paro"})
			return
		}

		if req.Categoria == "" {
			req.Categoria = catalogo.ClasificarTipoParo(req.Nombre)
			if req.Categoria == storage.CategoriaOperacion {
				log.Warn("tipo de paro sin categoría explícita, clasificado como operación",
					slog.String("op", op),
					slog.String("nombre", req.Nombre),
				)
			}
		} else if !catalogo.CategoriaValida(req.Categoria) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, Response{Message: "Categoría de paro inválida"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		tipo := &storage.TipoParo{Nombre: req.Nombre, Categoria: req.Categoria}
		if err := escritor.CrearTipoParo(ctx, tipo); err != nil {
			log.Error("error al guardar el tipo de paro", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Message: err.Error()})
			return
		}

		render.JSON(w, r, Response{Message: "Tipo de paro guardado", TipoParo: tipo})
	}
}
