package get

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"embotelladora-backend/internal/service/reports"
	"embotelladora-backend/internal/storage"
)

type ReportGenerator interface {
	Generar(ctx context.Context, entidad string, f reports.Filtros) (*storage.ReportResult, error)
}

type OpcionesLector interface {
	Opciones(ctx context.Context, tipo string, dependeDe *int, categoria string) ([]storage.Opcion, error)
}

type ExcelGenerator interface {
	GenerateExcel(ctx context.Context, entidad string, f reports.Filtros) ([]byte, error)
}

type errorResponse struct {
	Message string `json:"message"`
}

// GetDynamicReport atiende GET /api/reports/dynamic-report: despacha al
// generador de la entidad principal y devuelve KPIs, serie y tabla.
func GetDynamicReport(log *slog.Logger, generator ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reports.get.GetDynamicReport"

		entidad, filtros, err := parseFiltros(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Message: err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		result, err := generator.Generar(ctx, entidad, filtros)
		if err != nil {
			if errors.Is(err, reports.ErrEntidadNoSoportada) {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, errorResponse{Message: "Entidad principal no soportada"})
				return
			}
			log.Error("error al generar el reporte", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Message: err.Error()})
			return
		}

		render.JSON(w, r, result)
	}
}

// GetFilterOptions atiende GET /api/reports/filter-options: opciones de
// los combos en cascada del constructor de reportes.
func GetFilterOptions(log *slog.Logger, lector OpcionesLector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reports.get.GetFilterOptions"

		tipo := r.URL.Query().Get("type")
		if tipo == "" {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Message: "Falta el tipo de filtro"})
			return
		}

		var dependeDe *int
		if v := r.URL.Query().Get("dependsOn"); v != "" {
			id, err := strconv.Atoi(v)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, errorResponse{Message: "Parámetro dependsOn inválido"})
				return
			}
			dependeDe = &id
		}

		// Los tipos de paro se acotan por categoría según la entidad del
		// reporte: una desviación de calidad sólo cruza con paros de
		// calidad.
		categoria := ""
		if r.URL.Query().Get("entidad_principal") == storage.EntidadDesviacionCalidad && tipo == "tipo_paro" {
			categoria = storage.CategoriaCalidad
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		opciones, err := lector.Opciones(ctx, tipo, dependeDe, categoria)
		if err != nil {
			log.Error("error al cargar las opciones de filtro", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Message: err.Error()})
			return
		}

		render.JSON(w, r, map[string]any{"options": opciones})
	}
}

// GetReportExcel atiende GET /api/reports/dynamic-report/excel: el mismo
// reporte, como libro descargable.
func GetReportExcel(log *slog.Logger, generator ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.reports.get.GetReportExcel"

		entidad, filtros, err := parseFiltros(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Message: err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		datos, err := generator.GenerateExcel(ctx, entidad, filtros)
		if err != nil {
			if errors.Is(err, reports.ErrEntidadNoSoportada) {
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, errorResponse{Message: "Entidad principal no soportada"})
				return
			}
			log.Error("error al generar el excel del reporte", slog.String("op", op), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Message: err.Error()})
			return
		}

		nombre := fmt.Sprintf("reporte_%s_%s.xlsx", entidad, time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+nombre)
		w.Write(datos)
	}
}

func parseFiltros(r *http.Request) (string, reports.Filtros, error) {
	q := r.URL.Query()

	entidad := q.Get("entidad_principal")
	if entidad == "" {
		return "", reports.Filtros{}, errors.New("Falta la entidad principal")
	}

	var filtros reports.Filtros
	filtros.Agrupacion = q.Get("agrupacion")

	desde, hasta := reports.RangoPorDefecto(30, time.Now())
	if v := q.Get("from"); v != "" {
		t, err := parseFecha(v)
		if err != nil {
			return "", reports.Filtros{}, errors.New("Fecha 'from' inválida")
		}
		desde = t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseFecha(v)
		if err != nil {
			return "", reports.Filtros{}, errors.New("Fecha 'to' inválida")
		}
		hasta = t
	}
	filtros.Desde = desde
	filtros.Hasta = hasta

	if v := q.Get("linea_produccion"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return "", reports.Filtros{}, errors.New("Línea de producción inválida")
		}
		filtros.LineaProduccionID = &id
	}
	if v := q.Get("producto"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return "", reports.Filtros{}, errors.New("Producto inválido")
		}
		filtros.ProductoID = &id
	}
	if v := q.Get("turno"); v != "" {
		turno := v
		filtros.Turno = &turno
	}
	if v := q.Get("tipo_paro"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return "", reports.Filtros{}, errors.New("Tipo de paro inválido")
		}
		filtros.TipoParoID = &id
	}

	return entidad, filtros, nil
}

func parseFecha(valor string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, valor); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", valor)
}
