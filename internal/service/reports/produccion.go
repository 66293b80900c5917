package reports

import (
	"context"

	"golang.org/x/sync/errgroup"

	"embotelladora-backend/internal/storage"
)

// generadorProduccion cubre las entidades produccion, linea y producto:
// mismas consultas, distinta agrupación por defecto y distinto KPI de
// conteo por dimensión.
type generadorProduccion struct {
	st                Storage
	agrupacionDefecto string
	tituloConteo      string
}

func (g *generadorProduccion) Generar(ctx context.Context, f Filtros) (*storage.ReportResult, error) {
	agrupacion := f.Agrupacion
	if agrupacion == "" {
		agrupacion = g.agrupacionDefecto
	}

	var (
		totales    *storage.TotalesProduccion
		anteriores *storage.TotalesProduccion
		grupos     []storage.GrupoProduccion
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		totales, err = g.st.TotalesProduccion(egCtx, f.ReportFiltros)
		return err
	})
	eg.Go(func() error {
		var err error
		anteriores, err = g.st.TotalesProduccion(egCtx, rangoAnterior(f.ReportFiltros))
		return err
	})
	eg.Go(func() error {
		var err error
		grupos, err = g.st.GruposProduccion(egCtx, f.ReportFiltros, agrupacion)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	kpis := []storage.KPI{
		{
			Titulo:    "Cajas producidas",
			Valor:     float64(totales.Producidas),
			Unidad:    "cajas",
			Variacion: variacion(float64(totales.Producidas), float64(anteriores.Producidas)),
		},
		{
			Titulo: "Cajas planificadas",
			Valor:  float64(totales.Planificadas),
			Unidad: "cajas",
		},
		{
			Titulo: "Cumplimiento",
			Valor:  porcentaje(float64(totales.Producidas), float64(totales.Planificadas)),
			Unidad: "%",
		},
	}

	if g.tituloConteo != "" {
		kpis = append(kpis, storage.KPI{
			Titulo: g.tituloConteo,
			Valor:  float64(len(grupos)),
		})
	} else {
		kpis = append(kpis, storage.KPI{
			Titulo:    "Órdenes",
			Valor:     float64(totales.Ordenes),
			Variacion: variacion(float64(totales.Ordenes), float64(anteriores.Ordenes)),
		})
	}

	chart := make([]storage.PuntoGrafica, 0, len(grupos))
	tabla := make([]storage.Fila, 0, len(grupos))
	for _, grupo := range grupos {
		chart = append(chart, storage.PuntoGrafica{
			Label: grupo.Clave,
			Value: float64(grupo.Producidas),
		})
		tabla = append(tabla, storage.Fila{
			"grupo":        grupo.Clave,
			"producidas":   grupo.Producidas,
			"planificadas": grupo.Planificadas,
			"cumplimiento": porcentaje(float64(grupo.Producidas), float64(grupo.Planificadas)),
		})
	}

	return &storage.ReportResult{
		KPIs:      kpis,
		ChartData: chart,
		TableData: tabla,
		Columns: []storage.Columna{
			{Key: "grupo", Label: etiquetaAgrupacion(agrupacion)},
			{Key: "producidas", Label: "Cajas producidas"},
			{Key: "planificadas", Label: "Cajas planificadas"},
			{Key: "cumplimiento", Label: "Cumplimiento (%)"},
		},
	}, nil
}
