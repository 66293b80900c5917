package reports

import (
	"context"

	"golang.org/x/sync/errgroup"

	"embotelladora-backend/internal/storage"
)

// generadorParos cubre las entidades paros, materia_prima y
// desviacion_calidad: las dos últimas son el mismo reporte acotado a paros
// con causa asociada y agrupado por ella.
type generadorParos struct {
	st                   Storage
	agrupacionDefecto    string
	tituloConteo         string
	conMateriaPrima      bool
	conDesviacionCalidad bool
}

func (g *generadorParos) Generar(ctx context.Context, f Filtros) (*storage.ReportResult, error) {
	agrupacion := f.Agrupacion
	if agrupacion == "" {
		agrupacion = g.agrupacionDefecto
	}

	filtros := f.ReportFiltros
	filtros.ConMateriaPrima = filtros.ConMateriaPrima || g.conMateriaPrima
	filtros.ConDesviacionCalidad = filtros.ConDesviacionCalidad || g.conDesviacionCalidad

	var (
		totales    *storage.TotalesParos
		anteriores *storage.TotalesParos
		grupos     []storage.GrupoParos
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		totales, err = g.st.TotalesParos(egCtx, filtros)
		return err
	})
	eg.Go(func() error {
		var err error
		anteriores, err = g.st.TotalesParos(egCtx, rangoAnterior(filtros))
		return err
	})
	eg.Go(func() error {
		var err error
		grupos, err = g.st.GruposParos(egCtx, filtros, agrupacion)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	promedio := 0.0
	if totales.Cantidad > 0 {
		promedio = redondear(float64(totales.Minutos) / float64(totales.Cantidad))
	}

	kpis := []storage.KPI{
		{
			Titulo:    "Paros",
			Valor:     float64(totales.Cantidad),
			Variacion: variacion(float64(totales.Cantidad), float64(anteriores.Cantidad)),
		},
		{
			Titulo:    "Minutos de paro",
			Valor:     float64(totales.Minutos),
			Unidad:    "min",
			Variacion: variacion(float64(totales.Minutos), float64(anteriores.Minutos)),
		},
		{
			Titulo: "Duración promedio",
			Valor:  promedio,
			Unidad: "min",
		},
	}

	if g.tituloConteo != "" {
		kpis = append(kpis, storage.KPI{
			Titulo: g.tituloConteo,
			Valor:  float64(len(grupos)),
		})
	}

	chart := make([]storage.PuntoGrafica, 0, len(grupos))
	tabla := make([]storage.Fila, 0, len(grupos))
	for _, grupo := range grupos {
		chart = append(chart, storage.PuntoGrafica{
			Label: grupo.Clave,
			Value: float64(grupo.Minutos),
		})

		promedioGrupo := 0.0
		if grupo.Cantidad > 0 {
			promedioGrupo = redondear(float64(grupo.Minutos) / float64(grupo.Cantidad))
		}
		tabla = append(tabla, storage.Fila{
			"grupo":    grupo.Clave,
			"cantidad": grupo.Cantidad,
			"minutos":  grupo.Minutos,
			"promedio": promedioGrupo,
		})
	}

	return &storage.ReportResult{
		KPIs:      kpis,
		ChartData: chart,
		TableData: tabla,
		Columns: []storage.Columna{
			{Key: "grupo", Label: etiquetaAgrupacion(agrupacion)},
			{Key: "cantidad", Label: "Paros"},
			{Key: "minutos", Label: "Minutos"},
			{Key: "promedio", Label: "Promedio (min)"},
		},
	}, nil
}
