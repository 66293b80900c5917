package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"embotelladora-backend/internal/service/reports"
	"embotelladora-backend/internal/storage"
)

type ReportGenerator interface {
	Generar(ctx context.Context, entidad string, f reports.Filtros) (*storage.ReportResult, error)
}

type GenerateExcelService struct {
	reportes ReportGenerator
}

func NewGenerateService(reportes ReportGenerator) *GenerateExcelService {
	return &GenerateExcelService{reportes: reportes}
}

// GenerateExcel vuelca el reporte dinámico a un libro: bloque de KPIs
// arriba y la misma tabla que muestra el dashboard debajo.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, entidad string, filtros reports.Filtros) ([]byte, error) {
	result, err := g.reportes.Generar(ctx, entidad, filtros)
	if err != nil {
		return nil, fmt.Errorf("generar reporte: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Reporte"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	// Bloque de KPIs
	f.SetCellValue(sheet, "A1", "Indicador")
	f.SetCellValue(sheet, "B1", "Valor")
	f.SetCellValue(sheet, "C1", "Unidad")
	f.SetCellValue(sheet, "D1", "Variación (%)")
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)

	for i, kpi := range result.KPIs {
		rowNum := i + 2
		f.SetCellValue(sheet, cellName(1, rowNum), kpi.Titulo)
		f.SetCellValue(sheet, cellName(2, rowNum), kpi.Valor)
		f.SetCellValue(sheet, cellName(3, rowNum), kpi.Unidad)
		if kpi.Variacion != nil {
			f.SetCellValue(sheet, cellName(4, rowNum), *kpi.Variacion)
		}
	}

	// Tabla del reporte, una fila en blanco después de los KPIs
	tablaInicio := len(result.KPIs) + 3
	for i, col := range result.Columns {
		f.SetCellValue(sheet, cellName(i+1, tablaInicio), col.Label)
	}
	if len(result.Columns) > 0 {
		f.SetCellStyle(sheet,
			cellName(1, tablaInicio),
			cellName(len(result.Columns), tablaInicio),
			headerStyle,
		)
	}

	for i, fila := range result.TableData {
		rowNum := tablaInicio + i + 1
		for j, col := range result.Columns {
			if valor, ok := fila[col.Key]; ok {
				f.SetCellValue(sheet, cellName(j+1, rowNum), valor)
			}
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})
	f.SetColWidth(sheet, "A", "G", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
