// Package pdf genera los reportes imprimibles del inventario con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación + usuario              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Totales (productos, stock, valor, stock bajo)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Categoría | Stock | Mín | Valor     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	coreentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/econoarena/inventario-api/internal/application/dto"
	"github.com/econoarena/inventario-api/internal/application/usecase"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ usecase.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa usecase.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	appName string
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator(appName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{appName: appName}
}

// InventoryReport genera el PDF del inventario completo y devuelve sus bytes.
func (g *MarotoReportGenerator) InventoryReport(data dto.InventoryReportData) ([]byte, error) {
	m := maroto.New(g.pageConfig("Reporte de Inventario"))

	m.AddRows(g.headerRow("REPORTE DE INVENTARIO", data.GeneratedAt.Format("02/01/2006 15:04"), data.GeneratedBy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(10).Add(
		summaryCol(3, "Productos", fmt.Sprintf("%d", data.TotalProducts)),
		summaryCol(3, "Stock total", fmt.Sprintf("%d", data.TotalStock)),
		summaryCol(3, "Valor total", "$"+data.TotalValue.StringFixed(2)),
		summaryCol(3, "Stock bajo", fmt.Sprintf("%d", data.LowStockCount)),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(7).Add(
		headerCell(2, "SKU"),
		headerCell(4, "Producto"),
		headerCell(2, "Categoría"),
		headerCell(1, "Stock"),
		headerCell(1, "Mín"),
		headerCell(2, "Valor"),
	))
	for _, p := range data.Products {
		stockColor := colorGray
		if p.LowStock {
			stockColor = colorDanger
		}
		m.AddRows(row.New(6).Add(
			bodyCell(2, p.SKU, colorGray),
			bodyCell(4, p.Name, nil),
			bodyCell(2, p.Category, colorGray),
			bodyCellAlign(1, fmt.Sprintf("%d", p.Stock), stockColor, align.Right),
			bodyCellAlign(1, fmt.Sprintf("%d", p.MinStock), colorGray, align.Right),
			bodyCellAlign(2, "$"+p.Value.StringFixed(2), nil, align.Right),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de inventario: %w", err)
	}
	return doc.GetBytes(), nil
}

// MovementsReport genera el PDF de movimientos del rango y devuelve sus bytes.
func (g *MarotoReportGenerator) MovementsReport(data dto.MovementsReportData) ([]byte, error) {
	m := maroto.New(g.pageConfig("Reporte de Movimientos"))

	periodo := fmt.Sprintf("%s a %s", data.From.Format("02/01/2006"), data.To.Format("02/01/2006"))
	m.AddRows(g.headerRow("REPORTE DE MOVIMIENTOS", periodo, data.GeneratedBy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(10).Add(
		summaryCol(4, "Entradas", fmt.Sprintf("%d", data.Entries)),
		summaryCol(4, "Salidas", fmt.Sprintf("%d", data.Exits)),
		summaryCol(4, "Total", fmt.Sprintf("%d", len(data.Movements))),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(row.New(7).Add(
		headerCell(2, "Fecha"),
		headerCell(3, "Producto"),
		headerCell(1, "Tipo"),
		headerCell(1, "Cant"),
		headerCell(2, "Usuario"),
		headerCell(3, "Referencia"),
	))
	for _, mv := range data.Movements {
		typeColor := colorGray
		if mv.Type == "Salida" {
			typeColor = colorDanger
		}
		m.AddRows(row.New(6).Add(
			bodyCell(2, mv.Date.Format("02/01/2006"), colorGray),
			bodyCell(3, mv.ProductName, nil),
			bodyCell(1, mv.Type, typeColor),
			bodyCellAlign(1, fmt.Sprintf("%d", mv.Quantity), nil, align.Right),
			bodyCell(2, mv.UserName, colorGray),
			bodyCell(3, mv.Reference, colorGray),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de movimientos: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReportGenerator) pageConfig(title string) *coreentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.appName, true).
		Build()
}

// headerRow: título (izq), fecha/periodo y usuario generador (der).
func (g *MarotoReportGenerator) headerRow(title, when, by string) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(when, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2}),
			text.New("Generado por: "+by, props.Text{Size: 8, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

func summaryCol(size int, label, value string) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 4}),
	)
}

func headerCell(size int, label string) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	)
}

func bodyCell(size int, value string, color *props.Color) core.Col {
	return bodyCellAlign(size, value, color, align.Left)
}

func bodyCellAlign(size int, value string, color *props.Color, a align.Type) core.Col {
	p := props.Text{Size: 8, Top: 1, Align: a}
	if color != nil {
		p.Color = color
	}
	return col.New(size).Add(text.New(value, p))
}
