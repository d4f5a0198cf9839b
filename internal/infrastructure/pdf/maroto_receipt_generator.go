// Package pdf implementa el comprobante de venta de un lote: el documento que
// la cooperativa entrega al corredor cuando se liquida el precio final.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cooperativa  │  N° de venta + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CORREDOR: Nombre + Empresa                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Lote | Tipo de té | Bolsas | Peso neto | Precio/kg   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Precio confirmado (ref) / TOTAL DE LA VENTA        │
//	│  FOOTER: estado de pago                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/tea-coop-api/internal/application/sale"
	"github.com/jhoicas/tea-coop-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ sale.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa sale.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	coopName string
}

// NewMarotoReceiptGenerator construye el generador con el nombre de la cooperativa.
func NewMarotoReceiptGenerator(coopName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{coopName: coopName}
}

// GenerateReceiptPDF genera el comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, d *entity.SoldLotDetail) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta de lote", true).
		WithAuthor(g.coopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(brokerRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(lotDetailRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(d))
	m.AddRows(line.NewRow(3))
	m.AddRows(paymentRow(d))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: cooperativa (izq) y número de venta + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(d *entity.SoldLotDetail) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.coopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de venta de lote", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("VENTA "+d.SaleID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Lote N° %d", d.LotNumber), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+d.SoldDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// brokerRow: datos del corredor comprador.
func brokerRow(d *entity.SoldLotDetail) core.Row {
	company := d.BrokerCompany
	if company == "" {
		company = "—"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CORREDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(d.BrokerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Empresa: "+company, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del lote.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Tipo de té", 4, align.Left),
		h("Bolsas", 2, align.Center),
		h("Peso neto (kg)", 3, align.Right),
		h("Precio/kg", 3, align.Right),
	)
}

func lotDetailRow(d *entity.SoldLotDetail) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(d.TeaTypeName, props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", d.NoOfBags), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(d.TotalNetWeight.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(d.SoldPrice.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

// totalsRow: precio confirmado de referencia (si existe) y total de la venta.
func totalsRow(d *entity.SoldLotDetail) core.Row {
	confirmed := "sin confirmar"
	if d.ConfirmedPrice != nil {
		confirmed = d.ConfirmedPrice.StringFixed(2) + " /kg"
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			text.New("Valoración confirmada:", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			}),
			text.New("TOTAL DE LA VENTA:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 8,
			}),
		),
		col.New(3).Add(
			text.New(confirmed, props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(d.TotalSoldPrice.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 8,
			}),
		),
	)
}

func paymentRow(d *entity.SoldLotDetail) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Estado de pago: "+d.PaymentStatus, props.Text{Size: 8, Color: colorGray, Top: 1}),
		),
	)
}
