// Package pdf genera el comprobante de retiro de un pedido de impresión.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: nombre de la tienda │ N° pedido     │
//	│  CLIENTE: email + fecha                      │
//	│  TABLA: Archivo | Tipo | Págs | Importe      │
//	│  OPCIONES: color / doble cara / copias       │
//	│  TOTAL                                       │
//	│  OTP grande + QR (id|otp) + estado           │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/printing"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa order.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	shopName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(shopName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{shopName: nonEmpty(shopName, "JPrint")}
}

// QRPayload contenido del QR: el vendedor lo escanea en el mostrador.
func QRPayload(o *entity.Order) string {
	return o.ID + "|" + o.OTP
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, o *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de retiro", true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(o))
	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(o)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(settingsRow(o.Settings), totalRow(o.TotalAmount))
	m.AddRows(line.NewRow(3))
	m.AddRows(pickupRow(o))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReceiptGenerator) headerRow(o *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Comprobante de retiro", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PEDIDO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(shortID(o.ID), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6}),
		),
	)
}

func customerRow(o *entity.Order) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Cliente: %s   |   Fecha: %s",
			nonEmpty(o.UserEmail, "-"),
			o.CreatedAt.Format("02/01/2006 15:04"),
		), props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 2}))
	}
	return row.New(7).Add(
		h("Archivo", 6, align.Left),
		h("Tipo", 2, align.Left),
		h("Págs.", 1, align.Center),
		h("Importe", 3, align.Right),
	)
}

func itemRows(o *entity.Order) []core.Row {
	rate := printing.Rate(o.Settings.Color)
	copies := int64(o.Settings.Copies)
	rows := make([]core.Row, 0, len(o.Items))
	for _, it := range o.Items {
		billable := printing.BillablePages(it)
		kind, pages := "Impresión", strconv.FormatInt(billable, 10)
		amount := rate.Mul(decimal.NewFromInt(billable * copies))
		if it.IsStationery() {
			kind, pages, amount = "Papelería", "-", it.Price
		}
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(nonEmpty(it.Name, "(sin nombre)"), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(kind, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(1).Add(text.New(pages, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("$"+amount.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func settingsRow(s entity.PrintSettings) core.Row {
	color := "Blanco y negro"
	if s.Color {
		color = "Color"
	}
	sides := "Una cara"
	if s.DoubleSided {
		sides = "Doble cara"
	}
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s   |   %s   |   %d copia(s)", color, sides, s.Copies),
			props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(9).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2})),
		col.New(3).Add(text.New("$"+total.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2})),
	)
}

// pickupRow: OTP grande a la izquierda y QR a la derecha.
func pickupRow(o *entity.Order) core.Row {
	return row.New(40).Add(
		col.New(7).Add(
			text.New("CÓDIGO DE RETIRO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
			text.New(o.OTP, props.Text{Style: fontstyle.Bold, Size: 28, Top: 8}),
			text.New("Estado: "+string(o.Status), props.Text{Size: 8, Top: 24, Color: colorGray}),
			text.New("Presenta este código en el mostrador.", props.Text{Size: 7, Top: 30, Color: colorGray}),
		),
		col.New(5).Add(code.NewQr(QRPayload(o), props.Rect{Percent: 95, Center: true})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID últimos 8 caracteres del id, suficiente para identificar el pedido en mostrador.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
