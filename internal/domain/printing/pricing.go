package printing

import (
	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Tarifas por página (unidad monetaria).
var (
	RateBlackWhite = decimal.NewFromInt(2)
	RateColor      = decimal.NewFromInt(10)
)

// Límites de un pedido. MaxTotal es el máximo que admite orders.total_amount NUMERIC(12,2).
const (
	MaxCopies = 500
	MaxPages  = 5000
)

var MaxTotal = decimal.RequireFromString("9999999999.99")

// Rate devuelve la tarifa por página según el modo de color.
func Rate(color bool) decimal.Decimal {
	if color {
		return RateColor
	}
	return RateBlackWhite
}

// BillablePages páginas cobrables de un archivo. Un conteo desconocido (0) cuenta como una página.
func BillablePages(item entity.LineItem) int64 {
	if item.PageCount < 1 {
		return 1
	}
	return int64(item.PageCount)
}

// CalculateTotal calcula el total del pedido (servicio de dominio, función pura).
// Total = Σpáginas × copias × tarifa(color) + Σprecio(papelería)
func CalculateTotal(items []entity.LineItem, settings entity.PrintSettings) decimal.Decimal {
	var pages int64
	stationery := decimal.Zero
	for _, it := range items {
		if it.IsStationery() {
			stationery = stationery.Add(it.Price)
			continue
		}
		pages += BillablePages(it)
	}
	printTotal := decimal.NewFromInt(pages).
		Mul(decimal.NewFromInt(int64(settings.Copies))).
		Mul(Rate(settings.Color))
	return printTotal.Add(stationery)
}
