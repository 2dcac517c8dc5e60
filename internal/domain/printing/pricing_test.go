package printing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/domain/printing"
)

func pdf(pages int) entity.LineItem {
	return entity.LineItem{Name: "apuntes.pdf", Kind: "application/pdf", PageCount: pages}
}

func TestCalculateTotal_Ejemplos(t *testing.T) {
	tests := []struct {
		name     string
		items    []entity.LineItem
		settings entity.PrintSettings
		want     int64
	}{
		{
			name:     "1 archivo B/N, 1 página, 3 copias",
			items:    []entity.LineItem{pdf(1)},
			settings: entity.PrintSettings{Copies: 3},
			want:     6,
		},
		{
			name:     "2 archivos color de 2 páginas, 1 copia",
			items:    []entity.LineItem{pdf(2), pdf(2)},
			settings: entity.PrintSettings{Color: true, Copies: 1},
			want:     40,
		},
		{
			name: "papelería de 15 más B/N 1 página × 1 copia",
			items: []entity.LineItem{
				pdf(1),
				{Name: "Cuaderno", Kind: entity.KindStationery, Price: decimal.NewFromInt(15)},
			},
			settings: entity.PrintSettings{Copies: 1},
			want:     17,
		},
		{
			name:     "imagen sin conteo de páginas cuenta como una",
			items:    []entity.LineItem{{Name: "foto.png", Kind: "image/png"}},
			settings: entity.PrintSettings{Color: true, Copies: 2},
			want:     20,
		},
		{
			name:     "doble cara no altera el precio",
			items:    []entity.LineItem{pdf(4)},
			settings: entity.PrintSettings{DoubleSided: true, Copies: 1},
			want:     8,
		},
		{
			name: "la papelería no se multiplica por copias",
			items: []entity.LineItem{
				{Name: "Lapicero", Kind: entity.KindStationery, Price: decimal.NewFromInt(10)},
			},
			settings: entity.PrintSettings{Copies: 5},
			want:     10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := printing.CalculateTotal(tt.items, tt.settings)
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "total esperado %d, obtenido %s", tt.want, got)
		})
	}
}

func TestCalculateTotal_DeterministaEIndependienteDelOrden(t *testing.T) {
	items := []entity.LineItem{
		pdf(3),
		{Name: "Folder", Kind: entity.KindStationery, Price: decimal.RequireFromString("12.50")},
		pdf(7),
	}
	settings := entity.PrintSettings{Color: true, Copies: 2}

	first := printing.CalculateTotal(items, settings)
	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(printing.CalculateTotal(items, settings)))
	}

	reversed := []entity.LineItem{items[2], items[1], items[0]}
	assert.True(t, first.Equal(printing.CalculateTotal(reversed, settings)))
	assert.Equal(t, "212.5", first.String())
}
