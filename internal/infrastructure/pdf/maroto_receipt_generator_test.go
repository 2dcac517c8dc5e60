package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/internal/infrastructure/pdf"
)

func sampleOrder() *entity.Order {
	return &entity.Order{
		ID:        "0192f3a4-7b1c-7def-8a00-0123456789ab",
		UserID:    "user_1",
		UserEmail: "a@x.com",
		Items: []entity.LineItem{
			{ID: "i1", Name: "apuntes.pdf", Kind: "application/pdf", PageCount: 3},
			{ID: "i2", Name: "Cuaderno", Kind: entity.KindStationery, Price: decimal.NewFromInt(15)},
		},
		Settings:    entity.PrintSettings{Copies: 2},
		TotalAmount: decimal.NewFromInt(27),
		Status:      entity.OrderStatusPaid,
		OTP:         "4821",
		CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("")
	out, err := g.GenerateReceiptPDF(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "no parece un PDF")
}

func TestQRPayload(t *testing.T) {
	assert.Equal(t, "0192f3a4-7b1c-7def-8a00-0123456789ab|4821", pdf.QRPayload(sampleOrder()))
}
