package order

import (
	"context"
	"fmt"

	"github.com/jhoicas/jprint-api/internal/application/dto"
	"github.com/jhoicas/jprint-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante de retiro (PDF) de un pedido.
type ReceiptUseCase struct {
	orders    repository.OrderRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(orders repository.OrderRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, generator: generator}
}

// DownloadReceipt devuelve el PDF y el nombre de archivo sugerido.
// Aplica la misma regla de lectura que GetOrder (estudiante solo sus pedidos).
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, req dto.Requester, id string) ([]byte, string, error) {
	o, err := loadReadable(ctx, uc.orders, req, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, o)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("pedido-%s.pdf", o.ID), nil
}
