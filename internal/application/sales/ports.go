package sales

import (
	"context"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repos atados a una transacción PostgreSQL.
// Lo implementa postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		assignments repository.AssignmentRepository,
		sales repository.SaleRepository,
		history repository.HistoryRepository,
	) error) error
}

// ReceiptData todo lo que necesita el comprobante PDF de una venta.
type ReceiptData struct {
	Sale    *entity.Sale
	Product *entity.Product
	Client  *entity.Client
	Seller  *entity.User
	Owner   *entity.User
}

// ReceiptPDFGenerator genera el comprobante de venta.
// Lo implementa pdf.MarotoReceiptGenerator.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
}
