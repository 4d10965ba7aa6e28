package sales

import (
	"context"
	"fmt"

	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

// ReceiptUseCase arma el comprobante PDF de una venta.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// Generate devuelve los bytes del PDF del comprobante de la venta, si la
// venta es visible para el alcance dado.
func (uc *ReceiptUseCase) Generate(ctx context.Context, scopeOwnerID, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || !visibleTo(scopeOwnerID, sale.OwnerID) {
		return nil, domain.ErrNotFound
	}

	product, err := uc.productRepo.GetByID(ctx, sale.ProductID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(ctx, sale.ClientID)
	if err != nil {
		return nil, err
	}
	seller, err := uc.userRepo.GetByID(ctx, sale.SellerID)
	if err != nil {
		return nil, err
	}
	owner, err := uc.userRepo.GetByID(ctx, sale.OwnerID)
	if err != nil {
		return nil, err
	}

	data := ReceiptData{
		Sale:    sale,
		Product: product,
		Client:  client,
		Seller:  seller,
		Owner:   owner,
	}
	pdfBytes, err := uc.generator.GenerateReceiptPDF(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return pdfBytes, nil
}
