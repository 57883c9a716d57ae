package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// SalesUseCase ingesta de hechos de venta en el feed local. El motor de
// alertas consume este feed para seleccionar candidatos.
type SalesUseCase struct {
	repo        repository.SalesActivityRepository
	productRepo repository.ProductRepository
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(repo repository.SalesActivityRepository, productRepo repository.ProductRepository) *SalesUseCase {
	return &SalesUseCase{repo: repo, productRepo: productRepo}
}

// RecordSale registra una venta de un producto de la empresa.
func (uc *SalesUseCase) RecordSale(ctx context.Context, companyID string, in dto.RecordSaleRequest) (*dto.RecordSaleResponse, error) {
	if in.ProductID == "" {
		return nil, domain.MissingField("product_id")
	}
	if in.Quantity <= 0 {
		return nil, &domain.ValidationError{Kind: domain.KindInvalidQuantity, Field: "quantity", Message: "debe ser mayor que cero"}
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	soldAt := time.Now()
	if in.SoldAt != nil {
		soldAt = *in.SoldAt
	}
	sale := &entity.SalesActivity{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		SoldAt:    soldAt,
	}
	if err := uc.repo.RecordSale(ctx, sale); err != nil {
		return nil, err
	}
	return &dto.RecordSaleResponse{
		SaleID:    sale.ID,
		ProductID: sale.ProductID,
		Quantity:  sale.Quantity,
		SoldAt:    sale.SoldAt,
	}, nil
}
