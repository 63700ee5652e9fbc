package sales

import (
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/domain"
)

// GetSale obtiene una venta por ID.
func (uc *CreateSaleUseCase) GetSale(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	response := saleToResponse(sale)
	if sale.IntegrationError != "" {
		response.IntegrationWarning = sale.IntegrationError
	}
	return response, nil
}

// ListSales lista ventas paginadas (más recientes primero).
func (uc *CreateSaleUseCase) ListSales(page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *saleToResponse(s))
	}
	return out, nil
}
