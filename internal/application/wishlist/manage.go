package wishlist

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/retail-suite/internal/application/dto"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
)

// ManageUseCase operaciones de edición de wishlist orientadas al cliente
// (alta, actualización con máquina de estados, listado).
type ManageUseCase struct {
	wishlistRepo repository.WishlistRepository
}

// NewManageUseCase construye el caso de uso.
func NewManageUseCase(wishlistRepo repository.WishlistRepository) *ManageUseCase {
	return &ManageUseCase{wishlistRepo: wishlistRepo}
}

// Add agrega un ítem en estado pending. total_price es derivado, no entrada.
func (uc *ManageUseCase) Add(customerID string, in dto.AddWishlistItemRequest) (*dto.WishlistItemResponse, error) {
	if customerID == "" || in.ProductName == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	unitPrice := in.UnitPrice.Decimal
	if unitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.WishlistItem{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Status:      entity.WishlistStatusPending,
		Priority:    in.Priority,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.ProductID != "" {
		item.ProductID = &in.ProductID
	}
	if err := uc.wishlistRepo.Create(item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

// Update modifica cantidad/prioridad/notas y aplica transiciones de estado
// válidas (pending→confirmed, pending|confirmed→cancelled). Los estados
// converted y cancelled son terminales: ErrConflict.
func (uc *ManageUseCase) Update(customerID, itemID string, in dto.UpdateWishlistItemRequest) (*dto.WishlistItemResponse, error) {
	item, err := uc.wishlistRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}

	if in.Status != nil && *in.Status != item.Status {
		if !item.CanTransitionTo(*in.Status) {
			return nil, domain.ErrConflict
		}
		item.Status = *in.Status
	}
	if in.Quantity != nil {
		if *in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = *in.Quantity
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	if in.Priority != nil {
		item.Priority = *in.Priority
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	item.UpdatedAt = time.Now()

	if err := uc.wishlistRepo.Update(item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

// ListByCustomer lista la wishlist de un cliente.
func (uc *ManageUseCase) ListByCustomer(customerID string) ([]dto.WishlistItemResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.wishlistRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WishlistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *itemToResponse(item))
	}
	return out, nil
}

func itemToResponse(item *entity.WishlistItem) *dto.WishlistItemResponse {
	return &dto.WishlistItemResponse{
		ID:          item.ID,
		CustomerID:  item.CustomerID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
		Status:      item.Status,
		Priority:    item.Priority,
		Notes:       item.Notes,
	}
}
