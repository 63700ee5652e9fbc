package dto

import "github.com/shopspring/decimal"

// AddWishlistItemRequest body para POST /api/customers/:id/wishlist.
type AddWishlistItemRequest struct {
	ProductID   string      `json:"product_id,omitempty"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	UnitPrice   FlexDecimal `json:"unit_price"`
	Priority    int         `json:"priority,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// UpdateWishlistItemRequest body para PUT /api/wishlist/:id.
// Status opcional; si viene, debe ser una transición válida de la máquina de estados.
type UpdateWishlistItemRequest struct {
	Quantity *int    `json:"quantity,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Status   *string `json:"status,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

// WishlistItemResponse un ítem de la wishlist.
type WishlistItemResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	ProductID   *string         `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Status      string          `json:"status"`
	Priority    int             `json:"priority"`
	Notes       string          `json:"notes,omitempty"`
}

// ConvertWishlistRequest body para POST /api/customers/:id/wishlist/convert.
type ConvertWishlistRequest struct {
	WishlistIDs []string `json:"wishlistIds"`
}

// ConvertWishlistResponse resultado de la conversión atómica.
type ConvertWishlistResponse struct {
	SaleIDs        []string `json:"salesIds"`
	ConvertedItems int      `json:"convertedItems"`
}
