package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-suite/internal/application/catalog"
	"github.com/jhoicas/retail-suite/internal/application/sales"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/application/wishlist"
)

// InventoryRouterDeps dependencias del router del servicio de inventario.
type InventoryRouterDeps struct {
	Ledger    *stock.LedgerUseCase
	ProductUC *catalog.ProductUseCase
}

// InventoryRouter registra las rutas del servicio de inventario
// (catálogo, Stock Ledger y contrato entre servicios).
func InventoryRouter(app *fiber.App, deps InventoryRouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)

	stockHandler := NewStockHandler(deps.Ledger)
	products.Put("/:id/stock", stockHandler.Adjust)
	products.Get("/:id/availability", stockHandler.GetAvailability)
	products.Get("/:id/movements", stockHandler.ListMovements)

	integrationHandler := NewIntegrationHandler(deps.Ledger)
	products.Post("/:id/update-stock", integrationHandler.UpdateStock)
	api.Get("/integration/low-stock", integrationHandler.LowStock)
}

// SalesRouterDeps dependencias del router del servicio de ventas.
type SalesRouterDeps struct {
	SaleUC     *sales.CreateSaleUseCase
	Gateway    sales.InventoryGateway
	WishlistUC *wishlist.ManageUseCase
	ConvertUC  *wishlist.ConvertUseCase
}

// SalesRouter registra las rutas del servicio de ventas
// (registro de ventas y wishlist con conversión).
func SalesRouter(app *fiber.App, deps SalesRouterDeps) {
	api := app.Group("/api")

	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Gateway)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/product-search", saleHandler.SearchProducts)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	wishlistHandler := NewWishlistHandler(deps.WishlistUC, deps.ConvertUC)
	customers := api.Group("/customers")
	customers.Post("/:id/wishlist", wishlistHandler.Add)
	customers.Get("/:id/wishlist", wishlistHandler.List)
	customers.Post("/:id/wishlist/convert", wishlistHandler.Convert)
	customers.Put("/:customerId/wishlist/:id", wishlistHandler.Update)
}
