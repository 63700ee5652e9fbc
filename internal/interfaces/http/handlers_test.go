package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/retail-suite/internal/application/catalog"
	"github.com/jhoicas/retail-suite/internal/application/sales"
	"github.com/jhoicas/retail-suite/internal/application/stock"
	"github.com/jhoicas/retail-suite/internal/application/wishlist"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
	httpapi "github.com/jhoicas/retail-suite/internal/interfaces/http"
	"github.com/jhoicas/retail-suite/pkg/logger"
)

// memStore estado en memoria compartido por los fakes de ambos routers.
type memStore struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	sales     map[string]*entity.Sale
	wishlist  map[string]*entity.WishlistItem
}

func newMemStore() *memStore {
	return &memStore{
		products: map[string]*entity.Product{},
		sales:    map[string]*entity.Sale{},
		wishlist: map[string]*entity.WishlistItem{},
	}
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.s.products[id], nil }

func (r *memProductRepo) Search(query string, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) AddStock(id string, quantity int) (int, int, error) {
	p, ok := r.s.products[id]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}
	previous := p.StockQuantity
	p.StockQuantity += quantity
	return previous, p.StockQuantity, nil
}

func (r *memProductRepo) SubtractStock(id string, quantity int) (int, int, error) {
	p, ok := r.s.products[id]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}
	if p.StockQuantity < quantity {
		return 0, 0, domain.ErrInsufficientStock
	}
	previous := p.StockQuantity
	p.StockQuantity -= quantity
	return previous, p.StockQuantity, nil
}

func (r *memProductRepo) SetStock(id string, quantity int) (int, int, error) {
	p, ok := r.s.products[id]
	if !ok {
		return 0, 0, domain.ErrNotFound
	}
	previous := p.StockQuantity
	p.StockQuantity = quantity
	return previous, quantity, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.Sale) error { r.s.sales[sale.ID] = sale; return nil }
func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) { return r.s.sales[id], nil }
func (r *memSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		out = append(out, s)
	}
	return out, nil
}

func (r *memSaleRepo) UpdateIntegration(id, status, integrationErr string) error {
	s, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.IntegrationStatus = status
	s.IntegrationError = integrationErr
	return nil
}

func (r *memSaleRepo) ListFailedIntegration(limit int) ([]*entity.Sale, error) { return nil, nil }

type memWishlistRepo struct{ s *memStore }

func (r *memWishlistRepo) Create(item *entity.WishlistItem) error {
	r.s.wishlist[item.ID] = item
	return nil
}

func (r *memWishlistRepo) GetByID(id string) (*entity.WishlistItem, error) {
	return r.s.wishlist[id], nil
}

func (r *memWishlistRepo) ListByCustomer(customerID string) ([]*entity.WishlistItem, error) {
	var out []*entity.WishlistItem
	for _, item := range r.s.wishlist {
		if item.CustomerID == customerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memWishlistRepo) Update(item *entity.WishlistItem) error {
	r.s.wishlist[item.ID] = item
	return nil
}

func (r *memWishlistRepo) UpdateStatus(id, status string) error {
	item, ok := r.s.wishlist[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.Status = status
	return nil
}

func (r *memWishlistRepo) LockForConversion(customerID string, ids []string) ([]*entity.WishlistItem, error) {
	var out []*entity.WishlistItem
	for _, id := range ids {
		item, ok := r.s.wishlist[id]
		if ok && item.CustomerID == customerID && item.EligibleForConversion() {
			out = append(out, item)
		}
	}
	return out, nil
}

// memTxRunner pasa los fakes directamente; los tests de rollback viven en los
// tests de los casos de uso, aquí solo se verifica el contrato HTTP.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(&memProductRepo{s: r.s}, &memMovementRepo{s: r.s})
}

type memWishlistTxRunner struct{ s *memStore }

func (r *memWishlistTxRunner) Run(ctx context.Context, fn func(
	repository.WishlistRepository,
	repository.SaleRepository,
	repository.ProductRepository,
	repository.StockMovementRepository,
) error) error {
	return fn(&memWishlistRepo{s: r.s}, &memSaleRepo{s: r.s}, &memProductRepo{s: r.s}, &memMovementRepo{s: r.s})
}

type memGateway struct {
	err    error
	result *sales.StockUpdateResult
}

func (g *memGateway) SubtractStock(ctx context.Context, productID string, quantity int) (*sales.StockUpdateResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func (g *memGateway) GetProduct(ctx context.Context, productID string) (*sales.ProductSnapshot, error) {
	return nil, g.err
}

func (g *memGateway) SearchProducts(ctx context.Context, query string, limit int) ([]sales.ProductSnapshot, error) {
	if g.err != nil {
		return nil, g.err
	}
	return nil, nil
}

func newInventoryApp(store *memStore) *fiber.App {
	productRepo := &memProductRepo{s: store}
	movementRepo := &memMovementRepo{s: store}
	txRunner := &memTxRunner{s: store}
	ledger := stock.NewLedgerUseCase(txRunner, productRepo, movementRepo)
	productUC := catalog.NewProductUseCase(txRunner, productRepo, ledger)

	app := fiber.New()
	httpapi.InventoryRouter(app, httpapi.InventoryRouterDeps{Ledger: ledger, ProductUC: productUC})
	return app
}

func newSalesApp(store *memStore, gw sales.InventoryGateway) *fiber.App {
	saleRepo := &memSaleRepo{s: store}
	productRepo := &memProductRepo{s: store}
	movementRepo := &memMovementRepo{s: store}
	ledger := stock.NewLedgerUseCase(&memTxRunner{s: store}, productRepo, movementRepo)

	app := fiber.New()
	httpapi.SalesRouter(app, httpapi.SalesRouterDeps{
		SaleUC:     sales.NewCreateSaleUseCase(saleRepo, gw, logger.Nop()),
		Gateway:    gw,
		WishlistUC: wishlist.NewManageUseCase(&memWishlistRepo{s: store}),
		ConvertUC:  wishlist.NewConvertUseCase(&memWishlistTxRunner{s: store}, ledger, false, logger.Nop()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func seedProduct(store *memStore, id string, stock, minLevel int) {
	store.products[id] = &entity.Product{
		ID: id, SKU: "SKU-" + id, Name: "Producto " + id,
		Price: decimal.NewFromInt(10), StockQuantity: stock,
		MinStockLevel: minLevel, IsActive: true,
	}
}

func TestPutStockAjusteAbsoluto(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 12, 0)
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "PUT", "/api/products/p1/stock",
		`{"quantity": 5, "movement_type": "adjustment"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(12), body["previous_quantity"])
	assert.Equal(t, float64(5), body["new_quantity"])
	assert.Equal(t, 5, store.products["p1"].StockQuantity)
}

func TestPutStockInsuficienteFormaFija(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 3, 0)
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "PUT", "/api/products/p1/stock",
		`{"quantity": 10, "movement_type": "out"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	// el contrato exige exactamente esta forma
	assert.Equal(t, map[string]any{"error": "Insufficient stock"}, body)
	assert.Equal(t, 3, store.products["p1"].StockQuantity)
}

func TestPutStockProductoInexistente(t *testing.T) {
	app := newInventoryApp(newMemStore())

	status, body := doJSON(t, app, "PUT", "/api/products/nope/stock",
		`{"quantity": 1, "movement_type": "in"}`)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestPutStockTipoInvalido(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 3, 0)
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "PUT", "/api/products/p1/stock",
		`{"quantity": 1, "movement_type": "transfer"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestUpdateStockContratoSubtract(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10, 0)
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "POST", "/api/products/p1/update-stock",
		`{"quantity": 4, "operation": "subtract"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(10), body["previous_stock"])
	assert.Equal(t, float64(6), body["new_stock"])

	// el contrato deja movimiento de auditoría con referencia de venta
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.ReferenceSale, store.movements[0].ReferenceType)
}

func TestUpdateStockContratoInsuficiente(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 2, 0)
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "POST", "/api/products/p1/update-stock",
		`{"quantity": 5, "operation": "subtract"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Insufficient stock", body["error"])
}

func TestUpdateStockContratoProductoInexistente(t *testing.T) {
	app := newInventoryApp(newMemStore())

	status, body := doJSON(t, app, "POST", "/api/products/nope/update-stock",
		`{"quantity": 1, "operation": "subtract"}`)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestUpdateStockContratoOperacionInvalida(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 2, 0)
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "POST", "/api/products/p1/update-stock",
		`{"quantity": 1, "operation": "divide"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestGetAvailability(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 5, 5)
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "GET", "/api/products/p1/availability", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(5), body["current_stock"])
	// límite inclusivo: stock == mínimo cuenta como bajo
	assert.Equal(t, true, body["is_low_stock"])

	status, _ = doJSON(t, app, "GET", "/api/products/nope/availability", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestLowStockLimiteInclusivo(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "bajo", 3, 5)
	seedProduct(store, "justo", 5, 5)
	seedProduct(store, "sobrado", 9, 5)
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "GET", "/api/integration/low-stock", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(2), body["total"])
}

func TestCrearProductoConStockInicial(t *testing.T) {
	store := newMemStore()
	app := newInventoryApp(store)

	status, body := doJSON(t, app, "POST", "/api/products/",
		`{"sku": "SKU-9", "name": "Nuevo", "price": "25.50", "initial_stock": 7}`)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, float64(7), body["stock_quantity"])
	// el stock inicial entra como movimiento del ledger, no como asignación directa
	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.MovementTypeIn, store.movements[0].Type)

	status, _ = doJSON(t, app, "POST", "/api/products/",
		`{"sku": "SKU-9", "name": "Duplicado", "price": "1"}`)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestCrearVentaConGatewayCaidoResponde201(t *testing.T) {
	store := newMemStore()
	gw := &memGateway{err: &sales.GatewayError{Kind: sales.GatewayUnavailable, Message: "connection refused"}}
	app := newSalesApp(store, gw)

	status, body := doJSON(t, app, "POST", "/api/sales/", `{
		"productName": "Teclado", "price": 100, "quantity": 2,
		"product_id": "p1", "use_inventory_integration": true
	}`)

	// la venta nunca se pierde por un fallo del inventario
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, entity.IntegrationFailed, body["integration_status"])
	assert.Contains(t, body["integration_warning"], "no se pudo actualizar")
	assert.Len(t, store.sales, 1)
}

func TestCrearVentaInvalidaResponde400(t *testing.T) {
	app := newSalesApp(newMemStore(), &memGateway{})

	status, body := doJSON(t, app, "POST", "/api/sales/", `{"price": 10, "quantity": 1}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestConvertSinElegiblesResponde404(t *testing.T) {
	app := newSalesApp(newMemStore(), &memGateway{})

	status, body := doJSON(t, app, "POST", "/api/customers/c1/wishlist/convert",
		`{"wishlistIds": ["w1"]}`)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NO_ELIGIBLE_ITEMS", body["code"])
}

func TestConvertResponde200ConResultado(t *testing.T) {
	store := newMemStore()
	store.wishlist["w1"] = &entity.WishlistItem{
		ID: "w1", CustomerID: "c1", ProductName: "Monitor",
		Quantity: 1, UnitPrice: decimal.NewFromInt(200),
		Status: entity.WishlistStatusPending,
	}
	app := newSalesApp(store, &memGateway{})

	status, body := doJSON(t, app, "POST", "/api/customers/c1/wishlist/convert",
		`{"wishlistIds": ["w1"]}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(1), body["convertedItems"])
	assert.Equal(t, entity.WishlistStatusConverted, store.wishlist["w1"].Status)
	assert.Len(t, store.sales, 1)
}

func TestProductSearchConGatewayCaidoResponde502(t *testing.T) {
	gw := &memGateway{err: &sales.GatewayError{Kind: sales.GatewayUnavailable, Message: "connection refused"}}
	app := newSalesApp(newMemStore(), gw)

	status, body := doJSON(t, app, "GET", "/api/sales/product-search?query=tec", "")
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "INTEGRATION_DOWN", body["code"])
}

func TestWishlistUpdateTransicionInvalidaResponde409(t *testing.T) {
	store := newMemStore()
	store.wishlist["w1"] = &entity.WishlistItem{
		ID: "w1", CustomerID: "c1", ProductName: "X",
		Quantity: 1, Status: entity.WishlistStatusConverted,
	}
	app := newSalesApp(store, &memGateway{})

	status, body := doJSON(t, app, "PUT", "/api/customers/c1/wishlist/w1",
		`{"status": "cancelled"}`)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body["code"])
}
