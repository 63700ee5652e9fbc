package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/retail-suite/internal/application/sales"
	"github.com/jhoicas/retail-suite/internal/infrastructure/gateway"
	"github.com/jhoicas/retail-suite/pkg/logger"
)

func newTestClient(baseURL string) *gateway.Client {
	return gateway.NewClient(baseURL, 2*time.Second, logger.Nop())
}

func gatewayErr(t *testing.T, err error) *sales.GatewayError {
	t.Helper()
	var gwErr *sales.GatewayError
	require.ErrorAs(t, err, &gwErr)
	return gwErr
}

func TestSubtractStockExitoso(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products/p1/update-stock", r.URL.Path)

		var body struct {
			Quantity  int    `json:"quantity"`
			Operation string `json:"operation"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 3, body.Quantity)
		assert.Equal(t, "subtract", body.Operation)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "previous_stock": 10, "new_stock": 7,
		})
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).SubtractStock(context.Background(), "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 10, result.PreviousStock)
	assert.Equal(t, 7, result.NewStock)
}

func TestSubtractStockConexionCaidaEsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // puerto que ya no escucha

	_, err := newTestClient(server.URL).SubtractStock(context.Background(), "p1", 3)
	gwErr := gatewayErr(t, err)
	assert.Equal(t, sales.GatewayUnavailable, gwErr.Kind)
	assert.True(t, gwErr.Retryable())
}

func TestSubtractStockRechazoDeAplicacionConservaLaRazon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Insufficient stock"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SubtractStock(context.Background(), "p1", 99)
	gwErr := gatewayErr(t, err)
	assert.Equal(t, sales.GatewayApplication, gwErr.Kind)
	assert.Equal(t, "Insufficient stock", gwErr.Message)
	assert.False(t, gwErr.Retryable())
}

func TestSubtractStockErrorInternoEsTransitorio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).SubtractStock(context.Background(), "p1", 1)
	gwErr := gatewayErr(t, err)
	assert.Equal(t, sales.GatewayTransient, gwErr.Kind)
	assert.True(t, gwErr.Retryable())
}

func TestSubtractStockTimeoutEsUnavailable(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	client := gateway.NewClient(server.URL, 50*time.Millisecond, logger.Nop())
	_, err := client.SubtractStock(context.Background(), "p1", 1)
	gwErr := gatewayErr(t, err)
	assert.Equal(t, sales.GatewayUnavailable, gwErr.Kind)
}

func TestGetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/p1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "p1", "sku": "SKU-1", "name": "Teclado",
			"stock_quantity": 12, "min_stock_level": 3, "is_active": true,
		})
	}))
	defer server.Close()

	snapshot, err := newTestClient(server.URL).GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", snapshot.SKU)
	assert.Equal(t, 12, snapshot.StockQuantity)
	assert.True(t, snapshot.IsActive)
}

func TestSearchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tec", r.URL.Query().Get("query"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"products": []map[string]any{
				{"id": "p1", "name": "Teclado", "stock_quantity": 5},
				{"id": "p2", "name": "Teclado inalámbrico", "stock_quantity": 0},
			},
		})
	}))
	defer server.Close()

	out, err := newTestClient(server.URL).SearchProducts(context.Background(), "tec", 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "p1", out[0].ID)
}

func TestGetProductInexistenteEsErrorDeAplicacion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetProduct(context.Background(), "nope")
	gwErr := gatewayErr(t, err)
	assert.Equal(t, sales.GatewayApplication, gwErr.Kind)
	assert.False(t, gwErr.Retryable())
}
