package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/retail-suite/internal/application/sales"
	"github.com/jhoicas/retail-suite/pkg/logger"
)

var _ sales.InventoryGateway = (*Client)(nil)

// Client implementa el gateway HTTP hacia el servicio de inventario.
// No hay transacción distribuida: cada llamada es independiente, va acotada
// por timeout y sus fallos se clasifican para que el caller decida
// (caída de conexión / error de aplicación 4xx / transitorio 5xx).
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     *logger.Logger
}

// NewClient construye el cliente. baseURL sin slash final, ej. http://inventory:8080.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http: &http.Client{
			// El timeout va por contexto en cada request, no en el cliente.
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		log: log,
	}
}

type updateStockBody struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"`
}

type updateStockReply struct {
	Success       bool   `json:"success"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Error         string `json:"error"`
}

// SubtractStock solicita el descuento de stock de un producto.
// Un timeout se trata igual que un fallo duro de conexión.
func (c *Client) SubtractStock(ctx context.Context, productID string, quantity int) (*sales.StockUpdateResult, error) {
	body, _ := json.Marshal(updateStockBody{Quantity: quantity, Operation: "subtract"})

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/products/%s/update-stock", c.baseURL, url.PathEscape(productID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &sales.GatewayError{Kind: sales.GatewayUnavailable, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("product_id", productID).Msg("inventario inalcanzable")
		return nil, &sales.GatewayError{Kind: sales.GatewayUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	var reply updateStockReply
	if decodeErr := json.NewDecoder(resp.Body).Decode(&reply); decodeErr != nil && resp.StatusCode < 400 {
		return nil, &sales.GatewayError{Kind: sales.GatewayTransient, Message: "respuesta ilegible del inventario"}
	}

	if err := classifyStatus(resp.StatusCode, reply.Error); err != nil {
		return nil, err
	}
	return &sales.StockUpdateResult{PreviousStock: reply.PreviousStock, NewStock: reply.NewStock}, nil
}

// GetProduct obtiene el snapshot canónico de un producto del inventario.
func (c *Client) GetProduct(ctx context.Context, productID string) (*sales.ProductSnapshot, error) {
	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(productID))
	var snapshot productReply
	if err := c.getJSON(ctx, endpoint, &snapshot); err != nil {
		return nil, err
	}
	out := snapshot.toSnapshot()
	return &out, nil
}

// SearchProducts lista candidatos para autocompletar en captura de ventas.
func (c *Client) SearchProducts(ctx context.Context, query string, limit int) ([]sales.ProductSnapshot, error) {
	endpoint := fmt.Sprintf("%s/api/products/search?query=%s&limit=%s",
		c.baseURL, url.QueryEscape(query), strconv.Itoa(limit))
	var reply struct {
		Products []productReply `json:"products"`
	}
	if err := c.getJSON(ctx, endpoint, &reply); err != nil {
		return nil, err
	}
	out := make([]sales.ProductSnapshot, 0, len(reply.Products))
	for _, p := range reply.Products {
		out = append(out, p.toSnapshot())
	}
	return out, nil
}

type productReply struct {
	ID            string `json:"id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	MinStockLevel int    `json:"min_stock_level"`
	IsActive      bool   `json:"is_active"`
}

func (p productReply) toSnapshot() sales.ProductSnapshot {
	return sales.ProductSnapshot{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		IsActive:      p.IsActive,
	}
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &sales.GatewayError{Kind: sales.GatewayUnavailable, Message: err.Error()}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &sales.GatewayError{Kind: sales.GatewayUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return classifyStatus(resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &sales.GatewayError{Kind: sales.GatewayTransient, Message: "respuesta ilegible del inventario"}
	}
	return nil
}

// classifyStatus mapea el código HTTP al tipo de fallo que el caller maneja:
// 4xx error de aplicación con razón específica; 5xx transitorio (elegible
// para reconciliación posterior).
func classifyStatus(status int, message string) error {
	switch {
	case status >= 500:
		if message == "" {
			message = "error interno del servicio de inventario"
		}
		return &sales.GatewayError{Kind: sales.GatewayTransient, Message: message}
	case status >= 400:
		if message == "" {
			message = fmt.Sprintf("rechazado por inventario (HTTP %d)", status)
		}
		return &sales.GatewayError{Kind: sales.GatewayApplication, Message: message}
	}
	return nil
}
