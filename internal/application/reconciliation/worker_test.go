package reconciliation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/retail-suite/internal/application/reconciliation"
	"github.com/jhoicas/retail-suite/internal/application/sales"
	"github.com/jhoicas/retail-suite/internal/domain"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/pkg/logger"
)

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error               { r.sales[s.ID] = s; return nil }
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error)   { return r.sales[id], nil }
func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }

func (r *fakeSaleRepo) UpdateIntegration(id, status, integrationErr string) error {
	s, ok := r.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.IntegrationStatus = status
	s.IntegrationError = integrationErr
	return nil
}

func (r *fakeSaleRepo) ListFailedIntegration(limit int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sales {
		if s.IntegrationStatus == entity.IntegrationFailed && s.ProductID != nil {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakeGateway responde por producto: error configurado o éxito.
type fakeGateway struct {
	errs  map[string]error
	calls int
}

func (g *fakeGateway) SubtractStock(ctx context.Context, productID string, quantity int) (*sales.StockUpdateResult, error) {
	g.calls++
	if err, ok := g.errs[productID]; ok {
		return nil, err
	}
	return &sales.StockUpdateResult{PreviousStock: 10, NewStock: 10 - quantity}, nil
}

func (g *fakeGateway) GetProduct(ctx context.Context, productID string) (*sales.ProductSnapshot, error) {
	return nil, nil
}

func (g *fakeGateway) SearchProducts(ctx context.Context, query string, limit int) ([]sales.ProductSnapshot, error) {
	return nil, nil
}

func failedSale(id, productID string) *entity.Sale {
	pid := productID
	return &entity.Sale{
		ID:                id,
		ProductID:         &pid,
		Quantity:          2,
		IntegrationStatus: entity.IntegrationFailed,
		IntegrationError:  "unavailable: connection refused",
	}
}

func TestRunOnceReconciliaVentasPendientes(t *testing.T) {
	repo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	repo.sales["s1"] = failedSale("s1", "p1")
	gw := &fakeGateway{}

	worker := reconciliation.NewWorker(repo, gw, time.Minute, 50, logger.Nop())
	worker.RunOnce(context.Background())

	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, entity.IntegrationSucceeded, repo.sales["s1"].IntegrationStatus)
	assert.Empty(t, repo.sales["s1"].IntegrationError)
}

func TestRunOnceDejaPendienteSiSigueInalcanzable(t *testing.T) {
	repo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	repo.sales["s1"] = failedSale("s1", "p1")
	gw := &fakeGateway{errs: map[string]error{
		"p1": &sales.GatewayError{Kind: sales.GatewayUnavailable, Message: "connection refused"},
	}}

	worker := reconciliation.NewWorker(repo, gw, time.Minute, 50, logger.Nop())
	worker.RunOnce(context.Background())

	// sigue fallida: el próximo ciclo la volverá a intentar
	assert.Equal(t, entity.IntegrationFailed, repo.sales["s1"].IntegrationStatus)
}

func TestRunOnceNoReintentaErroresDeAplicacion(t *testing.T) {
	// un rechazo del inventario (ej. stock insuficiente) no se reintenta a
	// ciegas; la venta queda fallida para intervención manual
	repo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	repo.sales["s1"] = failedSale("s1", "p1")
	repo.sales["s2"] = failedSale("s2", "p2")
	gw := &fakeGateway{errs: map[string]error{
		"p1": &sales.GatewayError{Kind: sales.GatewayApplication, Message: "Insufficient stock"},
	}}

	worker := reconciliation.NewWorker(repo, gw, time.Minute, 50, logger.Nop())
	worker.RunOnce(context.Background())

	assert.Equal(t, entity.IntegrationFailed, repo.sales["s1"].IntegrationStatus)
	assert.Equal(t, entity.IntegrationSucceeded, repo.sales["s2"].IntegrationStatus)
}

func TestRunOnceIgnoraVentasSinProducto(t *testing.T) {
	repo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	repo.sales["s1"] = &entity.Sale{ID: "s1", IntegrationStatus: entity.IntegrationFailed}
	gw := &fakeGateway{}

	worker := reconciliation.NewWorker(repo, gw, time.Minute, 50, logger.Nop())
	worker.RunOnce(context.Background())

	assert.Equal(t, 0, gw.calls)
}

func TestStartSeDetieneAlCancelarElContexto(t *testing.T) {
	repo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	worker := reconciliation.NewWorker(repo, &fakeGateway{}, 10*time.Millisecond, 50, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.FailNow(t, "el worker no se detuvo tras cancelar el contexto")
	}
}
