package reconciliation

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/retail-suite/internal/application/sales"
	"github.com/jhoicas/retail-suite/internal/domain/entity"
	"github.com/jhoicas/retail-suite/internal/domain/repository"
	"github.com/jhoicas/retail-suite/pkg/logger"
)

// Worker reintenta fuera de banda los descuentos de inventario que quedaron
// como advertencia (integration_status = failed) al crear ventas. Es el
// proceso de reconciliación del diseño best-effort: la venta nunca se pierde,
// el stock se corrige después.
//
// El reintento es at-least-once: un descuento aplicado cuya respuesta se
// perdió puede reaplicarse; se acepta a cambio de no perder ventas.
type Worker struct {
	saleRepo repository.SaleRepository
	gateway  sales.InventoryGateway
	interval time.Duration
	batch    int
	log      *logger.Logger
}

// NewWorker construye el reconciliador.
func NewWorker(saleRepo repository.SaleRepository, gateway sales.InventoryGateway, interval time.Duration, batch int, log *logger.Logger) *Worker {
	if batch <= 0 {
		batch = 50
	}
	return &Worker{saleRepo: saleRepo, gateway: gateway, interval: interval, batch: batch, log: log}
}

// Start corre el bucle hasta que el contexto se cancele. Llamar en goroutine.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Msg("reconciliador de integraciones iniciado")
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("reconciliador detenido")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce procesa un lote de ventas con integración fallida.
func (w *Worker) RunOnce(ctx context.Context) {
	pending, err := w.saleRepo.ListFailedIntegration(w.batch)
	if err != nil {
		w.log.Error().Err(err).Msg("no se pudo listar integraciones fallidas")
		return
	}
	if len(pending) == 0 {
		return
	}

	var recovered int
	for _, sale := range pending {
		if sale.ProductID == nil {
			continue
		}
		result, err := w.gateway.SubtractStock(ctx, *sale.ProductID, sale.Quantity)
		if err != nil {
			var gwErr *sales.GatewayError
			if errors.As(err, &gwErr) && !gwErr.Retryable() {
				// Error de aplicación (ej. stock insuficiente): seguirá fallido,
				// requiere intervención manual; solo se deja traza.
				w.log.Warn().
					Str("sale_id", sale.ID).
					Str("reason", gwErr.Message).
					Msg("reconciliación rechazada por inventario")
				continue
			}
			w.log.Debug().Err(err).Str("sale_id", sale.ID).Msg("inventario aún inalcanzable")
			continue
		}
		if err := w.saleRepo.UpdateIntegration(sale.ID, entity.IntegrationSucceeded, ""); err != nil {
			w.log.Error().Err(err).Str("sale_id", sale.ID).Msg("no se pudo marcar la reconciliación")
			continue
		}
		recovered++
		w.log.Info().
			Str("sale_id", sale.ID).
			Str("product_id", *sale.ProductID).
			Int("new_stock", result.NewStock).
			Msg("integración reconciliada")
	}
	if recovered > 0 {
		w.log.Info().Int("recovered", recovered).Int("pending", len(pending)-recovered).Msg("ciclo de reconciliación")
	}
}
