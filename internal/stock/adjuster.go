// Package stock applies signed stock deltas. There is no client-side bound
// check; the server decides whether a delta is acceptable.
package stock

import (
	"context"

	"go.uber.org/zap"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
	"github.com/nkululeko111/inventory-management-system/internal/dashboard"
)

// Adjuster posts stock adjustments and keeps dependent views current.
type Adjuster struct {
	client   *backend.Client
	alerts   *alert.Notifier
	logger   *zap.Logger
	fetchers *dashboard.Fetchers
}

// NewAdjuster creates an Adjuster.
func NewAdjuster(client *backend.Client, alerts *alert.Notifier, logger *zap.Logger, fetchers *dashboard.Fetchers) *Adjuster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adjuster{client: client, alerts: alerts, logger: logger, fetchers: fetchers}
}

// Apply sends the delta and, on success, runs the standard post-mutation
// cascade. Failures surface as a generic danger alert.
func (a *Adjuster) Apply(ctx context.Context, productID, delta int) error {
	if _, err := a.client.AdjustStock(ctx, productID, delta); err != nil {
		a.logger.Error("failed to adjust stock",
			zap.Int("product_id", productID),
			zap.Int("delta", delta),
			zap.Error(err),
		)
		a.alerts.Danger("Failed to adjust stock")
		return err
	}

	a.alerts.Success("Stock adjusted successfully")
	dashboard.Cascade(ctx,
		a.fetchers.RefreshProducts,
		a.fetchers.RefreshMetrics,
		a.fetchers.LoadSaleProducts,
	)
	return nil
}
