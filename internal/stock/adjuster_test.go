package stock_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/apitest"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
	"github.com/nkululeko111/inventory-management-system/internal/dashboard"
	"github.com/nkululeko111/inventory-management-system/internal/stock"
)

func newAdjuster(t *testing.T) (*stock.Adjuster, *apitest.Server, *dashboard.Fetchers, *alert.Notifier) {
	t.Helper()
	fake := apitest.NewServer()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	logger := zaptest.NewLogger(t)
	client := backend.New(srv.URL, logger)
	t.Cleanup(func() { client.Close() })

	alerts := alert.NewNotifier(10, time.Minute, logger)
	t.Cleanup(alerts.Close)

	fetchers := dashboard.NewFetchers(client, alerts, logger, 0)
	fetchers.SetActions(dashboard.RowActions{
		EditProduct: func(int) {}, DeleteProduct: func(int) {}, AdjustStock: func(int) {},
		EditSupplier: func(int) {}, DeleteSupplier: func(int) {},
	})
	return stock.NewAdjuster(client, alerts, logger, fetchers), fake, fetchers, alerts
}

func TestApplyPositiveAndNegativeDelta(t *testing.T) {
	adjuster, fake, fetchers, _ := newAdjuster(t)
	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3})
	ctx := context.Background()

	require.NoError(t, adjuster.Apply(ctx, 1, 5))
	p, _ := fake.Product(1)
	assert.Equal(t, 8, p.StockQuantity)

	require.NoError(t, adjuster.Apply(ctx, 1, -2))
	p, _ = fake.Product(1)
	assert.Equal(t, 6, p.StockQuantity)

	assert.Eventually(t, func() bool {
		rows := fetchers.Products.Rows()
		return len(rows) == 1 && rows[0].Cells[3] == "6"
	}, time.Second, 10*time.Millisecond, "product table refreshes after the adjustment")
}

func TestApplyRejectedByServer(t *testing.T) {
	adjuster, fake, _, alerts := newAdjuster(t)
	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3})

	// The client sends any delta; bound checking is the server's call.
	err := adjuster.Apply(context.Background(), 1, -10)
	require.Error(t, err)

	p, _ := fake.Product(1)
	assert.Equal(t, 3, p.StockQuantity, "rejected delta leaves stock untouched")

	active := alerts.Active()
	require.NotEmpty(t, active)
	assert.Equal(t, alert.Danger, active[len(active)-1].Level)
	assert.Equal(t, "Failed to adjust stock", active[len(active)-1].Message)
}
