package sale_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/apitest"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
	"github.com/nkululeko111/inventory-management-system/internal/dashboard"
	"github.com/nkululeko111/inventory-management-system/internal/sale"
)

type env struct {
	fake     *apitest.Server
	url      string
	alerts   *alert.Notifier
	fetchers *dashboard.Fetchers
	flow     *sale.Workflow
	requests *atomic.Int64
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fake := apitest.NewServer()
	requests := &atomic.Int64{}
	handler := fake.Handler()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler.ServeHTTP(w, r)
	}))
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

	flow := sale.NewWorkflow(client, alerts, logger, fetchers)
	return &env{fake: fake, url: srv.URL, alerts: alerts, fetchers: fetchers, flow: flow, requests: requests}
}

// seedWidget loads the canonical test product and populates the dropdown:
// id 1, "Widget", $9.99, 3 in stock.
func (e *env) seedWidget(t *testing.T) {
	t.Helper()
	e.fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3})
	e.fetchers.LoadSaleProducts(context.Background())
}

func lastAlert(t *testing.T, alerts *alert.Notifier) alert.Alert {
	t.Helper()
	active := alerts.Active()
	require.NotEmpty(t, active)
	return active[len(active)-1]
}

func TestPriceAutoPopulatesOnSelection(t *testing.T) {
	e := newEnv(t)
	e.seedWidget(t)

	e.flow.Products.Select("1")
	e.flow.ProductChanged()

	assert.Equal(t, "9.99", e.flow.Price.Value(), "unit price comes from the cached dropdown metadata")

	e.flow.Products.Select("")
	e.flow.ProductChanged()
	assert.Empty(t, e.flow.Price.Value())
	assert.Equal(t, "$0.00", e.flow.Total.Value())
}

func TestTotalRecomputesOnEveryChange(t *testing.T) {
	e := newEnv(t)
	e.seedWidget(t)

	e.flow.Products.Select("1")
	e.flow.ProductChanged()

	e.flow.Quantity.SetValue("2")
	e.flow.RecomputeTotal()
	assert.Equal(t, "$19.98", e.flow.Total.Value())

	e.flow.Quantity.SetValue("3")
	e.flow.RecomputeTotal()
	assert.Equal(t, "$29.97", e.flow.Total.Value())

	e.flow.Quantity.SetValue("x")
	e.flow.RecomputeTotal()
	assert.Equal(t, "$0.00", e.flow.Total.Value(), "unparseable quantity counts as zero, no validation yet")
}

func TestSubmitValidationOrderAndShortCircuit(t *testing.T) {
	e := newEnv(t)
	e.seedWidget(t)
	ctx := context.Background()

	// (a) no product selected
	before := e.requests.Load()
	assert.ErrorIs(t, e.flow.Submit(ctx), sale.ErrValidation)
	assert.Equal(t, "Please select a product", lastAlert(t, e.alerts).Message)

	// (b) quantity not a positive integer
	e.flow.Products.Select("1")
	e.flow.ProductChanged()
	e.flow.Quantity.SetValue("0")
	assert.ErrorIs(t, e.flow.Submit(ctx), sale.ErrValidation)
	assert.Equal(t, "Please enter valid quantity (minimum 1)", lastAlert(t, e.alerts).Message)

	e.flow.Quantity.SetValue("-2")
	assert.ErrorIs(t, e.flow.Submit(ctx), sale.ErrValidation)

	// (c) quantity above the locally known stock
	e.flow.Quantity.SetValue("5")
	assert.ErrorIs(t, e.flow.Submit(ctx), sale.ErrValidation)
	assert.Equal(t, "Only 3 units available", lastAlert(t, e.alerts).Message)

	// (d) price not positive
	e.flow.Quantity.SetValue("2")
	e.flow.Price.SetValue("-1")
	assert.ErrorIs(t, e.flow.Submit(ctx), sale.ErrValidation)
	assert.Equal(t, "Please enter valid price", lastAlert(t, e.alerts).Message)

	assert.Equal(t, before, e.requests.Load(), "no validation failure may reach the network")
	assert.Zero(t, e.fake.SaleCount())
}

func TestSubmitHappyPath(t *testing.T) {
	e := newEnv(t)
	e.seedWidget(t)
	ctx := context.Background()

	e.flow.Modal.Show()
	e.flow.Products.Select("1")
	e.flow.ProductChanged()
	e.flow.Quantity.SetValue("2")
	e.flow.RecomputeTotal()
	assert.Equal(t, "$19.98", e.flow.Total.Value())

	require.NoError(t, e.flow.Submit(ctx))

	assert.False(t, e.flow.Modal.Visible(), "modal hides on success")
	assert.False(t, e.flow.Confirm.Busy(), "button restored after success")
	assert.Equal(t, 1, e.fake.SaleCount())

	p, ok := e.fake.Product(1)
	require.True(t, ok)
	assert.Equal(t, 1, p.StockQuantity, "server decremented stock by the quantity sold")

	assert.Eventually(t, func() bool {
		return e.fetchers.Sales.Len() == 1 &&
			e.fetchers.Products.Len() == 1 &&
			e.fetchers.TotalProducts.Value() == "1" &&
			len(e.fetchers.SaleProducts.Options()) == 1
	}, time.Second, 10*time.Millisecond, "sales, products, metrics, and dropdown all refresh")

	// The refreshed dropdown carries the new stock figure.
	assert.Eventually(t, func() bool {
		options := e.fetchers.SaleProducts.Options()
		return len(options) == 1 && options[0].Meta["stock"] == "1"
	}, time.Second, 10*time.Millisecond)
}

func TestSubmitSurfacesServerMessage(t *testing.T) {
	e := newEnv(t)
	e.seedWidget(t)
	ctx := context.Background()

	// The dropdown still thinks 3 are in stock, but another actor drains it
	// to 1 behind our back.
	drain := backend.New(e.url, zaptest.NewLogger(t))
	defer drain.Close()
	_, err := drain.RecordSale(ctx, backend.SaleInput{ProductID: 1, QuantitySold: 2, UnitPrice: 9.99})
	require.NoError(t, err)

	e.flow.Modal.Show()
	e.flow.Products.Select("1")
	e.flow.ProductChanged()
	e.flow.Quantity.SetValue("3")

	serr := e.flow.Submit(ctx)
	require.Error(t, serr)

	assert.True(t, e.flow.Modal.Visible(), "modal stays open on failure")
	assert.False(t, e.flow.Confirm.Busy(), "button restored after failure")
	a := lastAlert(t, e.alerts)
	assert.Equal(t, alert.Danger, a.Level)
	assert.Equal(t, "Insufficient stock: only 1 units available", a.Message)
}

func TestSubmitBusyGuardRefusesDuplicate(t *testing.T) {
	e := newEnv(t)
	e.seedWidget(t)

	e.flow.Products.Select("1")
	e.flow.ProductChanged()
	e.flow.Quantity.SetValue("1")

	require.True(t, e.flow.Confirm.Begin(), "simulate an in-flight submission")
	defer e.flow.Confirm.End()

	err := e.flow.Submit(context.Background())
	assert.ErrorIs(t, err, sale.ErrSubmitInFlight)
	assert.Zero(t, e.fake.SaleCount())
}
