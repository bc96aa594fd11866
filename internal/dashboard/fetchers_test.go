package dashboard_test

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
)

func newFetchers(t *testing.T) (*dashboard.Fetchers, *apitest.Server, *alert.Notifier) {
	t.Helper()
	fake := apitest.NewServer()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	logger := zaptest.NewLogger(t)
	client := backend.New(srv.URL, logger)
	t.Cleanup(func() { client.Close() })

	alerts := alert.NewNotifier(10, time.Minute, logger)
	t.Cleanup(alerts.Close)

	f := dashboard.NewFetchers(client, alerts, logger, 0)
	f.SetActions(dashboard.RowActions{
		EditProduct:    func(int) {},
		DeleteProduct:  func(int) {},
		AdjustStock:    func(int) {},
		EditSupplier:   func(int) {},
		DeleteSupplier: func(int) {},
	})
	return f, fake, alerts
}

func TestRefreshProductsRendersRows(t *testing.T) {
	f, fake, _ := newFetchers(t)
	supplier := fake.SeedSupplier(backend.SupplierInput{Name: "Acme"})
	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3, SupplierID: &supplier.ID})
	fake.SeedProduct(backend.ProductInput{Name: "Gadget", Price: 4.5, StockQuantity: 12})

	f.RefreshProducts(context.Background())

	rows := f.Products.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Widget", "$9.99", "3", "Acme"}, rows[0].Cells)
	assert.Equal(t, []string{"2", "Gadget", "$4.50", "12", "No supplier"}, rows[1].Cells)
	require.Len(t, rows[0].Actions, 3)
	assert.Equal(t, "Edit", rows[0].Actions[0].Label)
}

func TestProductRowActionsCarryTypedID(t *testing.T) {
	f, fake, _ := newFetchers(t)
	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3})
	fake.SeedProduct(backend.ProductInput{Name: "Gadget", Price: 4.5, StockQuantity: 12})

	var edited []int
	f.SetActions(dashboard.RowActions{
		EditProduct:    func(id int) { edited = append(edited, id) },
		DeleteProduct:  func(int) {},
		AdjustStock:    func(int) {},
		EditSupplier:   func(int) {},
		DeleteSupplier: func(int) {},
	})
	f.RefreshProducts(context.Background())

	for _, row := range f.Products.Rows() {
		row.Actions[0].Invoke()
	}
	assert.Equal(t, []int{1, 2}, edited, "each row's closure must carry its own ID")
}

func TestRefreshSuppliersRendersNA(t *testing.T) {
	f, fake, _ := newFetchers(t)
	contact := "Jo Smith"
	fake.SeedSupplier(backend.SupplierInput{Name: "Acme", ContactPerson: &contact})

	f.RefreshSuppliers(context.Background())

	rows := f.Suppliers.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "Acme", "Jo Smith", "N/A", "N/A"}, rows[0].Cells)
}

func TestRefreshSalesComputesLineTotals(t *testing.T) {
	f, fake, _ := newFetchers(t)
	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 10})

	srv := httptest.NewServer(fake.Handler())
	defer srv.Close()
	client := backend.New(srv.URL, zaptest.NewLogger(t))
	defer client.Close()
	_, err := client.RecordSale(context.Background(), backend.SaleInput{ProductID: 1, QuantitySold: 2, UnitPrice: 9.99})
	require.NoError(t, err)

	f.RefreshSales(context.Background())

	rows := f.Sales.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Widget", rows[0].Cells[1])
	assert.Equal(t, "2", rows[0].Cells[2])
	assert.Equal(t, "$9.99", rows[0].Cells[3])
	assert.Equal(t, "$19.98", rows[0].Cells[4])
}

func TestRefreshMetrics(t *testing.T) {
	f, fake, _ := newFetchers(t)
	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3})
	fake.SeedProduct(backend.ProductInput{Name: "Gadget", Price: 4.5, StockQuantity: 12})
	fake.SeedProduct(backend.ProductInput{Name: "Gizmo", Price: 1.0, StockQuantity: 0})

	f.RefreshMetrics(context.Background())

	assert.Equal(t, "3", f.TotalProducts.Value())
	assert.Equal(t, "15", f.TotalStock.Value())
	assert.Equal(t, "2", f.LowStock.Value(), "stock below 5 counts as low")
	assert.Equal(t, "0", f.TodaysSales.Value())
}

func TestLoadSaleProductsAttachesMetadata(t *testing.T) {
	f, fake, _ := newFetchers(t)
	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3})

	f.LoadSaleProducts(context.Background())

	options := f.SaleProducts.Options()
	require.Len(t, options, 1)
	assert.Equal(t, "1", options[0].Value)
	assert.Equal(t, "Widget (3 in stock)", options[0].Label)
	assert.Equal(t, "9.99", options[0].Meta["price"])
	assert.Equal(t, "3", options[0].Meta["stock"])
}

func TestFetchFailureSurfacesAlertAndKeepsOldRender(t *testing.T) {
	fake := apitest.NewServer()
	srv := httptest.NewServer(fake.Handler())

	logger := zaptest.NewLogger(t)
	client := backend.New(srv.URL, logger)
	defer client.Close()
	alerts := alert.NewNotifier(10, time.Minute, logger)
	defer alerts.Close()

	f := dashboard.NewFetchers(client, alerts, logger, 0)
	f.SetActions(dashboard.RowActions{
		EditProduct: func(int) {}, DeleteProduct: func(int) {}, AdjustStock: func(int) {},
		EditSupplier: func(int) {}, DeleteSupplier: func(int) {},
	})

	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3})
	f.RefreshProducts(context.Background())
	require.Equal(t, 1, f.Products.Len())

	srv.Close()
	f.RefreshProducts(context.Background())

	assert.Equal(t, 1, f.Products.Len(), "failed refresh leaves the previous render")
	active := alerts.Active()
	require.NotEmpty(t, active)
	assert.Equal(t, alert.Danger, active[0].Level)
	assert.Equal(t, "Failed to load products", active[0].Message)
}
