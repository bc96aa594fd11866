package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nkululeko111/inventory-management-system/internal/apitest"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
)

func newClient(t *testing.T) (*backend.Client, *apitest.Server) {
	t.Helper()
	fake := apitest.NewServer()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	client := backend.New(srv.URL, zaptest.NewLogger(t))
	t.Cleanup(func() { client.Close() })
	return client, fake
}

func TestProductRoundTrip(t *testing.T) {
	client, _ := newClient(t)
	ctx := context.Background()

	created, err := client.CreateProduct(ctx, backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 3})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Widget", created.Name)

	got, err := client.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, 3, got.StockQuantity)

	updated, err := client.UpdateProduct(ctx, created.ID, backend.ProductInput{Name: "Widget Pro", Price: 12.50, StockQuantity: 8})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.Name)

	products, err := client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	require.NoError(t, client.DeleteProduct(ctx, created.ID))
	products, err = client.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRecordSaleSendsJSONHeaders(t *testing.T) {
	var gotContentType, gotAccept string
	var gotBody backend.SaleInput
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"productId":1,"quantitySold":2,"unitPrice":9.99,"saleDate":"2026-08-28T10:00:00Z"}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL, zaptest.NewLogger(t))
	defer client.Close()

	sale, err := client.RecordSale(context.Background(), backend.SaleInput{ProductID: 1, QuantitySold: 2, UnitPrice: 9.99})
	require.NoError(t, err)
	assert.Contains(t, gotContentType, "application/json")
	assert.Contains(t, gotAccept, "application/json")
	assert.Equal(t, backend.SaleInput{ProductID: 1, QuantitySold: 2, UnitPrice: 9.99}, gotBody)
	assert.Equal(t, 2, sale.QuantitySold)
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Insufficient stock: only 3 units available"}`))
	}))
	defer srv.Close()

	client := backend.New(srv.URL, zaptest.NewLogger(t))
	defer client.Close()

	_, err := client.RecordSale(context.Background(), backend.SaleInput{ProductID: 1, QuantitySold: 5, UnitPrice: 9.99})
	require.Error(t, err)

	msg, ok := backend.ServerMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "Insufficient stock: only 3 units available", msg)
}

func TestStatusErrorWithUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	client := backend.New(srv.URL, zaptest.NewLogger(t))
	defer client.Close()

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)

	_, ok := backend.ServerMessage(err)
	assert.False(t, ok, "undecodable body degrades to no message")
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the port refuses connections

	client := backend.New(srv.URL, zaptest.NewLogger(t))
	defer client.Close()

	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnreachable)
}

func TestSalesReportDateFilter(t *testing.T) {
	client, fake := newClient(t)
	ctx := context.Background()

	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 9.99, StockQuantity: 10})
	_, err := client.RecordSale(ctx, backend.SaleInput{ProductID: 1, QuantitySold: 2, UnitPrice: 9.99})
	require.NoError(t, err)

	today := timeNowDate()
	report, err := client.GetSalesReport(ctx, today, "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalSales)
	assert.Equal(t, 2, report.TotalUnitsSold)
	assert.InDelta(t, 19.98, report.TotalRevenue, 0.001)
	require.Len(t, report.TopProducts, 1)
	assert.Equal(t, "Widget", report.TopProducts[0].ProductName)

	// A window entirely in the future matches nothing.
	report, err = client.GetSalesReport(ctx, "2099-01-01", "")
	require.NoError(t, err)
	assert.Zero(t, report.TotalSales)
}

func timeNowDate() string {
	return time.Now().Format("2006-01-02")
}

func TestInventoryReport(t *testing.T) {
	client, fake := newClient(t)

	fake.SeedProduct(backend.ProductInput{Name: "Widget", Price: 10, StockQuantity: 3})
	fake.SeedProduct(backend.ProductInput{Name: "Gadget", Price: 2, StockQuantity: 0})
	fake.SeedProduct(backend.ProductInput{Name: "Gizmo", Price: 1, StockQuantity: 50})

	report, err := client.GetInventoryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalProducts)
	assert.InDelta(t, 80.0, report.TotalValue, 0.001)
	assert.Equal(t, 2, report.LowStockItems)
	assert.Equal(t, 1, report.OutOfStockItems)
}
