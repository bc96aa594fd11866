// Package backend is the typed client for the inventory REST API. It is the
// only place in the module that talks to the network; every controller goes
// through it.
package backend

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"resty.dev/v3"
)

// Client wraps a resty client pointed at the inventory API base URL
// (for example http://localhost:4567/api).
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New creates a Client for the given base URL.
func New(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	return &Client{http: c, logger: logger}
}

// Close releases the underlying transport resources.
func (c *Client) Close() {
	c.http.Close()
}

// errorBody is the JSON error envelope the server uses on non-2xx statuses.
type errorBody struct {
	Message string `json:"message"`
}

// execute runs the request and folds the outcome into the client error
// taxonomy: transport failures wrap ErrUnreachable, non-2xx statuses become
// a *StatusError carrying the decoded server message when present.
func (c *Client) execute(req *resty.Request, method, path string) error {
	var body errorBody
	res, err := req.SetError(&body).Execute(method, path)
	if err != nil {
		c.logger.Warn("request failed before a response arrived",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrUnreachable, err)
	}
	if res.IsSuccess() {
		return nil
	}
	c.logger.Warn("request rejected",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode()),
		zap.String("server_message", body.Message),
	)
	return &StatusError{StatusCode: res.StatusCode(), Message: body.Message}
}

// ListProducts fetches all products.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	req := c.http.R().SetContext(ctx).SetResult(&products)
	if err := c.execute(req, http.MethodGet, "/products"); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product by ID.
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	req := c.http.R().SetContext(ctx).SetResult(&product)
	if err := c.execute(req, http.MethodGet, fmt.Sprintf("/products/%d", id)); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a new product.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var product Product
	req := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		SetResult(&product)
	if err := c.execute(req, http.MethodPost, "/products"); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces the product with the given ID.
func (c *Client) UpdateProduct(ctx context.Context, id int, in ProductInput) (*Product, error) {
	var product Product
	req := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		SetResult(&product)
	if err := c.execute(req, http.MethodPut, fmt.Sprintf("/products/%d", id)); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	req := c.http.R().SetContext(ctx)
	return c.execute(req, http.MethodDelete, fmt.Sprintf("/products/%d", id))
}

// AdjustStock applies a signed delta to a product's stock quantity. Bound
// checking is the server's job; the client forwards the delta as-is.
func (c *Client) AdjustStock(ctx context.Context, productID, delta int) (*Product, error) {
	var product Product
	req := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(StockAdjustment{Delta: delta}).
		SetResult(&product)
	if err := c.execute(req, http.MethodPost, fmt.Sprintf("/products/%d/stock/adjust", productID)); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListSuppliers fetches all suppliers.
func (c *Client) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	req := c.http.R().SetContext(ctx).SetResult(&suppliers)
	if err := c.execute(req, http.MethodGet, "/suppliers"); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// GetSupplier fetches one supplier by ID.
func (c *Client) GetSupplier(ctx context.Context, id int) (*Supplier, error) {
	var supplier Supplier
	req := c.http.R().SetContext(ctx).SetResult(&supplier)
	if err := c.execute(req, http.MethodGet, fmt.Sprintf("/suppliers/%d", id)); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// CreateSupplier adds a new supplier.
func (c *Client) CreateSupplier(ctx context.Context, in SupplierInput) (*Supplier, error) {
	var supplier Supplier
	req := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		SetResult(&supplier)
	if err := c.execute(req, http.MethodPost, "/suppliers"); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// UpdateSupplier replaces the supplier with the given ID.
func (c *Client) UpdateSupplier(ctx context.Context, id int, in SupplierInput) (*Supplier, error) {
	var supplier Supplier
	req := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		SetResult(&supplier)
	if err := c.execute(req, http.MethodPut, fmt.Sprintf("/suppliers/%d", id)); err != nil {
		return nil, err
	}
	return &supplier, nil
}

// DeleteSupplier removes a supplier. Products referencing it keep their rows
// but lose the supplier reference (server behavior).
func (c *Client) DeleteSupplier(ctx context.Context, id int) error {
	req := c.http.R().SetContext(ctx)
	return c.execute(req, http.MethodDelete, fmt.Sprintf("/suppliers/%d", id))
}

// ListSales fetches all recorded sales.
func (c *Client) ListSales(ctx context.Context) ([]Sale, error) {
	var sales []Sale
	req := c.http.R().SetContext(ctx).SetResult(&sales)
	if err := c.execute(req, http.MethodGet, "/sales"); err != nil {
		return nil, err
	}
	return sales, nil
}

// RecordSale submits a sale transaction. The response body is decoded even
// on error statuses so the server's rejection message (for example an
// insufficient-stock explanation) reaches the caller via StatusError.
func (c *Client) RecordSale(ctx context.Context, in SaleInput) (*Sale, error) {
	var sale Sale
	req := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(in).
		SetResult(&sale)
	if err := c.execute(req, http.MethodPost, "/sales"); err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSalesReport fetches the sales aggregate, optionally bounded by
// from/to dates in YYYY-MM-DD form. Empty strings leave the bound open.
func (c *Client) GetSalesReport(ctx context.Context, from, to string) (*SalesReport, error) {
	var report SalesReport
	req := c.http.R().SetContext(ctx).SetResult(&report)
	if from != "" {
		req.SetQueryParam("from", from)
	}
	if to != "" {
		req.SetQueryParam("to", to)
	}
	if err := c.execute(req, http.MethodGet, "/reports/sales"); err != nil {
		return nil, err
	}
	return &report, nil
}

// GetInventoryReport fetches the stock-position summary.
func (c *Client) GetInventoryReport(ctx context.Context) (*InventoryReport, error) {
	var report InventoryReport
	req := c.http.R().SetContext(ctx).SetResult(&report)
	if err := c.execute(req, http.MethodGet, "/reports/inventory"); err != nil {
		return nil, err
	}
	return &report, nil
}
