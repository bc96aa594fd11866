// Package dashboard holds the read side of the UI: fetchers that pull one
// resource each from the inventory API and overwrite the widget they own.
// Fetchers never retry; a failed fetch is logged, surfaced as a danger
// alert, and leaves the previous render in place.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
	"github.com/nkululeko111/inventory-management-system/internal/view"
)

// LowStockThreshold is the stock quantity below which a product counts as
// low stock.
const LowStockThreshold = 5

// RowActions are the typed callbacks bound onto rendered rows. They are set
// once during bootstrap, before the first render.
type RowActions struct {
	EditProduct    func(id int)
	DeleteProduct  func(id int)
	AdjustStock    func(id int)
	EditSupplier   func(id int)
	DeleteSupplier func(id int)
}

// Fetchers owns every read-only view of the dashboard.
type Fetchers struct {
	client  *backend.Client
	alerts  *alert.Notifier
	logger  *zap.Logger
	actions RowActions

	// Stock below this counts as low; defaults to LowStockThreshold.
	threshold int

	Products  *view.Table
	Suppliers *view.Table
	Sales     *view.Table

	SupplierDropdown *view.Dropdown
	SaleProducts     *view.Dropdown

	TotalProducts *view.Metric
	TotalStock    *view.Metric
	LowStock      *view.Metric
	TodaysSales   *view.Metric
}

// NewFetchers builds the fetcher set with freshly created widgets.
func NewFetchers(client *backend.Client, alerts *alert.Notifier, logger *zap.Logger, threshold int) *Fetchers {
	if logger == nil {
		logger = zap.NewNop()
	}
	if threshold <= 0 {
		threshold = LowStockThreshold
	}
	return &Fetchers{
		client:    client,
		alerts:    alerts,
		logger:    logger,
		threshold: threshold,

		Products:  view.NewTable("ID", "Name", "Price", "Stock", "Supplier", "Actions"),
		Suppliers: view.NewTable("ID", "Name", "Contact Person", "Email", "Phone", "Actions"),
		Sales:     view.NewTable("ID", "Product", "Quantity", "Unit Price", "Total", "Date"),

		SupplierDropdown: view.NewDropdown("Select Supplier"),
		SaleProducts:     view.NewDropdown("Select Product"),

		TotalProducts: &view.Metric{},
		TotalStock:    &view.Metric{},
		LowStock:      &view.Metric{},
		TodaysSales:   &view.Metric{},
	}
}

// SetActions installs the row callbacks. Must be called before rendering
// rows that carry actions.
func (f *Fetchers) SetActions(actions RowActions) {
	f.actions = actions
}

// FormatPrice renders a price with a currency sign and exactly two
// decimals.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// RefreshProducts reloads the product table.
func (f *Fetchers) RefreshProducts(ctx context.Context) {
	products, err := f.client.ListProducts(ctx)
	if err != nil {
		f.logger.Error("failed to fetch products", zap.Error(err))
		f.alerts.Danger("Failed to load products")
		return
	}

	rows := make([]view.Row, 0, len(products))
	for _, p := range products {
		supplier := "No supplier"
		if p.SupplierName != nil && *p.SupplierName != "" {
			supplier = *p.SupplierName
		}
		id := p.ID
		rows = append(rows, view.Row{
			Cells: []string{
				strconv.Itoa(p.ID),
				p.Name,
				FormatPrice(p.Price),
				strconv.Itoa(p.StockQuantity),
				supplier,
			},
			Actions: []view.Action{
				{Label: "Edit", Invoke: func() { f.actions.EditProduct(id) }},
				{Label: "Delete", Invoke: func() { f.actions.DeleteProduct(id) }},
				{Label: "Adjust Stock", Invoke: func() { f.actions.AdjustStock(id) }},
			},
		})
	}
	f.Products.SetRows(rows)
}

// RefreshSuppliers reloads the supplier table. Missing optional fields
// render as "N/A".
func (f *Fetchers) RefreshSuppliers(ctx context.Context) {
	suppliers, err := f.client.ListSuppliers(ctx)
	if err != nil {
		f.logger.Error("failed to fetch suppliers", zap.Error(err))
		f.alerts.Danger("Failed to load suppliers")
		return
	}

	rows := make([]view.Row, 0, len(suppliers))
	for _, s := range suppliers {
		id := s.ID
		rows = append(rows, view.Row{
			Cells: []string{
				strconv.Itoa(s.ID),
				s.Name,
				orNA(s.ContactPerson),
				orNA(s.Email),
				orNA(s.Phone),
			},
			Actions: []view.Action{
				{Label: "Edit", Invoke: func() { f.actions.EditSupplier(id) }},
				{Label: "Delete", Invoke: func() { f.actions.DeleteSupplier(id) }},
			},
		})
	}
	f.Suppliers.SetRows(rows)
}

// RefreshSales reloads the sales table. Line totals are computed here, not
// taken from the server.
func (f *Fetchers) RefreshSales(ctx context.Context) {
	sales, err := f.client.ListSales(ctx)
	if err != nil {
		f.logger.Error("failed to fetch sales", zap.Error(err))
		f.alerts.Danger("Failed to load sales data")
		return
	}

	rows := make([]view.Row, 0, len(sales))
	for _, s := range sales {
		product := fmt.Sprintf("Product ID: %d", s.ProductID)
		if s.ProductName != nil && *s.ProductName != "" {
			product = *s.ProductName
		}
		rows = append(rows, view.Row{
			Cells: []string{
				strconv.Itoa(s.ID),
				product,
				strconv.Itoa(s.QuantitySold),
				FormatPrice(s.UnitPrice),
				FormatPrice(s.Total()),
				s.SaleDate.Local().Format("2006-01-02 15:04:05"),
			},
		})
	}
	f.Sales.SetRows(rows)
}

// RefreshMetrics recomputes the dashboard cards. The product-derived
// metrics and the same-day sales aggregate come from two independent
// fetches; failure of one does not block the other. A failed report fetch
// is logged only, matching the quieter handling of that corner.
func (f *Fetchers) RefreshMetrics(ctx context.Context) {
	products, err := f.client.ListProducts(ctx)
	if err != nil {
		f.logger.Error("failed to fetch dashboard metrics", zap.Error(err))
		f.alerts.Danger("Failed to load dashboard data")
	} else {
		totalStock := 0
		lowStock := 0
		for _, p := range products {
			totalStock += p.StockQuantity
			if p.StockQuantity < f.threshold {
				lowStock++
			}
		}
		f.TotalProducts.Set(strconv.Itoa(len(products)))
		f.TotalStock.Set(strconv.Itoa(totalStock))
		f.LowStock.Set(strconv.Itoa(lowStock))
	}

	today := time.Now().Format("2006-01-02")
	report, err := f.client.GetSalesReport(ctx, today, "")
	if err != nil {
		f.logger.Error("failed to fetch today's sales", zap.Error(err))
		return
	}
	f.TodaysSales.Set(strconv.Itoa(report.TotalSales))
}

// LoadSupplierDropdown repopulates the supplier selector on the product
// form. Failures are logged only; the form still opens with the previous
// options.
func (f *Fetchers) LoadSupplierDropdown(ctx context.Context) {
	suppliers, err := f.client.ListSuppliers(ctx)
	if err != nil {
		f.logger.Error("failed to load suppliers for dropdown", zap.Error(err))
		return
	}

	options := make([]view.Option, 0, len(suppliers))
	for _, s := range suppliers {
		options = append(options, view.Option{
			Value: strconv.Itoa(s.ID),
			Label: s.Name,
		})
	}
	f.SupplierDropdown.SetOptions(options)
}

// LoadSaleProducts repopulates the sale-product selector. Each option
// carries the product's price and stock as metadata so the sale form can
// read them without re-fetching.
func (f *Fetchers) LoadSaleProducts(ctx context.Context) {
	products, err := f.client.ListProducts(ctx)
	if err != nil {
		f.logger.Error("failed to load products for sale", zap.Error(err))
		f.alerts.Danger("Failed to load products for sale")
		return
	}

	options := make([]view.Option, 0, len(products))
	for _, p := range products {
		options = append(options, view.Option{
			Value: strconv.Itoa(p.ID),
			Label: fmt.Sprintf("%s (%d in stock)", p.Name, p.StockQuantity),
			Meta: map[string]string{
				"price": strconv.FormatFloat(p.Price, 'f', -1, 64),
				"stock": strconv.Itoa(p.StockQuantity),
			},
		})
	}
	f.SaleProducts.SetOptions(options)
}

// Cascade launches each step in its own goroutine. Steps race; each view
// resolves as last write wins. Callers that need completion should call the
// fetchers synchronously instead.
func Cascade(ctx context.Context, steps ...func(context.Context)) {
	for _, step := range steps {
		go step(ctx)
	}
}

// RefreshAll performs the initial load: every table, dropdown, and metric,
// fetched independently.
func (f *Fetchers) RefreshAll(ctx context.Context) {
	Cascade(ctx,
		f.RefreshMetrics,
		f.RefreshProducts,
		f.RefreshSales,
		f.RefreshSuppliers,
		f.LoadSupplierDropdown,
		f.LoadSaleProducts,
	)
}

func orNA(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}
