// Package sale implements the sale-recording workflow: live total
// recomputation while the form is edited, ordered client-side validation
// before submission, a busy-button guard against duplicate submits, and the
// four-way refresh cascade after success.
package sale

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
	"github.com/nkululeko111/inventory-management-system/internal/dashboard"
	"github.com/nkululeko111/inventory-management-system/internal/view"
)

// ErrValidation is returned when a pre-submit check rejects the sale. No
// network call is made in that case.
var ErrValidation = errors.New("invalid sale input")

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission is still pending.
var ErrSubmitInFlight = errors.New("sale submission already in flight")

// Workflow drives the record-sale form. The product dropdown is the one the
// fetchers populate; its option metadata carries each product's price and
// stock, so selection never triggers a fetch.
type Workflow struct {
	client   *backend.Client
	alerts   *alert.Notifier
	logger   *zap.Logger
	fetchers *dashboard.Fetchers

	Modal    *view.Modal
	Products *view.Dropdown
	Quantity *view.Field
	Price    *view.Field
	Total    *view.Metric
	Confirm  *view.Button
}

// NewWorkflow builds the workflow around the shared sale-product dropdown.
func NewWorkflow(client *backend.Client, alerts *alert.Notifier, logger *zap.Logger, fetchers *dashboard.Fetchers) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Workflow{
		client:   client,
		alerts:   alerts,
		logger:   logger,
		fetchers: fetchers,

		Modal:    &view.Modal{},
		Products: fetchers.SaleProducts,
		Quantity: &view.Field{},
		Price:    &view.Field{},
		Total:    &view.Metric{},
		Confirm:  view.NewButton("Confirm Sale", "Processing..."),
	}

	w.Modal.OnShow(w.reset)
	w.Modal.OnHidden(w.reset)
	w.Total.Set(dashboard.FormatPrice(0))

	return w
}

func (w *Workflow) reset() {
	w.Products.Reset()
	w.Quantity.Reset()
	w.Price.Reset()
	w.Total.Set(dashboard.FormatPrice(0))
}

// ProductChanged reacts to a new dropdown selection: the unit price
// auto-populates from the option's cached price and the total recomputes.
// Falling back to the placeholder clears both.
func (w *Workflow) ProductChanged() {
	opt, ok := w.Products.Selected()
	if !ok || opt.Meta["price"] == "" {
		w.Price.Reset()
		w.Total.Set(dashboard.FormatPrice(0))
		return
	}
	w.Price.SetValue(opt.Meta["price"])
	w.RecomputeTotal()
}

// RecomputeTotal refreshes the displayed total from the current quantity
// and price. Unparseable values count as zero; this runs on every
// keystroke and never validates.
func (w *Workflow) RecomputeTotal() {
	quantity, err := strconv.Atoi(strings.TrimSpace(w.Quantity.Value()))
	if err != nil {
		quantity = 0
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(w.Price.Value()), 64)
	if err != nil {
		price = 0
	}
	w.Total.Set(dashboard.FormatPrice(float64(quantity) * price))
}

// Submit validates the sale and posts it. Checks run in order and stop at
// the first failure: product selected, quantity a positive integer,
// quantity within the locally known stock, price positive. The stock check
// is advisory; the server stays authoritative. The confirm button is busy
// for the duration and restored unconditionally.
func (w *Workflow) Submit(ctx context.Context) error {
	opt, ok := w.Products.Selected()
	if !ok {
		w.alerts.Warning("Please select a product")
		return ErrValidation
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(w.Quantity.Value()))
	if err != nil || quantity <= 0 {
		w.alerts.Warning("Please enter valid quantity (minimum 1)")
		return ErrValidation
	}

	availableStock, _ := strconv.Atoi(opt.Meta["stock"])
	if quantity > availableStock {
		w.alerts.Warning(fmt.Sprintf("Only %d units available", availableStock))
		return ErrValidation
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(w.Price.Value()), 64)
	if err != nil || math.IsNaN(price) || price <= 0 {
		w.alerts.Warning("Please enter valid price")
		return ErrValidation
	}

	productID, err := strconv.Atoi(opt.Value)
	if err != nil {
		w.alerts.Warning("Please select a product")
		return ErrValidation
	}

	if !w.Confirm.Begin() {
		return ErrSubmitInFlight
	}
	defer w.Confirm.End()

	input := backend.SaleInput{
		ProductID:    productID,
		QuantitySold: quantity,
		UnitPrice:    price,
	}

	recorded, err := w.client.RecordSale(ctx, input)
	if err != nil {
		w.logger.Error("failed to record sale",
			zap.Int("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		if msg, ok := backend.ServerMessage(err); ok {
			w.alerts.Danger(msg)
		} else {
			w.alerts.Danger("Failed to record sale")
		}
		return err
	}

	w.logger.Info("sale recorded",
		zap.Int("sale_id", recorded.ID),
		zap.Int("product_id", recorded.ProductID),
		zap.Int("quantity", recorded.QuantitySold),
	)
	w.alerts.Success("Sale recorded successfully")
	w.Modal.Hide()

	// Each refresh is independent; partial failure of one does not block
	// the others.
	dashboard.Cascade(ctx,
		w.fetchers.RefreshSales,
		w.fetchers.RefreshProducts,
		w.fetchers.RefreshMetrics,
		w.fetchers.LoadSaleProducts,
	)
	return nil
}
