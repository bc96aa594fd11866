package forms

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
	"github.com/nkululeko111/inventory-management-system/internal/dashboard"
	"github.com/nkululeko111/inventory-management-system/internal/view"
)

// ProductController drives the add/edit product form.
type ProductController struct {
	client   *backend.Client
	alerts   *alert.Notifier
	logger   *zap.Logger
	fetchers *dashboard.Fetchers

	Modal    *view.Modal
	Name     *view.Field
	Price    *view.Field
	Quantity *view.Field
	Supplier *view.Dropdown

	mu   sync.Mutex
	mode Mode
}

// NewProductController wires the form widgets and modal lifecycle. The
// supplier dropdown is shared with the fetchers so it is pre-populated on
// every open.
func NewProductController(client *backend.Client, alerts *alert.Notifier, logger *zap.Logger, fetchers *dashboard.Fetchers) *ProductController {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &ProductController{
		client:   client,
		alerts:   alerts,
		logger:   logger,
		fetchers: fetchers,

		Modal:    &view.Modal{},
		Name:     &view.Field{},
		Price:    &view.Field{},
		Quantity: &view.Field{},
		Supplier: fetchers.SupplierDropdown,
	}

	// Opening pre-populates the supplier dropdown and starts from a clean
	// form; closing resets again so a cancelled edit leaves nothing behind.
	c.Modal.OnShow(func() {
		c.fetchers.LoadSupplierDropdown(context.Background())
		c.reset()
	})
	c.Modal.OnHidden(c.reset)

	return c
}

func (c *ProductController) reset() {
	c.Name.Reset()
	c.Price.Reset()
	c.Quantity.Reset()
	c.Supplier.Reset()
	c.mu.Lock()
	c.mode = CreateMode()
	c.mu.Unlock()
}

// Mode returns the current form mode.
func (c *ProductController) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// BeginAdd opens the form for a new product.
func (c *ProductController) BeginAdd() {
	c.Modal.Show()
}

// BeginEdit fetches the product and opens the form pre-filled. The modal is
// shown first (which resets the form), then populated, so the open-reset
// cannot wipe the loaded values.
func (c *ProductController) BeginEdit(ctx context.Context, id int) error {
	product, err := c.client.GetProduct(ctx, id)
	if err != nil {
		c.logger.Error("failed to fetch product for edit", zap.Int("product_id", id), zap.Error(err))
		c.alerts.Danger("Failed to load product details")
		return err
	}

	c.Modal.Show()

	c.Name.SetValue(product.Name)
	c.Price.SetValue(strconv.FormatFloat(product.Price, 'f', -1, 64))
	c.Quantity.SetValue(strconv.Itoa(product.StockQuantity))
	if product.SupplierID != nil {
		c.Supplier.Select(strconv.Itoa(*product.SupplierID))
	}

	c.mu.Lock()
	c.mode = EditMode(product.ID)
	c.mu.Unlock()
	return nil
}

// Save validates the form and dispatches a create or an update depending on
// the current mode. Validation failures surface as a warning alert and
// return ErrValidation without touching the network.
func (c *ProductController) Save(ctx context.Context) error {
	name := strings.TrimSpace(c.Name.Value())
	price, priceErr := strconv.ParseFloat(strings.TrimSpace(c.Price.Value()), 64)
	quantity, quantityErr := strconv.Atoi(strings.TrimSpace(c.Quantity.Value()))

	if name == "" || priceErr != nil || quantityErr != nil || math.IsInf(price, 0) || math.IsNaN(price) {
		c.alerts.Warning("Please enter valid product details")
		return ErrValidation
	}

	var supplierID *int
	if opt, ok := c.Supplier.Selected(); ok {
		if id, err := strconv.Atoi(opt.Value); err == nil {
			supplierID = &id
		}
	}

	input := backend.ProductInput{
		Name:          name,
		Price:         price,
		StockQuantity: quantity,
		SupplierID:    supplierID,
	}

	if id, editing := c.Mode().Editing(); editing {
		return c.update(ctx, id, input)
	}
	return c.create(ctx, input)
}

func (c *ProductController) create(ctx context.Context, input backend.ProductInput) error {
	if _, err := c.client.CreateProduct(ctx, input); err != nil {
		c.logger.Error("failed to add product", zap.Error(err))
		c.alerts.Danger(failureMessage("Failed to add product", err))
		return err
	}

	c.alerts.Success("Product added successfully")
	c.Modal.Hide()
	dashboard.Cascade(ctx,
		c.fetchers.RefreshProducts,
		c.fetchers.RefreshMetrics,
		c.fetchers.LoadSaleProducts,
		c.fetchers.RefreshSuppliers,
	)
	return nil
}

func (c *ProductController) update(ctx context.Context, id int, input backend.ProductInput) error {
	if _, err := c.client.UpdateProduct(ctx, id, input); err != nil {
		c.logger.Error("failed to update product", zap.Int("product_id", id), zap.Error(err))
		c.alerts.Danger(failureMessage("Failed to update product", err))
		return err
	}

	c.alerts.Success("Product updated successfully")
	c.Modal.Hide()
	dashboard.Cascade(ctx,
		c.fetchers.RefreshProducts,
		c.fetchers.RefreshMetrics,
		c.fetchers.LoadSaleProducts,
	)
	return nil
}

// DeleteProductConfirm is the confirmation prompt shown before deleting a
// product.
const DeleteProductConfirm = "Are you sure you want to delete this product? This action cannot be undone."

// Delete removes a product and refreshes the dependent views. The caller is
// responsible for confirming with the user first.
func (c *ProductController) Delete(ctx context.Context, id int) error {
	if err := c.client.DeleteProduct(ctx, id); err != nil {
		c.logger.Error("failed to delete product", zap.Int("product_id", id), zap.Error(err))
		c.alerts.Danger("Failed to delete product")
		return err
	}

	c.alerts.Success("Product deleted successfully")
	dashboard.Cascade(ctx,
		c.fetchers.RefreshProducts,
		c.fetchers.RefreshMetrics,
		c.fetchers.LoadSaleProducts,
	)
	return nil
}

// failureMessage appends the server-supplied message when one exists.
func failureMessage(prefix string, err error) string {
	if msg, ok := backend.ServerMessage(err); ok {
		return fmt.Sprintf("%s: %s", prefix, msg)
	}
	return prefix
}
