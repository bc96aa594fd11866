package forms

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
	"github.com/nkululeko111/inventory-management-system/internal/dashboard"
	"github.com/nkululeko111/inventory-management-system/internal/view"
)

// DeleteSupplierConfirm is the confirmation prompt shown before deleting a
// supplier. It spells out that products keep their rows but lose the
// reference.
const DeleteSupplierConfirm = "Are you sure you want to delete this supplier? Products from this supplier will remain but their supplier reference will be removed."

// SupplierController drives the add/edit supplier form.
type SupplierController struct {
	client   *backend.Client
	alerts   *alert.Notifier
	logger   *zap.Logger
	fetchers *dashboard.Fetchers

	Modal         *view.Modal
	Name          *view.Field
	ContactPerson *view.Field
	Email         *view.Field
	Phone         *view.Field

	mu   sync.Mutex
	mode Mode
}

// NewSupplierController wires the form widgets and modal lifecycle.
func NewSupplierController(client *backend.Client, alerts *alert.Notifier, logger *zap.Logger, fetchers *dashboard.Fetchers) *SupplierController {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &SupplierController{
		client:   client,
		alerts:   alerts,
		logger:   logger,
		fetchers: fetchers,

		Modal:         &view.Modal{},
		Name:          &view.Field{},
		ContactPerson: &view.Field{},
		Email:         &view.Field{},
		Phone:         &view.Field{},
	}

	c.Modal.OnShow(c.reset)
	c.Modal.OnHidden(c.reset)

	return c
}

func (c *SupplierController) reset() {
	c.Name.Reset()
	c.ContactPerson.Reset()
	c.Email.Reset()
	c.Phone.Reset()
	c.mu.Lock()
	c.mode = CreateMode()
	c.mu.Unlock()
}

// Mode returns the current form mode.
func (c *SupplierController) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// BeginAdd opens the form for a new supplier.
func (c *SupplierController) BeginAdd() {
	c.Modal.Show()
}

// BeginEdit fetches the supplier and opens the form pre-filled.
func (c *SupplierController) BeginEdit(ctx context.Context, id int) error {
	supplier, err := c.client.GetSupplier(ctx, id)
	if err != nil {
		c.logger.Error("failed to fetch supplier for edit", zap.Int("supplier_id", id), zap.Error(err))
		c.alerts.Danger("Failed to load supplier details")
		return err
	}

	c.Modal.Show()

	c.Name.SetValue(supplier.Name)
	c.ContactPerson.SetValue(deref(supplier.ContactPerson))
	c.Email.SetValue(deref(supplier.Email))
	c.Phone.SetValue(deref(supplier.Phone))

	c.mu.Lock()
	c.mode = EditMode(supplier.ID)
	c.mu.Unlock()
	return nil
}

// Save validates the form and dispatches a create or an update. Only the
// name is required; empty optional fields are sent as null.
func (c *SupplierController) Save(ctx context.Context) error {
	name := strings.TrimSpace(c.Name.Value())
	if name == "" {
		c.alerts.Warning("Supplier name is required")
		return ErrValidation
	}

	input := backend.SupplierInput{
		Name:          name,
		ContactPerson: nilIfEmpty(c.ContactPerson.Value()),
		Email:         nilIfEmpty(c.Email.Value()),
		Phone:         nilIfEmpty(c.Phone.Value()),
	}

	if id, editing := c.Mode().Editing(); editing {
		return c.update(ctx, id, input)
	}
	return c.create(ctx, input)
}

func (c *SupplierController) create(ctx context.Context, input backend.SupplierInput) error {
	if _, err := c.client.CreateSupplier(ctx, input); err != nil {
		c.logger.Error("failed to add supplier", zap.Error(err))
		c.alerts.Danger(failureMessage("Failed to add supplier", err))
		return err
	}

	c.alerts.Success("Supplier added successfully")
	c.Modal.Hide()
	dashboard.Cascade(ctx,
		c.fetchers.RefreshSuppliers,
		c.fetchers.LoadSupplierDropdown,
	)
	return nil
}

func (c *SupplierController) update(ctx context.Context, id int, input backend.SupplierInput) error {
	if _, err := c.client.UpdateSupplier(ctx, id, input); err != nil {
		c.logger.Error("failed to update supplier", zap.Int("supplier_id", id), zap.Error(err))
		c.alerts.Danger(failureMessage("Failed to update supplier", err))
		return err
	}

	c.alerts.Success("Supplier updated successfully")
	c.Modal.Hide()
	dashboard.Cascade(ctx,
		c.fetchers.RefreshSuppliers,
		c.fetchers.LoadSupplierDropdown,
	)
	return nil
}

// Delete removes a supplier. Affected products keep their rows and show
// "No supplier" after the product table refreshes.
func (c *SupplierController) Delete(ctx context.Context, id int) error {
	if err := c.client.DeleteSupplier(ctx, id); err != nil {
		c.logger.Error("failed to delete supplier", zap.Int("supplier_id", id), zap.Error(err))
		c.alerts.Danger("Failed to delete supplier")
		return err
	}

	c.alerts.Success("Supplier deleted successfully")
	dashboard.Cascade(ctx,
		c.fetchers.RefreshSuppliers,
		c.fetchers.LoadSupplierDropdown,
		c.fetchers.RefreshProducts,
	)
	return nil
}

func nilIfEmpty(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
