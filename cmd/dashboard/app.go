package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/config"
	"github.com/nkululeko111/inventory-management-system/internal/dashboard"
	"github.com/nkululeko111/inventory-management-system/internal/forms"
	"github.com/nkululeko111/inventory-management-system/internal/report"
	"github.com/nkululeko111/inventory-management-system/internal/sale"
	"github.com/nkululeko111/inventory-management-system/internal/stock"
	"github.com/nkululeko111/inventory-management-system/internal/view"
)

type appDeps struct {
	cfg          *config.Config
	alerts       *alert.Notifier
	fetchers     *dashboard.Fetchers
	productForm  *forms.ProductController
	supplierForm *forms.SupplierController
	saleFlow     *sale.Workflow
	adjuster     *stock.Adjuster
	exporter     *report.Exporter
}

// app is the terminal front end: it reads commands, drives the controllers,
// and renders the widgets the controllers own.
type app struct {
	appDeps
	in  *bufio.Scanner
	out io.Writer
}

func newApp(in io.Reader, out io.Writer, deps appDeps) *app {
	return &app{
		appDeps: deps,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

func (a *app) run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Inventory dashboard. Type 'help' for commands.")
	for {
		a.flushAlerts()
		fmt.Fprint(a.out, "> ")
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		switch args[0] {
		case "quit", "exit":
			return nil
		case "help":
			a.printHelp()
		case "dashboard":
			a.fetchers.RefreshMetrics(ctx)
			a.printMetrics()
		case "products":
			a.fetchers.RefreshProducts(ctx)
			a.printTable("Products", a.fetchers.Products)
		case "suppliers":
			a.fetchers.RefreshSuppliers(ctx)
			a.printTable("Suppliers", a.fetchers.Suppliers)
		case "sales":
			a.fetchers.RefreshSales(ctx)
			a.printTable("Sales", a.fetchers.Sales)
		case "refresh":
			a.fetchers.RefreshAll(ctx)
			fmt.Fprintln(a.out, "Refreshing all views...")
		case "sale":
			a.recordSale(ctx, args[1:])
		case "product":
			a.productCommand(ctx, args[1:])
		case "supplier":
			a.supplierCommand(ctx, args[1:])
		case "adjust":
			a.adjustCommand(ctx, args[1:])
		case "export":
			path := a.cfg.ExportPath
			if len(args) > 1 {
				path = args[1]
			}
			if err := a.exporter.Export(ctx, path); err != nil {
				fmt.Fprintf(a.out, "Export failed: %v\n", err)
			} else {
				fmt.Fprintf(a.out, "Report written to %s\n", path)
			}
		default:
			fmt.Fprintf(a.out, "Unknown command %q. Type 'help'.\n", args[0])
		}
	}
}

func (a *app) printHelp() {
	fmt.Fprint(a.out, `Commands:
  dashboard                                  show metric cards
  products | suppliers | sales              refresh and print a table
  refresh                                    reload every view
  sale <productID> <quantity> [unitPrice]    record a sale
  product add <name> <price> <stock> [supplierID]
  product edit <id> [name=..] [price=..] [stock=..] [supplier=..]
  product delete <id>
  supplier add <name> [contact=..] [email=..] [phone=..]
  supplier edit <id> [name=..] [contact=..] [email=..] [phone=..]
  supplier delete <id>
  adjust <productID> <delta>                 apply a signed stock delta
  export [path]                              write the Excel report
  quit
`)
}

// recordSale walks the sale form the way the modal does: open, select,
// type, submit.
func (a *app) recordSale(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: sale <productID> <quantity> [unitPrice]")
		return
	}
	a.saleFlow.Modal.Show()
	a.saleFlow.Products.Select(args[0])
	a.saleFlow.ProductChanged()
	a.saleFlow.Quantity.SetValue(args[1])
	a.saleFlow.RecomputeTotal()
	if len(args) > 2 {
		a.saleFlow.Price.SetValue(args[2])
		a.saleFlow.RecomputeTotal()
	}
	fmt.Fprintf(a.out, "Total: %s\n", a.saleFlow.Total.Value())
	if err := a.saleFlow.Submit(ctx); err != nil {
		a.saleFlow.Modal.Hide()
	}
}

func (a *app) productCommand(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: product add|edit|delete ...")
		return
	}
	switch args[0] {
	case "add":
		if len(args) < 4 {
			fmt.Fprintln(a.out, "usage: product add <name> <price> <stock> [supplierID]")
			return
		}
		a.productForm.BeginAdd()
		a.productForm.Name.SetValue(args[1])
		a.productForm.Price.SetValue(args[2])
		a.productForm.Quantity.SetValue(args[3])
		if len(args) > 4 {
			a.productForm.Supplier.Select(args[4])
		}
		if err := a.productForm.Save(ctx); err != nil {
			a.productForm.Modal.Hide()
		}
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: product edit <id> [name=..] [price=..] [stock=..] [supplier=..]")
			return
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "invalid product ID %q\n", args[1])
			return
		}
		if err := a.productForm.BeginEdit(ctx, id); err != nil {
			return
		}
		for _, kv := range args[2:] {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			switch key {
			case "name":
				a.productForm.Name.SetValue(value)
			case "price":
				a.productForm.Price.SetValue(value)
			case "stock":
				a.productForm.Quantity.SetValue(value)
			case "supplier":
				a.productForm.Supplier.Select(value)
			}
		}
		if err := a.productForm.Save(ctx); err != nil {
			a.productForm.Modal.Hide()
		}
	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: product delete <id>")
			return
		}
		if id, err := strconv.Atoi(args[1]); err == nil {
			a.deleteProduct(id)
		}
	default:
		fmt.Fprintf(a.out, "unknown product subcommand %q\n", args[0])
	}
}

func (a *app) supplierCommand(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: supplier add|edit|delete ...")
		return
	}
	setField := func(kv string) {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return
		}
		switch key {
		case "name":
			a.supplierForm.Name.SetValue(value)
		case "contact":
			a.supplierForm.ContactPerson.SetValue(value)
		case "email":
			a.supplierForm.Email.SetValue(value)
		case "phone":
			a.supplierForm.Phone.SetValue(value)
		}
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: supplier add <name> [contact=..] [email=..] [phone=..]")
			return
		}
		a.supplierForm.BeginAdd()
		a.supplierForm.Name.SetValue(args[1])
		for _, kv := range args[2:] {
			setField(kv)
		}
		if err := a.supplierForm.Save(ctx); err != nil {
			a.supplierForm.Modal.Hide()
		}
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: supplier edit <id> [name=..] [contact=..] [email=..] [phone=..]")
			return
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(a.out, "invalid supplier ID %q\n", args[1])
			return
		}
		if err := a.supplierForm.BeginEdit(ctx, id); err != nil {
			return
		}
		for _, kv := range args[2:] {
			setField(kv)
		}
		if err := a.supplierForm.Save(ctx); err != nil {
			a.supplierForm.Modal.Hide()
		}
	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "usage: supplier delete <id>")
			return
		}
		if id, err := strconv.Atoi(args[1]); err == nil {
			a.deleteSupplier(id)
		}
	default:
		fmt.Fprintf(a.out, "unknown supplier subcommand %q\n", args[0])
	}
}

func (a *app) adjustCommand(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: adjust <productID> <delta>")
		return
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "invalid product ID %q\n", args[0])
		return
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(a.out, "invalid delta %q\n", args[1])
		return
	}
	a.adjuster.Apply(ctx, id, delta)
}

// Row-action callbacks, bound onto rendered rows by the fetchers.

func (a *app) editProduct(id int) {
	fmt.Fprintf(a.out, "Editing product %d. Use: product edit %d name=.. price=.. stock=..\n", id, id)
}

func (a *app) deleteProduct(id int) {
	if !a.confirm(forms.DeleteProductConfirm) {
		return
	}
	a.productForm.Delete(context.Background(), id)
}

func (a *app) promptAdjustStock(id int) {
	fmt.Fprintf(a.out, "Use: adjust %d <delta>\n", id)
}

func (a *app) editSupplier(id int) {
	fmt.Fprintf(a.out, "Editing supplier %d. Use: supplier edit %d name=.. contact=..\n", id, id)
}

func (a *app) deleteSupplier(id int) {
	if !a.confirm(forms.DeleteSupplierConfirm) {
		return
	}
	a.supplierForm.Delete(context.Background(), id)
}

func (a *app) confirm(prompt string) bool {
	fmt.Fprintf(a.out, "%s [y/N] ", prompt)
	if !a.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(a.in.Text()))
	return answer == "y" || answer == "yes"
}

func (a *app) printMetrics() {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total Products\t%s\n", a.fetchers.TotalProducts.Value())
	fmt.Fprintf(w, "Total Stock\t%s\n", a.fetchers.TotalStock.Value())
	fmt.Fprintf(w, "Low Stock Items\t%s\n", a.fetchers.LowStock.Value())
	fmt.Fprintf(w, "Today's Sales\t%s\n", a.fetchers.TodaysSales.Value())
	w.Flush()
}

func (a *app) printTable(title string, t *view.Table) {
	fmt.Fprintf(a.out, "%s (%d)\n", title, t.Len())
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Columns(), "\t"))
	for _, row := range t.Rows() {
		cells := append([]string(nil), row.Cells...)
		if len(row.Actions) > 0 {
			labels := make([]string, 0, len(row.Actions))
			for _, action := range row.Actions {
				labels = append(labels, action.Label)
			}
			cells = append(cells, strings.Join(labels, "/"))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func (a *app) flushAlerts() {
	for _, al := range a.alerts.Active() {
		fmt.Fprintf(a.out, "[%s] %s\n", al.Level, al.Message)
		a.alerts.Dismiss(al.ID)
	}
}
