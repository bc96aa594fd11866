package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nkululeko111/inventory-management-system/internal/alert"
	"github.com/nkululeko111/inventory-management-system/internal/backend"
	"github.com/nkululeko111/inventory-management-system/internal/config"
	"github.com/nkululeko111/inventory-management-system/internal/dashboard"
	"github.com/nkululeko111/inventory-management-system/internal/forms"
	"github.com/nkululeko111/inventory-management-system/internal/report"
	"github.com/nkululeko111/inventory-management-system/internal/sale"
	"github.com/nkululeko111/inventory-management-system/internal/stock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("error loading configuration: %v", err))
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	client := backend.New(cfg.APIBaseURL, logger)
	defer client.Close()

	alerts := alert.NewNotifier(cfg.AlertCap, cfg.AlertTTL, logger)
	defer alerts.Close()

	fetchers := dashboard.NewFetchers(client, alerts, logger, cfg.LowStockThreshold)
	productForm := forms.NewProductController(client, alerts, logger, fetchers)
	supplierForm := forms.NewSupplierController(client, alerts, logger, fetchers)
	saleFlow := sale.NewWorkflow(client, alerts, logger, fetchers)
	adjuster := stock.NewAdjuster(client, alerts, logger, fetchers)
	exporter := report.NewExporter(client, logger)

	app := newApp(os.Stdin, os.Stdout, appDeps{
		cfg:          cfg,
		alerts:       alerts,
		fetchers:     fetchers,
		productForm:  productForm,
		supplierForm: supplierForm,
		saleFlow:     saleFlow,
		adjuster:     adjuster,
		exporter:     exporter,
	})

	// Row actions mirror the table buttons of the original UI.
	fetchers.SetActions(dashboard.RowActions{
		EditProduct:    app.editProduct,
		DeleteProduct:  app.deleteProduct,
		AdjustStock:    app.promptAdjustStock,
		EditSupplier:   app.editSupplier,
		DeleteSupplier: app.deleteSupplier,
	})

	ctx := context.Background()
	fetchers.RefreshAll(ctx)

	if err := app.run(ctx); err != nil {
		logger.Error("dashboard exited with error", zap.Error(err))
		os.Exit(1)
	}
}
