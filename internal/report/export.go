// Package report exports the inventory and sales reports to an Excel
// workbook.
package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/nkululeko111/inventory-management-system/internal/backend"
)

// Exporter pulls report data through the API client and writes a workbook
// with Summary, Products, and Sales sheets.
type Exporter struct {
	client *backend.Client
	logger *zap.Logger
}

// NewExporter creates an Exporter.
func NewExporter(client *backend.Client, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{client: client, logger: logger}
}

// Export writes the workbook to path. All four fetches must succeed; a
// partial report is worse than none.
func (e *Exporter) Export(ctx context.Context, path string) error {
	inventory, err := e.client.GetInventoryReport(ctx)
	if err != nil {
		return fmt.Errorf("inventory report: %w", err)
	}
	sales, err := e.client.GetSalesReport(ctx, "", "")
	if err != nil {
		return fmt.Errorf("sales report: %w", err)
	}
	products, err := e.client.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("products: %w", err)
	}
	saleRows, err := e.client.ListSales(ctx)
	if err != nil {
		return fmt.Errorf("sales: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeSummary(f, inventory, sales); err != nil {
		return err
	}
	if err := e.writeProducts(f, products); err != nil {
		return err
	}
	if err := e.writeSales(f, saleRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	e.logger.Info("report exported",
		zap.String("path", path),
		zap.Int("products", len(products)),
		zap.Int("sales", len(saleRows)),
	)
	return nil
}

func (e *Exporter) writeSummary(f *excelize.File, inv *backend.InventoryReport, sales *backend.SalesReport) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Inventory", ""},
		{"Total products", inv.TotalProducts},
		{"Total stock value", inv.TotalValue},
		{"Low stock items", inv.LowStockItems},
		{"Out of stock items", inv.OutOfStockItems},
		{"", ""},
		{"Sales", ""},
		{"Total sales", sales.TotalSales},
		{"Total units sold", sales.TotalUnitsSold},
		{"Total revenue", sales.TotalRevenue},
	}
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				return err
			}
		}
	}

	// Ranking starts below the totals, one line of air in between.
	base := len(rows) + 2
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", base), "Top products"); err != nil {
		return err
	}
	for i, top := range sales.TopProducts {
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", base+1+i), top.ProductName); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", base+1+i), top.UnitsSold); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeProducts(f *excelize.File, products []backend.Product) error {
	const sheet = "Products"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create products sheet: %w", err)
	}

	headers := []interface{}{"ID", "Name", "Price", "Stock", "Supplier"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, p := range products {
		supplier := ""
		if p.SupplierName != nil {
			supplier = *p.SupplierName
		}
		row := []interface{}{p.ID, p.Name, p.Price, p.StockQuantity, supplier}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeSales(f *excelize.File, sales []backend.Sale) error {
	const sheet = "Sales"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sales sheet: %w", err)
	}

	headers := []interface{}{"ID", "Product", "Quantity", "Unit Price", "Total", "Date"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return err
	}
	for i, s := range sales {
		product := fmt.Sprintf("Product ID: %d", s.ProductID)
		if s.ProductName != nil && *s.ProductName != "" {
			product = *s.ProductName
		}
		row := []interface{}{s.ID, product, s.QuantitySold, s.UnitPrice, s.Total(), s.SaleDate.Local().Format("2006-01-02 15:04:05")}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}
