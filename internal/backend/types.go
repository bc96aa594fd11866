package backend

import "time"

// Product is a catalog item as returned by the inventory API.
// SupplierName is derived server-side from SupplierID and may be absent.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	SupplierID    *int    `json:"supplierId,omitempty"`
	SupplierName  *string `json:"supplierName,omitempty"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	SupplierID    *int    `json:"supplierId"`
}

// Supplier represents a supplier record. Optional contact fields are nil
// when the server has no value for them.
type Supplier struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
}

// SupplierInput is the payload for creating or updating a supplier.
type SupplierInput struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
}

// Sale is a recorded sales transaction.
type Sale struct {
	ID           int       `json:"id"`
	ProductID    int       `json:"productId"`
	ProductName  *string   `json:"productName,omitempty"`
	QuantitySold int       `json:"quantitySold"`
	UnitPrice    float64   `json:"unitPrice"`
	SaleDate     time.Time `json:"saleDate"`
}

// Total returns the line total for the sale.
func (s Sale) Total() float64 {
	return float64(s.QuantitySold) * s.UnitPrice
}

// SaleInput is the payload submitted to record a sale.
type SaleInput struct {
	ProductID    int     `json:"productId"`
	QuantitySold int     `json:"quantitySold"`
	UnitPrice    float64 `json:"unitPrice"`
}

// StockAdjustment carries a signed delta applied to a product's stock.
type StockAdjustment struct {
	Delta int `json:"delta"`
}

// TopProduct is one entry of a sales report ranking.
type TopProduct struct {
	ProductName string `json:"productName"`
	UnitsSold   int    `json:"unitsSold"`
}

// SalesReport aggregates sales over an optional date range.
type SalesReport struct {
	FromDate       string       `json:"fromDate,omitempty"`
	ToDate         string       `json:"toDate,omitempty"`
	TotalSales     int          `json:"totalSales"`
	TotalUnitsSold int          `json:"totalUnitsSold"`
	TotalRevenue   float64      `json:"totalRevenue"`
	TopProducts    []TopProduct `json:"topProducts,omitempty"`
}

// InventoryReport summarizes the current stock position.
type InventoryReport struct {
	TotalProducts   int     `json:"totalProducts"`
	TotalValue      float64 `json:"totalValue"`
	LowStockItems   int     `json:"lowStockItems"`
	OutOfStockItems int     `json:"outOfStockItems"`
}
