// Package apitest is an in-memory stand-in for the inventory REST backend,
// used by the module's tests. It implements the collaborator's observable
// contract: the resource endpoints, the {"message"} error envelope, stock
// enforcement on sale recording, reference clearing on supplier deletion,
// and the date-filtered sales report.
package apitest

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nkululeko111/inventory-management-system/internal/backend"
)

// Server is the fake backend. Create one with NewServer and mount
// Handler() on an httptest.Server.
type Server struct {
	engine *gin.Engine
	store  *store

	// LowStockThreshold feeds the inventory report; 5 matches the real
	// server.
	LowStockThreshold int
}

// NewServer builds the fake with empty stores.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		engine:            gin.New(),
		store:             newStore(),
		LowStockThreshold: 5,
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler for mounting on a test server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	e := s.engine

	e.GET("/products", s.listProducts)
	e.GET("/products/:id", s.getProduct)
	e.POST("/products", s.createProduct)
	e.PUT("/products/:id", s.updateProduct)
	e.DELETE("/products/:id", s.deleteProduct)
	e.POST("/products/:id/stock/adjust", s.adjustStock)

	e.GET("/suppliers", s.listSuppliers)
	e.GET("/suppliers/:id", s.getSupplier)
	e.POST("/suppliers", s.createSupplier)
	e.PUT("/suppliers/:id", s.updateSupplier)
	e.DELETE("/suppliers/:id", s.deleteSupplier)

	e.GET("/sales", s.listSales)
	e.POST("/sales", s.recordSale)

	e.GET("/reports/sales", s.salesReport)
	e.GET("/reports/inventory", s.inventoryReport)
}

func fail(c *gin.Context, status int, format string, args ...interface{}) {
	c.JSON(status, gin.H{"message": fmt.Sprintf(format, args...)})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid ID: %s", c.Param("id"))
		return 0, false
	}
	return id, true
}

// SeedProduct inserts a product directly, bypassing HTTP. Returns the
// stored record with its assigned ID.
func (s *Server) SeedProduct(in backend.ProductInput) backend.Product {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p := &backend.Product{
		ID:            s.store.nextProductID,
		Name:          in.Name,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		SupplierID:    in.SupplierID,
		SupplierName:  s.store.supplierNameLocked(in.SupplierID),
	}
	s.store.nextProductID++
	s.store.products[p.ID] = p
	return *p
}

// SeedSupplier inserts a supplier directly.
func (s *Server) SeedSupplier(in backend.SupplierInput) backend.Supplier {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	sup := &backend.Supplier{
		ID:            s.store.nextSupplierID,
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
	}
	s.store.nextSupplierID++
	s.store.suppliers[sup.ID] = sup
	return *sup
}

// Product returns the stored product for assertions.
func (s *Server) Product(id int) (backend.Product, bool) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, ok := s.store.products[id]
	if !ok {
		return backend.Product{}, false
	}
	return *p, true
}

// SaleCount returns how many sales have been recorded.
func (s *Server) SaleCount() int {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return len(s.store.sales)
}

func (s *Server) listProducts(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, s.store.allProductsLocked())
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, found := s.store.products[id]
	if !found {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c *gin.Context) {
	var in backend.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON format: %v", err)
		return
	}
	if in.Name == "" {
		fail(c, http.StatusBadRequest, "Bad Request: product name is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p := &backend.Product{
		ID:            s.store.nextProductID,
		Name:          in.Name,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		SupplierID:    in.SupplierID,
		SupplierName:  s.store.supplierNameLocked(in.SupplierID),
	}
	s.store.nextProductID++
	s.store.products[p.ID] = p
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in backend.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON format: %v", err)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, found := s.store.products[id]
	if !found {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	p.Name = in.Name
	p.Price = in.Price
	p.StockQuantity = in.StockQuantity
	p.SupplierID = in.SupplierID
	p.SupplierName = s.store.supplierNameLocked(in.SupplierID)
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, found := s.store.products[id]; !found {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	delete(s.store.products, id)
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) adjustStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in backend.StockAdjustment
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON format: %v", err)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, found := s.store.products[id]
	if !found {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	if p.StockQuantity+in.Delta < 0 {
		fail(c, http.StatusBadRequest, "Bad Request: stock cannot go below zero")
		return
	}
	p.StockQuantity += in.Delta
	c.JSON(http.StatusOK, p)
}

func (s *Server) listSuppliers(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, s.store.allSuppliersLocked())
}

func (s *Server) getSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	sup, found := s.store.suppliers[id]
	if !found {
		fail(c, http.StatusNotFound, "Supplier not found")
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (s *Server) createSupplier(c *gin.Context) {
	var in backend.SupplierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON format: %v", err)
		return
	}
	if in.Name == "" {
		fail(c, http.StatusBadRequest, "Bad Request: supplier name is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	sup := &backend.Supplier{
		ID:            s.store.nextSupplierID,
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
	}
	s.store.nextSupplierID++
	s.store.suppliers[sup.ID] = sup
	c.JSON(http.StatusCreated, sup)
}

func (s *Server) updateSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in backend.SupplierInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON format: %v", err)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	sup, found := s.store.suppliers[id]
	if !found {
		fail(c, http.StatusNotFound, "Supplier not found")
		return
	}
	sup.Name = in.Name
	sup.ContactPerson = in.ContactPerson
	sup.Email = in.Email
	sup.Phone = in.Phone

	// Derived names on products follow the supplier rename.
	for _, p := range s.store.products {
		if p.SupplierID != nil && *p.SupplierID == id {
			p.SupplierName = &sup.Name
		}
	}
	c.JSON(http.StatusOK, sup)
}

func (s *Server) deleteSupplier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, found := s.store.suppliers[id]; !found {
		fail(c, http.StatusNotFound, "Supplier not found")
		return
	}
	delete(s.store.suppliers, id)

	// Products keep their rows but lose the reference.
	for _, p := range s.store.products {
		if p.SupplierID != nil && *p.SupplierID == id {
			p.SupplierID = nil
			p.SupplierName = nil
		}
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (s *Server) listSales(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	c.JSON(http.StatusOK, s.store.allSalesLocked())
}

func (s *Server) recordSale(c *gin.Context) {
	var in backend.SaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, "Invalid JSON format: %v", err)
		return
	}
	if in.QuantitySold < 1 {
		fail(c, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	if in.UnitPrice <= 0 {
		fail(c, http.StatusBadRequest, "Unit price must be greater than zero")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	p, found := s.store.products[in.ProductID]
	if !found {
		fail(c, http.StatusBadRequest, "Product not found")
		return
	}
	if in.QuantitySold > p.StockQuantity {
		fail(c, http.StatusBadRequest, "Insufficient stock: only %d units available", p.StockQuantity)
		return
	}

	p.StockQuantity -= in.QuantitySold
	name := p.Name
	sale := &backend.Sale{
		ID:           s.store.nextSaleID,
		ProductID:    in.ProductID,
		ProductName:  &name,
		QuantitySold: in.QuantitySold,
		UnitPrice:    in.UnitPrice,
		SaleDate:     time.Now(),
	}
	s.store.nextSaleID++
	s.store.sales[sale.ID] = sale
	c.JSON(http.StatusCreated, sale)
}

func (s *Server) salesReport(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	var fromDay, toDay time.Time
	var err error
	if from != "" {
		fromDay, err = time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			fail(c, http.StatusBadRequest, "Bad Request: invalid from date %q", from)
			return
		}
	}
	if to != "" {
		toDay, err = time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			fail(c, http.StatusBadRequest, "Bad Request: invalid to date %q", to)
			return
		}
		toDay = toDay.AddDate(0, 0, 1) // inclusive upper bound
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	report := backend.SalesReport{FromDate: from, ToDate: to}
	units := map[string]int{}
	for _, sale := range s.store.sales {
		if from != "" && sale.SaleDate.Before(fromDay) {
			continue
		}
		if to != "" && !sale.SaleDate.Before(toDay) {
			continue
		}
		report.TotalSales++
		report.TotalUnitsSold += sale.QuantitySold
		report.TotalRevenue += sale.Total()
		if sale.ProductName != nil {
			units[*sale.ProductName] += sale.QuantitySold
		}
	}

	for name, sold := range units {
		report.TopProducts = append(report.TopProducts, backend.TopProduct{ProductName: name, UnitsSold: sold})
	}
	sort.Slice(report.TopProducts, func(i, j int) bool {
		if report.TopProducts[i].UnitsSold != report.TopProducts[j].UnitsSold {
			return report.TopProducts[i].UnitsSold > report.TopProducts[j].UnitsSold
		}
		return report.TopProducts[i].ProductName < report.TopProducts[j].ProductName
	})
	if len(report.TopProducts) > 5 {
		report.TopProducts = report.TopProducts[:5]
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) inventoryReport(c *gin.Context) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	report := backend.InventoryReport{}
	for _, p := range s.store.products {
		report.TotalProducts++
		report.TotalValue += p.Price * float64(p.StockQuantity)
		if p.StockQuantity < s.LowStockThreshold {
			report.LowStockItems++
		}
		if p.StockQuantity == 0 {
			report.OutOfStockItems++
		}
	}
	c.JSON(http.StatusOK, report)
}
