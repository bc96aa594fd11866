package apitest

import (
	"errors"
	"sort"
	"sync"

	"github.com/nkululeko111/inventory-management-system/internal/backend"
)

// ErrNotFound is returned when a record with the given ID does not exist.
var ErrNotFound = errors.New("record not found")

// store is the in-memory state behind the fake API. One mutex covers all
// three collections; cross-entity operations (sale recording, supplier
// deletion) need a consistent view.
type store struct {
	mu sync.Mutex

	products  map[int]*backend.Product
	suppliers map[int]*backend.Supplier
	sales     map[int]*backend.Sale

	nextProductID  int
	nextSupplierID int
	nextSaleID     int
}

func newStore() *store {
	return &store{
		products:       map[int]*backend.Product{},
		suppliers:      map[int]*backend.Supplier{},
		sales:          map[int]*backend.Sale{},
		nextProductID:  1,
		nextSupplierID: 1,
		nextSaleID:     1,
	}
}

func (s *store) allProductsLocked() []backend.Product {
	out := make([]backend.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) allSuppliersLocked() []backend.Supplier {
	out := make([]backend.Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		out = append(out, *sup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) allSalesLocked() []backend.Sale {
	out := make([]backend.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		out = append(out, *sale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// supplierNameLocked resolves the derived supplierName field.
func (s *store) supplierNameLocked(supplierID *int) *string {
	if supplierID == nil {
		return nil
	}
	sup, ok := s.suppliers[*supplierID]
	if !ok {
		return nil
	}
	name := sup.Name
	return &name
}
