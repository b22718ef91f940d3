// Package store provides the in-memory product inventory and its file persistence.
package store

import (
	"cmp"
	"iter"
	"slices"
)

// ProductStore is an interface for product storage operations.
// It abstracts the underlying collection so the service layer can be tested with a mock.
type ProductStore interface {
	// Load replaces the contents of the store with the products in the file at path.
	// Returns ErrIO or ErrParse; on error the store is left unchanged.
	Load(path string) error

	// Save overwrites the file at path with the current products.
	// Returns ErrIO; on error the previous file is left intact.
	Save(path string) error

	// FindByID returns a copy of the first product with the given ID.
	// The boolean is false if no product has that ID.
	FindByID(id int) (Product, bool)

	// FindAll returns a copy of all products in store order.
	FindAll() []Product

	// Add appends a product. The ID is not checked for collisions.
	Add(p Product)

	// RemoveByID removes every product with the given ID.
	RemoveByID(id int)

	// UpdateField sets one named field of the product with the given ID.
	// Returns ErrInvalidField for an unknown field name and ErrInvalidValue
	// for a value of the wrong type. An unknown ID is not an error.
	UpdateField(id int, field string, value any) error

	// NextID returns 1 for an empty store, otherwise the highest ID plus one.
	NextID() int

	// AllFormatted yields FormatRow for every product in store order.
	AllFormatted(pf PriceFormatter) iter.Seq[string]

	// Len returns the number of products.
	Len() int
}

var _ ProductStore = (*Inventory)(nil)

// Inventory implements ProductStore with an ordered slice.
// It is not safe for concurrent use.
type Inventory struct {
	products []Product
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// FindByID retrieves a product by its ID.
func (s *Inventory) FindByID(id int) (Product, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Product{}, false
	}
	return s.products[i], true
}

// FindAll retrieves all products.
func (s *Inventory) FindAll() []Product {
	return slices.Clone(s.products)
}

// Add appends a product to the end of the inventory.
func (s *Inventory) Add(p Product) {
	s.products = append(s.products, p)
}

// RemoveByID deletes all products with the given ID.
func (s *Inventory) RemoveByID(id int) {
	s.products = slices.DeleteFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
}

// UpdateField sets a single field of a product.
func (s *Inventory) UpdateField(id int, field string, value any) error {
	f, err := ParseField(field)
	if err != nil {
		return err
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	// apply to a copy so a rejected value leaves the product untouched
	p := s.products[i]
	if err := setters[f](&p, value); err != nil {
		return err
	}
	s.products[i] = p
	return nil
}

// NextID returns the next free identifier.
func (s *Inventory) NextID() int {
	if len(s.products) == 0 {
		return 1
	}
	return slices.MaxFunc(s.products, func(a, b Product) int {
		return cmp.Compare(a.ID, b.ID)
	}).ID + 1
}

// AllFormatted returns a lazy sequence of formatted rows. Each iteration
// reads the current contents of the inventory.
func (s *Inventory) AllFormatted(pf PriceFormatter) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, p := range s.products {
			if !yield(p.FormatRow(pf)) {
				return
			}
		}
	}
}

// Len returns the number of products.
func (s *Inventory) Len() int {
	return len(s.products)
}

func (s *Inventory) indexOf(id int) int {
	return slices.IndexFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
}
