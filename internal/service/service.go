// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"math"
	"strconv"
	"strings"

	inverrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/go-playground/validator/v10"
)

// ProductService defines the operator-facing inventory operations.
// Every successful mutation is persisted before it returns.
type ProductService interface {
	// FindAll returns all products in inventory order.
	FindAll(ctx context.Context) []ProductDto

	// Rows returns the formatted inventory listing.
	Rows(pf store.PriceFormatter) iter.Seq[string]

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*ProductDto, error)

	// Detail returns the multi-line description of a product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Detail(ctx context.Context, id int, pf store.PriceFormatter) (string, error)

	// Create adds a new product under the next free identifier.
	// Returns a validator.ValidationErrors for invalid input and ErrIO if saving fails.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update sets one field of a product from its textual value.
	// Returns ErrProductNotFound, ErrInvalidField, ErrInvalidValue or ErrIO.
	Update(ctx context.Context, id int, field, value string) (*ProductDto, error)

	// DeleteByID removes a product.
	// Returns ErrProductNotFound if no product exists with the given ID and ErrIO if saving fails.
	DeleteByID(ctx context.Context, id int) error
}

// Service implements ProductService on top of a ProductStore persisted at a fixed path.
type Service struct {
	repository store.ProductStore
	path       string
	validate   *validator.Validate
	logger     *slog.Logger
}

var _ ProductService = (*Service)(nil)

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore, path string, logger *slog.Logger) *Service {
	return &Service{
		repository: repo,
		path:       path,
		validate:   newValidator(),
		logger:     logger.With("component", "service"),
	}
}

// newValidator returns a validator that also knows the "finite" tag.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return v
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price"       validate:"finite,min=0"`
	Quantity    int     `json:"quantity"    validate:"min=0"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// field rules applied to single-field updates, matching ProductCreateDto.
var fieldRules = map[store.Field]string{
	store.FieldName:        "required,max=100",
	store.FieldDescription: "max=500",
	store.FieldPrice:       "finite,min=0",
	store.FieldQuantity:    "min=0",
}

// Load replaces the inventory with the contents of the data file.
// A missing file yields an empty inventory; the first save creates it.
func (s *Service) Load(ctx context.Context) error {
	err := s.repository.Load(s.path)
	if err == nil {
		s.logger.InfoContext(ctx, "Inventory loaded", "path", s.path, "count", s.repository.Len())
		return nil
	}
	if errors.Is(err, inverrors.ErrIO) && errors.Is(err, fs.ErrNotExist) {
		s.logger.WarnContext(ctx, "Inventory file does not exist, starting empty", "path", s.path)
		return nil
	}
	return fmt.Errorf("failed to load inventory from %s: %w", s.path, err)
}

// FindAll retrieves all products as ProductDTOs.
func (s *Service) FindAll(_ context.Context) []ProductDto {
	products := s.repository.FindAll()
	productDTOs := make([]ProductDto, len(products))
	for i, item := range products {
		productDTOs[i] = *toDto(item)
	}
	return productDTOs
}

// Rows returns the lazily formatted listing of the inventory.
func (s *Service) Rows(pf store.PriceFormatter) iter.Seq[string] {
	return s.repository.AllFormatted(pf)
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) FindByID(_ context.Context, id int) (*ProductDto, error) {
	product, ok := s.repository.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, inverrors.ErrProductNotFound)
	}
	return toDto(product), nil
}

// Detail renders the full description of a product.
func (s *Service) Detail(_ context.Context, id int, pf store.PriceFormatter) (string, error) {
	product, ok := s.repository.FindByID(id)
	if !ok {
		return "", fmt.Errorf("failed to fetch product by ID %d: %w", id, inverrors.ErrProductNotFound)
	}
	return product.FormatDetail(pf), nil
}

// Create validates the product, assigns it the next ID, adds it and saves the inventory.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if err := s.validate.Struct(product); err != nil {
		return nil, err
	}

	p := store.NewProduct(s.repository.NextID(), product.Name, product.Description, product.Price, product.Quantity)
	s.repository.Add(p)
	if err := s.save(ctx); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.InfoContext(ctx, "Product created", "ID", p.ID, "Name", p.Name)
	return toDto(p), nil
}

// Update converts value to the type of field, applies it and saves the inventory.
func (s *Service) Update(ctx context.Context, id int, field, value string) (*ProductDto, error) {
	if _, ok := s.repository.FindByID(id); !ok {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, inverrors.ErrProductNotFound)
	}
	f, err := store.ParseField(field)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	typed, err := s.convert(f, value)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	if err := s.repository.UpdateField(id, f.String(), typed); err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	if err := s.save(ctx); err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	updated, _ := s.repository.FindByID(id)
	s.logger.InfoContext(ctx, "Product updated", "ID", id, "field", f.String())
	return toDto(updated), nil
}

// DeleteByID removes a product and saves the inventory.
func (s *Service) DeleteByID(ctx context.Context, id int) error {
	if _, ok := s.repository.FindByID(id); !ok {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, inverrors.ErrProductNotFound)
	}
	s.repository.RemoveByID(id)
	if err := s.save(ctx); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}

	s.logger.InfoContext(ctx, "Product deleted", "ID", id)
	return nil
}

// convert parses the textual value of a field into the type the store expects.
func (s *Service) convert(f store.Field, value string) (any, error) {
	var typed any
	switch f {
	case store.FieldName, store.FieldDescription:
		typed = value
	case store.FieldPrice:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number: %q", inverrors.ErrInvalidValue, f, value)
		}
		typed = v
	case store.FieldQuantity:
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a whole number: %q", inverrors.ErrInvalidValue, f, value)
		}
		typed = v
	}
	if err := s.validate.Var(typed, fieldRules[f]); err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", inverrors.ErrInvalidValue, f, value, err)
	}
	return typed, nil
}

func (s *Service) save(ctx context.Context) error {
	if err := s.repository.Save(s.path); err != nil {
		s.logger.ErrorContext(ctx, "Error saving inventory", "path", s.path, "error", err)
		return err
	}
	s.logger.DebugContext(ctx, "Inventory saved", "path", s.path, "count", s.repository.Len())
	return nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
	}
}
