package store

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	inverrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/gocarina/gocsv"
	"github.com/google/renameio/v2"
)

// csvRow is the on-disk shape of a product. Cells are kept as text so that
// numeric failures can be reported with their row and column.
type csvRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Description string `csv:"desc"`
	Price       string `csv:"price"`
	Quantity    string `csv:"quantity"`
}

var errMissingValue = errors.New("missing value")

// Load reads the inventory file at path and replaces the current products.
func (s *Inventory) Load(path string) error {
	products, err := readFile(path)
	if err != nil {
		return err
	}
	s.products = products
	return nil
}

// Save writes the current products to path, replacing the file atomically.
func (s *Inventory) Save(path string) error {
	rows := make([]csvRow, len(s.products))
	for i, p := range s.products {
		rows[i] = toRow(p)
	}
	return writeFile(path, rows)
}

func readFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inverrors.ErrIO, err)
	}
	// A file without even a header holds no products.
	if len(bytes.TrimSpace(data)) == 0 {
		return []Product{}, nil
	}

	var rows []csvRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", inverrors.ErrParse, path, err)
	}

	products := make([]Product, 0, len(rows))
	for i, row := range rows {
		p, err := fromRow(i+1, row)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func writeFile(path string, rows []csvRow) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("%w: %w", inverrors.ErrIO, err)
	}
	defer func() { _ = pending.Cleanup() }()

	if err := gocsv.Marshal(rows, pending); err != nil {
		return fmt.Errorf("%w: writing %s: %w", inverrors.ErrIO, path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", inverrors.ErrIO, path, err)
	}
	return nil
}

func fromRow(n int, row csvRow) (Product, error) {
	id, err := parseInt(n, "id", row.ID)
	if err != nil {
		return Product{}, err
	}
	price, err := parsePrice(n, row.Price)
	if err != nil {
		return Product{}, err
	}
	quantity, err := parseInt(n, "quantity", row.Quantity)
	if err != nil {
		return Product{}, err
	}
	return NewProduct(id, row.Name, row.Description, price, quantity), nil
}

func toRow(p Product) csvRow {
	return csvRow{
		ID:          strconv.Itoa(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:    strconv.Itoa(p.Quantity),
	}
}

func parseInt(n int, column, raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, &inverrors.ParseError{Row: n, Column: column, Err: errMissingValue}
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, &inverrors.ParseError{Row: n, Column: column, Value: raw, Err: err}
	}
	return v, nil
}

func parsePrice(n int, raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, &inverrors.ParseError{Row: n, Column: "price", Err: errMissingValue}
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &inverrors.ParseError{Row: n, Column: "price", Value: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &inverrors.ParseError{Row: n, Column: "price", Value: raw, Err: strconv.ErrSyntax}
	}
	return v, nil
}
