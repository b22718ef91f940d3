package store

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Column widths of FormatRow, in runes.
const (
	IDWidth          = 5
	NameWidth        = 40
	DescriptionWidth = 50
	PriceWidth       = 15
	QuantityWidth    = 10
)

const truncationMarker = "..."

// PriceFormatter renders a price for display.
type PriceFormatter interface {
	Format(amount float64) string
}

// Product represents a product entity in the store.
type Product struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// NewProduct stores the given values verbatim, without validation.
func NewProduct(id int, name, description string, price float64, quantity int) Product {
	return Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}
}

// FormatRow renders the product as one fixed-width line.
func (p Product) FormatRow(pf PriceFormatter) string {
	return fmt.Sprintf("%-*s %-*s %-*s %*s %*s",
		IDWidth, strconv.Itoa(p.ID),
		NameWidth, truncate(p.Name, NameWidth),
		DescriptionWidth, abbreviate(p.Description, DescriptionWidth),
		PriceWidth, pf.Format(p.Price),
		QuantityWidth, strconv.Itoa(p.Quantity),
	)
}

// FormatDetail renders the product as a label: value block, one field per line.
func (p Product) FormatDetail(pf PriceFormatter) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("ID: %d\n", p.ID))
	b.WriteString(fmt.Sprintf("Name: %s\n", p.Name))
	b.WriteString(fmt.Sprintf("Description: %s\n", p.Description))
	b.WriteString(fmt.Sprintf("Price: %s\n", pf.Format(p.Price)))
	b.WriteString(fmt.Sprintf("Quantity: %d", p.Quantity))
	return b.String()
}

// truncate cuts s to at most width runes.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

// abbreviate cuts s to width runes, the last of which are the truncation marker.
func abbreviate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width-len(truncationMarker)]) + truncationMarker
}
