package store

import (
	"fmt"
	"strings"

	inverrors "github.com/abgdnv/inventory/internal/errors"
)

// Field names a writable product attribute. The identifier is not a Field:
// it is assigned once and never rewritten.
type Field int

const (
	FieldName Field = iota + 1
	FieldDescription
	FieldPrice
	FieldQuantity
)

var fieldNames = map[Field]string{
	FieldName:        "name",
	FieldDescription: "desc",
	FieldPrice:       "price",
	FieldQuantity:    "quantity",
}

var fieldAliases = map[string]Field{
	"name":        FieldName,
	"desc":        FieldDescription,
	"description": FieldDescription,
	"price":       FieldPrice,
	"quantity":    FieldQuantity,
}

// ParseField resolves a field name, case-insensitively.
// Returns ErrInvalidField for anything outside the writable set.
func ParseField(name string) (Field, error) {
	f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (expected one of name, desc, price, quantity)", inverrors.ErrInvalidField, name)
	}
	return f, nil
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// setters maps each writable field to a typed assignment.
var setters = map[Field]func(p *Product, value any) error{
	FieldName: func(p *Product, value any) error {
		v, ok := value.(string)
		if !ok {
			return typeMismatch(FieldName, "string", value)
		}
		p.Name = v
		return nil
	},
	FieldDescription: func(p *Product, value any) error {
		v, ok := value.(string)
		if !ok {
			return typeMismatch(FieldDescription, "string", value)
		}
		p.Description = v
		return nil
	},
	FieldPrice: func(p *Product, value any) error {
		v, ok := value.(float64)
		if !ok {
			return typeMismatch(FieldPrice, "float64", value)
		}
		p.Price = v
		return nil
	},
	FieldQuantity: func(p *Product, value any) error {
		v, ok := value.(int)
		if !ok {
			return typeMismatch(FieldQuantity, "int", value)
		}
		p.Quantity = v
		return nil
	},
}

func typeMismatch(f Field, want string, got any) error {
	return fmt.Errorf("%w: field %s expects %s, got %T", inverrors.ErrInvalidValue, f, want, got)
}
