// Package money renders prices for display in the operator's locale.
package money

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formats amounts as localized numbers followed by the ISO currency code.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	scale   int
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "sv-SE" or "en-US".
// The currency is the one used in the locale's region.
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, confidence := currency.FromTag(tag)
	if confidence == language.No {
		return nil, fmt.Errorf("no currency known for locale %q", locale)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
		scale:   scale,
	}, nil
}

// Format renders amount with the currency's standard number of decimals.
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprintf("%v %s", number.Decimal(amount, number.Scale(f.scale)), f.unit)
}

// Currency returns the ISO 4217 code in use.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
