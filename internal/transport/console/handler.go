// Package console provides the interactive, menu-driven inventory terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	inverrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/service"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gookit/color"
)

const menu = "\nOptions: 'A' add product | 'U' update product | 'R' remove product | " +
	"'L' list inventory | 'S' show product details | 'Q' quit\n"

var separator = strings.Repeat("-", store.IDWidth+store.NameWidth+store.DescriptionWidth+store.PriceWidth+store.QuantityWidth+4)

// Options tune the presentation.
type Options struct {
	Color bool
}

type Handler struct {
	service service.ProductService
	prices  store.PriceFormatter
	in      io.Reader
	out     io.Writer
	opts    Options
	logger  *slog.Logger
}

// NewHandler creates a console reading commands from in and writing to out.
func NewHandler(service service.ProductService, prices store.PriceFormatter, in io.Reader, out io.Writer, opts Options, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		prices:  prices,
		in:      in,
		out:     out,
		opts:    opts,
		logger:  logger.With("component", "console"),
	}
}

// Run serves operator commands until 'Q', the end of input, or ctx is done.
// It returns nil on 'Q' and end of input, and ctx.Err() on cancellation.
func (h *Handler) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := startInput(ctx, h.in)
	for {
		h.print(menu)
		choice, err := h.prompt(ctx, in, "Your choice: ")
		if err != nil {
			return endOfSession(err)
		}

		cmdCtx := logger.WithCommandID(ctx, uuid.NewString())
		command := strings.ToUpper(strings.TrimSpace(choice))
		h.logger.DebugContext(cmdCtx, "Received command", "command", command)

		switch command {
		case "Q":
			h.print("\nExiting.\n")
			return nil
		case "A":
			err = h.add(cmdCtx, in)
		case "U":
			err = h.update(cmdCtx, in)
		case "R":
			err = h.remove(cmdCtx, in)
		case "L":
			h.list()
		case "S":
			err = h.show(cmdCtx, in)
		default:
			h.print("\nInvalid choice, try again.\n")
		}
		if err != nil {
			return endOfSession(err)
		}
	}
}

// add handles the creation of a new product.
func (h *Handler) add(ctx context.Context, in *input) error {
	var answers [4]string
	labels := [4]string{"Product name: ", "Product description: ", "Price: ", "Quantity: "}
	for i, label := range labels {
		answer, err := h.prompt(ctx, in, label)
		if err != nil {
			return err
		}
		answers[i] = answer
	}

	price, errPrice := strconv.ParseFloat(strings.TrimSpace(answers[2]), 64)
	quantity, errQuantity := strconv.Atoi(strings.TrimSpace(answers[3]))
	if errPrice != nil || errQuantity != nil {
		h.logger.WarnContext(ctx, "Invalid numeric input", "price", answers[2], "quantity", answers[3])
		h.print("\nInvalid input, try again.\n")
		return nil
	}

	created, err := h.service.Create(ctx, service.ProductCreateDto{
		Name:        answers[0],
		Description: answers[1],
		Price:       price,
		Quantity:    quantity,
	})
	if err != nil {
		h.report(ctx, "Failed to add product", err)
		return nil
	}
	h.print(fmt.Sprintf("\nProduct %d has been added.\n%s\n", created.ID, separator))
	return nil
}

// update handles changing a single field of a product.
func (h *Handler) update(ctx context.Context, in *input) error {
	id, ok, err := h.promptID(ctx, in, "ID of the product to update: ")
	if err != nil || !ok {
		return err
	}
	if _, err := h.service.FindByID(ctx, id); err != nil {
		h.report(ctx, "Failed to update product", err)
		return nil
	}

	h.print(fmt.Sprintf("\nUpdating product with ID %d:\n", id))
	field, err := h.prompt(ctx, in, "Which field do you want to change? (name, desc, price, quantity): ")
	if err != nil {
		return err
	}
	field = strings.ToLower(strings.TrimSpace(field))
	value, err := h.prompt(ctx, in, fmt.Sprintf("New value for %s: ", field))
	if err != nil {
		return err
	}

	if _, err := h.service.Update(ctx, id, field, value); err != nil {
		h.report(ctx, "Failed to update product", err)
		return nil
	}
	h.print(fmt.Sprintf("\nThe product has been updated.\n%s\n", separator))
	return nil
}

// remove handles deleting a product.
func (h *Handler) remove(ctx context.Context, in *input) error {
	id, ok, err := h.promptID(ctx, in, "ID of the product to remove: ")
	if err != nil || !ok {
		return err
	}
	if err := h.service.DeleteByID(ctx, id); err != nil {
		h.report(ctx, "Failed to remove product", err)
		return nil
	}
	h.print(fmt.Sprintf("\nProduct with ID %d has been removed.\n%s\n", id, separator))
	return nil
}

// list prints the inventory table.
func (h *Handler) list() {
	header := fmt.Sprintf("%-*s %-*s %-*s %*s %*s",
		store.IDWidth, "#",
		store.NameWidth, "NAME",
		store.DescriptionWidth, "DESC",
		store.PriceWidth, "PRICE",
		store.QuantityWidth, "QUANTITY")
	if h.opts.Color {
		header = color.Yellow.Sprint(header)
	}

	var b strings.Builder
	b.WriteString(separator + "\n")
	b.WriteString(header + "\n")
	b.WriteString(separator + "\n")
	for row := range h.service.Rows(h.prices) {
		b.WriteString(row + "\n")
	}
	b.WriteString(separator + "\n")
	h.print(b.String())
}

// show prints the details of one product.
func (h *Handler) show(ctx context.Context, in *input) error {
	id, ok, err := h.promptID(ctx, in, "ID of the product to show: ")
	if err != nil || !ok {
		return err
	}
	detail, err := h.service.Detail(ctx, id, h.prices)
	if err != nil {
		h.report(ctx, "Failed to show product", err)
		return nil
	}
	h.print(fmt.Sprintf("\nProduct details:\n%s\n%s\n", detail, separator))
	return nil
}

// report tells the operator why a command failed and logs it.
func (h *Handler) report(ctx context.Context, action string, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		var b strings.Builder
		b.WriteString("\nInvalid input:\n")
		for _, fieldErr := range validationErrors {
			// fieldErr.Tag() returns "required", "max", etc.
			b.WriteString(fmt.Sprintf("  %s: failed on rule: %s\n", fieldErr.Field(), fieldErr.Tag()))
		}
		h.logger.WarnContext(ctx, "Validation errors occurred", "errors", err)
		h.print(b.String())
	case errors.Is(err, inverrors.ErrProductNotFound):
		h.logger.WarnContext(ctx, "Product not found", "error", err)
		h.print("\nNo product with that ID was found.\n")
	case errors.Is(err, inverrors.ErrInvalidField), errors.Is(err, inverrors.ErrInvalidValue):
		h.logger.WarnContext(ctx, "Invalid update", "error", err)
		h.print(fmt.Sprintf("\nInvalid input: %v\n", err))
	default:
		h.logger.ErrorContext(ctx, action, "error", err)
		h.print(fmt.Sprintf("\n%s: %v\n", action, err))
	}
}

func (h *Handler) promptID(ctx context.Context, in *input, label string) (int, bool, error) {
	answer, err := h.prompt(ctx, in, label)
	if err != nil {
		return 0, false, err
	}
	id, convErr := strconv.Atoi(strings.TrimSpace(answer))
	if convErr != nil {
		h.logger.WarnContext(ctx, "Invalid product ID", "input", answer)
		h.print("\nInvalid ID, try again.\n")
		return 0, false, nil
	}
	return id, true, nil
}

func (h *Handler) prompt(ctx context.Context, in *input, label string) (string, error) {
	h.print(label)
	return in.next(ctx)
}

func (h *Handler) print(s string) {
	_, _ = io.WriteString(h.out, s)
}

// endOfSession maps the end of input to a normal exit.
func endOfSession(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
