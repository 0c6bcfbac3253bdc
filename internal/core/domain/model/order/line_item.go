package order

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

// ErrLineItemIsNotConstructed is returned when a LineItem literal bypassed NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is one requested product in an order: what, which colour/attribute, how much.
// Quantities are fractional (litres of paint in the original deployment).
type LineItem struct {
	product  string
	color    string
	quantity float64

	guard guard.ConstructorGuard
}

// NewLineItem validates and builds a line item. Product and color are trimmed and must not be empty;
// quantity must be a finite number greater than zero.
func NewLineItem(product, color string, quantity float64) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setProduct(product),
		item.setColor(color),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

func (i LineItem) Product() string {
	return i.product
}

func (i LineItem) Color() string {
	return i.color
}

func (i LineItem) Quantity() float64 {
	return i.quantity
}

func (i *LineItem) setProduct(product string) error {
	product = strings.TrimSpace(product)
	if product == "" {
		return errs.NewValueIsRequiredError("product")
	}
	i.product = product
	return nil
}

func (i *LineItem) setColor(color string) error {
	color = strings.TrimSpace(color)
	if color == "" {
		return errs.NewValueIsRequiredError("color")
	}
	i.color = color
	return nil
}

func (i *LineItem) setQuantity(quantity float64) error {
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%v is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
