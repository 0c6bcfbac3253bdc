package commands

import (
	"errors"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineItemInput is one requested line as received from an adapter.
type LineItemInput struct {
	Product  string
	Color    string
	Quantity float64
}

// CreateOrderCommand represents a creator's request to issue a new work order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("1001", []LineItemInput{
//	    {Product: "Facade paint", Color: "RAL 9003", Quantity: 5},
//	}, true, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	id, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order #%d announced to workers", id)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	creator  kernel.UserID
	items    []order.LineItem
	urgent   bool
	deadline *time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates every line item and reports all problems at once.
func NewCreateOrderCommand(
	creator kernel.UserID,
	items []LineItemInput,
	urgent bool,
	deadline *time.Time,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		urgent:   urgent,
		deadline: deadline,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCreator(creator),
		command.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Creator() kernel.UserID {
	return c.creator
}

// Items returns a copy of the validated line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	out := make([]order.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c CreateOrderCommand) IsUrgent() bool {
	return c.urgent
}

func (c CreateOrderCommand) Deadline() *time.Time {
	return c.deadline
}

func (c *CreateOrderCommand) setCreator(creator kernel.UserID) error {
	if err := creator.Validate(); err != nil {
		return err
	}

	c.creator = creator
	return nil
}

func (c *CreateOrderCommand) setItems(inputs []LineItemInput) error {
	if len(inputs) == 0 || len(inputs) > order.MaxLineItems {
		return errs.NewValueIsOutOfRangeError("items", len(inputs), 1, order.MaxLineItems)
	}

	items := make([]order.LineItem, 0, len(inputs))
	var problems []error
	for idx, in := range inputs {
		item, err := order.NewLineItem(in.Product, in.Color, in.Quantity)
		if err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err))
			continue
		}
		items = append(items, item)
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}

	c.items = items
	return nil
}
