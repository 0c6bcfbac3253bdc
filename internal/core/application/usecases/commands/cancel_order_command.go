package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand withdraws an order that has not been archived or canceled yet.
// The reason is optional free text; it is normalised and cut to order.MaxCancelReasonLength runes.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(42, "1001", "customer changed the colour")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNotAuthorized):
//	    // somebody else's order
//	case errors.Is(err, errs.ErrConflict):
//	    // already canceled or archived
//	}
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	creator kernel.UserID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.OrderID, creator kernel.UserID, reason string) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		reason: order.NormalizeCancelReason(reason),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCreator(creator),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CancelOrderCommand) Creator() kernel.UserID {
	return c.creator
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setCreator(creator kernel.UserID) error {
	if err := creator.Validate(); err != nil {
		return err
	}

	c.creator = creator
	return nil
}
