package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrUnarchiveOrderCommandIsNotConstructed = errors.New(
	"UnarchiveOrderCommand must be created via NewUnarchiveOrderCommand constructor",
)

// UnarchiveOrderCommand brings an archived order back to completed.
type UnarchiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	creator kernel.UserID

	guard guard.ConstructorGuard
}

func NewUnarchiveOrderCommand(orderID kernel.OrderID, creator kernel.UserID) (UnarchiveOrderCommand, error) {
	command := UnarchiveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCreator(creator),
	); err != nil {
		return UnarchiveOrderCommand{}, err
	}

	return command, nil
}

func (c UnarchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnarchiveOrderCommandIsNotConstructed)
}

func (c UnarchiveOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c UnarchiveOrderCommand) Creator() kernel.UserID {
	return c.creator
}

func (c *UnarchiveOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UnarchiveOrderCommand) setCreator(creator kernel.UserID) error {
	if err := creator.Validate(); err != nil {
		return err
	}

	c.creator = creator
	return nil
}
