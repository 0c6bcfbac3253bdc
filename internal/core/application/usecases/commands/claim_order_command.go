package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand asks to assign a new order to the requesting worker.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	worker  kernel.UserID

	guard guard.ConstructorGuard
}

func NewClaimOrderCommand(orderID kernel.OrderID, worker kernel.UserID) (ClaimOrderCommand, error) {
	command := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setWorker(worker),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return command, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c ClaimOrderCommand) Worker() kernel.UserID {
	return c.worker
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setWorker(worker kernel.UserID) error {
	if err := worker.Validate(); err != nil {
		return err
	}

	c.worker = worker
	return nil
}
