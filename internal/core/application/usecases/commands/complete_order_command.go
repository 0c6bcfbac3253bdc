package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand marks an in-progress order as done by its assigned worker.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	worker  kernel.UserID

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID kernel.OrderID, worker kernel.UserID) (CompleteOrderCommand, error) {
	command := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setWorker(worker),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return command, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c CompleteOrderCommand) Worker() kernel.UserID {
	return c.worker
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setWorker(worker kernel.UserID) error {
	if err := worker.Validate(); err != nil {
		return err
	}

	c.worker = worker
	return nil
}
