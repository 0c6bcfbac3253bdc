package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrArchiveOrderCommandIsNotConstructed = errors.New(
	"ArchiveOrderCommand must be created via NewArchiveOrderCommand constructor",
)

// ArchiveOrderCommand hides a completed order from active lists. Who counts as a
// legitimate actor is decided by the configured archive policy.
type ArchiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	actor   kernel.UserID

	guard guard.ConstructorGuard
}

func NewArchiveOrderCommand(orderID kernel.OrderID, actor kernel.UserID) (ArchiveOrderCommand, error) {
	command := ArchiveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return ArchiveOrderCommand{}, err
	}

	return command, nil
}

func (c ArchiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrderCommandIsNotConstructed)
}

func (c ArchiveOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c ArchiveOrderCommand) Actor() kernel.UserID {
	return c.actor
}

func (c *ArchiveOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ArchiveOrderCommand) setActor(actor kernel.UserID) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
