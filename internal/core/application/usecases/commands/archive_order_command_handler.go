package commands

import (
	"context"

	"workorders/internal/core/domain/services"
	"workorders/internal/pkg/clock"
)

type ArchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.ArchivePolicy
	clock      clock.Clock
}

func NewArchiveOrderCommandHandler(
	uowFactory OrderUoWFactory,
	policy services.ArchivePolicy,
	clk clock.Clock,
) ArchiveOrderCommandHandler {
	return ArchiveOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		clock:      clk,
	}
}

// Handle archives a completed order. Nothing is sent: completed orders have no
// outstanding messages.
func (h ArchiveOrderCommandHandler) Handle(ctx context.Context, cmd ArchiveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	t, err := h.policy.Transition(cmd.OrderID(), cmd.Actor(), h.clock.Now())
	if err != nil {
		return err
	}

	_, err = applyTransition(ctx, h.uowFactory, t)
	return err
}
