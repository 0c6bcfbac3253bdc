package commands

import (
	"context"

	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/clock"
)

type UnarchiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewUnarchiveOrderCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) UnarchiveOrderCommandHandler {
	return UnarchiveOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle moves an archived order back to completed and clears its archival time.
// The completion time is kept, so a long-completed order is picked up again by the
// next auto-archive sweep.
func (h UnarchiveOrderCommandHandler) Handle(ctx context.Context, cmd UnarchiveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	t, err := order.NewUnarchiveTransition(cmd.OrderID(), cmd.Creator(), h.clock.Now())
	if err != nil {
		return err
	}

	_, err = applyTransition(ctx, h.uowFactory, t)
	return err
}
