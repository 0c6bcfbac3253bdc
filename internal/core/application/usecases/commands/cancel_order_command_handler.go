package commands

import (
	"context"

	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/clock"
)

// CancelOrderCommandHandler withdraws an order on behalf of its creator.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   Notifier
	clock      clock.Clock
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier Notifier, clk clock.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clk,
	}
}

// Handle cancels the order and takes back whatever claim buttons are still out there.
// Canceling twice yields errs.ConflictError.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	t, err := order.NewCancelTransition(cmd.OrderID(), cmd.Creator(), cmd.Reason(), h.clock.Now())
	if err != nil {
		return err
	}

	o, err := applyTransition(ctx, h.uowFactory, t)
	if err != nil {
		return err
	}

	h.notifier.Retract(ctx, o.ID(), notification.Available)
	h.notifier.Retract(ctx, o.ID(), notification.Claimed)

	return nil
}
