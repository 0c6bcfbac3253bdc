package commands

import (
	"context"

	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/clock"
)

// CompleteOrderCommandHandler finishes an in-progress order. The assignee check is part
// of the conditional update, so a worker cannot complete somebody else's order.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identities ports.IdentityResolver
	notifier   Notifier
	clock      clock.Clock
}

func NewCompleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identities ports.IdentityResolver,
	notifier Notifier,
	clk clock.Clock,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		identities: identities,
		notifier:   notifier,
		clock:      clk,
	}
}

// Handle completes the order, retracts the claimant's "claimed" message and tells
// the creator who finished it.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := requireRole(ctx, h.identities, cmd.Worker(), user.RoleWorker, order.Complete.String()); err != nil {
		countTransition(order.Complete, err)
		return err
	}

	t, err := order.NewCompleteTransition(cmd.OrderID(), cmd.Worker(), h.clock.Now())
	if err != nil {
		return err
	}

	o, err := applyTransition(ctx, h.uowFactory, t)
	if err != nil {
		return err
	}

	h.notifier.Retract(ctx, o.ID(), notification.Claimed)
	h.notifier.Announce(ctx, o, o.Creator())

	return nil
}
