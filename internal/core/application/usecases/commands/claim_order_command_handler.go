package commands

import (
	"context"

	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/clock"
)

// ClaimOrderCommandHandler assigns a new order to the first worker whose conditional
// update lands. Every other concurrent claimant gets errs.ConflictError.
//
// Example:
//
//	cmd, _ := NewClaimOrderCommand(42, "2002")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // somebody else was faster, or the order is gone
//	}
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identities ports.IdentityResolver
	notifier   Notifier
	clock      clock.Clock
}

func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identities ports.IdentityResolver,
	notifier Notifier,
	clk clock.Clock,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		identities: identities,
		notifier:   notifier,
		clock:      clk,
	}
}

// Handle claims the order, then retracts every "available" message and sends the
// claimant a single "claimed" message.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := requireRole(ctx, h.identities, cmd.Worker(), user.RoleWorker, order.Claim.String()); err != nil {
		countTransition(order.Claim, err)
		return err
	}

	t, err := order.NewClaimTransition(cmd.OrderID(), cmd.Worker(), h.clock.Now())
	if err != nil {
		return err
	}

	o, err := applyTransition(ctx, h.uowFactory, t)
	if err != nil {
		return err
	}

	h.notifier.Retract(ctx, o.ID(), notification.Available)
	h.notifier.NotifyOne(ctx, o, notification.Claimed, cmd.Worker())

	return nil
}
