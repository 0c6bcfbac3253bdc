package commands

import (
	"context"
	"log/slog"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/clock"
)

// CreateOrderCommandHandler persists a new order in New status and announces it to
// every worker once the insert has committed.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	identities ports.IdentityResolver
	notifier   Notifier
	clock      clock.Clock
	logger     *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	identities ports.IdentityResolver,
	notifier Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		identities: identities,
		notifier:   notifier,
		clock:      clk,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle returns the identity assigned by the store. Only identities holding the
// creator role may create orders.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	if err := requireRole(ctx, h.identities, cmd.Creator(), user.RoleCreator, "create orders"); err != nil {
		return 0, err
	}

	o, err := order.NewOrder(cmd.Creator(), cmd.Items(), cmd.IsUrgent(), cmd.Deadline(), h.clock.Now())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	workers, err := h.identities.Workers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list workers, order not announced", "order_id", o.ID(), "error", err)
		return o.ID(), nil
	}
	delivered := h.notifier.Broadcast(ctx, o, notification.Available, workers)
	h.logger.InfoContext(ctx, "order created", "order_id", o.ID(), "workers", len(workers), "delivered", delivered)

	return o.ID(), nil
}
