package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/metrics"
	"workorders/internal/pkg/clock"
	"workorders/internal/pkg/errs"
)

// AutoArchiveOrdersCommandHandler is the auto-archive sweep. Each order is archived by
// its own conditional update on status alone, so a creator who cancels or archives in
// the meantime simply makes the sweep skip that order.
type AutoArchiveOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

func NewAutoArchiveOrdersCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) AutoArchiveOrdersCommandHandler {
	return AutoArchiveOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle returns how many orders were archived. Failures on individual orders do not
// stop the sweep; they are joined into the returned error.
func (h AutoArchiveOrdersCommandHandler) Handle(ctx context.Context, cmd AutoArchiveOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()
	ids, err := h.listDue(ctx, now.Add(-cmd.OlderThan()))
	if err != nil {
		return 0, err
	}

	archived := 0
	var failures []error
	for _, id := range ids {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}

		t, err := order.NewUnscopedArchiveTransition(id, now)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		_, err = applyTransition(ctx, h.uowFactory, t)
		switch {
		case err == nil:
			archived++
		case errors.Is(err, errs.ErrConflict):
			// changed since it was listed
		default:
			failures = append(failures, fmt.Errorf("archive order %d: %w", id, err))
		}
	}

	metrics.SweptOrdersTotal.WithLabelValues("archive").Add(float64(archived))
	return archived, errors.Join(failures...)
}

func (h AutoArchiveOrdersCommandHandler) listDue(ctx context.Context, cutoff time.Time) ([]kernel.OrderID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.OrderRepository().ListCompletedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}
