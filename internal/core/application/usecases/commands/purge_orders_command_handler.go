package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/metrics"
	"workorders/internal/pkg/clock"
)

// PurgeResult reports what one purge iteration removed.
type PurgeResult struct {
	Orders        int
	Notifications int64
}

// PurgeOrdersCommandHandler is the purge sweep.
type PurgeOrdersCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
}

func NewPurgeOrdersCommandHandler(uowFactory UoWFactory, clk clock.Clock) PurgeOrdersCommandHandler {
	return PurgeOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle deletes each expired archived order with its ledger rows in one transaction,
// then expires stale ledger rows of any order. An order unarchived after being listed
// is left alone because the delete is conditional on the archived status.
func (h PurgeOrdersCommandHandler) Handle(ctx context.Context, cmd PurgeOrdersCommand) (PurgeResult, error) {
	if err := cmd.Validate(); err != nil {
		return PurgeResult{}, err
	}

	now := h.clock.Now()
	ids, err := h.listExpired(ctx, now.Add(-cmd.ArchivedOlderThan()))
	if err != nil {
		return PurgeResult{}, err
	}

	var result PurgeResult
	var failures []error
	for _, id := range ids {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err())
			break
		}

		deleted, err := h.purgeOrder(ctx, id)
		if err != nil {
			failures = append(failures, fmt.Errorf("purge order %d: %w", id, err))
			continue
		}
		if deleted {
			result.Orders++
		}
	}
	metrics.SweptOrdersTotal.WithLabelValues("purge").Add(float64(result.Orders))

	removed, err := h.expireNotifications(ctx, now.Add(-cmd.NotificationsOlderThan()))
	if err != nil {
		failures = append(failures, fmt.Errorf("expire notifications: %w", err))
	}
	result.Notifications = removed

	return result, errors.Join(failures...)
}

func (h PurgeOrdersCommandHandler) listExpired(ctx context.Context, cutoff time.Time) ([]kernel.OrderID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.OrderRepository().ListArchivedBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ids, nil
}

func (h PurgeOrdersCommandHandler) purgeOrder(ctx context.Context, id kernel.OrderID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OrderRepository().DeleteArchived(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	if err = uow.NotificationRepository().DeleteByOrder(ctx, id); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}

func (h PurgeOrdersCommandHandler) expireNotifications(ctx context.Context, cutoff time.Time) (int64, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.NotificationRepository().DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return removed, nil
}
