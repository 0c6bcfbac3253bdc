// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, persistence,
// and notification after the transaction has committed.
package commands

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// NotificationRepoFactory provides access to the notification ledger within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across orders and the notification ledger.
	// Used by purge, which must drop an order and its ledger rows together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   _ = uow.NotificationRepository().DeleteByOrder(ctx, id)
	//   _, _ = uow.OrderRepository().DeleteArchived(ctx, id)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		NotificationRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Notifier is the fan-out notifier as seen by command handlers. Calls are best-effort
// and never fail the command.
type Notifier interface {
	Broadcast(ctx context.Context, o *order.Order, class notification.Class, recipients []kernel.UserID) int
	NotifyOne(ctx context.Context, o *order.Order, class notification.Class, recipient kernel.UserID) bool
	Announce(ctx context.Context, o *order.Order, recipient kernel.UserID) bool
	Retract(ctx context.Context, orderID kernel.OrderID, class notification.Class) int
}
