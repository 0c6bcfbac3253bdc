package ports

import (
	"context"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
)

// NotificationRepository is the notification ledger: outstanding push messages per order and class.
type NotificationRepository interface {
	Add(ctx context.Context, record *notification.Record) error

	// ListByOrder returns the records of one class for an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.OrderID, class notification.Class) ([]*notification.Record, error)

	// Delete removes the given records. Unknown ids are ignored.
	Delete(ctx context.Context, ids ...kernel.UUID) error

	// DeleteByOrder removes every record of an order regardless of class.
	DeleteByOrder(ctx context.Context, orderID kernel.OrderID) error

	// DeleteCreatedBefore removes records older than cutoff and returns how many were removed.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
