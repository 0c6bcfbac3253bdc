// Package ports defines the contracts between the work order core and its infrastructure.
// These interfaces establish contracts between the domain layer and adapters,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Orders are never updated wholesale. Every status change goes through ApplyTransition,
// which the store must execute as one conditional statement.
type OrderRepository interface {
	// Add persists a new order in New status and assigns its identity on the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	// Returns errs.ObjectNotFoundError when no order has the id.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// ApplyTransition performs the compare-and-set described by t.
	// It reports whether exactly one row matched the predicate; false means the race was
	// lost, the status or actor did not match, or the id is unknown.
	//
	// Example:
	//   t, _ := order.NewClaimTransition(id, worker, now)
	//   applied, err := repo.ApplyTransition(ctx, t)
	//   if err != nil {
	//       return err
	//   }
	//   if !applied {
	//       return errs.NewConflictError("claim", id, "already claimed or not found")
	//   }
	ApplyTransition(ctx context.Context, t order.Transition) (bool, error)

	// ListCompletedBefore returns completed orders whose completion is older than cutoff.
	ListCompletedBefore(ctx context.Context, cutoff time.Time) ([]kernel.OrderID, error)

	// ListArchivedBefore returns archived orders whose archival is older than cutoff.
	ListArchivedBefore(ctx context.Context, cutoff time.Time) ([]kernel.OrderID, error)

	// DeleteArchived removes an order and its items if it is still archived.
	// Reports whether a row was deleted.
	DeleteArchived(ctx context.Context, id kernel.OrderID) (bool, error)
}
