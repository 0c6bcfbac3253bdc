// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for the order lists shown to creators and workers.
package queries

import (
	"context"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// LineItemView is one line of an order in the read model.
type LineItemView struct {
	Product  string
	Color    string
	Quantity float64
}

// OrderView is the read model of an order as listed to a creator or a worker.
// Actions holds what the viewing worker may trigger and is empty in creator lists.
type OrderView struct {
	ID           kernel.OrderID
	Creator      kernel.UserID
	Worker       *kernel.UserID
	Items        []LineItemView
	Urgent       bool
	Deadline     *time.Time
	Status       order.Status
	CreatedAt    time.Time
	CompletedAt  *time.Time
	ArchivedAt   *time.Time
	CanceledAt   *time.Time
	CancelReason string
	Actions      []order.Action
}

const selectOrders = `
	SELECT
		id,
		creator_id,
		worker_id,
		urgent,
		deadline,
		status,
		created_at,
		completed_at,
		archived_at,
		canceled_at,
		cancel_reason
	FROM orders`

// listingOrder puts urgent orders first, newest first within each group.
const listingOrder = `
	ORDER BY urgent DESC, created_at DESC, id DESC`

// loadOrders runs the listing query with the given filter and attaches the line items.
func loadOrders(ctx context.Context, db *gorm.DB, where string, args ...any) ([]OrderView, error) {
	rows, err := db.WithContext(ctx).Raw(selectOrders+"\n\tWHERE "+where+listingOrder, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			view     OrderView
			id       int64
			creator  string
			worker   *string
			status   string
			deadline *time.Time
		)
		err = rows.Scan(
			&id,
			&creator,
			&worker,
			&view.Urgent,
			&deadline,
			&status,
			&view.CreatedAt,
			&view.CompletedAt,
			&view.ArchivedAt,
			&view.CanceledAt,
			&view.CancelReason,
		)
		if err != nil {
			return nil, err
		}

		view.Status, err = order.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		view.ID = kernel.OrderID(id)
		view.Creator = kernel.UserID(creator)
		if worker != nil {
			w := kernel.UserID(*worker)
			view.Worker = &w
		}
		view.Deadline = utc(deadline)
		view.CreatedAt = view.CreatedAt.UTC()
		view.CompletedAt = utc(view.CompletedAt)
		view.ArchivedAt = utc(view.ArchivedAt)
		view.CanceledAt = utc(view.CanceledAt)

		index[id] = len(orders)
		orders = append(orders, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return orders, nil
	}
	if err = attachItems(ctx, db, orders, index); err != nil {
		return nil, err
	}

	return orders, nil
}

func attachItems(ctx context.Context, db *gorm.DB, orders []OrderView, index map[int64]int) error {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.Int64())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product,
			color,
			quantity
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int64
			item    LineItemView
		)
		if err = rows.Scan(&orderID, &item.Product, &item.Color, &item.Quantity); err != nil {
			return err
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return rows.Err()
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
