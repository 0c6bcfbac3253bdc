package queries

import (
	"context"

	"workorders/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// ListWorkerOrdersQueryHandler reads the worker tabs straight from the database.
type ListWorkerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListWorkerOrdersQueryHandler(db *gorm.DB) ListWorkerOrdersQueryHandler {
	return ListWorkerOrdersQueryHandler{db: db}
}

// Handle returns the orders of the selected tab with the actions the worker may take on each.
func (h ListWorkerOrdersQueryHandler) Handle(ctx context.Context, query ListWorkerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	worker := query.Worker()
	var (
		where string
		args  []any
	)
	switch query.Tab() {
	case TabNew:
		where, args = "status = ?", []any{order.New.String()}
	case TabMine:
		where, args = "status = ? AND worker_id = ?", []any{order.InProgress.String(), worker.String()}
	case TabDone:
		where, args = "status IN ? AND worker_id = ?",
			[]any{[]string{order.Completed.String(), order.Archived.String()}, worker.String()}
	default:
		where, args = "status = ? AND urgent = ?", []any{order.New.String(), true}
	}

	orders, err := loadOrders(ctx, h.db, where, args...)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Actions = order.ActionsFor(orders[i].Status, orders[i].Worker, worker)
	}

	return orders, nil
}
