package http

import (
	"time"

	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/order"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LineItem struct {
	Product  string  `json:"product"`
	Color    string  `json:"color"`
	Quantity float64 `json:"quantity"`
}

type NewOrder struct {
	Items    []LineItem `json:"items"`
	Urgent   bool       `json:"urgent"`
	Deadline string     `json:"deadline,omitempty"`
}

type Cancel struct {
	Reason string `json:"reason"`
}

type Created struct {
	ID int64 `json:"id"`
}

type Me struct {
	TelegramID string `json:"telegram_id"`
	Role       string `json:"role"`
	Name       string `json:"name"`
}

type Order struct {
	ID           int64      `json:"id"`
	CreatorID    string     `json:"creator_id"`
	WorkerID     *string    `json:"worker_id,omitempty"`
	Items        []LineItem `json:"items"`
	Urgent       bool       `json:"urgent"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ArchivedAt   *time.Time `json:"archived_at,omitempty"`
	CanceledAt   *time.Time `json:"canceled_at,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`
	Actions      []string   `json:"actions"`
}

func ordersFromViews(views []queries.OrderView) []Order {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		out = append(out, orderFromView(v))
	}
	return out
}

func orderFromView(v queries.OrderView) Order {
	var workerID *string
	if v.Worker != nil {
		w := v.Worker.String()
		workerID = &w
	}

	items := make([]LineItem, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, LineItem{Product: item.Product, Color: item.Color, Quantity: item.Quantity})
	}

	return Order{
		ID:           v.ID.Int64(),
		CreatorID:    v.Creator.String(),
		WorkerID:     workerID,
		Items:        items,
		Urgent:       v.Urgent,
		Deadline:     v.Deadline,
		Status:       v.Status.String(),
		CreatedAt:    v.CreatedAt,
		CompletedAt:  v.CompletedAt,
		ArchivedAt:   v.ArchivedAt,
		CanceledAt:   v.CanceledAt,
		CancelReason: v.CancelReason,
		Actions:      actionNames(v.Actions),
	}
}

func actionNames(actions []order.Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return out
}
