package notification

import (
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
)

// Message is what the push transport delivers: text plus the action buttons legal
// for the order's current state.
type Message struct {
	OrderID kernel.OrderID
	Text    string
	Actions []order.Action
}
