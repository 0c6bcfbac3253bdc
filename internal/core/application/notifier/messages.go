package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
)

const deadlineLayout = "2006-01-02"

// AvailableMessage announces a new order to workers with a claim button.
func AvailableMessage(o *order.Order) notification.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 New order #%d", o.ID())
	if o.IsUrgent() {
		b.WriteString(" 🔥 URGENT")
	}
	writeDetails(&b, o)

	return notification.Message{OrderID: o.ID(), Text: b.String(), Actions: order.New.Actions()}
}

// ClaimedMessage confirms the claim to the winning worker with a complete button.
func ClaimedMessage(o *order.Order) notification.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Order #%d is yours", o.ID())
	writeDetails(&b, o)

	return notification.Message{OrderID: o.ID(), Text: b.String(), Actions: order.InProgress.Actions()}
}

// CompletedMessage tells the creator who finished the order.
func CompletedMessage(o *order.Order, workerName string) notification.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 Order #%d completed by %s", o.ID(), workerName)
	writeDetails(&b, o)

	return notification.Message{OrderID: o.ID(), Text: b.String()}
}

func writeDetails(b *strings.Builder, o *order.Order) {
	if d := o.Deadline(); d != nil {
		fmt.Fprintf(b, "\nDeadline: %s", d.UTC().Format(deadlineLayout))
	}
	for _, item := range o.Items() {
		fmt.Fprintf(b, "\n• %s, %s: %s l",
			item.Product(), item.Color(), strconv.FormatFloat(item.Quantity(), 'f', -1, 64))
	}
}
