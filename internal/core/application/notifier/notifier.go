// Package notifier fans lifecycle messages out to recipients through the push transport
// and keeps the notification ledger in step with what was delivered.
//
// Every public method is best-effort: failures are logged and counted, never returned,
// so a transport outage cannot fail a lifecycle transition that already committed.
package notifier

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/ports"
	"workorders/internal/metrics"
	"workorders/internal/pkg/clock"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultParallelism = 8
)

// OrderReader re-reads an order after delivery to detect a transition that raced the send.
type OrderReader interface {
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)
}

type Config struct {
	// Timeout bounds one notifier call, detached from the caller's cancellation.
	Timeout time.Duration
	// Parallelism bounds concurrent sends during a broadcast and concurrent deletes during a retraction.
	Parallelism int
}

// Notifier is the fan-out notifier.
//
// Example:
//
//	n := notifier.New(transport, ledger, orderRepo, identities, clock.System{}, logger, notifier.Config{})
//	delivered := n.Broadcast(ctx, o, notification.Available, workers)
//	...
//	n.Retract(ctx, o.ID(), notification.Available)
type Notifier struct {
	transport  ports.PushTransport
	ledger     ports.NotificationRepository
	orders     OrderReader
	identities ports.IdentityResolver
	clock      clock.Clock
	logger     *slog.Logger
	cfg        Config
}

func New(
	transport ports.PushTransport,
	ledger ports.NotificationRepository,
	orders OrderReader,
	identities ports.IdentityResolver,
	clk clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Notifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = DefaultParallelism
	}
	return &Notifier{
		transport:  transport,
		ledger:     ledger,
		orders:     orders,
		identities: identities,
		clock:      clk,
		logger:     logger.With("component", "notifier"),
		cfg:        cfg,
	}
}

// Broadcast sends the class message for o to every recipient and records each delivery.
// It returns how many recipients got the message.
func (n *Notifier) Broadcast(ctx context.Context, o *order.Order, class notification.Class, recipients []kernel.UserID) int {
	ctx, cancel := n.detach(ctx)
	defer cancel()

	msg := n.messageFor(o, class)

	var delivered atomic.Int64
	var g errgroup.Group
	g.SetLimit(n.cfg.Parallelism)
	for _, recipient := range recipients {
		g.Go(func() error {
			if n.deliver(ctx, msg, recipient, class) {
				delivered.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	n.reconcile(ctx, o.ID(), class)

	return int(delivered.Load())
}

// NotifyOne sends the class message for o to a single recipient and records it.
func (n *Notifier) NotifyOne(ctx context.Context, o *order.Order, class notification.Class, recipient kernel.UserID) bool {
	ctx, cancel := n.detach(ctx)
	defer cancel()

	ok := n.deliver(ctx, n.messageFor(o, class), recipient, class)
	n.reconcile(ctx, o.ID(), class)

	return ok
}

// Announce sends the one-off completion notice. It is not recorded in the ledger.
func (n *Notifier) Announce(ctx context.Context, o *order.Order, recipient kernel.UserID) bool {
	ctx, cancel := n.detach(ctx)
	defer cancel()

	workerName := ""
	if w := o.Worker(); w != nil {
		name, err := n.identities.DisplayNameOf(ctx, *w)
		if err != nil {
			n.logger.WarnContext(ctx, "failed to resolve worker name", "order_id", o.ID(), "error", err)
			name = w.String()
		}
		workerName = name
	}

	if _, err := n.transport.Send(ctx, recipient, CompletedMessage(o, workerName)); err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues("completed").Inc()
		n.logger.WarnContext(ctx, "failed to send completion notice",
			"order_id", o.ID(), "recipient", recipient, "error", err)
		return false
	}
	metrics.NotificationsSentTotal.WithLabelValues("completed").Inc()
	return true
}

// Retract deletes every outstanding message of class for the order and clears the ledger rows.
// Calling it again for an already cleared class is a no-op. It returns how many records were cleared.
func (n *Notifier) Retract(ctx context.Context, orderID kernel.OrderID, class notification.Class) int {
	ctx, cancel := n.detach(ctx)
	defer cancel()

	return n.retract(ctx, orderID, class)
}

func (n *Notifier) retract(ctx context.Context, orderID kernel.OrderID, class notification.Class) int {
	records, err := n.ledger.ListByOrder(ctx, orderID, class)
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to list notification records",
			"order_id", orderID, "class", class.String(), "error", err)
		return 0
	}
	if len(records) == 0 {
		return 0
	}

	ids := make([]kernel.UUID, len(records))
	var g errgroup.Group
	g.SetLimit(n.cfg.Parallelism)
	for i, r := range records {
		ids[i] = r.ID()
		g.Go(func() error {
			if err := n.transport.Retract(ctx, r.Handle()); err != nil {
				metrics.RetractionsTotal.WithLabelValues(class.String(), metrics.ResultFailed).Inc()
				n.logger.WarnContext(ctx, "failed to retract message",
					"order_id", orderID, "recipient", r.Recipient(), "handle", r.Handle(), "error", err)
				return nil
			}
			metrics.RetractionsTotal.WithLabelValues(class.String(), metrics.ResultOK).Inc()
			return nil
		})
	}
	_ = g.Wait()

	if err := n.ledger.Delete(ctx, ids...); err != nil {
		n.logger.ErrorContext(ctx, "failed to delete notification records",
			"order_id", orderID, "class", class.String(), "error", err)
		return 0
	}
	return len(ids)
}

func (n *Notifier) deliver(ctx context.Context, msg notification.Message, recipient kernel.UserID, class notification.Class) bool {
	handle, err := n.transport.Send(ctx, recipient, msg)
	if err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues(class.String()).Inc()
		n.logger.WarnContext(ctx, "failed to send message",
			"order_id", msg.OrderID, "recipient", recipient, "class", class.String(), "error", err)
		return false
	}

	record, err := notification.NewRecord(msg.OrderID, recipient, handle, class, n.clock.Now())
	if err == nil {
		err = n.ledger.Add(ctx, record)
	}
	if err != nil {
		// An unrecorded message could never be retracted; take it back now.
		metrics.NotificationFailuresTotal.WithLabelValues(class.String()).Inc()
		n.logger.ErrorContext(ctx, "failed to record message",
			"order_id", msg.OrderID, "recipient", recipient, "class", class.String(), "error", err)
		if rerr := n.transport.Retract(ctx, handle); rerr != nil {
			n.logger.WarnContext(ctx, "failed to retract unrecorded message", "handle", handle, "error", rerr)
		}
		return false
	}

	metrics.NotificationsSentTotal.WithLabelValues(class.String()).Inc()
	return true
}

// reconcile clears the class again when the order left the status the class describes
// while messages were in flight, e.g. a claim that landed during the broadcast.
func (n *Notifier) reconcile(ctx context.Context, orderID kernel.OrderID, class notification.Class) {
	o, err := n.orders.Get(ctx, orderID)
	if err != nil {
		n.logger.WarnContext(ctx, "failed to re-read order after delivery", "order_id", orderID, "error", err)
		return
	}
	if o.Status() == liveStatus(class) {
		return
	}
	if cleared := n.retract(ctx, orderID, class); cleared > 0 {
		n.logger.InfoContext(ctx, "retracted stale messages",
			"order_id", orderID, "class", class.String(), "status", o.Status().String(), "count", cleared)
	}
}

func (n *Notifier) messageFor(o *order.Order, class notification.Class) notification.Message {
	if class == notification.Claimed {
		return ClaimedMessage(o)
	}
	return AvailableMessage(o)
}

func (n *Notifier) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), n.cfg.Timeout)
}

func liveStatus(class notification.Class) order.Status {
	if class == notification.Claimed {
		return order.InProgress
	}
	return order.New
}
