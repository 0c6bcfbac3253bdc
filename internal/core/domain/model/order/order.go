package order

import (
	"errors"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

// MaxLineItems bounds the size of a single order.
const MaxLineItems = 50

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIDAlreadyAssigned is returned when the store tries to assign an identity twice.
	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is the aggregate root of the work order lifecycle.
//
// Order follows these invariants:
//   - The line item list is non-empty and every item is valid
//   - Creator, items, urgency and deadline never change after creation
//   - A worker is assigned exactly when a claim succeeded and is never cleared
//   - Lifecycle timestamps are set once by their transition (archival is cleared by unarchive)
//
// Status changes are not made on the aggregate. They are expressed as Transition values
// and applied by the store as a single conditional update, so concurrent actors cannot
// both observe New and both claim.
type Order struct {
	id           kernel.OrderID
	creator      kernel.UserID
	items        []LineItem
	urgent       bool
	deadline     *time.Time
	status       Status
	worker       *kernel.UserID
	createdAt    time.Time
	completedAt  *time.Time
	archivedAt   *time.Time
	canceledAt   *time.Time
	cancelReason string

	isConstructed bool
}

// NewOrder creates an order in New status. The identity is assigned by the store on insert.
//
// Example:
//
//	item, _ := order.NewLineItem("Facade paint", "RAL 9003", 5)
//	o, err := order.NewOrder("1001", []order.LineItem{item}, false, nil, clock.Now())
//	if err != nil {
//	    // errors.Is(err, errs.ErrValidation)
//	}
func NewOrder(
	creator kernel.UserID,
	items []LineItem,
	urgent bool,
	deadline *time.Time,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		urgent:        urgent,
		status:        New,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCreator(creator),
		o.setItems(items),
		o.setDeadline(deadline),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries the full persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID           kernel.OrderID
	Creator      kernel.UserID
	Items        []LineItem
	Urgent       bool
	Deadline     *time.Time
	Status       Status
	Worker       *kernel.UserID
	CreatedAt    time.Time
	CompletedAt  *time.Time
	ArchivedAt   *time.Time
	CanceledAt   *time.Time
	CancelReason string
}

// RestoreOrder rebuilds an order read back from storage and re-checks its invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		urgent:        s.Urgent,
		createdAt:     s.CreatedAt,
		completedAt:   s.CompletedAt,
		archivedAt:    s.ArchivedAt,
		canceledAt:    s.CanceledAt,
		cancelReason:  s.CancelReason,
		isConstructed: true,
	}

	if err := errors.Join(
		s.ID.Validate(),
		o.setCreator(s.Creator),
		o.setItems(s.Items),
		o.setDeadline(s.Deadline),
		o.setStatus(s.Status, s.Worker),
	); err != nil {
		return nil, err
	}
	o.id = s.ID

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID records the identity chosen by the store. It may only be called once.
func (o *Order) AssignID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if o.id != 0 {
		return ErrOrderIDAlreadyAssigned
	}
	o.id = id
	return nil
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) Creator() kernel.UserID {
	return o.creator
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) IsUrgent() bool {
	return o.urgent
}

func (o *Order) Deadline() *time.Time {
	return o.deadline
}

func (o *Order) Status() Status {
	return o.status
}

// Worker returns the assigned worker, nil until a claim succeeds.
func (o *Order) Worker() *kernel.UserID {
	return o.worker
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

func (o *Order) ArchivedAt() *time.Time {
	return o.archivedAt
}

func (o *Order) CanceledAt() *time.Time {
	return o.canceledAt
}

func (o *Order) CancelReason() string {
	return o.cancelReason
}

// ActionsFor returns the actions viewer may trigger on the order right now.
func (o *Order) ActionsFor(viewer kernel.UserID) []Action {
	return ActionsFor(o.status, o.worker, viewer)
}

// ActionsFor filters the status actions down to what viewer may do: anyone may claim
// a new order, only the assignee may complete it.
func ActionsFor(status Status, worker *kernel.UserID, viewer kernel.UserID) []Action {
	var out []Action
	for _, action := range status.Actions() {
		if action == ActionComplete && (worker == nil || *worker != viewer) {
			continue
		}
		out = append(out, action)
	}
	return out
}

func (o *Order) setCreator(creator kernel.UserID) error {
	if err := creator.Validate(); err != nil {
		return err
	}
	o.creator = creator
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 || len(items) > MaxLineItems {
		return errs.NewValueIsOutOfRangeError("items", len(items), 1, MaxLineItems)
	}
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", idx), err)
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeadline(deadline *time.Time) error {
	if deadline == nil || deadline.IsZero() {
		o.deadline = nil
		return nil
	}
	d := deadline.UTC()
	o.deadline = &d
	return nil
}

func (o *Order) setStatus(status Status, worker *kernel.UserID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if worker != nil {
		if err := worker.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveWorker(worker != nil); err != nil {
		return err
	}
	o.status = status
	o.worker = worker
	return nil
}
