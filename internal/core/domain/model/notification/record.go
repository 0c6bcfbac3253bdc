package notification

import (
	"errors"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord or RestoreRecord")

// Handle is the transport-specific reference to a delivered message, opaque to the core.
type Handle string

func (h Handle) Validate() error {
	if h == "" {
		return errs.NewValueIsRequiredError("message handle")
	}
	return nil
}

// Record is one ledger row: a message sent to Recipient about OrderID that may later be retracted.
type Record struct {
	id        kernel.UUID
	orderID   kernel.OrderID
	recipient kernel.UserID
	handle    Handle
	class     Class
	createdAt time.Time

	isConstructed bool
}

// NewRecord creates a ledger row for a freshly delivered message.
func NewRecord(
	orderID kernel.OrderID,
	recipient kernel.UserID,
	handle Handle,
	class Class,
	createdAt time.Time,
) (*Record, error) {
	return RestoreRecord(kernel.NewUUID(), orderID, recipient, handle, class, createdAt)
}

// RestoreRecord rebuilds a ledger row read from storage.
func RestoreRecord(
	id kernel.UUID,
	orderID kernel.OrderID,
	recipient kernel.UserID,
	handle Handle,
	class Class,
	createdAt time.Time,
) (*Record, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		recipient.Validate(),
		handle.Validate(),
		class.Validate(),
	); err != nil {
		return nil, err
	}

	return &Record{
		id:            id,
		orderID:       orderID,
		recipient:     recipient,
		handle:        handle,
		class:         class,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() kernel.UUID {
	return r.id
}

func (r *Record) OrderID() kernel.OrderID {
	return r.orderID
}

func (r *Record) Recipient() kernel.UserID {
	return r.recipient
}

func (r *Record) Handle() Handle {
	return r.handle
}

func (r *Record) Class() Class {
	return r.class
}

func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}
