package notification

import (
	"fmt"

	"workorders/internal/pkg/errs"
)

// Class tags which lifecycle phase an outstanding push message belongs to.
type Class int

const (
	Unknown Class = iota
	// Available messages announce a new order to every worker. They are all retracted
	// together once somebody claims the order.
	Available
	// Claimed is the single "in progress" message held by the assigned worker.
	Claimed
)

func (c Class) String() string {
	switch c {
	case Available:
		return "available"
	case Claimed:
		return "claimed"
	default:
		return "unknown"
	}
}

func (c Class) Validate() error {
	if c != Available && c != Claimed {
		return errs.NewValueIsInvalidErrorWithCause("notification class", fmt.Errorf("%d is not a valid class", int(c)))
	}
	return nil
}

func ParseClass(s string) (Class, error) {
	switch s {
	case Available.String():
		return Available, nil
	case Claimed.String():
		return Claimed, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("notification class", fmt.Errorf("%q is not a valid class", s))
	}
}
