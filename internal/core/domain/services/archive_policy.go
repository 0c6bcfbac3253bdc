package services

import (
	"fmt"
	"strings"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"
)

// ArchivePolicy decides who may archive a completed order by hand.
//
// Housekeeping archives regardless of the policy; the policy only shapes the
// predicate of user-initiated archival, so authorization still happens inside
// the same conditional update as the status check.
//
// Example:
//
//	policy, err := services.ParseArchivePolicy(os.Getenv("ARCHIVE_POLICY"))
//	if err != nil {
//	    return err
//	}
//	t, err := policy.Transition(orderID, actor, clock.Now())
type ArchivePolicy int

const (
	// ArchiveByCreator lets only the order's creator archive it.
	ArchiveByCreator ArchivePolicy = iota
	// ArchiveByCreatorOrWorker also lets the assigned worker archive it.
	ArchiveByCreatorOrWorker
)

func (p ArchivePolicy) String() string {
	if p == ArchiveByCreatorOrWorker {
		return "creator_or_worker"
	}
	return "creator"
}

// ParseArchivePolicy reads the configured policy; empty means ArchiveByCreator.
func ParseArchivePolicy(s string) (ArchivePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "creator":
		return ArchiveByCreator, nil
	case "creator_or_worker":
		return ArchiveByCreatorOrWorker, nil
	default:
		return ArchiveByCreator, errs.NewValueIsInvalidErrorWithCause(
			"archive policy", fmt.Errorf("%q is not one of creator, creator_or_worker", s),
		)
	}
}

// Transition builds the archive transition actor is entitled to under p.
func (p ArchivePolicy) Transition(id kernel.OrderID, actor kernel.UserID, at time.Time) (order.Transition, error) {
	if p == ArchiveByCreatorOrWorker {
		return order.NewSharedArchiveTransition(id, actor, at)
	}
	return order.NewArchiveTransition(id, actor, at)
}
