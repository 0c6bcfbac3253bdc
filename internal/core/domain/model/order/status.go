package order

import (
	"fmt"

	"workorders/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	New ──claim──> InProgress ──complete──> Completed ──archive──> Archived
//	                                            ^                     │
//	                                            └─────unarchive───────┘
//
//	New / InProgress / Completed ──cancel──> Canceled (terminal)
//
// The textual form ("new", "in_progress", ...) is the stable vocabulary shared
// with storage and every adapter; never renumber or rename it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status. The order is announced to every worker and waits to be claimed.
	New

	// InProgress means exactly one worker won the claim and is fulfilling the order.
	InProgress

	// Completed means the assigned worker finished the order.
	Completed

	// Archived hides a completed order from active lists. It can be reverted to Completed.
	Archived

	// Canceled is terminal. The creator withdrew the order before it was archived.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "new",
		InProgress: "in_progress",
		Completed:  "completed",
		Archived:   "archived",
		Canceled:   "canceled",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{New, InProgress, Completed, Archived, Canceled}
}

// ParseStatus converts the stable textual form back into a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the five lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Canceled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Canceled
}

// RequiresWorker reports whether an order in s must carry an assigned worker.
// Canceled orders may or may not have one, depending on whether they were claimed first.
func (s Status) RequiresWorker() bool {
	return s == InProgress || s == Completed || s == Archived
}

// ValidateCanHaveWorker enforces the consistency between status and worker assignment.
func (s Status) ValidateCanHaveWorker(hasWorker bool) error {
	if hasWorker && s == New {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a worker", s),
		)
	}
	if !hasWorker && s.RequiresWorker() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no worker", s),
		)
	}
	return nil
}

// Apply looks op up in the transition table and returns the target status.
//
// Example:
//
//	next, err := order.New.Apply(order.Claim) // InProgress, nil
//	_, err = order.Canceled.Apply(order.Cancel) // error: canceled is terminal
func (s Status) Apply(op Operation) (Status, error) {
	rule, ok := transitionTable()[op]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("operation is invalid", fmt.Errorf("%d is not a valid operation", int(op)))
	}
	for _, from := range rule.from {
		if from == s {
			return rule.to, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%s is not a valid status to %s", s, op),
	)
}

// Actions returns the push-message actions that are legal while an order is in s.
func (s Status) Actions() []Action {
	switch s {
	case New:
		return []Action{ActionClaim}
	case InProgress:
		return []Action{ActionComplete}
	default:
		return nil
	}
}
