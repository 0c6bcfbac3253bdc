package order

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"

	"golang.org/x/text/unicode/norm"
)

// MaxCancelReasonLength bounds the stored cancellation reason, in runes.
const MaxCancelReasonLength = 500

var ErrTransitionIsNotConstructed = errors.New("Transition must be created via one of the New*Transition constructors")

// Scope names the identity column that must match the actor for a transition to apply.
type Scope int

const (
	// ScopeNone applies on status alone (system-initiated transitions).
	ScopeNone Scope = iota
	// ScopeWorker requires the order's assigned worker to equal the actor.
	ScopeWorker
	// ScopeCreator requires the order's creator to equal the actor.
	ScopeCreator
	// ScopeCreatorOrWorker accepts either the creator or the assigned worker.
	ScopeCreatorOrWorker
)

// Transition is a compare-and-set request against one order row: it applies
// iff the row's status is one of From() and, depending on Scope(), the worker
// or creator equals Actor(). Stores must evaluate the whole predicate in a single
// atomic statement and report whether a row matched.
type Transition struct {
	operation Operation
	orderID   kernel.OrderID
	actor     kernel.UserID
	scope     Scope
	at        time.Time
	reason    string

	guard guard.ConstructorGuard
}

// NewClaimTransition: new → in_progress, assigning worker.
func NewClaimTransition(id kernel.OrderID, worker kernel.UserID, at time.Time) (Transition, error) {
	return newTransition(Claim, id, worker, ScopeNone, at, "")
}

// NewCompleteTransition: in_progress → completed, only for the assigned worker.
func NewCompleteTransition(id kernel.OrderID, worker kernel.UserID, at time.Time) (Transition, error) {
	return newTransition(Complete, id, worker, ScopeWorker, at, "")
}

// NewArchiveTransition: completed → archived, only for the order's creator.
func NewArchiveTransition(id kernel.OrderID, creator kernel.UserID, at time.Time) (Transition, error) {
	return newTransition(Archive, id, creator, ScopeCreator, at, "")
}

// NewSharedArchiveTransition: completed → archived for the creator or the assigned worker.
func NewSharedArchiveTransition(id kernel.OrderID, actor kernel.UserID, at time.Time) (Transition, error) {
	return newTransition(Archive, id, actor, ScopeCreatorOrWorker, at, "")
}

// NewUnscopedArchiveTransition: completed → archived on status alone. Used by housekeeping.
func NewUnscopedArchiveTransition(id kernel.OrderID, at time.Time) (Transition, error) {
	return newTransition(Archive, id, "", ScopeNone, at, "")
}

// NewUnarchiveTransition: archived → completed, only for the order's creator.
func NewUnarchiveTransition(id kernel.OrderID, creator kernel.UserID, at time.Time) (Transition, error) {
	return newTransition(Unarchive, id, creator, ScopeCreator, at, "")
}

// NewCancelTransition: any non-terminal status → canceled, only for the order's creator.
// The reason is NFC-normalised, trimmed and cut to MaxCancelReasonLength runes.
func NewCancelTransition(id kernel.OrderID, creator kernel.UserID, reason string, at time.Time) (Transition, error) {
	return newTransition(Cancel, id, creator, ScopeCreator, at, NormalizeCancelReason(reason))
}

// NormalizeCancelReason prepares free text for storage.
func NormalizeCancelReason(reason string) string {
	reason = strings.TrimSpace(norm.NFC.String(reason))
	if utf8.RuneCountInString(reason) <= MaxCancelReasonLength {
		return reason
	}
	runes := []rune(reason)
	return strings.TrimSpace(string(runes[:MaxCancelReasonLength]))
}

func newTransition(
	op Operation,
	id kernel.OrderID,
	actor kernel.UserID,
	scope Scope,
	at time.Time,
	reason string,
) (Transition, error) {
	if err := id.Validate(); err != nil {
		return Transition{}, err
	}
	if scope != ScopeNone || op == Claim {
		if err := actor.Validate(); err != nil {
			return Transition{}, err
		}
	}
	return Transition{
		operation: op,
		orderID:   id,
		actor:     actor,
		scope:     scope,
		at:        at.UTC(),
		reason:    reason,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (t Transition) Validate() error {
	return t.guard.Validate(ErrTransitionIsNotConstructed)
}

func (t Transition) Operation() Operation {
	return t.operation
}

func (t Transition) OrderID() kernel.OrderID {
	return t.orderID
}

// From lists the statuses the row must currently be in.
func (t Transition) From() []Status {
	return t.operation.Sources()
}

// To is the status written on success.
func (t Transition) To() Status {
	return t.operation.Target()
}

// Actor is the identity performing the transition; empty for system transitions.
func (t Transition) Actor() kernel.UserID {
	return t.actor
}

func (t Transition) Scope() Scope {
	return t.scope
}

// At is the timestamp recorded by the transition (completion, archival, cancellation).
func (t Transition) At() time.Time {
	return t.at
}

// Reason is the normalised cancellation reason; empty for other operations.
func (t Transition) Reason() string {
	return t.reason
}
