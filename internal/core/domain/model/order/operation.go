package order

import (
	"fmt"

	"workorders/internal/pkg/errs"
)

// Operation names a lifecycle transition.
type Operation int

const (
	Claim Operation = iota + 1
	Complete
	Archive
	Unarchive
	Cancel
)

type transitionRule struct {
	from []Status
	to   Status
}

// transitionTable is the single source of truth for legal transitions:
// source statuses × operation → target status. The store turns each rule into
// the predicate of one conditional UPDATE.
func transitionTable() map[Operation]transitionRule {
	return map[Operation]transitionRule{
		Claim:     {from: []Status{New}, to: InProgress},
		Complete:  {from: []Status{InProgress}, to: Completed},
		Archive:   {from: []Status{Completed}, to: Archived},
		Unarchive: {from: []Status{Archived}, to: Completed},
		Cancel:    {from: []Status{New, InProgress, Completed}, to: Canceled},
	}
}

func (op Operation) String() string {
	switch op {
	case Claim:
		return "claim"
	case Complete:
		return "complete"
	case Archive:
		return "archive"
	case Unarchive:
		return "unarchive"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Sources returns the statuses op may start from.
func (op Operation) Sources() []Status {
	rule, ok := transitionTable()[op]
	if !ok {
		return nil
	}
	out := make([]Status, len(rule.from))
	copy(out, rule.from)
	return out
}

// Target returns the status op leads to.
func (op Operation) Target() Status {
	return transitionTable()[op].to
}

// Action is an identifier the presentation layer renders as a button on a push message.
type Action string

const (
	ActionClaim    Action = "claim"
	ActionComplete Action = "complete"
)

// ParseAction accepts the current identifiers and the legacy "take" alias for claim.
func ParseAction(s string) (Action, error) {
	switch s {
	case string(ActionClaim), "take":
		return ActionClaim, nil
	case string(ActionComplete):
		return ActionComplete, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known action", s))
	}
}

// Operation returns the lifecycle operation an action button triggers.
func (a Action) Operation() Operation {
	if a == ActionComplete {
		return Complete
	}
	return Claim
}
