package commands

import (
	"errors"
	"fmt"
	"time"

	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrPurgeOrdersCommandIsNotConstructed = errors.New(
	"PurgeOrdersCommand must be created via NewPurgeOrdersCommand constructor",
)

// PurgeOrdersCommand deletes orders archived longer than ArchivedOlderThan together with
// their ledger rows, and drops ledger rows older than NotificationsOlderThan.
type PurgeOrdersCommand struct {
	archivedOlderThan      time.Duration
	notificationsOlderThan time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeOrdersCommand(archivedOlderThan, notificationsOlderThan time.Duration) (PurgeOrdersCommand, error) {
	var problems []error
	if archivedOlderThan <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"archived retention", fmt.Errorf("%s must be positive", archivedOlderThan)))
	}
	if notificationsOlderThan <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"notification retention", fmt.Errorf("%s must be positive", notificationsOlderThan)))
	}
	if len(problems) > 0 {
		return PurgeOrdersCommand{}, errors.Join(problems...)
	}

	return PurgeOrdersCommand{
		archivedOlderThan:      archivedOlderThan,
		notificationsOlderThan: notificationsOlderThan,
		guard:                  guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPurgeOrdersCommandIsNotConstructed)
}

func (c PurgeOrdersCommand) ArchivedOlderThan() time.Duration {
	return c.archivedOlderThan
}

func (c PurgeOrdersCommand) NotificationsOlderThan() time.Duration {
	return c.notificationsOlderThan
}
