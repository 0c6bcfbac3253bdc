package commands

import (
	"errors"
	"fmt"
	"time"

	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrAutoArchiveOrdersCommandIsNotConstructed = errors.New(
	"AutoArchiveOrdersCommand must be created via NewAutoArchiveOrdersCommand constructor",
)

// AutoArchiveOrdersCommand archives every order that has been completed for longer than OlderThan.
//
// Example:
//
//	cmd, _ := NewAutoArchiveOrdersCommand(12 * time.Hour)
//	archived, err := handler.Handle(ctx, cmd)
type AutoArchiveOrdersCommand struct {
	olderThan time.Duration

	guard guard.ConstructorGuard
}

func NewAutoArchiveOrdersCommand(olderThan time.Duration) (AutoArchiveOrdersCommand, error) {
	if olderThan <= 0 {
		return AutoArchiveOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"auto archive age", fmt.Errorf("%s must be positive", olderThan),
		)
	}
	return AutoArchiveOrdersCommand{
		olderThan: olderThan,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AutoArchiveOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoArchiveOrdersCommandIsNotConstructed)
}

func (c AutoArchiveOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}
