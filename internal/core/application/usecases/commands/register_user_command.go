package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand records the role an identity picked in the bot's role menu.
// Registering again replaces the previous role and name.
type RegisterUserCommand struct {
	user user.User

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(id kernel.UserID, role user.Role, name string) (RegisterUserCommand, error) {
	u, err := user.NewUser(id, role, name)
	if err != nil {
		return RegisterUserCommand{}, err
	}
	return RegisterUserCommand{
		user:  u,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) User() user.User {
	return c.user
}
