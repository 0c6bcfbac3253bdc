package commands

import (
	"context"

	"workorders/internal/core/ports"
)

type RegisterUserCommandHandler struct {
	users ports.UserRepository
}

func NewRegisterUserCommandHandler(users ports.UserRepository) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{users: users}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.users.Save(ctx, cmd.User())
}
