package queries

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrWhoAmIQueryIsNotConstructed = errors.New("WhoAmIQuery must be created via NewWhoAmIQuery constructor")

// WhoAmIQuery resolves the role and name registered for a caller.
type WhoAmIQuery struct {
	id kernel.UserID

	guard guard.ConstructorGuard
}

func NewWhoAmIQuery(id kernel.UserID) (WhoAmIQuery, error) {
	if err := id.Validate(); err != nil {
		return WhoAmIQuery{}, err
	}
	return WhoAmIQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q WhoAmIQuery) Validate() error {
	return q.guard.Validate(ErrWhoAmIQueryIsNotConstructed)
}

func (q WhoAmIQuery) ID() kernel.UserID {
	return q.id
}
