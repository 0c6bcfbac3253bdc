package queries

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrListCreatorOrdersQueryIsNotConstructed = errors.New(
	"ListCreatorOrdersQuery must be created via NewListCreatorOrdersQuery constructor",
)

// ListCreatorOrdersQuery lists the orders issued by one creator.
// An empty status filter means every status.
//
// Example:
//
//	query, err := NewListCreatorOrdersQuery("1001", []order.Status{order.New, order.InProgress}, false)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListCreatorOrdersQuery struct {
	creator    kernel.UserID
	statuses   []order.Status
	urgentOnly bool

	guard guard.ConstructorGuard
}

func NewListCreatorOrdersQuery(
	creator kernel.UserID,
	statuses []order.Status,
	urgentOnly bool,
) (ListCreatorOrdersQuery, error) {
	if err := creator.Validate(); err != nil {
		return ListCreatorOrdersQuery{}, err
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListCreatorOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("status",
				fmt.Errorf("%s is not a listable status", s))
		}
	}

	return ListCreatorOrdersQuery{
		creator:    creator,
		statuses:   append([]order.Status(nil), statuses...),
		urgentOnly: urgentOnly,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCreatorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCreatorOrdersQueryIsNotConstructed)
}

func (q ListCreatorOrdersQuery) Creator() kernel.UserID {
	return q.creator
}

func (q ListCreatorOrdersQuery) Statuses() []order.Status {
	return append([]order.Status(nil), q.statuses...)
}

func (q ListCreatorOrdersQuery) UrgentOnly() bool {
	return q.urgentOnly
}
