package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/core/ports"
	"workorders/internal/metrics"
	"workorders/internal/pkg/errs"
)

// applyTransition runs t in its own transaction and returns the order as committed.
// A transition that matched no row is reported as errs.ConflictError, or as
// errs.AuthorizationError when a post-hoc read shows the actor does not own the order.
func applyTransition(ctx context.Context, uowFactory OrderUoWFactory, t order.Transition) (*order.Order, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	applied, err := repo.ApplyTransition(ctx, t)
	if err != nil {
		return nil, err
	}
	if !applied {
		err = explainMiss(ctx, repo, t)
		countTransition(t.Operation(), err)
		return nil, err
	}

	o, err := repo.Get(ctx, t.OrderID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	countTransition(t.Operation(), nil)
	return o, nil
}

// explainMiss classifies a transition that matched no row. The read is not authoritative:
// the row may change right after it, which only affects the error kind reported.
func explainMiss(ctx context.Context, repo ports.OrderRepository, t order.Transition) error {
	if t.Scope() == order.ScopeCreator || t.Scope() == order.ScopeCreatorOrWorker {
		o, err := repo.Get(ctx, t.OrderID())
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		if err == nil && !mayAct(o, t) {
			return errs.NewAuthorizationError(t.Actor().String(), t.Operation().String())
		}
	}
	return errs.NewConflictError(t.Operation().String(), t.OrderID(), conflictReason(t))
}

func mayAct(o *order.Order, t order.Transition) bool {
	if o.Creator() == t.Actor() {
		return true
	}
	w := o.Worker()
	return t.Scope() == order.ScopeCreatorOrWorker && w != nil && *w == t.Actor()
}

func conflictReason(t order.Transition) string {
	switch t.Operation() {
	case order.Claim:
		return "already claimed or not found"
	case order.Complete:
		return "not in progress, not assigned to you or not found"
	default:
		from := make([]string, 0, len(t.From()))
		for _, s := range t.From() {
			from = append(from, s.String())
		}
		return fmt.Sprintf("order is not %s or not found", strings.Join(from, "/"))
	}
}

// requireRole fails with errs.AuthorizationError unless id holds want.
func requireRole(
	ctx context.Context,
	identities ports.IdentityResolver,
	id kernel.UserID,
	want user.Role,
	operation string,
) error {
	role, err := identities.RoleOf(ctx, id)
	if err != nil {
		return err
	}
	if role != want {
		return errs.NewAuthorizationErrorWithCause(id.String(), operation,
			fmt.Errorf("role is %s, %s required", role, want))
	}
	return nil
}

func countTransition(op order.Operation, err error) {
	result := metrics.ResultApplied
	switch {
	case errors.Is(err, errs.ErrNotAuthorized):
		result = metrics.ResultUnauthorized
	case errors.Is(err, errs.ErrConflict):
		result = metrics.ResultConflict
	case err != nil:
		return
	}
	metrics.TransitionsTotal.WithLabelValues(op.String(), result).Inc()
}
