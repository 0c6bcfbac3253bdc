package queries

import (
	"errors"
	"fmt"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrListWorkerOrdersQueryIsNotConstructed = errors.New(
	"ListWorkerOrdersQuery must be created via NewListWorkerOrdersQuery constructor",
)

// WorkerTab selects one of the lists a worker can browse.
type WorkerTab string

const (
	// TabUrgent lists new urgent orders. It is the default tab.
	TabUrgent WorkerTab = "urgent"
	// TabNew lists every new order.
	TabNew WorkerTab = "new"
	// TabMine lists the orders the worker is working on.
	TabMine WorkerTab = "mine"
	// TabDone lists the orders the worker completed, archived ones included.
	TabDone WorkerTab = "done"
)

// ParseWorkerTab maps an empty value to TabUrgent.
func ParseWorkerTab(s string) (WorkerTab, error) {
	switch tab := WorkerTab(strings.ToLower(strings.TrimSpace(s))); tab {
	case "":
		return TabUrgent, nil
	case TabUrgent, TabNew, TabMine, TabDone:
		return tab, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("tab", fmt.Errorf("unknown tab %q", s))
	}
}

// ListWorkerOrdersQuery lists orders for one worker and one tab.
type ListWorkerOrdersQuery struct {
	worker kernel.UserID
	tab    WorkerTab

	guard guard.ConstructorGuard
}

func NewListWorkerOrdersQuery(worker kernel.UserID, tab WorkerTab) (ListWorkerOrdersQuery, error) {
	if err := worker.Validate(); err != nil {
		return ListWorkerOrdersQuery{}, err
	}
	tab, err := ParseWorkerTab(string(tab))
	if err != nil {
		return ListWorkerOrdersQuery{}, err
	}

	return ListWorkerOrdersQuery{worker: worker, tab: tab, guard: guard.NewConstructorGuard()}, nil
}

func (q ListWorkerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkerOrdersQueryIsNotConstructed)
}

func (q ListWorkerOrdersQuery) Worker() kernel.UserID {
	return q.worker
}

func (q ListWorkerOrdersQuery) Tab() WorkerTab {
	return q.tab
}
