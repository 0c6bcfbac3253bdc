package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ApplyTransition(ctx context.Context, t order.Transition) (bool, error) {
	args := m.Called(ctx, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ListCompletedBefore(ctx context.Context, cutoff time.Time) ([]kernel.OrderID, error) {
	args := m.Called(ctx, cutoff)
	ids, _ := args.Get(0).([]kernel.OrderID)
	return ids, args.Error(1)
}

func (m *MockOrderRepository) ListArchivedBefore(ctx context.Context, cutoff time.Time) ([]kernel.OrderID, error) {
	args := m.Called(ctx, cutoff)
	ids, _ := args.Get(0).([]kernel.OrderID)
	return ids, args.Error(1)
}

func (m *MockOrderRepository) DeleteArchived(ctx context.Context, id kernel.OrderID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, r *notification.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByOrder(
	ctx context.Context,
	orderID kernel.OrderID,
	class notification.Class,
) ([]*notification.Record, error) {
	args := m.Called(ctx, orderID, class)
	records, _ := args.Get(0).([]*notification.Record)
	return records, args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, ids ...kernel.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteByOrder(ctx context.Context, orderID kernel.OrderID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies both commands.OrderUoW and commands.UoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockIdentities struct{ mock.Mock }

func (m *MockIdentities) RoleOf(ctx context.Context, id kernel.UserID) (user.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.Role), args.Error(1)
}

func (m *MockIdentities) DisplayNameOf(ctx context.Context, id kernel.UserID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockIdentities) Workers(ctx context.Context) ([]kernel.UserID, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]kernel.UserID)
	return ids, args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Broadcast(
	ctx context.Context,
	o *order.Order,
	class notification.Class,
	recipients []kernel.UserID,
) int {
	args := m.Called(ctx, o, class, recipients)
	return args.Int(0)
}

func (m *MockNotifier) NotifyOne(
	ctx context.Context,
	o *order.Order,
	class notification.Class,
	recipient kernel.UserID,
) bool {
	args := m.Called(ctx, o, class, recipient)
	return args.Bool(0)
}

func (m *MockNotifier) Announce(ctx context.Context, o *order.Order, recipient kernel.UserID) bool {
	args := m.Called(ctx, o, recipient)
	return args.Bool(0)
}

func (m *MockNotifier) Retract(ctx context.Context, orderID kernel.OrderID, class notification.Class) int {
	args := m.Called(ctx, orderID, class)
	return args.Int(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Save(ctx context.Context, u user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UserID) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func restoreOrder(t *testing.T, id kernel.OrderID, status order.Status, worker kernel.UserID) *order.Order {
	t.Helper()

	item, err := order.NewLineItem("Facade paint", "RAL 9003", 5)
	require.NoError(t, err)

	var w *kernel.UserID
	if worker != "" {
		w = &worker
	}
	o, err := order.RestoreOrder(order.Snapshot{
		ID:        id,
		Creator:   "1001",
		Items:     []order.LineItem{item},
		Status:    status,
		Worker:    w,
		CreatedAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	return o
}

func transitionFor(op order.Operation) any {
	return mock.MatchedBy(func(t order.Transition) bool { return t.Operation() == op })
}
