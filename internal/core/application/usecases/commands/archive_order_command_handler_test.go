package commands_test

import (
	"testing"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/services"
	"workorders/internal/pkg/clock"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ArchiveOrderSuite struct {
	suite.Suite
	repo    *MockOrderRepository
	uow     *MockUoW
	factory *MockOrderUoWFactory
}

func TestArchiveOrderSuite(t *testing.T) {
	suite.Run(t, new(ArchiveOrderSuite))
}

func (s *ArchiveOrderSuite) SetupTest() {
	s.repo = new(MockOrderRepository)
	s.uow = new(MockUoW)
	s.factory = new(MockOrderUoWFactory)

	s.factory.On("Create").Return(s.uow).Once()
	s.uow.On("Begin", mock.Anything).Return(nil).Once()
	s.uow.On("OrderRepository").Return(s.repo).Once()
	s.uow.On("Rollback", mock.Anything).Return(nil).Once()
}

func (s *ArchiveOrderSuite) handle(policy services.ArchivePolicy, actor kernel.UserID) error {
	cmd, err := commands.NewArchiveOrderCommand(42, actor)
	s.Require().NoError(err)
	return commands.NewArchiveOrderCommandHandler(s.factory, policy, clock.NewManual(now)).Handle(s.T().Context(), cmd)
}

func (s *ArchiveOrderSuite) TestCreatorArchives() {
	s.repo.On("ApplyTransition", mock.Anything, mock.MatchedBy(func(tr order.Transition) bool {
		return tr.Operation() == order.Archive && tr.Scope() == order.ScopeCreator && tr.Actor() == "1001"
	})).Return(true, nil).Once()
	s.repo.On("Get", mock.Anything, kernel.OrderID(42)).Return(restoreOrder(s.T(), 42, order.Archived, "2002"), nil).Once()
	s.uow.On("Commit", mock.Anything).Return(nil).Once()

	s.Require().NoError(s.handle(services.ArchiveByCreator, "1001"))
	s.uow.AssertExpectations(s.T())
}

func (s *ArchiveOrderSuite) TestStrangerIsNotAuthorized() {
	s.repo.On("ApplyTransition", mock.Anything, transitionFor(order.Archive)).Return(false, nil).Once()
	s.repo.On("Get", mock.Anything, kernel.OrderID(42)).Return(restoreOrder(s.T(), 42, order.Completed, "2002"), nil).Once()

	err := s.handle(services.ArchiveByCreator, "9999")

	s.Require().ErrorIs(err, errs.ErrNotAuthorized)
	s.uow.AssertNotCalled(s.T(), "Commit", mock.Anything)
}

func (s *ArchiveOrderSuite) TestWorkerUnderCreatorPolicyIsNotAuthorized() {
	s.repo.On("ApplyTransition", mock.Anything, transitionFor(order.Archive)).Return(false, nil).Once()
	s.repo.On("Get", mock.Anything, kernel.OrderID(42)).Return(restoreOrder(s.T(), 42, order.Completed, "2002"), nil).Once()

	s.Require().ErrorIs(s.handle(services.ArchiveByCreator, "2002"), errs.ErrNotAuthorized)
}

func (s *ArchiveOrderSuite) TestWorkerUnderSharedPolicyGetsConflictOnWrongStatus() {
	s.repo.On("ApplyTransition", mock.Anything, mock.MatchedBy(func(tr order.Transition) bool {
		return tr.Scope() == order.ScopeCreatorOrWorker
	})).Return(false, nil).Once()
	s.repo.On("Get", mock.Anything, kernel.OrderID(42)).Return(restoreOrder(s.T(), 42, order.InProgress, "2002"), nil).Once()

	s.Require().ErrorIs(s.handle(services.ArchiveByCreatorOrWorker, "2002"), errs.ErrConflict)
}

func (s *ArchiveOrderSuite) TestUnknownOrderIsConflict() {
	s.repo.On("ApplyTransition", mock.Anything, transitionFor(order.Archive)).Return(false, nil).Once()
	s.repo.On("Get", mock.Anything, kernel.OrderID(42)).Return(nil, errs.NewObjectNotFoundError("order id", 42)).Once()

	err := s.handle(services.ArchiveByCreator, "1001")

	s.Require().ErrorIs(err, errs.ErrConflict)
	s.Require().NotErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnarchiveOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("ApplyTransition", ctx, mock.MatchedBy(func(tr order.Transition) bool {
		return tr.Operation() == order.Unarchive && tr.To() == order.Completed
	})).Return(true, nil).Once()
	repo.On("Get", ctx, kernel.OrderID(42)).Return(restoreOrder(t, 42, order.Completed, "2002"), nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cmd, err := commands.NewUnarchiveOrderCommand(42, "1001")
	require.NoError(t, err)

	require.NoError(t, commands.NewUnarchiveOrderCommandHandler(factory, clock.NewManual(now)).Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
