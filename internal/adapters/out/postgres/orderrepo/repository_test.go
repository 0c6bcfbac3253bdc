package orderrepo_test

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"workorders/internal/adapters/out/postgres/orderrepo"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/pkg/errs"
	"workorders/internal/testutil"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// OrderRepositoryTestSuite holds the behaviour every backing store must show.
// openDB returns an empty, migrated database for each test.
type OrderRepositoryTestSuite struct {
	suite.Suite
	openDB     func(t *testing.T) *gorm.DB
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.db = suite.openDB(suite.T())
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryTestSuite) TestAdd_AssignsIncreasingIDs() {
	first := suite.addOrder("1001")
	second := suite.addOrder("1001")

	suite.Positive(first.ID().Int64())
	suite.Greater(second.ID().Int64(), first.ID().Int64())
	suite.assertOrderCount(2)
}

func (suite *OrderRepositoryTestSuite) TestAdd_UnconstructedOrder_Fails() {
	err := suite.repository.Add(suite.T().Context(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryTestSuite) TestGet_RoundTrip() {
	deadline := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	paint, err := order.NewLineItem("Facade paint", "RAL 9003", 5)
	suite.Require().NoError(err)
	primer, err := order.NewLineItem("Primer", "white", 2.5)
	suite.Require().NoError(err)
	created, err := order.NewOrder("1001", []order.LineItem{paint, primer}, true, &deadline, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(suite.T().Context(), created))

	got, err := suite.repository.Get(suite.T().Context(), created.ID())

	suite.Require().NoError(err)
	suite.Equal(created.ID(), got.ID())
	suite.Equal(kernel.UserID("1001"), got.Creator())
	suite.Equal(order.New, got.Status())
	suite.True(got.IsUrgent())
	suite.Require().NotNil(got.Deadline())
	suite.True(deadline.Equal(*got.Deadline()))
	suite.True(now.Equal(got.CreatedAt()))
	suite.Nil(got.Worker())
	suite.Nil(got.CompletedAt())
	suite.Require().Len(got.Items(), 2)
	suite.Equal("Facade paint", got.Items()[0].Product())
	suite.Equal("Primer", got.Items()[1].Product())
	suite.InDelta(2.5, got.Items()[1].Quantity(), 1e-9)
}

func (suite *OrderRepositoryTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.OrderID(999))

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestApplyTransition_ClaimOnlyOnce() {
	o := suite.addOrder("1001")

	suite.True(suite.apply(order.NewClaimTransition(o.ID(), "2001", now)))
	suite.False(suite.apply(order.NewClaimTransition(o.ID(), "2002", now)))

	got := suite.get(o.ID())
	suite.Equal(order.InProgress, got.Status())
	suite.Require().NotNil(got.Worker())
	suite.Equal(kernel.UserID("2001"), *got.Worker())
}

func (suite *OrderRepositoryTestSuite) TestApplyTransition_UnknownOrder_NotApplied() {
	suite.False(suite.apply(order.NewClaimTransition(kernel.OrderID(999), "2001", now)))
}

func (suite *OrderRepositoryTestSuite) TestApplyTransition_CompleteScopedToWorker() {
	o := suite.addOrder("1001")
	suite.Require().True(suite.apply(order.NewClaimTransition(o.ID(), "2001", now)))

	suite.False(suite.apply(order.NewCompleteTransition(o.ID(), "2002", now)))
	suite.Equal(order.InProgress, suite.get(o.ID()).Status())

	completedAt := now.Add(time.Hour)
	suite.True(suite.apply(order.NewCompleteTransition(o.ID(), "2001", completedAt)))

	got := suite.get(o.ID())
	suite.Equal(order.Completed, got.Status())
	suite.Require().NotNil(got.CompletedAt())
	suite.True(completedAt.Equal(*got.CompletedAt()))
}

func (suite *OrderRepositoryTestSuite) TestApplyTransition_ArchiveAndUnarchiveScopedToCreator() {
	o := suite.completedOrder("1001", "2001")

	suite.False(suite.apply(order.NewArchiveTransition(o.ID(), "1002", now)))
	suite.False(suite.apply(order.NewArchiveTransition(o.ID(), "2001", now)))
	suite.True(suite.apply(order.NewArchiveTransition(o.ID(), "1001", now)))

	archived := suite.get(o.ID())
	suite.Equal(order.Archived, archived.Status())
	suite.NotNil(archived.ArchivedAt())

	suite.False(suite.apply(order.NewUnarchiveTransition(o.ID(), "1002", now)))
	suite.True(suite.apply(order.NewUnarchiveTransition(o.ID(), "1001", now)))

	restored := suite.get(o.ID())
	suite.Equal(order.Completed, restored.Status())
	suite.Nil(restored.ArchivedAt())
	suite.NotNil(restored.CompletedAt())
}

func (suite *OrderRepositoryTestSuite) TestApplyTransition_SharedArchiveAcceptsWorker() {
	o := suite.completedOrder("1001", "2001")

	suite.False(suite.apply(order.NewSharedArchiveTransition(o.ID(), "2002", now)))
	suite.True(suite.apply(order.NewSharedArchiveTransition(o.ID(), "2001", now)))
	suite.Equal(order.Archived, suite.get(o.ID()).Status())
}

func (suite *OrderRepositoryTestSuite) TestApplyTransition_CancelIsTerminal() {
	o := suite.completedOrder("1001", "2001")

	suite.False(suite.apply(order.NewCancelTransition(o.ID(), "1002", "wrong owner", now)))
	suite.True(suite.apply(order.NewCancelTransition(o.ID(), "1001", "customer changed mind", now)))
	suite.False(suite.apply(order.NewCancelTransition(o.ID(), "1001", "again", now)))

	got := suite.get(o.ID())
	suite.Equal(order.Canceled, got.Status())
	suite.Equal("customer changed mind", got.CancelReason())
	suite.NotNil(got.CanceledAt())
}

func (suite *OrderRepositoryTestSuite) TestApplyTransition_ConcurrentClaims_AtMostOneWins() {
	o := suite.addOrder("1001")

	ctx := suite.T().Context()
	const claimants = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
		errList []error
	)
	for i := range claimants {
		wg.Add(1)
		go func(worker kernel.UserID) {
			defer wg.Done()
			t, err := order.NewClaimTransition(o.ID(), worker, now)
			if err == nil {
				var ok bool
				ok, err = suite.repository.ApplyTransition(ctx, t)
				if ok {
					mu.Lock()
					applied++
					mu.Unlock()
				}
			}
			if err != nil {
				mu.Lock()
				errList = append(errList, err)
				mu.Unlock()
			}
		}(kernel.UserID("20" + strconv.Itoa(i)))
	}
	wg.Wait()

	suite.Empty(errList)
	suite.Equal(1, applied)
	suite.Equal(order.InProgress, suite.get(o.ID()).Status())
}

func (suite *OrderRepositoryTestSuite) TestListCompletedBefore() {
	old := suite.completedOrderAt("1001", "2001", now.Add(-13*time.Hour))
	suite.completedOrderAt("1001", "2001", now.Add(-11*time.Hour))
	suite.addOrder("1001")

	ids, err := suite.repository.ListCompletedBefore(suite.T().Context(), now.Add(-12*time.Hour))

	suite.Require().NoError(err)
	suite.Equal([]kernel.OrderID{old.ID()}, ids)
}

func (suite *OrderRepositoryTestSuite) TestListArchivedBefore() {
	old := suite.completedOrder("1001", "2001")
	suite.Require().True(suite.apply(order.NewArchiveTransition(old.ID(), "1001", now.Add(-31*24*time.Hour))))
	recent := suite.completedOrder("1001", "2001")
	suite.Require().True(suite.apply(order.NewArchiveTransition(recent.ID(), "1001", now.Add(-time.Hour))))

	ids, err := suite.repository.ListArchivedBefore(suite.T().Context(), now.Add(-30*24*time.Hour))

	suite.Require().NoError(err)
	suite.Equal([]kernel.OrderID{old.ID()}, ids)
}

func (suite *OrderRepositoryTestSuite) TestDeleteArchived_OnlyArchivedOrders() {
	completed := suite.completedOrder("1001", "2001")
	archived := suite.completedOrder("1001", "2001")
	suite.Require().True(suite.apply(order.NewArchiveTransition(archived.ID(), "1001", now)))

	deleted, err := suite.repository.DeleteArchived(suite.T().Context(), completed.ID())
	suite.Require().NoError(err)
	suite.False(deleted)

	deleted, err = suite.repository.DeleteArchived(suite.T().Context(), archived.ID())
	suite.Require().NoError(err)
	suite.True(deleted)

	_, err = suite.repository.Get(suite.T().Context(), archived.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.assertOrderCount(1)

	var items int64
	suite.Require().NoError(suite.db.Model(&orderrepo.LineItemDTO{}).
		Where("order_id = ?", archived.ID().Int64()).Count(&items).Error)
	suite.Zero(items)
}

func (suite *OrderRepositoryTestSuite) addOrder(creator kernel.UserID) *order.Order {
	return suite.addOrderAt(creator, now)
}

func (suite *OrderRepositoryTestSuite) addOrderAt(creator kernel.UserID, at time.Time) *order.Order {
	item, err := order.NewLineItem("Facade paint", "RAL 9003", 5)
	suite.Require().NoError(err)
	o, err := order.NewOrder(creator, []order.LineItem{item}, false, nil, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(suite.T().Context(), o))
	return o
}

func (suite *OrderRepositoryTestSuite) completedOrder(creator, worker kernel.UserID) *order.Order {
	return suite.completedOrderAt(creator, worker, now)
}

func (suite *OrderRepositoryTestSuite) completedOrderAt(creator, worker kernel.UserID, at time.Time) *order.Order {
	o := suite.addOrderAt(creator, at.Add(-time.Hour))
	suite.Require().True(suite.apply(order.NewClaimTransition(o.ID(), worker, at.Add(-time.Hour))))
	suite.Require().True(suite.apply(order.NewCompleteTransition(o.ID(), worker, at)))
	return o
}

func (suite *OrderRepositoryTestSuite) apply(t order.Transition, err error) bool {
	suite.Require().NoError(err)
	applied, err := suite.repository.ApplyTransition(suite.T().Context(), t)
	suite.Require().NoError(err)
	return applied
}

func (suite *OrderRepositoryTestSuite) get(id kernel.OrderID) *order.Order {
	o, err := suite.repository.Get(suite.T().Context(), id)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestOrderRepository_SQLite(t *testing.T) {
	suite.Run(t, &OrderRepositoryTestSuite{
		openDB: func(t *testing.T) *gorm.DB { return testutil.NewSQLite(t) },
	})
}
