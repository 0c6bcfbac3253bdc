package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "workorders/internal/adapters/out/postgres"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the unit of work behaviour against PostgreSQL
// and adds checks that need more than one connection.
type UnitOfWorkIntegrationTestSuite struct {
	UnitOfWorkTestSuite
	container *postgres.PostgresContainer
}

// SetupSuite starts PostgreSQL and migrates the schema once for all tests.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(postgres_adapter.DriverPostgres, dsn)
	suite.Require().NoError(err)
	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.openDB = func(*testing.T) *gorm.DB {
		suite.Require().NoError(db.Exec(
			"TRUNCATE TABLE orders, order_items, notifications, users RESTART IDENTITY CASCADE").Error)
		return db
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// TestUnitOfWork_RepositoryIsolation verifies uncommitted rows stay invisible to other connections.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	o := newOrder(suite)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err, "uncommitted order must not be visible outside the transaction")

	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
