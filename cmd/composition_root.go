package cmd

import (
	"log/slog"

	"workorders/internal/adapters/out/postgres"
	"workorders/internal/adapters/out/postgres/notificationrepo"
	"workorders/internal/adapters/out/postgres/orderrepo"
	"workorders/internal/adapters/out/postgres/userrepo"
	tgout "workorders/internal/adapters/out/telegram"
	"workorders/internal/core/application/notifier"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/jobs"
	"workorders/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	users      *userrepo.GormUserRepository
	clock      clock.Clock
	logger     *slog.Logger
	notifier   *notifier.Notifier
}

// NewCompositionRoot wires the application. bot may be nil for commands that send
// nothing, such as the sweeps.
func NewCompositionRoot(config Config, gormDB *gorm.DB, bot tgout.Bot, clk clock.Clock, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		users:      userrepo.NewGormUserRepository(gormDB),
		clock:      clk,
		logger:     logger,
	}
	c.notifier = notifier.New(
		tgout.NewTransport(bot),
		notificationrepo.NewGormNotificationRepository(gormDB),
		orderrepo.NewGormOrderRepository(gormDB),
		c.users,
		clk,
		logger,
		notifier.Config{Timeout: config.NotifyTimeout, Parallelism: config.NotifyParallelism},
	)
	return c
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.users, c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.users, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.users, c.notifier, c.clock)
}

func (c *CompositionRoot) CreateArchiveOrderCommandHandler() commands.ArchiveOrderCommandHandler {
	return commands.NewArchiveOrderCommandHandler(c.orderUoWFactory(), c.config.ArchivePolicy, c.clock)
}

func (c *CompositionRoot) CreateUnarchiveOrderCommandHandler() commands.UnarchiveOrderCommandHandler {
	return commands.NewUnarchiveOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.clock)
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.users)
}

func (c *CompositionRoot) CreateAutoArchiveOrdersCommandHandler() commands.AutoArchiveOrdersCommandHandler {
	return commands.NewAutoArchiveOrdersCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreatePurgeOrdersCommandHandler() commands.PurgeOrdersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPurgeOrdersCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateListCreatorOrdersQueryHandler() queries.ListCreatorOrdersQueryHandler {
	return queries.NewListCreatorOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListWorkerOrdersQueryHandler() queries.ListWorkerOrdersQueryHandler {
	return queries.NewListWorkerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateWhoAmIQueryHandler() queries.WhoAmIQueryHandler {
	return queries.NewWhoAmIQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateAutoArchiveJob() *jobs.AutoArchiveJob {
	return jobs.NewAutoArchiveJob(
		c.CreateAutoArchiveOrdersCommandHandler(),
		c.config.AutoArchiveEvery,
		c.config.AutoArchiveAfter,
		c.logger,
	)
}

func (c *CompositionRoot) CreatePurgeJob() *jobs.PurgeJob {
	return jobs.NewPurgeJob(
		c.CreatePurgeOrdersCommandHandler(),
		c.config.PurgeEvery,
		c.config.PurgeArchivedAfter,
		c.config.PurgeNotificationsAfter,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAutoArchiveJob(), c.CreatePurgeJob())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
