package cmd

import (
	"log/slog"

	httpin "waterdelivery/internal/adapters/in/http"
	"waterdelivery/internal/adapters/out/postgres"
	"waterdelivery/internal/adapters/out/postgres/orderrepo"
	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/ports"
	"waterdelivery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg          Config
	gormDB       *gorm.DB
	uowFactory   *postgres.GormUnitOfWorkFactory
	transitioner commands.LedgerTransitioner
	notifier     ports.Notifier
	dedup        ports.Deduplicator
	logger       *slog.Logger
}

func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	dedup ports.Deduplicator,
	logger *slog.Logger,
) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	var ledgerFactory commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return uowFactory.Create()
	})
	transitioner := commands.NewLedgerTransitioner(ledgerFactory)
	if cfg.MaxTxAttempts > 0 {
		transitioner = transitioner.WithMaxAttempts(cfg.MaxTxAttempts)
	}
	transitioner = transitioner.WithRetryDelay(cfg.TxRetryDelay)

	return CompositionRoot{
		cfg:          cfg,
		gormDB:       gormDB,
		uowFactory:   uowFactory,
		transitioner: transitioner,
		notifier:     notifier,
		dedup:        dedup,
		logger:       logger,
	}
}

func (c *CompositionRoot) CreateCreateCustomerCommandHandler() commands.CreateCustomerCommandHandler {
	var f commands.CustomerUoWFactory = FuncCustomerUoWFactory(func() commands.CustomerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCustomerCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateUserCommandHandler() commands.CreateUserCommandHandler {
	var f commands.UserUoWFactory = FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateUserCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.transitioner)
}

func (c *CompositionRoot) CreateAmendOrderCommandHandler() commands.AmendOrderCommandHandler {
	return commands.NewAmendOrderCommandHandler(c.transitioner)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.transitioner)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.transitioner)
}

func (c *CompositionRoot) CreateCompleteWalkInOrderCommandHandler() commands.CompleteWalkInOrderCommandHandler {
	return commands.NewCompleteWalkInOrderCommandHandler(c.transitioner)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.transitioner)
}

func (c *CompositionRoot) CreateClearBillCommandHandler() commands.ClearBillCommandHandler {
	return commands.NewClearBillCommandHandler(c.transitioner)
}

func (c *CompositionRoot) CreateDispatchNotificationsCommandHandler() commands.DispatchNotificationsCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchNotificationsCommandHandler(f, c.notifier, c.dedup, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerLedgerQueryHandler() queries.GetCustomerLedgerQueryHandler {
	return queries.NewGetCustomerLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSettledOrdersQueryHandler() queries.GetSettledOrdersQueryHandler {
	return queries.NewGetSettledOrdersQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

// HTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) HTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateCustomer:    c.CreateCreateCustomerCommandHandler(),
		CreateUser:        c.CreateCreateUserCommandHandler(),
		ClearBill:         c.CreateClearBillCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		AmendOrder:        c.CreateAmendOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		DeliverOrder:      c.CreateDeliverOrderCommandHandler(),
		CompleteWalkIn:    c.CreateCompleteWalkInOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetCustomerLedger: c.CreateGetCustomerLedgerQueryHandler(),
		GetSettledOrders:  c.CreateGetSettledOrdersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDispatchNotificationsCommandHandler(), c.cfg.DispatchBatchSize, c.logger)
}

type FuncCustomerUoWFactory func() commands.CustomerUoW

func (f FuncCustomerUoWFactory) Create() commands.CustomerUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}
