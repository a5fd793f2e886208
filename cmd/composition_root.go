package cmd

import (
	"log/slog"

	"freight/internal/adapters/out/crm"
	"freight/internal/adapters/out/kafka"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/jobs"
	"freight/internal/pkg/tokencache"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	grouper    services.PartyGrouper
	policy     commands.TransportPolicy
	publisher  *kafka.TrackingPublisher
	crmClient  *crm.Client
	logger     *slog.Logger
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	tokens *tokencache.TokenCache,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		grouper:    services.NewPartyGrouper(logger),
		policy:     commands.DefaultTransportPolicy(),
		publisher: kafka.NewTrackingPublisher(
			[]string{configs.KafkaHost},
			configs.KafkaOrderTrackingTopic,
			configs.KafkaContainerDueTopic,
		),
		crmClient: crm.NewClient(configs.CRMBaseURL, tokens),
		logger:    logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.grouper, c.policy)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderCommandHandler(f, c.grouper, c.policy)
}

func (c *CompositionRoot) CreateAssignContainersCommandHandler() commands.AssignContainersCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignContainersCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSetReceiverStatusCommandHandler() commands.SetReceiverStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetReceiverStatusCommandHandler(f, c.publisher, c.crmClient, c.logger)
}

func (c *CompositionRoot) CreateCreateContainerCommandHandler() commands.CreateContainerCommandHandler {
	var f commands.ContainerUoWFactory = FuncContainerUoWFactory(func() commands.ContainerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateContainerCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordContainerEventCommandHandler() commands.RecordContainerEventCommandHandler {
	var f commands.ContainerUoWFactory = FuncContainerUoWFactory(func() commands.ContainerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordContainerEventCommandHandler(f)
}

func (c *CompositionRoot) CreateOverrideContainerStatusCommandHandler() commands.OverrideContainerStatusCommandHandler {
	var f commands.ContainerUoWFactory = FuncContainerUoWFactory(func() commands.ContainerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOverrideContainerStatusCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateCreateConsignmentCommandHandler() commands.CreateConsignmentCommandHandler {
	var f commands.ConsignmentUoWFactory = FuncConsignmentUoWFactory(func() commands.ConsignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateConsignmentCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceConsignmentCommandHandler() commands.AdvanceConsignmentCommandHandler {
	var f commands.ConsignmentUoWFactory = FuncConsignmentUoWFactory(func() commands.ConsignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceConsignmentCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelConsignmentCommandHandler() commands.CancelConsignmentCommandHandler {
	var f commands.ConsignmentUoWFactory = FuncConsignmentUoWFactory(func() commands.ConsignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelConsignmentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetContainerStatusQueryHandler() queries.GetContainerStatusQueryHandler {
	return queries.NewGetContainerStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetConsignmentQueryHandler() queries.GetConsignmentQueryHandler {
	return queries.NewGetConsignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetExpiredHiresQueryHandler() queries.GetExpiredHiresQueryHandler {
	return queries.NewGetExpiredHiresQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(configs Config) *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetExpiredHiresQueryHandler(),
		c.CreateGetContainerStatusQueryHandler(),
		c.publisher,
		configs.HireExpirySchedule,
		c.logger,
	)
}

func (c *CompositionRoot) TrackingPublisher() ports.TrackingPublisher {
	return c.publisher
}

func (c *CompositionRoot) ClosePublisher() error {
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncContainerUoWFactory func() commands.ContainerUoW

func (f FuncContainerUoWFactory) Create() commands.ContainerUoW {
	return f()
}

type FuncConsignmentUoWFactory func() commands.ConsignmentUoW

func (f FuncConsignmentUoWFactory) Create() commands.ConsignmentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
