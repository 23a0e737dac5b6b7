package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpin "deliveryhub/internal/adapters/in/http"
	"deliveryhub/internal/adapters/in/realtime"
	"deliveryhub/internal/adapters/out/postgres"
	"deliveryhub/internal/adapters/out/postgres/directoryrepo"
	"deliveryhub/internal/adapters/out/rabbitmq"
	"deliveryhub/internal/adapters/out/redis"
	"deliveryhub/internal/core/application/fanout"
	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/application/views"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/jobs"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	logger *slog.Logger

	redisClient *goredis.Client
	cache       *redis.CachedDirectory
	directory   ports.Directory

	registry    *realtime.Registry
	relay       *rabbitmq.Relay
	coordinator *fanout.Coordinator
	uowFactory  *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot wires the application. Redis and RabbitMQ are optional: without
// them lookups go straight to Postgres and events reach only this instance's registry.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:   config,
		gormDB:   gormDB,
		logger:   logger,
		registry: realtime.NewRegistry(logger),
	}

	c.directory = directoryrepo.NewGormDirectory(gormDB)
	if config.RedisAddr != "" {
		c.redisClient = goredis.NewClient(&goredis.Options{Addr: config.RedisAddr})
		c.cache = redis.NewCachedDirectory(c.directory, c.redisClient, config.DirectoryCacheTTL, logger)
		c.directory = c.cache
	}

	var bus fanout.Bus = c.registry
	if config.RabbitMQURL != "" {
		relay, err := rabbitmq.Dial(config.RabbitMQURL, config.EventsExchange, logger)
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		c.relay = relay
		bus = relay
	}

	c.coordinator = fanout.NewCoordinator(c.directory, bus, logger)
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.coordinator)
	return c, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	return commands.NewAdvanceOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRegisterMemberCommandHandler() commands.RegisterMemberCommandHandler {
	var f commands.MemberUoWFactory = FuncMemberUoWFactory(func() commands.MemberUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterMemberCommandHandler(f)
}

func (c *CompositionRoot) CreateGetProductsQueryHandler() queries.GetProductsQueryHandler {
	return queries.NewGetProductsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnclaimedOrdersQueryHandler() queries.GetUnclaimedOrdersQueryHandler {
	return queries.NewGetUnclaimedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignedOrdersQueryHandler() queries.GetAssignedOrdersQueryHandler {
	return queries.NewGetAssignedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMembersQueryHandler() queries.GetMembersQueryHandler {
	return queries.NewGetMembersQueryHandler(c.gormDB)
}

// CreateMemberRegistrar returns the registrar used by the principal middleware.
func (c *CompositionRoot) CreateMemberRegistrar() httpin.MemberRegistrar {
	var cache MemberCache
	if c.cache != nil {
		cache = c.cache
	}
	return NewMemberSync(c.CreateRegisterMemberCommandHandler(), c.directory, cache, c.logger)
}

// CreateRouter builds the HTTP entry point: the REST API, the event websocket,
// /health and the Swagger UI.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:        c.CreateCreateOrderCommandHandler(),
		ClaimOrder:         c.CreateClaimOrderCommandHandler(),
		AdvanceOrderStatus: c.CreateAdvanceOrderStatusCommandHandler(),
		GetProducts:        c.CreateGetProductsQueryHandler(),
		GetCustomerOrders:  c.CreateGetCustomerOrdersQueryHandler(),
		GetUnclaimedOrders: c.CreateGetUnclaimedOrdersQueryHandler(),
		GetAssignedOrders:  c.CreateGetAssignedOrdersQueryHandler(),
		GetAllOrders:       c.CreateGetAllOrdersQueryHandler(),
		GetMembers:         c.CreateGetMembersQueryHandler(),
	},
		views.NewBuilder(c.directory),
		realtime.NewEndpoint(c.registry, c.config.SessionQueueSize, c.logger),
		c.logger,
	)
	return httpin.NewRouter(server, c.CreateMemberRegistrar(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.registry, jobs.Schedules{
		SessionSweep:       c.config.SessionSweepSchedule,
		SessionIdleTimeout: c.config.SessionIdleTimeout,
		RegistryStats:      c.config.RegistryStatsSchedule,
	}, c.logger)
}

// ConsumeEvents feeds events published by any instance into the local registry. It
// returns immediately when the relay is disabled, since the coordinator then delivers
// to the registry directly.
func (c *CompositionRoot) ConsumeEvents(ctx context.Context) error {
	if c.relay == nil {
		return nil
	}
	return c.relay.Consume(ctx, c.registry)
}

func (c *CompositionRoot) Registry() *realtime.Registry {
	return c.registry
}

// Close disconnects every subscriber and releases the broker and cache connections.
func (c *CompositionRoot) Close() error {
	c.registry.Close()

	var errs []error
	if c.relay != nil {
		errs = append(errs, c.relay.Close())
	}
	if c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	return errors.Join(errs...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncMemberUoWFactory func() commands.MemberUoW

func (f FuncMemberUoWFactory) Create() commands.MemberUoW {
	return f()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}
