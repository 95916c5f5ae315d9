package bootstrap

import (
	"context"
	"fmt"
	"log"

	"customer-insight-be/internal/config"
	"customer-insight-be/internal/controller"
	"customer-insight-be/internal/handler"
	"customer-insight-be/internal/pkg/logger"
	"customer-insight-be/internal/repository/cache"
	"customer-insight-be/internal/repository/contract"
	"customer-insight-be/internal/repository/memory"
	"customer-insight-be/internal/repository/unitofwork"
	"customer-insight-be/internal/service"
	"customer-insight-be/internal/websocket"
	"customer-insight-be/pkg/events"
	"customer-insight-be/pkg/fieldvalidator"
	pktNats "customer-insight-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CustomerController   controller.ICustomerController
	ArtifactController   controller.IArtifactController
	InterestController   controller.IInterestController
	ExtractionController controller.IExtractionController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	ReviewFeedService *service.ReviewFeedService

	// WebSockets
	ReviewFeedHandler *handler.ReviewFeedHandler
	WebSocketHub      *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires every dependency. db may be nil when the memory storage
// driver is configured. ctx bounds the background workers started here.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c.Logger = sysLogger

	uowFactory, err := newRepositoryFactory(db, cfg.Storage)
	if err != nil {
		return nil, err
	}

	// 2. Infrastructure
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		rdb = newRedisClient(cfg.App.RedisURL)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	var proposals contract.ProposalCache
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		if rdb == nil {
			return nil, fmt.Errorf("cache driver %q requires REDIS_URL", cfg.Cache.Driver)
		}
		proposals = cache.NewRedisProposalCache(rdb, cfg.Cache.ProposalTTL)
	default:
		proposals = memory.NewProposalCache(cfg.Cache.ProposalTTL)
	}
	nudgeSessions := memory.NewNudgeSessionRepository(cfg.Cache.NudgeSessionTTL)

	// NATS is optional. The interfaces stay nil unless a connection exists.
	var bus events.Publisher
	var busSubscriber service.EventSubscriber
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			bus = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			busSubscriber = natsSub
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// Audit trail rides an in-process watermill channel.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// WebSocket Hub
	feedLogger := logger.NewIsolatedLogger(cfg.App.FeedLogFilePath)
	wsHub := websocket.NewHub(rdb, feedLogger)
	go wsHub.Run(ctx)

	// 3. Services
	validators := fieldvalidator.NewDefaultRegistry()

	publisherService := service.NewPublisherService(cfg.App.AuditTopic, pubSub)
	eventService := service.NewReviewEventService(bus, publisherService, wsHub, sysLogger)

	artifactService := service.NewArtifactService(uowFactory, cfg.Review, eventService)
	interestService := service.NewInterestService(uowFactory, cfg.Review, eventService)
	customerService := service.NewCustomerService(uowFactory, validators, cfg.Review, eventService)
	reviewService := service.NewReviewService(artifactService, interestService, validators)
	applyService := service.NewApplyService(uowFactory, proposals, interestService, validators, eventService, sysLogger)
	nudgeService := service.NewNudgeService(uowFactory, nudgeSessions, validators, eventService)
	extractionService := service.NewExtractionService(uowFactory, proposals, artifactService, nudgeService, cfg.Review)

	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.AuditTopic, auditLogger)
	c.ReviewFeedService = service.NewReviewFeedService(busSubscriber, wsHub, feedLogger)

	// 4. Controllers
	c.CustomerController = controller.NewCustomerController(customerService, applyService)
	c.ArtifactController = controller.NewArtifactController(artifactService, reviewService)
	c.InterestController = controller.NewInterestController(interestService)
	c.ExtractionController = controller.NewExtractionController(extractionService, nudgeService)

	c.ReviewFeedHandler = handler.NewReviewFeedHandler(customerService, wsHub, cfg.Auth.JwtSecret, feedLogger)
	c.WebSocketHub = wsHub

	return c, nil
}

// Close releases broker and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newRepositoryFactory(db *gorm.DB, storage config.StorageConfig) (unitofwork.RepositoryFactory, error) {
	switch storage.Driver {
	case config.StorageDriverMemory:
		return memory.NewRepositoryFactory(memory.NewStore()), nil
	case config.StorageDriverPostgres, "":
		if db == nil {
			return nil, fmt.Errorf("storage driver %q requires a database connection", config.StorageDriverPostgres)
		}
		return unitofwork.NewRepositoryFactory(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", storage.Driver)
	}
}

func newRedisClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	return rdb
}
