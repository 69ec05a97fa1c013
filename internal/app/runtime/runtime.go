package runtime

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pawn-ledger/internal/app/router"
	"pawn-ledger/internal/pkg/cleanup"
	"pawn-ledger/internal/pkg/config"
	"pawn-ledger/internal/pkg/db/mongo"
	"pawn-ledger/internal/pkg/db/redis"
	"pawn-ledger/internal/pkg/gcs"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/pkg/models"
	pkgotel "pawn-ledger/internal/pkg/otel"
	"pawn-ledger/internal/pkg/pubsub"
	"pawn-ledger/internal/pkg/store/impl/customers"
	interestrates "pawn-ledger/internal/pkg/store/impl/interest_rates"
	jewelrates "pawn-ledger/internal/pkg/store/impl/jewel_rates"
	ledgerstore "pawn-ledger/internal/pkg/store/impl/ledger"
	"pawn-ledger/internal/pkg/store/impl/vouchers"
	"pawn-ledger/internal/pkg/store/repository"
	"pawn-ledger/internal/service/ledger"
	"pawn-ledger/internal/service/rates"

	"go.uber.org/zap"
)

var (
	connectMongoDB = mongo.ConnectToMongoDB
	connectRedisDB = func(ctx context.Context, cfg config.RedisConfig) (*redis.RedisClient, error) {
		return redis.ConnectToRedis(ctx, cfg, nil)
	}
	ensureIndexes = mongo.EnsureIndexes
	newGCSClient  = func(ctx context.Context, cfg config.GCSConfig) (gcs.GcsInterface, error) {
		return gcs.NewGCSClient(ctx, cfg.BucketName, cfg.FolderName)
	}
	newPubSubPublisher = func(ctx context.Context, cfg config.PubSubConfig) (PubSubPublisher, error) {
		publisher, err := pubsub.NewPubSubPublisher(ctx, cfg.ProjectID, cfg.LedgerEventsTopic)
		if err != nil {
			return nil, err
		}
		return publisher, nil
	}
	setupOtel = pkgotel.Setup
)

// PubSubPublisher defines the contract for the ledger events publisher
type PubSubPublisher interface {
	Close() error
	PublishLedgerMaterialized(ctx context.Context, event *models.LedgerMaterializedEvent) error
}

// App encapsulates application resources and lifecycle.
type App struct {
	Cfg             *config.AppConfig
	PubSubPublisher PubSubPublisher
	MongoClient     *mongo.MongoClient
	RedisClient     *redis.RedisClient
	GcsClient       gcs.GcsInterface
	HTTPServer      *http.Server
	OtelShutdown    func(context.Context) error
	Services        router.Services
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadFromConfig()
	if err != nil {
		logger.CtxError(ctx, log_messages.FailedLoadingConfiguration, err)
		return nil, err
	}
	logger.Init(cfg.Logging.LogLevel)
	logger.SetServiceName(cfg.Otel.ServiceName)

	app := &App{Cfg: cfg}

	app.OtelShutdown, err = setupOtel(ctx, cfg.Otel.ServiceName, cfg.Otel.CollectorURL)
	if err != nil {
		logger.CtxError(ctx, "Failed to set up OpenTelemetry", err)
		return nil, err
	}

	app.MongoClient, err = connectMongoDB(ctx, cfg.Mongo)
	if err != nil {
		logger.CtxError(ctx, "Failed to connect to MongoDB", err)
		return app.abort(ctx, err)
	}
	if err := ensureIndexes(ctx, app.MongoClient.Database); err != nil {
		logger.CtxError(ctx, "Failed to ensure MongoDB indexes", err)
		return app.abort(ctx, err)
	}

	if cfg.Redis.Addr != "" {
		app.RedisClient, err = connectRedisDB(ctx, cfg.Redis)
		if err != nil {
			logger.CtxError(ctx, "Failed to connect to Redis", err)
			return app.abort(ctx, err)
		}
	}

	if cfg.GCS.BucketName != "" {
		app.GcsClient, err = newGCSClient(ctx, cfg.GCS)
		if err != nil {
			logger.CtxError(ctx, "Failed to create GCS client", err)
			return app.abort(ctx, err)
		}
	}

	if cfg.PubSub.ProjectID != "" && cfg.PubSub.LedgerEventsTopic != "" {
		app.PubSubPublisher, err = newPubSubPublisher(ctx, cfg.PubSub)
		if err != nil {
			logger.CtxError(ctx, log_messages.ErrorCreatingPubsubPublisher, err)
			return app.abort(ctx, err)
		}
	}

	app.Services, err = app.buildServices(ctx)
	if err != nil {
		logger.CtxError(ctx, log_messages.FailedInitializingRuntime, err)
		return app.abort(ctx, err)
	}

	return app, nil
}

// buildServices wires repositories and services on top of the connected clients.
func (a *App) buildServices(ctx context.Context) (router.Services, error) {
	calendar, err := ledger.LoadCalendar(a.Cfg.Ledger.Timezone)
	if err != nil {
		return router.Services{}, err
	}

	var locker ledger.DateLocker
	if a.RedisClient != nil && a.RedisClient.Client != nil {
		locker = ledger.NewRedisDateLock(repository.NewRedisStoreAdapter(a.RedisClient.Client), a.Cfg.Ledger)
	} else {
		logger.CtxWarn(ctx, "Redis not configured, ledger date lock is process-local")
		locker = ledger.NewLocalDateLock(a.Cfg.Ledger)
	}

	var opts []ledger.MaterializerOption
	if a.GcsClient != nil {
		opts = append(opts, ledger.WithSnapshotArchiver(a.GcsClient))
	}
	if a.PubSubPublisher != nil {
		opts = append(opts, ledger.WithEventPublisher(a.PubSubPublisher))
	}

	ledgerRepo := ledgerstore.NewLedgerRepository(a.MongoClient)
	materializer := ledger.NewMaterializer(
		ledgerRepo,
		vouchers.NewVouchersRepository(a.MongoClient),
		locker,
		calendar,
		opts...,
	)

	logger.CtxInfo(ctx, "Ledger services initialized",
		zap.String("timezone", calendar.Location().String()),
		zap.Bool("snapshotArchive", a.GcsClient != nil),
		zap.Bool("eventPublishing", a.PubSubPublisher != nil))

	return router.Services{
		InterestRates: rates.NewInterestRateService(interestrates.NewInterestRatesRepository(a.MongoClient)),
		JewelRates:    rates.NewJewelRateService(jewelrates.NewJewelRatesRepository(a.MongoClient)),
		Ledger: ledger.NewLedgerService(
			materializer,
			ledgerRepo,
			customers.NewCustomersRepository(a.MongoClient),
			calendar,
		),
	}, nil
}

// abort releases whatever New managed to open before failing.
func (a *App) abort(ctx context.Context, err error) (*App, error) {
	a.Shutdown(ctx)
	return nil, err
}

// Run starts the HTTP server, then blocks until a signal arrives or ctx is done.
func (a *App) Run(ctx context.Context) error {
	engine := router.SetupRouter(a.Cfg.Otel.ServiceName, a.Services)
	a.HTTPServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: a.Cfg.Server.ReadHeaderTimeout,
	}

	go func() {
		logger.CtxInfo(ctx, log_messages.ServerStarting, zap.String("addr", a.HTTPServer.Addr))
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.CtxError(ctx, log_messages.ServerStartFailure, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	logger.CtxInfo(ctx, log_messages.ServerShutdown)
	a.Shutdown(context.WithoutCancel(ctx))
	logger.CtxInfo(ctx, log_messages.ServerExiting)
	return nil
}

// Shutdown gracefully closes all resources with bounded timeouts.
func (a *App) Shutdown(ctx context.Context) {
	var shutdownTimeout = cleanup.DefaultShutdownTimeout
	if a.Cfg != nil && a.Cfg.Server.ShutdownTimeout > 0 {
		shutdownTimeout = a.Cfg.Server.ShutdownTimeout
	}

	cleanup.CleanupResources(ctx,
		a.PubSubPublisher,
		a.MongoClient,
		a.RedisClient,
		a.HTTPServer,
		a.GcsClient,
		a.OtelShutdown,
		shutdownTimeout,
	)
}
