package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/pricing-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/pricing-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/pricing-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/pricing-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/pricing-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pricing-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/pricing-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/clients"
	"github.com/DRSN-tech/pricing-backend/pkg/closer"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/DRSN-tech/pricing-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает все слои приложения и управляет их жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	const ensureTopicTimeout = 10 * time.Second

	cl := closer.NewCloser(0)

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	catConv := pgdbConv.NewCategoryConverterImpl()
	prConv := pgdbConv.NewProductConverterImpl()
	usConv := pgdbConv.NewUserConverterImpl()
	spConv := pgdbConv.NewSpecialPriceConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	infoConv := redisConv.NewProductInfoConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv)
	userRepo := pgdb.NewUserRepo(db.Pool, usConv)
	specialPriceRepo := pgdb.NewSpecialPriceRepo(db.Pool, spConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})
	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	productUC := usecase.NewProductUC(productRepo, categoryRepo, outboxRepo, db.Pool, cacheRepo, log)
	userUC := usecase.NewUserUC(userRepo, log)
	pricingUC := usecase.NewPricingEngine(specialPriceRepo, productRepo, outboxRepo, db.Pool, log)
	viewUC := usecase.NewPricingProjector(productRepo, specialPriceRepo, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(productUC, userUC, pricingUC, viewUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	return &App{
		cfg:     cfg,
		logger:  log,
		closer:  cl,
		httpSrv: httpSrv,
		worker:  worker,
	}, nil
}

// Run запускает outbox-воркер и HTTP-сервер и блокируется до сигнала
// завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.worker.Start(workerCtx)
	a.closer.Add(func(ctx context.Context) error {
		workerCancel()
		a.worker.Stop()
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	} else {
		a.logger.Infof("Application shutdown complete")
	}

	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
