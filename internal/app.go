package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"document-manager-api/config"
	"document-manager-api/internal/application/ports"
	"document-manager-api/internal/application/services"
	"document-manager-api/internal/infrastructure/db/postgres"
	aclrepo "document-manager-api/internal/infrastructure/db/postgres/acl"
	auditrepo "document-manager-api/internal/infrastructure/db/postgres/auditlog"
	docrepo "document-manager-api/internal/infrastructure/db/postgres/document"
	grouprepo "document-manager-api/internal/infrastructure/db/postgres/group"
	"document-manager-api/internal/infrastructure/db/postgres/migration"
	regrepo "document-manager-api/internal/infrastructure/db/postgres/registration"
	userrepo "document-manager-api/internal/infrastructure/db/postgres/user"
	"document-manager-api/internal/infrastructure/jwt"
	"document-manager-api/internal/infrastructure/logger"
	"document-manager-api/internal/infrastructure/metrics"
	"document-manager-api/internal/infrastructure/mq"
	"document-manager-api/internal/infrastructure/password"
	"document-manager-api/internal/interface/api/rest"
	"document-manager-api/internal/interface/api/rest/middleware"
	"document-manager-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// config; a missing .env is fine, the environment may be set already
	envErr := godotenv.Load(".env")
	cfg := config.Load()
	if cfg.App.JWTSecret == "" {
		return nil, errors.New("SERVICE_JWT_SECRET is required")
	}

	// logger
	log, err := logger.New(logger.Config{
		Env:         cfg.Log.Env,
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("error loading .env file", zap.Error(envErr))
	}

	// metrics
	mCounter := metrics.NewCounter()
	reqDuration := metrics.NewRequestDuration(prometheus.DefaultRegisterer)

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(log, mCounter, reqDuration))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		return nil, fmt.Errorf("DB config error: %w", err)
	}
	dbPool, err := postgres.New(ctx, log, dbDsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err = migration.EnsureMigrated(ctx, dbPool, log); err != nil {
			dbPool.Close()
			return nil, err
		}
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(cfg.MQ, log)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	if err = rbMQ.Init(); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to init rabbitMQ: %w", err)
	}

	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, log, mq.RoutingKeys())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = rmqConsumer.Init(); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}

	return &App{
		logger:     log,
		cfg:        cfg,
		db:         dbPool,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func (a *App) Close() {
	if a.mqConsumer != nil {
		a.mqConsumer.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run starts the HTTP server and the MQ workers under one errgroup and
// stops them all on SIGINT/SIGTERM or the first failure.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

// InitControllers wires repositories, services and HTTP routes and makes
// sure the admin account exists.
func (a *App) InitControllers(ctx context.Context) error {
	// repos
	hasher := password.New(a.cfg.Users.BcryptCost)
	auditRepo := auditrepo.NewRepository(a.db)
	userRepo := userrepo.NewRepository(a.db, hasher, auditRepo, a.cfg.Users.DefaultStorageQuota)
	documentRepo := docrepo.NewRepository(a.db, auditRepo)
	aclRepo := aclrepo.NewRepository(a.db, auditRepo)
	groupRepo := grouprepo.NewRepository(a.db, auditRepo)
	registrationRepo := regrepo.NewRepository(a.db)
	tx := postgres.NewTransactor(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(userRepo, hasher, jwtService, a.cfg.App.TokenTTL)
	userService := services.NewUserService(userRepo, documentRepo, tx, a.mq, a.mCounter, a.logger)
	documentService := services.NewDocumentService(documentRepo, aclRepo, groupRepo, userRepo, tx, a.mq, a.mCounter)
	groupService := services.NewGroupService(groupRepo, userRepo, tx, a.mCounter)
	registrationService := services.NewRegistrationService(registrationRepo, userRepo, hasher, tx, a.mq, a.mCounter)
	auditService := services.NewAuditService(auditRepo)

	if err := userService.EnsureAdmin(ctx, a.cfg.Users.AdminPassword); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	// applies to every route registered below
	a.router.Use(middleware.RejectInactiveAccounts(jwtService, userService))

	// controllers
	rest.NewAuthController(a.router, a.logger, authService)
	rest.NewUserController(a.router, userService, documentService, a.logger, jwtService)
	rest.NewDocumentController(a.router, documentService, a.logger, jwtService)
	rest.NewGroupController(a.router, groupService, a.logger, jwtService)
	rest.NewRegistrationController(a.router, registrationService, a.logger, jwtService)
	rest.NewAuditController(a.router, auditService, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))

	return nil
}

func (a *App) Logger() *zap.Logger { return a.logger }
