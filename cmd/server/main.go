package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/taskmanager/api/handler"
	"github.com/fastygo/taskmanager/internal/config"
	"github.com/fastygo/taskmanager/internal/infrastructure/monitor"
	"github.com/fastygo/taskmanager/internal/infrastructure/oauth"
	redisInfra "github.com/fastygo/taskmanager/internal/infrastructure/redis"
	"github.com/fastygo/taskmanager/internal/middleware"
	"github.com/fastygo/taskmanager/internal/router"
	"github.com/fastygo/taskmanager/internal/services"
	"github.com/fastygo/taskmanager/internal/services/lifecycle"
	"github.com/fastygo/taskmanager/pkg/httpcontext"
	"github.com/fastygo/taskmanager/pkg/logger"
	accountUC "github.com/fastygo/taskmanager/usecase/account"
	authUC "github.com/fastygo/taskmanager/usecase/auth"
	profileUC "github.com/fastygo/taskmanager/usecase/profile"
	taskUC "github.com/fastygo/taskmanager/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	store, err := openStore(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("store connection failed", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	manager.Register("store", store.Close)

	redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	if redisClient != nil {
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	states, err := openStateStore(cfg, redisClient)
	if err != nil {
		zapLogger.Fatal("failed to open oauth state store", zap.Error(err))
	}
	manager.Register("oauth_state", func(ctx context.Context) error {
		return states.close()
	})

	if states.purger != nil {
		janitor, err := services.NewStateJanitor(states.purger, zapLogger, services.JanitorConfig{
			Interval: cfg.OAuth.JanitorInterval,
			Schedule: cfg.OAuth.JanitorSchedule,
		})
		if err != nil {
			zapLogger.Fatal("failed to schedule oauth state janitor", zap.Error(err))
		}
		janitor.Start()
		manager.Register("state_janitor", func(ctx context.Context) error {
			janitor.Stop(ctx)
			return nil
		})
	}

	mon := monitor.New(monitor.Options{
		Driver:   cfg.Storage.Driver,
		Store:    store.Ping,
		Redis:    redisClient,
		States:   states.sizer,
		Interval: 10 * time.Second,
		Logger:   zapLogger,
	})
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	providers := oauth.FromConfig(cfg)
	passwords := authUC.NewPasswordHasher(cfg.Password.Cost)

	authUseCase := authUC.New(authUC.Dependencies{
		Users:     store.Users,
		Sessions:  sessionRepository(redisClient),
		States:    states.repo,
		Providers: providers,
		Tokens:    authUC.NewTokenIssuer(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL),
		Passwords: passwords,
		StateTTL:  cfg.OAuth.StateTTL,
	}, zapLogger)
	accountUseCase := accountUC.New(store.Users, store.Resorts, passwords, zapLogger)
	profileUseCase := profileUC.New(store.Users, zapLogger)
	taskUseCase := taskUC.New(store.Tasks, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	cookie := apiHandler.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure}

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, cookie, cfg.OAuth.PostLoginURL, ctxAdapter, zapLogger),
		Signup:  apiHandler.NewSignupHandler(accountUseCase, ctxAdapter, zapLogger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, cfg.Tasks.EnforceOwner, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.NewAuth(authUseCase, cfg.Session.CookieName, zapLogger)
	r := router.New(handlers, router.Middleware{
		Require:  authMiddleware.Require,
		Optional: authMiddleware.Optional,
	})

	server := &fasthttp.Server{
		Handler:            r.Handler,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		Concurrency:        cfg.HTTP.MaxConn,
		Name:               cfg.AppName,
		MaxRequestBodySize: 1 << 20,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("driver", cfg.Storage.Driver),
			zap.Strings("providers", providers.Names()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
