package main

import (
	"context"

	goRedis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/internal/config"
	mongoInfra "github.com/fastygo/taskmanager/internal/infrastructure/mongo"
	"github.com/fastygo/taskmanager/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/taskmanager/internal/infrastructure/postgres"
	"github.com/fastygo/taskmanager/internal/services"
	"github.com/fastygo/taskmanager/repository"
	boltRepo "github.com/fastygo/taskmanager/repository/bolt"
	"github.com/fastygo/taskmanager/repository/memory"
	mongoRepo "github.com/fastygo/taskmanager/repository/mongo"
	pgRepo "github.com/fastygo/taskmanager/repository/postgres"
	redisRepo "github.com/fastygo/taskmanager/repository/redis"
)

// openStore connects the configured database driver and returns its repositories.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if err := pgInfra.RunMigrations(cfg, logger); err != nil {
			return nil, err
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		return pgRepo.NewStore(pool), nil

	case config.DriverMongo:
		db, err := mongoInfra.Connect(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, err
		}
		if err := mongoRepo.EnsureIndexes(ctx, db); err != nil {
			_ = db.Client().Disconnect(ctx)
			return nil, err
		}
		return mongoRepo.NewStore(db), nil

	default:
		logger.Warn("using in-memory storage; data is lost on restart")
		return memory.NewStore(), nil
	}
}

// stateBackend is the OAuth state store plus the hooks the monitor and janitor need.
type stateBackend struct {
	repo   repository.OAuthStateRepository
	sizer  monitor.StateSizer
	purger services.ExpiredStatePurger
	close  func() error
}

func openStateStore(cfg *config.Config, redisClient *goRedis.Client) (*stateBackend, error) {
	if cfg.OAuth.StateStore == config.StateStoreRedis {
		return &stateBackend{
			repo:  redisRepo.NewOAuthStateRepository(redisClient),
			close: func() error { return nil },
		}, nil
	}

	store, err := boltRepo.Open(cfg.OAuth.BoltPath)
	if err != nil {
		return nil, err
	}
	return &stateBackend{
		repo:   store,
		sizer:  store,
		purger: store,
		close:  store.Close,
	}, nil
}

func sessionRepository(redisClient *goRedis.Client) repository.SessionRepository {
	if redisClient == nil {
		return redisRepo.NewNoopSessionRepository()
	}
	return redisRepo.NewSessionRepository(redisClient)
}
