package mongo

import (
	"context"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/internal/config"
)

// Connect opens a client with the stable v1 server API and returns the configured database.
func Connect(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*mongodriver.Database, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.URI == "" {
		return nil, domain.NewError(domain.ErrCodeUnavailable, "mongodb uri is not configured")
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongodriver.Connect(ctx, opts)
	if err != nil {
		return nil, domain.Unavailable("connect mongodb", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, domain.Unavailable("ping mongodb", err)
	}

	logger.Info("connected to mongodb", zap.String("db", cfg.Database))
	return client.Database(cfg.Database), nil
}
