package cleanup

import (
	"context"
	"net/http"
	"time"

	"pawn-ledger/internal/pkg/db/mongo"
	"pawn-ledger/internal/pkg/db/redis"
	"pawn-ledger/internal/pkg/gcs"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
)

// DefaultShutdownTimeout bounds the HTTP server drain when no timeout is configured.
const DefaultShutdownTimeout = 8 * time.Second

func CleanupResources(
	ctx context.Context,
	pubsubPublisher interface{ Close() error },
	mongoClient *mongo.MongoClient,
	redisClient *redis.RedisClient,
	server *http.Server,
	gcsClient gcs.GcsInterface,
	otelShutdown func(context.Context) error,
	shutdownTimeout time.Duration,
) {
	logger.CtxInfo(ctx, log_messages.CleanupStarted)

	// Stop accepting requests before the clients they depend on go away.
	cleanupHTTPServer(server, shutdownTimeout, ctx)

	cleanupPubSubResource(pubsubPublisher, "PubSub publisher", ctx)
	cleanupMongoResource(mongoClient, ctx)
	cleanupRedisResource(redisClient, ctx)
	cleanupGCSResource(gcsClient, ctx)
	cleanupOtel(otelShutdown, ctx)

	logger.CtxInfo(ctx, log_messages.CleanupCompleted)
}

func cleanupPubSubResource(resource interface{ Close() error }, resourceName string, ctx context.Context) {
	if resource == nil {
		return
	}
	if err := resource.Close(); err != nil {
		logger.CtxError(ctx, "Failed to close "+resourceName, err)
	} else {
		logger.CtxInfo(ctx, resourceName+" closed successfully")
	}
}

func cleanupMongoResource(mongoClient *mongo.MongoClient, ctx context.Context) {
	if mongoClient == nil || mongoClient.Client == nil {
		return
	}
	mongoCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongo.Disconnect(mongoCtx, mongoClient.Client); err != nil {
		logger.CtxError(mongoCtx, "Failed to disconnect MongoDB client", err)
	} else {
		logger.CtxInfo(mongoCtx, "MongoDB client disconnected successfully")
	}
}

func cleanupRedisResource(redisClient *redis.RedisClient, ctx context.Context) {
	if redisClient == nil || redisClient.Client == nil {
		return
	}
	if err := redis.Disconnect(redisClient.Client); err != nil {
		logger.CtxError(ctx, "Failed to close Redis client", err)
	} else {
		logger.CtxInfo(ctx, "Redis client closed successfully")
	}
}

func cleanupHTTPServer(server *http.Server, timeout time.Duration, ctx context.Context) {
	if server == nil {
		return
	}
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.CtxError(ctx, log_messages.ServerForcedShutdown, err)
	} else {
		logger.CtxInfo(ctx, "HTTP server shutdown successfully")
	}
}

func cleanupGCSResource(gcsClient gcs.GcsInterface, ctx context.Context) {
	if gcsClient == nil {
		return
	}
	gcsClient.Close(ctx)
	logger.CtxInfo(ctx, "GCS client closed successfully")
}

func cleanupOtel(shutdown func(context.Context) error, ctx context.Context) {
	if shutdown == nil {
		return
	}
	if err := shutdown(ctx); err != nil {
		logger.CtxError(ctx, "Failed to flush OpenTelemetry spans", err)
	}
}
