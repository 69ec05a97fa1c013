package interfaces

import (
	"context"
	"time"
)

type RedisStoreOperations interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	CompareAndDelete(ctx context.Context, key string, expected string) (bool, error)
	CompareAndExpire(ctx context.Context, key string, expected string, expiration time.Duration) (bool, error)
}
