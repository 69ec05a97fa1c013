package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pawn-ledger/internal/pkg/config"
	"pawn-ledger/internal/pkg/consts"
	"pawn-ledger/internal/pkg/log_messages"
	"pawn-ledger/internal/pkg/logger"
	"pawn-ledger/internal/service/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrDateLockTimeout = errors.New("timed out waiting for ledger date lock")

// DateLocker serializes materialization of a single ledger day.
type DateLocker interface {
	Acquire(ctx context.Context, dayKey string) (release func(), err error)
}

type lockBackend interface {
	tryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
	unlock(ctx context.Context, key, token string) (bool, error)
	refresh(ctx context.Context, key, token string, ttl time.Duration) (bool, error)
}

// DateLock polls its backend until the day is free or the wait expires.
type DateLock struct {
	backend  lockBackend
	ttl      time.Duration
	wait     time.Duration
	poll     time.Duration
	newToken func() string
}

// NewRedisDateLock shares the lock between replicas through Redis.
func NewRedisDateLock(store interfaces.RedisStoreOperations, cfg config.LedgerConfig) *DateLock {
	return newDateLock(&redisLockBackend{store: store}, cfg)
}

// NewLocalDateLock only serializes callers within this process.
func NewLocalDateLock(cfg config.LedgerConfig) *DateLock {
	return newDateLock(newLocalLockBackend(), cfg)
}

func newDateLock(backend lockBackend, cfg config.LedgerConfig) *DateLock {
	if cfg.LockPollTick <= 0 {
		cfg.LockPollTick = 200 * time.Millisecond
	}
	return &DateLock{
		backend:  backend,
		ttl:      cfg.LockTTL,
		wait:     cfg.LockWait,
		poll:     cfg.LockPollTick,
		newToken: uuid.NewString,
	}
}

func (l *DateLock) Acquire(ctx context.Context, dayKey string) (func(), error) {
	key := consts.LedgerLockKeyPrefix + dayKey
	token := l.newToken()

	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		ok, err := l.backend.tryLock(waitCtx, key, token, l.ttl)
		if err != nil {
			logger.CtxError(ctx, log_messages.ErrorAcquiringDateLock, err, zap.String("key", key))
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			return l.hold(ctx, key, token), nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.CtxWarn(ctx, log_messages.DateLockWaitTimedOut, zap.String("key", key), zap.Duration("wait", l.wait))
			return nil, ErrDateLockTimeout
		case <-ticker.C:
		}
	}
}

// hold keeps the lock alive until the returned release func is called.
func (l *DateLock) hold(ctx context.Context, key, token string) func() {
	stop := make(chan struct{})
	stopped := make(chan struct{})
	go l.keepAlive(context.WithoutCancel(ctx), key, token, stop, stopped)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-stopped
			l.release(ctx, key, token)
		})
	}
}

// keepAlive pushes the expiry out every third of the ttl. It stops early
// once the lock has passed to another holder.
func (l *DateLock) keepAlive(ctx context.Context, key, token string, stop <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	interval := l.ttl / 3
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			refreshCtx, cancel := context.WithTimeout(ctx, interval)
			held, err := l.backend.refresh(refreshCtx, key, token, l.ttl)
			cancel()
			if err != nil {
				logger.CtxError(ctx, log_messages.ErrorRefreshingDateLock, err, zap.String("key", key))
				continue
			}
			if !held {
				logger.CtxWarn(ctx, log_messages.DateLockReleasedByTTL, zap.String("key", key), zap.Duration("ttl", l.ttl))
				return
			}
		}
	}
}

func (l *DateLock) release(ctx context.Context, key, token string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.poll+time.Second)
	defer cancel()

	released, err := l.backend.unlock(releaseCtx, key, token)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorReleasingDateLock, err, zap.String("key", key))
		return
	}
	if !released {
		logger.CtxWarn(ctx, log_messages.DateLockReleasedByTTL, zap.String("key", key), zap.Duration("ttl", l.ttl))
	}
}

type redisLockBackend struct {
	store interfaces.RedisStoreOperations
}

func (b *redisLockBackend) tryLock(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	return b.store.SetNX(ctx, key, token, ttl)
}

func (b *redisLockBackend) unlock(ctx context.Context, key, token string) (bool, error) {
	return b.store.CompareAndDelete(ctx, key, token)
}

func (b *redisLockBackend) refresh(ctx context.Context, key, token string, ttl time.Duration) (bool, error) {
	return b.store.CompareAndExpire(ctx, key, token, ttl)
}

type localLockBackend struct {
	mu   sync.Mutex
	held map[string]localHold
}

type localHold struct {
	token   string
	expires time.Time
}

func newLocalLockBackend() *localLockBackend {
	return &localLockBackend{held: make(map[string]localHold)}
}

func (b *localLockBackend) tryLock(_ context.Context, key, token string, ttl time.Duration) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	if h, ok := b.held[key]; ok && now.Before(h.expires) {
		return false, nil
	}
	b.held[key] = localHold{token: token, expires: now.Add(ttl)}
	return true, nil
}

func (b *localLockBackend) unlock(_ context.Context, key, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.held[key]
	if !ok || h.token != token {
		return false, nil
	}
	delete(b.held, key)
	return true, nil
}

func (b *localLockBackend) refresh(_ context.Context, key, token string, ttl time.Duration) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.held[key]
	if !ok || h.token != token || time.Now().After(h.expires) {
		return false, nil
	}
	h.expires = time.Now().Add(ttl)
	b.held[key] = h
	return true, nil
}
