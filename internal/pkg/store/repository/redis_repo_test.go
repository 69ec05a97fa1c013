package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStoreAdapter(t *testing.T) {
	db, mock := redismock.NewClientMock()

	adapter := NewRedisStoreAdapter(db)

	assert.NotNil(t, adapter)
	assert.Equal(t, db, adapter.client)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreAdapter_SetNX(t *testing.T) {
	t.Run("Acquired", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectSetNX("ledger:materialize:2025-09-10", "token", time.Minute).SetVal(true)

		ok, err := adapter.SetNX(context.Background(), "ledger:materialize:2025-09-10", "token", time.Minute)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Held", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectSetNX("k", "token", time.Minute).SetVal(false)

		ok, err := adapter.SetNX(context.Background(), "k", "token", time.Minute)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectSetNX("k", "token", time.Minute).SetErr(assert.AnError)

		_, err := adapter.SetNX(context.Background(), "k", "token", time.Minute)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectGet("k").SetVal("v")

		val, err := adapter.Get(context.Background(), "k")

		assert.NoError(t, err)
		assert.Equal(t, "v", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		adapter := NewRedisStoreAdapter(db)

		mock.ExpectGet("k").RedisNil()

		_, err := adapter.Get(context.Background(), "k")

		assert.ErrorIs(t, err, redis.Nil)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStoreAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)

	mock.ExpectDel("k").SetVal(1)

	assert.NoError(t, adapter.Delete(context.Background(), "k"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreAdapter_CompareAndDelete(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer func() { _ = client.Close() }()
	adapter := NewRedisStoreAdapter(client)
	ctx := context.Background()

	require.NoError(t, srv.Set("lock", "mine"))

	deleted, err := adapter.CompareAndDelete(ctx, "lock", "theirs")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, srv.Exists("lock"))

	deleted, err = adapter.CompareAndDelete(ctx, "lock", "mine")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, srv.Exists("lock"))

	deleted, err = adapter.CompareAndDelete(ctx, "lock", "mine")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRedisStoreAdapter_CompareAndExpire(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer func() { _ = client.Close() }()
	adapter := NewRedisStoreAdapter(client)
	ctx := context.Background()

	require.NoError(t, srv.Set("lock", "mine"))
	srv.SetTTL("lock", time.Second)

	extended, err := adapter.CompareAndExpire(ctx, "lock", "theirs", time.Minute)
	require.NoError(t, err)
	assert.False(t, extended)
	assert.Equal(t, time.Second, srv.TTL("lock"))

	extended, err = adapter.CompareAndExpire(ctx, "lock", "mine", time.Minute)
	require.NoError(t, err)
	assert.True(t, extended)
	assert.Equal(t, time.Minute, srv.TTL("lock"))

	extended, err = adapter.CompareAndExpire(ctx, "missing", "mine", time.Minute)
	require.NoError(t, err)
	assert.False(t, extended)
}
