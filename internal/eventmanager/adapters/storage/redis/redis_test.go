package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "eventmanager/internal/eventmanager/adapters/storage/redis"
	redisdb "eventmanager/pkg/db/redis"
)

func newTestStore(t *testing.T) *redisstore.Store {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := redisdb.NewClient(context.Background(), &redisdb.Config{
		Host:     host,
		Port:     port,
		PoolSize: 2,
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.NewStore(client)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	payload := []byte(`[{"id":"u1","email":"alice@example.com"}]`)

	require.NoError(t, store.Save(ctx, "event_manager_users", payload))

	loaded, err := store.Load(ctx, "event_manager_users")
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)
}

func TestStoreLoadMissingKey(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	loaded, err := store.Load(ctx, "never_written")
	require.NoError(t, err, "missing key must not be an error")
	assert.Nil(t, loaded)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, "session", []byte(`{"id":"u1"}`)))
	require.NoError(t, store.Delete(ctx, "session"))
	require.NoError(t, store.Delete(ctx, "session"))

	loaded, err := store.Load(ctx, "session")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestNewClientConnectionFailure(t *testing.T) {
	client, err := redisdb.NewClient(context.Background(), &redisdb.Config{
		Host:    "nonexistent.host",
		Port:    12345,
		Timeout: 100 * time.Millisecond,
	})

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}
