package pagecache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedis(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	c := NewRedis(client, "yatube:")

	t.Run("miss", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "index:/?", []byte("rendered"), time.Minute))
		v, ok, err := c.Get(ctx, "index:/?")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("rendered"), v)

		ttl, err := client.TTL(ctx, "yatube:index:/?").Result()
		require.NoError(t, err)
		assert.True(t, ttl > 0 && ttl <= time.Minute)
	})

	t.Run("expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "short", []byte("x"), 100*time.Millisecond))
		assert.Eventually(t, func() bool {
			_, ok, err := c.Get(ctx, "short")
			return err == nil && !ok
		}, 2*time.Second, 50*time.Millisecond)
	})

	t.Run("clear keeps foreign keys", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "other:key", "keep", 0).Err())
		for i := 0; i < 250; i++ {
			require.NoError(t, c.Set(ctx, "k"+string(rune('a'+i%26))+time.Duration(i).String(), []byte("v"), time.Minute))
		}
		require.NoError(t, c.Clear(ctx))

		keys, err := client.Keys(ctx, "yatube:*").Result()
		require.NoError(t, err)
		assert.Empty(t, keys)

		v, err := client.Get(ctx, "other:key").Result()
		require.NoError(t, err)
		assert.Equal(t, "keep", v)
	})
}
