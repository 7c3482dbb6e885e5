package query

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "test:"), mr
}

func TestMemoryStoreTTLAndPrune(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "bets:1", []byte("x"), time.Minute))
	require.NoError(t, s.Set(ctx, "teams", []byte("y"), time.Hour))

	_, ok, _ := s.Get(ctx, "bets:1")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = s.Get(ctx, "bets:1")
	assert.False(t, ok)

	assert.Equal(t, 1, s.Prune())
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreDeletePrefix(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for _, k := range []string{"bets", "bets:placed:1", "betsy", "customers:7:balance-changes"} {
		require.NoError(t, s.Set(ctx, k, []byte("v"), time.Minute))
	}

	require.NoError(t, s.DeletePrefix(ctx, "bets"))
	assert.Equal(t, 2, s.Len())
	_, ok, _ := s.Get(ctx, "betsy")
	assert.True(t, ok)
}

func TestStoreDeleteIsExact(t *testing.T) {
	ctx := context.Background()
	redisStore, _ := newTestRedisStore(t)
	for name, s := range map[string]Store{"memory": NewMemoryStore(), "redis": redisStore} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "customers", []byte("v"), time.Minute))
			require.NoError(t, s.Set(ctx, "customers:5:balance-changes", []byte("v"), time.Minute))

			require.NoError(t, s.Delete(ctx, "customers"))
			_, ok, _ := s.Get(ctx, "customers")
			assert.False(t, ok)
			_, ok, _ = s.Get(ctx, "customers:5:balance-changes")
			assert.True(t, ok)
		})
	}
}

func TestRedisStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)

	_, ok, err := s.Get(ctx, "bets:placed:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "bets:placed:1", []byte(`{"items":[]}`), time.Minute))
	require.NoError(t, s.Set(ctx, "bets:failed:1", []byte(`{}`), time.Minute))
	require.NoError(t, s.Set(ctx, "bookies", []byte(`[]`), time.Minute))
	assert.True(t, mr.Exists("test:bets:placed:1"))

	b, ok, err := s.Get(ctx, "bets:placed:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"items":[]}`, string(b))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("test:bookies"))

	require.NoError(t, s.Set(ctx, "bets:placed:1", []byte(`{}`), time.Minute))
	require.NoError(t, s.Set(ctx, "bookies", []byte(`[]`), time.Minute))
	require.NoError(t, s.DeletePrefix(ctx, "bets"))
	assert.False(t, mr.Exists("test:bets:placed:1"))
	assert.True(t, mr.Exists("test:bookies"))
}

func TestClientOverRedis(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestRedisStore(t)
	c := NewClient(s, Options{TTL: time.Minute}, zap.NewNop(), Hooks{})
	var calls int
	fn := func(context.Context) ([]int, error) { calls++; return []int{1, 2}, nil }

	Fetch(ctx, c, NewKey("events", "", 1), fn)
	r := Fetch(ctx, c, NewKey("events", "", 1), fn)
	assert.Equal(t, []int{1, 2}, r.Data)
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Invalidate(ctx, NewKey("events")))
	Fetch(ctx, c, NewKey("events", "", 1), fn)
	assert.Equal(t, 2, calls)
}

func TestStartJanitor(t *testing.T) {
	_, err := StartJanitor("not a schedule", NewMemoryStore(), zap.NewNop())
	require.Error(t, err)

	c, err := StartJanitor("@every 1m", NewMemoryStore(), zap.NewNop())
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 1)
}
