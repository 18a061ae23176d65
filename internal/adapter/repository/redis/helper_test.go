package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	infraredis "github.com/iho/caisse/internal/infrastructure/redis"
)

// newTestRedisClient dials an in-process server through the same constructor
// the server uses, so keys land where production code would put them.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := infraredis.NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)

	return client, mr
}
