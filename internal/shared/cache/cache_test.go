package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := ConnectRedis(context.Background(), mr.Addr())
	require.NoError(t, err)
	defer rdb.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = ConnectRedis(context.Background(), addr)
	require.Error(t, err)
}
