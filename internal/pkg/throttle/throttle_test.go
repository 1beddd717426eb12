package throttle

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aionhq/gate/cache"
	rcache "github.com/aionhq/gate/cache/redis"
	"github.com/aionhq/gate/mocks"
	"github.com/aionhq/gate/pkg/log"
)

func newTestCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.Nil(t, err)
	t.Cleanup(mr.Close)

	c, err := rcache.NewRedisCache(fmt.Sprintf("redis://%s", mr.Addr()))
	require.Nil(t, err)

	return c, mr
}

func TestThrottle_BlocksAfterThreshold(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	th := NewThrottle(c, 3, time.Hour, log.NewLogger(os.Stderr))

	blocked, _ := th.Check(ctx, "198.51.100.7")
	require.False(t, blocked)

	for i := 0; i < 2; i++ {
		th.RecordFailure(ctx, "198.51.100.7")
		blocked, _ = th.Check(ctx, "198.51.100.7")
		require.False(t, blocked)
	}

	th.RecordFailure(ctx, "198.51.100.7")

	blocked, retryAfter := th.Check(ctx, "198.51.100.7")
	require.True(t, blocked)
	require.Greater(t, retryAfter, 0)
	require.LessOrEqual(t, retryAfter, 3600)
}

func TestThrottle_ClientsAreIndependent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	th := NewThrottle(c, 2, time.Hour, log.NewLogger(os.Stderr))

	th.RecordFailure(ctx, "198.51.100.7")
	th.RecordFailure(ctx, "198.51.100.7")

	blocked, _ := th.Check(ctx, "198.51.100.7")
	require.True(t, blocked)

	blocked, _ = th.Check(ctx, "203.0.113.9")
	require.False(t, blocked)
}

func TestThrottle_WindowIsNotExtendedByLaterFailures(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	th := NewThrottle(c, 10, time.Hour, log.NewLogger(os.Stderr))

	th.RecordFailure(ctx, "198.51.100.7")

	var first Counter
	require.Nil(t, c.Get(ctx, "throttle:198.51.100.7", &first))

	th.RecordFailure(ctx, "198.51.100.7")
	th.RecordFailure(ctx, "198.51.100.7")

	var later Counter
	require.Nil(t, c.Get(ctx, "throttle:198.51.100.7", &later))

	require.Equal(t, 3, later.Count)
	require.Equal(t, first.WindowExpiry.Unix(), later.WindowExpiry.Unix())
}

func TestThrottle_ExpiredWindowStartsAFreshCount(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	th := NewThrottle(c, 2, time.Minute, log.NewLogger(os.Stderr))

	th.RecordFailure(ctx, "198.51.100.7")
	th.RecordFailure(ctx, "198.51.100.7")

	blocked, _ := th.Check(ctx, "198.51.100.7")
	require.True(t, blocked)

	mr.FastForward(2 * time.Minute)

	blocked, retryAfter := th.Check(ctx, "198.51.100.7")
	require.False(t, blocked)
	require.Equal(t, 0, retryAfter)

	th.RecordFailure(ctx, "198.51.100.7")

	var counter Counter
	require.Nil(t, c.Get(ctx, "throttle:198.51.100.7", &counter))
	require.Equal(t, 1, counter.Count)
}

func TestThrottle_CounterSurvivesSuccessfulChecks(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	th := NewThrottle(c, 3, time.Hour, log.NewLogger(os.Stderr))

	th.RecordFailure(ctx, "198.51.100.7")
	th.RecordFailure(ctx, "198.51.100.7")

	// A request that passes the check and then authenticates records
	// nothing, so the count must be unchanged afterwards.
	blocked, _ := th.Check(ctx, "198.51.100.7")
	require.False(t, blocked)

	var counter Counter
	require.Nil(t, c.Get(ctx, "throttle:198.51.100.7", &counter))
	require.Equal(t, 2, counter.Count)

	th.RecordFailure(ctx, "198.51.100.7")

	blocked, _ = th.Check(ctx, "198.51.100.7")
	require.True(t, blocked)
}

func TestThrottle_FailsOpenWhenStoreUnavailable(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	c := mocks.NewMockCache(ctrl)
	c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("connection refused")).AnyTimes()

	th := NewThrottle(c, 1, time.Hour, log.NewLogger(os.Stderr))

	th.RecordFailure(ctx, "198.51.100.7")

	blocked, retryAfter := th.Check(ctx, "198.51.100.7")
	require.False(t, blocked)
	require.Equal(t, 0, retryAfter)
}
