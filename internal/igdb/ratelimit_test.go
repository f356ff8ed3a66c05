package igdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 相邻槽位间隔不小于1/perSec
func TestRateLimiterSpacing(t *testing.T) {
	perSec := 100 // 间隔10ms，避免测试过慢
	rl := NewRateLimiter(perSec)

	const n = 5
	start := time.Now()
	for i := 0; i < n; i++ {
		require.NoError(t, rl.AwaitSlot(context.Background()))
	}
	elapsed := time.Since(start)

	// n个槽位至少要等(n-1)个间隔
	minElapsed := time.Duration(n-1) * (time.Second / time.Duration(perSec))
	assert.GreaterOrEqual(t, elapsed, minElapsed,
		"%d个槽位只用了%v，限速没有生效", n, elapsed)
}

func TestRateLimiterCtxCancel(t *testing.T) {
	rl := NewRateLimiter(1) // 间隔1s

	require.NoError(t, rl.AwaitSlot(context.Background())) // 第一个槽位立即放行

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := rl.AwaitSlot(ctx)
	assert.Error(t, err, "ctx超时后应提前返回而非继续等槽位")
}

func TestRateLimiterDefault(t *testing.T) {
	// 非法参数兜底为4 req/s
	rl := NewRateLimiter(0)
	require.NotNil(t, rl.limiter)
	assert.InDelta(t, 4.0, float64(rl.limiter.Limit()), 0.01)
}
