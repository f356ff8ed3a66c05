package igdb

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter 出站请求限速器。限速是远端API的属性而非某条请求路径的属性，
// 因此作为进程级共享状态挂在Client上：相邻两个放行槽位间隔不小于
// 1/RatePerSec（免费档4 req/s即≥250ms）。
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(perSec int) *RateLimiter {
	if perSec <= 0 {
		perSec = 4
	}
	interval := time.Second / time.Duration(perSec)
	// burst=1：不允许突发，严格按间隔放行
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// AwaitSlot 阻塞到下一个放行槽位；ctx取消时提前返回错误
func (r *RateLimiter) AwaitSlot(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
