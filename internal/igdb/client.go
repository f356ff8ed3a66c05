package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"GameShelfSync/internal/config"
	"GameShelfSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Client IGDB目录客户端。持有进程级共享的令牌缓存与限速器（注入的
// client context，而非包级全局），每次请求先取令牌、再等槽位、再出站。
type Client struct {
	cfg        *config.IGDBConfig
	tokens     *TokenManager
	limiter    *RateLimiter
	httpClient *http.Client
	logger     *logrus.Logger

	backoffUnit time.Duration // 退避时间基数（测试时可缩短）
}

func NewClient(cfg *config.IGDBConfig, logger *logrus.Logger) *Client {
	hc := httpclient.NewHTTPClient(cfg, logger)
	return &Client{
		cfg:         cfg,
		tokens:      NewTokenManager(cfg, hc, logger),
		limiter:     NewRateLimiter(cfg.RatePerSec),
		httpClient:  hc,
		logger:      logger,
		backoffUnit: time.Second,
	}
}

// Request 向指定实体端点发起Apicalypse查询，返回JSON数组元素。
// 空数组是合法结果（此层不把not-found当错误）。
// 重试策略：
//   - 429 → 指数退避（2^attempt秒），上限RetryCount次，耗尽抛RateLimitError
//   - 其他4xx → 立即抛ClientError，不重试
//   - 5xx/网络故障 → 线性退避，上限RetryCount次，耗尽抛ServerError
func (c *Client) Request(ctx context.Context, kind Kind, query string) ([]json.RawMessage, error) {
	maxRetry := c.cfg.RetryCount
	if maxRetry <= 0 {
		maxRetry = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetry; attempt++ {
		rows, retryable, err := c.doRequest(ctx, kind, query)
		if err == nil {
			return rows, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err

		// 最后一次尝试失败后不再退避
		if attempt == maxRetry {
			break
		}

		var backoff time.Duration
		if _, ok := err.(*RateLimitError); ok {
			backoff = time.Duration(1<<uint(attempt)) * c.backoffUnit // 2^attempt
		} else {
			backoff = time.Duration(attempt+1) * c.backoffUnit
		}
		c.logger.WithFields(logrus.Fields{
			"endpoint": kind.Endpoint(),
			"attempt":  attempt + 1,
			"backoff":  backoff.String(),
		}).Warnf("请求失败将重试: %v", err)

		if err := sleepCtx(ctx, backoff); err != nil {
			return nil, err
		}
	}

	// 重试耗尽：按最后一次错误类型归类
	switch e := lastErr.(type) {
	case *RateLimitError:
		e.Attempts = maxRetry
		return nil, e
	case *ServerError:
		e.Attempts = maxRetry
		return nil, e
	default:
		return nil, lastErr
	}
}

// doRequest 单次出站请求。返回值retryable标记该错误是否可重试。
func (c *Client) doRequest(ctx context.Context, kind Kind, query string) (rows []json.RawMessage, retryable bool, err error) {
	// 1. 取令牌（认证失败致命，直接向上传播）
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, false, err
	}

	// 2. 等待限速槽位
	if err := c.limiter.AwaitSlot(ctx); err != nil {
		return nil, false, fmt.Errorf("等待限速槽位失败: %w", err)
	}

	// 3. 出站
	reqURL := c.cfg.BaseURL + kind.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(query))
	if err != nil {
		return nil, false, fmt.Errorf("构造目录请求失败: %w", err)
	}
	req.Header.Set("Client-ID", c.cfg.ClientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 网络故障按服务端错误对待，可重试
		return nil, true, &ServerError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Errorf("关闭目录响应体失败: %v", err)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, &RateLimitError{Endpoint: kind.Endpoint()}
	case resp.StatusCode >= 500:
		return nil, true, &ServerError{StatusCode: resp.StatusCode}
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, false, &ClientError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, false, fmt.Errorf("解析目录响应失败: %w", err)
	}
	return rows, false, nil
}

// sleepCtx 可被ctx取消的退避等待
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
