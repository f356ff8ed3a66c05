package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"GameShelfSync/internal/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// 令牌有效期安全余量：在提供方声明的过期时间上提前5分钟作废
const tokenExpiryMargin = 5 * time.Minute

// TokenManager Twitch OAuth2 client-credentials令牌缓存。
// 进程级共享：缓存令牌+绝对过期时间，并发刷新合并为同一次出站请求。
type TokenManager struct {
	cfg        *config.IGDBConfig
	httpClient *http.Client
	logger     *logrus.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	group singleflight.Group // 并发GetToken合并为单次刷新
}

func NewTokenManager(cfg *config.IGDBConfig, httpClient *http.Client, logger *logrus.Logger) *TokenManager {
	return &TokenManager{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetToken 返回当前可用的bearer令牌；缓存失效时发起刷新。
// 刷新进行中时所有并发调用方等待同一次请求的结果；刷新失败则错误
// 传播给全部等待方且缓存保持为空，下一次调用会重新尝试。
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	if token, ok := m.cached(); ok {
		return token, nil
	}

	v, err, _ := m.group.Do("token", func() (interface{}, error) {
		// 等待期间可能已有人刷新成功，先复查缓存
		if token, ok := m.cached(); ok {
			return token, nil
		}
		return m.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// cached 读取未过期的缓存令牌
func (m *TokenManager) cached() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != "" && time.Now().Before(m.expiresAt) {
		return m.token, true
	}
	return "", false
}

// refresh 向令牌端点发起client-credentials请求并写入缓存
func (m *TokenManager) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("client_id", m.cfg.ClientID)
	form.Set("client_secret", m.cfg.ClientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("构造令牌请求失败: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Err: fmt.Errorf("请求令牌端点失败: %w", err)}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			m.logger.Errorf("关闭令牌响应体失败: %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &AuthError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("令牌端点返回非2xx: %s", string(body)),
		}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", &AuthError{Err: fmt.Errorf("解析令牌响应失败: %w", err)}
	}
	if payload.AccessToken == "" {
		return "", &AuthError{Err: fmt.Errorf("令牌响应缺少access_token")}
	}

	expiresAt := time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - tokenExpiryMargin)

	m.mu.Lock()
	m.token = payload.AccessToken
	m.expiresAt = expiresAt
	m.mu.Unlock()

	m.logger.WithField("expires_at", expiresAt.Format(time.RFC3339)).Info("IGDB令牌刷新成功")
	return payload.AccessToken, nil
}
