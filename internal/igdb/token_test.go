package igdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"GameShelfSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newTokenManager(tokenURL string) *TokenManager {
	cfg := &config.IGDBConfig{
		TokenURL:     tokenURL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	}
	return NewTokenManager(cfg, &http.Client{Timeout: 5 * time.Second}, testLogger())
}

// 并发取令牌只打一次令牌端点
func TestGetTokenSingleFlight(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
		assert.Equal(t, "test-client", r.FormValue("client_id"))
		time.Sleep(20 * time.Millisecond) // 拉长刷新窗口放大并发
		fmt.Fprint(w, `{"access_token":"tok-1","expires_in":3600,"token_type":"bearer"}`)
	}))
	defer srv.Close()

	m := newTokenManager(srv.URL)

	const goroutines = 16
	var wg sync.WaitGroup
	tokens := make([]string, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := m.GetToken(context.Background())
			require.NoError(t, err)
			tokens[i] = tok
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "并发刷新应合并为单次出站请求")
	for _, tok := range tokens {
		assert.Equal(t, "tok-1", tok)
	}

	// 缓存命中：再取一次不出站
	tok, err := m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

// 刷新失败：错误传播、缓存保持为空、下一次调用重新出站
func TestGetTokenRefreshFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"invalid client secret"}`)
			return
		}
		fmt.Fprint(w, `{"access_token":"tok-2","expires_in":3600,"token_type":"bearer"}`)
	}))
	defer srv.Close()

	m := newTokenManager(srv.URL)

	_, err := m.GetToken(context.Background())
	require.Error(t, err)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusForbidden, authErr.StatusCode)

	_, ok := m.cached()
	assert.False(t, ok, "失败后缓存应为空")

	// 下一次调用重新尝试且成功
	tok, err := m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

// 过期令牌触发刷新（过期判定含5分钟安全余量）
func TestGetTokenExpiryMargin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"access_token":"tok-3","expires_in":3600,"token_type":"bearer"}`)
	}))
	defer srv.Close()

	m := newTokenManager(srv.URL)
	_, err := m.GetToken(context.Background())
	require.NoError(t, err)

	m.mu.Lock()
	expiresAt := m.expiresAt
	m.mu.Unlock()
	// 3600s减5分钟余量
	assert.WithinDuration(t, time.Now().Add(55*time.Minute), expiresAt, 5*time.Second)

	// 人为把过期时间拨到过去，下一次取应触发刷新
	m.mu.Lock()
	m.expiresAt = time.Now().Add(-time.Minute)
	m.mu.Unlock()
	_, ok := m.cached()
	assert.False(t, ok)
}
