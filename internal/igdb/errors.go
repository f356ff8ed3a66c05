package igdb

import (
	"errors"
	"fmt"
)

// ErrNotFound 目录中不存在该ID的实体（空数组结果在Stub补齐场景下是错误）
var ErrNotFound = errors.New("目录中不存在该实体")

// AuthError 凭证或令牌端点失败（致命，不重试）
type AuthError struct {
	StatusCode int
	Err        error
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("认证失败（HTTP %d）: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("认证失败: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RateLimitError 限流重试次数耗尽（429）
type RateLimitError struct {
	Endpoint string
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("请求%s被限流，重试%d次后仍失败", e.Endpoint, e.Attempts)
}

// ClientError 4xx（非429）——请求本身有问题，立即失败不重试
type ClientError struct {
	StatusCode int
	Body       string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("客户端请求错误（HTTP %d）: %s", e.StatusCode, e.Body)
}

// ServerError 5xx或网络故障，重试耗尽后抛出
type ServerError struct {
	StatusCode int
	Attempts   int
	Err        error
}

func (e *ServerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("服务端错误（重试%d次）: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("服务端错误（HTTP %d，重试%d次）", e.StatusCode, e.Attempts)
}

func (e *ServerError) Unwrap() error { return e.Err }
