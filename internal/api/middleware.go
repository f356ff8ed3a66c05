package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 会话层在网关侧完成认证，这里只消费它注入的身份头。
// X-User-ID 缺失或非法的请求直接401。
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	ctxKeyUserID   = "user_id"
	ctxKeyUserRole = "user_role"
)

// ActorMiddleware 从请求头提取调用者身份并放入gin上下文
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(headerUserID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "缺少用户身份头"})
			return
		}
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "用户身份头非法"})
			return
		}
		c.Set(ctxKeyUserID, userID)
		c.Set(ctxKeyUserRole, c.GetHeader(headerUserRole))
		c.Next()
	}
}

func actorUserID(c *gin.Context) uint64 {
	v, _ := c.Get(ctxKeyUserID)
	id, _ := v.(uint64)
	return id
}
