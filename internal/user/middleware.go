package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userCookieName 是存放用户UUID的Cookie名
const userCookieName = "gacha-user-id"

// ContextKeyUserUUID 是gin上下文中用户UUID的键
const ContextKeyUserUUID = "userUUID"

// cookieMaxAge 约一年
const cookieMaxAge = 365 * 24 * 3600

// IdentityMiddleware 确保每个请求都携带一个服务端签发的用户UUID。
// Cookie缺失或不是合法UUID时重新签发，UUID存入gin上下文供后续处理使用。
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(userCookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.Must(uuid.NewV7()).String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(userCookieName, id, cookieMaxAge, "/", "", false, true)
		}
		c.Set(ContextKeyUserUUID, id)
		c.Next()
	}
}

// UUIDFromContext 从gin上下文取出当前请求的用户UUID
func UUIDFromContext(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyUserUUID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
