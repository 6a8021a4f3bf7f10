package public

import (
	"github.com/cockpitforge/internal/http/response"
	"github.com/cockpitforge/internal/service"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

func getSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get("session_id")
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}

// cartIdentity 解析购物车归属：登录用户优先，其次游客会话。
func cartIdentity(c *gin.Context) (service.CartIdentity, bool) {
	identity := service.CartIdentity{}
	if uid, ok := getUserID(c); ok {
		identity.UserID = uid
	}
	if sid, ok := getSessionID(c); ok {
		identity.SessionID = sid
	}
	if !identity.Valid() {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return service.CartIdentity{}, false
	}
	return identity, true
}
