package util

import (
	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/pkg/authz"
)

const (
	UserIDKey    = "x-user-id"
	SessionIDKey = "x-session-id"
)

func SetJWTContext(c *gin.Context, msg JWTMessage) {
	c.Set(UserIDKey, msg.UserID)
	c.Set(SessionIDKey, msg.SessionID)
}

func GetToken(c *gin.Context) JWTMessage {
	return JWTMessage{
		UserID:    c.GetString(UserIDKey),
		SessionID: c.GetString(SessionIDKey),
	}
}

// GetCaller is the identity every rule-engine call receives.
func GetCaller(c *gin.Context) authz.Caller {
	return authz.Caller{UserID: c.GetString(UserIDKey)}
}
