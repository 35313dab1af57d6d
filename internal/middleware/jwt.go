package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raids-lab/projecthub/internal/resputil"
	"github.com/raids-lab/projecthub/internal/util"
	"github.com/raids-lab/projecthub/pkg/apperror"
)

// TokenChecker verifies a bearer token; *util.TokenManager implements it.
type TokenChecker interface {
	CheckToken(ctx context.Context, token string) (util.JWTMessage, error)
}

// AuthProtected verifies the identity-provider session token and stores the
// caller in the gin context. Every decision after this point is made from
// the token subject alone.
func AuthProtected(checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		t := strings.Split(authHeader, " ")
		if len(t) < 2 || t[0] != "Bearer" || t[1] == "" {
			resputil.HTTPError(c, http.StatusUnauthorized, "Unauthorized", apperror.KindUnauthorized)
			c.Abort()
			return
		}

		token, err := checker.CheckToken(c.Request.Context(), t[1])
		if err != nil {
			resputil.HTTPError(c, http.StatusUnauthorized, "Unauthorized", apperror.KindUnauthorized)
			c.Abort()
			return
		}

		util.SetJWTContext(c, token)
		c.Next()
	}
}
