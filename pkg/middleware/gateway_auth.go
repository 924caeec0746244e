package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shadamnittt/FeelGo/pkg/utils"
)

// GatewayAuthMiddleware checks the shared secret the messaging gateway sends
// with every request. An empty configured token disables the check, which is
// only acceptable in development.
func GatewayAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		got := c.GetHeader("X-Gateway-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			utils.RespondError(c, http.StatusUnauthorized, "Gateway token missing or invalid")
			c.Abort()
			return
		}

		c.Next()
	}
}
