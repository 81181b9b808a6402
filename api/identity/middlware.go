package identity

import (
	"net/http"
	"strings"

	"github.com/dpersh/robot/service/i"
	"github.com/gin-gonic/gin"
)

// Authoriz admits requests bearing a valid token that grants scope.
func Authoriz(ts i.Tokenizer, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if !claims.HasScope(scope) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}
