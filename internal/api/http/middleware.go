package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mukeshkrmukhiya/Chess-Backend/internal/auth"
)

// ctxPlayerID is the gin context key the auth middleware sets.
const ctxPlayerID = "playerID"

// AuthRequired verifies a Bearer token and stores the player ID on the
// context.
func AuthRequired(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		playerID, err := svc.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}
		c.Set(ctxPlayerID, playerID)
		c.Next()
	}
}
