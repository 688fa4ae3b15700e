package ephemeris_module

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/ethanbaker/ephemeris/pkg/sdk"
	"github.com/gin-gonic/gin"
)

// BearerAuthHandler rejects requests whose Authorization header is not "Bearer <key>"
func (s *Service) BearerAuthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			s.abortUnauthorized(c, "Authorization header required")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			s.abortUnauthorized(c, "Invalid authorization format. Use Bearer authentication")
			return
		}

		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(s.apiKey)) != 1 {
			s.abortUnauthorized(c, "Invalid API key")
			return
		}

		c.Next()
	}
}

func (s *Service) abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, sdk.ErrorResponse{Error: message, Timestamp: s.now().UTC()})
}
