package server

import (
	"strings"

	"github.com/5afe/safe-notification-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// trustedServer admits requests carrying an HS256 bearer token signed with
// the configured secret. Without a secret the route is closed.
func (s *Server) trustedServer() gin.HandlerFunc {
	secret := []byte(s.config.JWT.Secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(secret) == 0 || !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, errors.ErrUnauthorizedServer)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := parser.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			s.logger.Warn("rejected trusted server token", "err", err)
			abortWithError(c, errors.ErrUnauthorizedServer)
			return
		}

		c.Set("server", claims.Subject)
		c.Next()
	}
}
