package middleware

import (
	"net/http"

	"hwgrade/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GraderKey is the context key of the authenticated grader.
const GraderKey = "_grader"

// JWTMiddleware is a middleware that validates a JWT token.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := utils.BearerToken(c)
		if !ok {
			c.Header("WWW-Authenticate", `Bearer realm="hwgrade"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, err := utils.ParseToken(token)
		if err != nil {
			log.WithError(err).Warn("Error parsing token")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(GraderKey, claims.Grader)
		c.Next()
	}
}
