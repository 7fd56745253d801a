package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SetHeaderNoCache sets the no cache header.
func SetHeaderNoCache(c *gin.Context) {
	c.Header("Expires", "Fri, 01 Jan 1980 00:00:00 GMT")
	c.Header("Pragma", "no-cache")
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
}

// WantsYAML reports whether the client asked for YAML by "?format=yaml" or
// the Accept header.
func WantsYAML(c *gin.Context) bool {
	if format := c.Query("format"); format != "" {
		return format == "yaml"
	}
	return strings.Contains(c.GetHeader("Accept"), "yaml")
}

// Respond writes obj as YAML or JSON, whichever the client wants.
func Respond(c *gin.Context, obj any) {
	if WantsYAML(c) {
		c.YAML(http.StatusOK, obj)
		return
	}
	c.JSON(http.StatusOK, obj)
}

// Abort aborts the request with the error as JSON body.
func Abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// BearerToken returns the token of the Authorization header, or the "token"
// cookie if there is no such header.
func BearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		return strings.TrimSpace(token), ok && token != ""
	}
	token, err := c.Cookie("token")
	return token, err == nil && token != ""
}
