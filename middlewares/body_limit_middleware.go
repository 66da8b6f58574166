// middlewares/body_limit_middleware.go
package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

// BodyLimitMiddleware rejects requests whose declared size exceeds max and
// caps the body reader for the ones that do not declare it honestly.
func BodyLimitMiddleware(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > max {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": utils.FileTooLargeMessage(max)})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
