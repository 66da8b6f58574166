// middlewares/recovery_middleware.go
package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mausham-bytes/nutrient-analyzer/utils"
)

// RecoveryMiddleware turns a panic into a generic 500. The panic value and
// stack stay in the server log.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(gin.DefaultErrorWriter, func(c *gin.Context, recovered any) {
		utils.Log().Errorw("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
