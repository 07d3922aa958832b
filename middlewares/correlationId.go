package middlewares

import (
	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CorrelationIdMiddleware generates a correlation id once per request (or
// adopts the caller's) and attaches it to the request context so every log
// line and persisted score of the request carries the same id.
func CorrelationIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Header("x-correlation-id", cid)
		c.Next()
	}
}
