package middlewares

import (
	"strconv"

	"bitbucket.org/mmdatafocus/coopcredit_backend/utils"
	"github.com/gin-gonic/gin"
)

// OfficerIdMiddleware picks up the authenticated officer id the gateway
// forwards in x-officer-id and attaches it to the request context so score
// computations triggered by staff are attributable in the logs. Requests
// without the header (service-to-service, batch) pass through untouched.
func OfficerIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("x-officer-id"); raw != "" {
			if officerId, err := strconv.Atoi(raw); err == nil && officerId > 0 {
				c.Request = c.Request.WithContext(utils.SetOfficerIdInContext(c.Request.Context(), officerId))
			}
		}
		c.Next()
	}
}
