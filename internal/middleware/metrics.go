package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-roster/internal/service"
)

// Metrics records request count and latency labelled by the student action.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		metricsSvc.ObserveHTTPRequest(c.Request.Method, Action(c), c.Writer.Status(), time.Since(start))
	}
}

// Action returns the action parameter from the query string or the form body.
func Action(c *gin.Context) string {
	if action := c.Query("action"); action != "" {
		return action
	}
	return c.PostForm("action")
}
