package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// tokens and cookies never reach the log
		scrub := func(h http.Header) []string {
			keys := make([]string, 0, len(h))
			for k := range h {
				lk := strings.ToLower(k)
				if strings.Contains(lk, "authorization") || strings.Contains(lk, "cookie") {
					keys = append(keys, k+": [redacted]")
					continue
				}
				keys = append(keys, k+": "+strings.Join(h[k], ","))
			}
			return keys
		}

		log.Debug("incoming request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Strings("hdr", scrub(c.Request.Header)),
		)

		ts := time.Now()
		c.Next()

		latency := time.Since(ts)
		respStatus := c.Writer.Status()

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				log.Error("handler error",
					zap.Int("status", respStatus),
					zap.Error(e),
					zap.String("path", c.Request.URL.Path),
				)
			}
		}

		log.Info("completed",
			zap.Int("status", respStatus),
			zap.Duration("latency", latency),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
	}
}
