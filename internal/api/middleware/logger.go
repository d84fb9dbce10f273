package middleware

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
)

// LoggerMiddleware writes one access log line per request, tagged with the
// request id.
func LoggerMiddleware(out io.Writer) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Output: out,
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] %q %d %s %s %s\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method+" "+param.Path,
				param.StatusCode,
				param.Latency,
				param.Keys[requestIDKey],
				param.ErrorMessage,
			)
		},
	})
}
