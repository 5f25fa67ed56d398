package middleware

import (
	"bytes"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"document-manager-api/internal/infrastructure/logger"
)

const (
	maxLogBodySize     = 1 << 12 // 4 KB
	maxRequestBodySize = 1 << 20
	HeaderRequestID    = "X-Request-ID"
)

var (
	sensitiveRe = regexp.MustCompile(`("[A-Za-z_]*(?:password|totp_key|token)"\s*:\s*)"(?:[^"\\]|\\.)*"`)
	// value cut off by the log size limit
	sensitiveTailRe = regexp.MustCompile(`("[A-Za-z_]*(?:password|totp_key|token)"\s*:\s*)"(?:[^"\\]|\\.)*\\?$`)
)

// maskSensitive blanks the string values of password and token fields.
func maskSensitive(body string) string {
	body = sensitiveRe.ReplaceAllString(body, `$1"***"`)
	return sensitiveTailRe.ReplaceAllString(body, `$1"***`)
}

type readCloser struct {
	io.Reader
	io.Closer
}

func statusClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}

// RequestLogGin logs every request and attaches a request-scoped logger to
// the request context. duration may be nil.
func RequestLogGin(log *zap.Logger, mCounter *prometheus.CounterVec, duration *prometheus.HistogramVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)
		reqLog := log.With(zap.String("request_id", requestID))
		c.Request = c.Request.WithContext(logger.ToContext(c.Request.Context(), reqLog))

		var body string
		if c.Request.Body != nil {
			limited := http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodySize)
			var buf bytes.Buffer
			_, _ = io.Copy(&buf, io.LimitReader(limited, maxLogBodySize))
			body = maskSensitive(buf.String())
			// the remainder streams to the handler, still capped
			c.Request.Body = readCloser{io.MultiReader(bytes.NewReader(buf.Bytes()), limited), limited}
		}

		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		if mCounter != nil {
			mCounter.WithLabelValues("app_requests_total").Inc()
		}
		if duration != nil {
			duration.WithLabelValues(c.Request.Method, c.FullPath(), statusClass(status)).Observe(elapsed.Seconds())
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if body != "" {
			fields = append(fields, zap.String("body", body))
		}
		if uid := c.GetString(CtxUserID); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}

		reqLog.Info("HTTP request", fields...)
	}
}
