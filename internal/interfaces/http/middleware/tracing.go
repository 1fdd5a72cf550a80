package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request through otelgin. Health and
// scrape endpoints are not traced. A 5xx marks the span as failed.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	base := otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/health" && r.URL.Path != "/metrics"
	}))
	return func(c *gin.Context) {
		base(c)
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span := trace.SpanFromContext(c.Request.Context())
			if span.IsRecording() {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		}
	}
}

// SpanIdentity tags the current span with the request id and the resolved
// tenant and user. Place it after ResolveTenant.
func SpanIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			attrs := []attribute.KeyValue{attribute.String("request_id", GetRequestID(c))}
			if tc, ok := GetTenant(c); ok {
				attrs = append(attrs,
					attribute.String("tenant_id", tc.TenantID.String()),
					attribute.String("user_id", tc.UserID.String()),
					attribute.String("user_role", string(tc.Role)),
				)
			}
			span.SetAttributes(attrs...)
		}
		c.Next()
	}
}
