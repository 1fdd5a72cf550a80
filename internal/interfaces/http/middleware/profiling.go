package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling labels CPU samples taken while serving a request with the
// route pattern and the API area, so profiles can be split per endpoint.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" || route == "/health" || route == "/metrics" || strings.HasPrefix(route, "/swagger") {
			c.Next()
			return
		}
		labels := pyroscope.Labels(
			"method", c.Request.Method,
			"route", route,
			"area", routeArea(route),
		)
		pyroscope.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// routeArea returns the first segment after the version, e.g.
// /api/v1/sales/:id -> sales
func routeArea(route string) string {
	parts := strings.Split(strings.Trim(route, "/"), "/")
	for _, p := range parts {
		if p == "api" || (strings.HasPrefix(p, "v") && len(p) > 1 && p[1] >= '0' && p[1] <= '9') {
			continue
		}
		if strings.HasPrefix(p, ":") {
			break
		}
		return p
	}
	return "root"
}
