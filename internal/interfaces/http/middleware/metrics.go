package middleware

import (
	"strconv"
	"time"

	"github.com/erp/catalog/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics records request count, latency and in-flight requests.
// A nil meter disables the middleware.
func HTTPMetrics(meter metric.Meter) (gin.HandlerFunc, error) {
	if meter == nil {
		return func(c *gin.Context) { c.Next() }, nil
	}

	instruments, err := telemetry.NewHTTPInstruments(meter)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		base := []attribute.KeyValue{
			attribute.String("method", c.Request.Method),
			attribute.String("route", route),
		}

		instruments.Active.Add(ctx, 1, metric.WithAttributes(base...))
		defer instruments.Active.Add(ctx, -1, metric.WithAttributes(base...))

		c.Next()

		attrs := append(base, attribute.String("status_code", strconv.Itoa(c.Writer.Status())))
		instruments.Requests.Add(ctx, 1, metric.WithAttributes(attrs...))
		instruments.Duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	}, nil
}
