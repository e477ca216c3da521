package telemetry

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "ufuq-api"

// FiberMiddleware traces every HTTP request and records request count and
// latency metrics. The global providers are no-op until Initialize runs, so
// mounting this unconditionally is harmless.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(scopeName)
	propagator := otel.GetTextMapPropagator()

	meter := otel.Meter(scopeName)
	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Handled HTTP requests"))
	if err != nil {
		log.Printf("Failed to create request counter: %v", err)
	}
	latency, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Request duration"),
		metric.WithUnit("ms"))
	if err != nil {
		log.Printf("Failed to create latency histogram: %v", err)
	}

	return func(c *fiber.Ctx) error {
		// Continue a trace begun by the caller, if any
		ctx := propagator.Extract(c.Context(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.url", c.OriginalURL()),
				attribute.String("http.user_agent", c.Get("User-Agent")),
				attribute.String("http.client_ip", c.IP()),
			),
		)
		defer span.End()

		c.SetUserContext(ctx)

		if span.SpanContext().HasTraceID() {
			c.Set("X-Trace-ID", span.SpanContext().TraceID().String())
		}

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		// The route pattern is only resolved after Next
		route := c.Route().Path
		status := c.Response().StatusCode()

		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case status >= 400:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		default:
			span.SetStatus(codes.Ok, "")
		}

		attrs := metric.WithAttributes(
			attribute.String("http.route", route),
			attribute.String("http.method", c.Method()),
			attribute.Int("http.status_code", status),
		)
		if requests != nil {
			requests.Add(ctx, 1, attrs)
		}
		if latency != nil {
			latency.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
		}

		return err
	}
}
