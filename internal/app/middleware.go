package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) metrics(next http.Handler) http.Handler {
	meter := otel.Meter(serviceName)

	requests, err := meter.Int64Counter("http.server.requests")
	if err != nil {
		app.logger.Error("failed to create request counter", "error", err)
		return next
	}

	duration, err := meter.Float64Histogram("http.server.duration", metric.WithUnit("ms"))
	if err != nil {
		app.logger.Error("failed to create duration histogram", "error", err)
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.Int("http.status_code", ww.Status()),
		)

		requests.Add(r.Context(), 1, attrs)
		duration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, attrs)
	})
}
