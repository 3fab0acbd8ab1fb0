package util

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// NewHTTPClient creates a HTTP client that includes net/http
// instrumentation from OpenTelemetry, for propagation and span
// generation.
func NewHTTPClient(tracerProvider trace.TracerProvider) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(
			http.DefaultTransport,
			otelhttp.WithTracerProvider(tracerProvider)),
	}
}
