package global

import (
	"runtime"
	"time"

	"github.com/buildbarn/bb-blobstream/pkg/clock"
	bb_otel "github.com/buildbarn/bb-blobstream/pkg/otel"
	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// NewLoggerFromConfiguration creates a zap logger that writes JSON
// encoded entries to standard error.
func NewLoggerFromConfiguration(configuration *Configuration) (*zap.Logger, error) {
	loggerConfiguration := zap.NewProductionConfig()
	if logLevel := configuration.LogLevel; logLevel != "" {
		level, err := zap.ParseAtomicLevel(logLevel)
		if err != nil {
			return nil, util.StatusWrapWithCode(err, codes.InvalidArgument, "Invalid log level")
		}
		loggerConfiguration.Level = level
	}
	logger, err := loggerConfiguration.Build()
	if err != nil {
		return nil, util.StatusWrapWithCode(err, codes.InvalidArgument, "Failed to create logger")
	}
	return logger, nil
}

// NewTracerProviderFromConfiguration creates an OpenTelemetry tracer
// provider. If tracing is disabled, a provider is returned that
// discards all spans.
func NewTracerProviderFromConfiguration(configuration *TracingConfiguration, logger *zap.Logger) (trace.TracerProvider, error) {
	if configuration == nil {
		return noop.NewTracerProvider(), nil
	}
	if ratio := configuration.TraceIDRatio; ratio < 0 || ratio > 1 {
		return nil, status.Errorf(codes.InvalidArgument, "Trace ID ratio %g is not in range [0, 1]", ratio)
	}
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(configuration.TraceIDRatio))
	if maximumRate := configuration.MaximumRate; maximumRate != nil {
		if maximumRate.SamplesPerEpoch <= 0 || maximumRate.EpochDurationSeconds <= 0 {
			return nil, status.Error(codes.InvalidArgument, "Maximum rate sampler requires a positive number of samples and epoch duration")
		}
		sampler = bb_otel.NewMaximumRateSampler(
			sampler,
			clock.SystemClock,
			maximumRate.SamplesPerEpoch,
			time.Duration(maximumRate.EpochDurationSeconds*float64(time.Second)))
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithSyncer(NewLogSpanExporter(logger))), nil
}

// ApplyConfiguration applies configuration options to the running
// process. These configuration options are global, in that they apply
// to all binaries, regardless of their purpose.
func ApplyConfiguration(configuration *Configuration) (*DiagnosticsServer, *zap.Logger, trace.TracerProvider, error) {
	logger, err := NewLoggerFromConfiguration(configuration)
	if err != nil {
		return nil, nil, nil, err
	}

	tracerProvider, err := NewTracerProviderFromConfiguration(configuration.Tracing, logger)
	if err != nil {
		return nil, nil, nil, util.StatusWrap(err, "Failed to create tracer provider")
	}
	otel.SetTracerProvider(tracerProvider)

	// Enable mutex profiling.
	runtime.SetMutexProfileFraction(configuration.MutexProfileFraction)

	return &DiagnosticsServer{
		config: configuration.DiagnosticsHTTPServer,
	}, logger, tracerProvider, nil
}
