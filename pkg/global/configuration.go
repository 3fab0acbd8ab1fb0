package global

// Configuration of the process that is shared by all binaries.
type Configuration struct {
	// Minimum level of log messages to emit (e.g., "debug",
	// "info"). Defaults to "info".
	LogLevel string `json:"logLevel"`

	// If set, run a HTTP server that exposes health checks and,
	// optionally, Prometheus metrics and pprof profiling data.
	DiagnosticsHTTPServer *DiagnosticsHTTPServerConfiguration `json:"diagnosticsHttpServer"`

	// If set, create OpenTelemetry spans for reads. Finished spans
	// are written to the log.
	Tracing *TracingConfiguration `json:"tracing"`

	// Rate at which mutex contention is sampled, as described by
	// runtime.SetMutexProfileFraction().
	MutexProfileFraction int `json:"mutexProfileFraction"`
}

// DiagnosticsHTTPServerConfiguration holds the options of the
// diagnostics HTTP server.
type DiagnosticsHTTPServerConfiguration struct {
	ListenAddress    string `json:"listenAddress"`
	EnablePrometheus bool   `json:"enablePrometheus"`
	EnablePprof      bool   `json:"enablePprof"`
}

// TracingConfiguration holds the options of OpenTelemetry tracing.
type TracingConfiguration struct {
	// Fraction of traces without a parent that are sampled, in
	// the range [0, 1].
	TraceIDRatio float64 `json:"traceIdRatio"`

	// If set, limit the number of spans sampled per epoch.
	MaximumRate *MaximumRateConfiguration `json:"maximumRate"`
}

// MaximumRateConfiguration bounds the rate at which spans are
// sampled.
type MaximumRateConfiguration struct {
	SamplesPerEpoch      int     `json:"samplesPerEpoch"`
	EpochDurationSeconds float64 `json:"epochDurationSeconds"`
}
