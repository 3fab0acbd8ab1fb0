package blob

import (
	"context"
	"sync"
	"time"

	"github.com/buildbarn/bb-blobstream/pkg/clock"
	"github.com/buildbarn/bb-blobstream/pkg/util"
	"github.com/prometheus/client_golang/prometheus"

	"google.golang.org/grpc/status"
)

var (
	readerPrometheusMetrics sync.Once

	readerOperationsStartedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "blobstream",
			Name:      "reader_operations_started_total",
			Help:      "Total number of operations started on blob readers.",
		},
		[]string{"name", "operation"})
	readerOperationsDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "buildbarn",
			Subsystem: "blobstream",
			Name:      "reader_operations_duration_seconds",
			Help:      "Amount of time spent per operation on blob readers, in seconds.",
			Buckets:   util.DecimalExponentialBuckets(-3, 6, 2),
		},
		[]string{"name", "operation", "grpc_code"})
	readerOperationsSizeBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "buildbarn",
			Subsystem: "blobstream",
			Name:      "reader_operations_size_bytes",
			Help:      "Size of byte ranges requested from blob readers, in bytes.",
			Buckets:   prometheus.ExponentialBuckets(1.0, 2.0, 33),
		},
		[]string{"name", "operation"})
)

type metricsReader struct {
	base  Reader
	clock clock.Clock

	bytesStartedTotal prometheus.Counter
	bytesDuration     prometheus.ObserverVec
	bytesSizeBytes    prometheus.Observer
	textStartedTotal  prometheus.Counter
	textDuration      prometheus.ObserverVec
	textSizeBytes     prometheus.Observer
}

// NewMetricsReader creates a decorator for Reader that exposes the
// number of reads performed, their duration and the size of the byte
// ranges requested as Prometheus metrics.
func NewMetricsReader(base Reader, clock clock.Clock, name string) Reader {
	readerPrometheusMetrics.Do(func() {
		prometheus.MustRegister(readerOperationsStartedTotal)
		prometheus.MustRegister(readerOperationsDurationSeconds)
		prometheus.MustRegister(readerOperationsSizeBytes)
	})

	return &metricsReader{
		base:  base,
		clock: clock,

		bytesStartedTotal: readerOperationsStartedTotal.WithLabelValues(name, "ReadAsBytes"),
		bytesDuration:     readerOperationsDurationSeconds.MustCurryWith(map[string]string{"name": name, "operation": "ReadAsBytes"}),
		bytesSizeBytes:    readerOperationsSizeBytes.WithLabelValues(name, "ReadAsBytes"),
		textStartedTotal:  readerOperationsStartedTotal.WithLabelValues(name, "ReadAsText"),
		textDuration:      readerOperationsDurationSeconds.MustCurryWith(map[string]string{"name": name, "operation": "ReadAsText"}),
		textSizeBytes:     readerOperationsSizeBytes.WithLabelValues(name, "ReadAsText"),
	}
}

func (r *metricsReader) observeDuration(vec prometheus.ObserverVec, timeStart time.Time, err error) {
	vec.WithLabelValues(status.Code(err).String()).Observe(r.clock.Now().Sub(timeStart).Seconds())
}

func (r *metricsReader) ReadAsBytes(ctx context.Context, source ByteSource) ([]byte, error) {
	r.bytesStartedTotal.Inc()
	r.bytesSizeBytes.Observe(float64(source.GetSizeBytes()))
	timeStart := r.clock.Now()
	data, err := r.base.ReadAsBytes(ctx, source)
	r.observeDuration(r.bytesDuration, timeStart, err)
	return data, err
}

func (r *metricsReader) ReadAsText(ctx context.Context, source ByteSource) (string, error) {
	r.textStartedTotal.Inc()
	r.textSizeBytes.Observe(float64(source.GetSizeBytes()))
	timeStart := r.clock.Now()
	text, err := r.base.ReadAsText(ctx, source)
	r.observeDuration(r.textDuration, timeStart, err)
	return text, err
}
