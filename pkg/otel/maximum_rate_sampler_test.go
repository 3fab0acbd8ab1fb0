package otel_test

import (
	"testing"
	"time"

	"github.com/buildbarn/bb-blobstream/internal/mock"
	"github.com/buildbarn/bb-blobstream/pkg/otel"
	"github.com/stretchr/testify/require"

	"go.opentelemetry.io/otel/sdk/trace"

	"go.uber.org/mock/gomock"
)

func TestMaximumRateSampler(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("AlwaysSample", func(t *testing.T) {
		clock := mock.NewMockClock(ctrl)
		sampler := otel.NewMaximumRateSampler(trace.AlwaysSample(), clock, 2, time.Second)

		// Initial epoch starts at t = 1000 and permits two
		// samples. Further samples are dropped.
		clock.EXPECT().Now().Return(time.Unix(1000, 0))
		require.Equal(t, trace.RecordAndSample, sampler.ShouldSample(trace.SamplingParameters{}).Decision)
		require.Equal(t, trace.RecordAndSample, sampler.ShouldSample(trace.SamplingParameters{}).Decision)

		clock.EXPECT().Now().Return(time.Unix(1000, 500000000))
		require.Equal(t, trace.Drop, sampler.ShouldSample(trace.SamplingParameters{}).Decision)

		// Second epoch starts at t = 1001.
		clock.EXPECT().Now().Return(time.Unix(1001, 0))
		require.Equal(t, trace.RecordAndSample, sampler.ShouldSample(trace.SamplingParameters{}).Decision)
		require.Equal(t, trace.RecordAndSample, sampler.ShouldSample(trace.SamplingParameters{}).Decision)

		// Samples that went unused between t = 1001 and 1007
		// are not carried over.
		clock.EXPECT().Now().Return(time.Unix(1007, 0))
		require.Equal(t, trace.RecordAndSample, sampler.ShouldSample(trace.SamplingParameters{}).Decision)
		require.Equal(t, trace.RecordAndSample, sampler.ShouldSample(trace.SamplingParameters{}).Decision)
		clock.EXPECT().Now().Return(time.Unix(1007, 300000000))
		require.Equal(t, trace.Drop, sampler.ShouldSample(trace.SamplingParameters{}).Decision)
	})

	t.Run("NeverSample", func(t *testing.T) {
		// Spans dropped by the base sampler should not consume
		// any samples, meaning the clock is not consulted.
		clock := mock.NewMockClock(ctrl)
		sampler := otel.NewMaximumRateSampler(trace.NeverSample(), clock, 2, time.Second)
		require.Equal(t, trace.Drop, sampler.ShouldSample(trace.SamplingParameters{}).Decision)
		require.Equal(t, "MaximumRateSampler{AlwaysOffSampler}", sampler.Description())
	})
}
