package otel

import (
	"sync"
	"time"

	"github.com/buildbarn/bb-blobstream/pkg/clock"

	sdk_trace "go.opentelemetry.io/otel/sdk/trace"
)

type maximumRateSampler struct {
	base            sdk_trace.Sampler
	clock           clock.Clock
	samplesPerEpoch int
	epochDuration   time.Duration

	lock             sync.Mutex
	samplesRemaining int
	epochEnd         time.Time
}

// NewMaximumRateSampler creates a decorator for an OpenTelemetry
// Sampler that drops spans that the base sampler wants to sample once
// a maximum number of samples per epoch is exceeded. This keeps the
// volume of spans bounded when streaming sources in many small chunks.
func NewMaximumRateSampler(base sdk_trace.Sampler, clock clock.Clock, samplesPerEpoch int, epochDuration time.Duration) sdk_trace.Sampler {
	return &maximumRateSampler{
		base:            base,
		clock:           clock,
		samplesPerEpoch: samplesPerEpoch,
		epochDuration:   epochDuration,
	}
}

func (s *maximumRateSampler) acquireSample() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.samplesRemaining > 0 {
		s.samplesRemaining--
		return true
	}
	if now := s.clock.Now(); !now.Before(s.epochEnd) && s.samplesPerEpoch > 0 {
		// Enter the next epoch. Samples that went unused in
		// previous epochs are not carried over.
		s.samplesRemaining = s.samplesPerEpoch - 1
		s.epochEnd = now.Add(s.epochDuration)
		return true
	}
	return false
}

func (s *maximumRateSampler) ShouldSample(p sdk_trace.SamplingParameters) sdk_trace.SamplingResult {
	result := s.base.ShouldSample(p)
	if result.Decision == sdk_trace.RecordAndSample && !s.acquireSample() {
		result.Decision = sdk_trace.Drop
		result.Attributes = nil
	}
	return result
}

func (s *maximumRateSampler) Description() string {
	return "MaximumRateSampler{" + s.base.Description() + "}"
}
