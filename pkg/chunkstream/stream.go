package chunkstream

import (
	"io"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	streamPrometheusMetrics sync.Once

	streamProducerRunsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "blobstream",
			Name:      "stream_producer_runs_started_total",
			Help:      "Number of times a chunk producer was started, because a consumer attached to a stream that had no consumers.",
		})
	streamChunksEmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "blobstream",
			Name:      "stream_chunks_emitted_total",
			Help:      "Number of chunks emitted by chunk producers.",
		})

	errChunkReaderClosed = status.Error(codes.Canceled, "Chunk reader closed")
)

// ChunkReader is returned by Stream.NewChunkReader() and yields the
// chunks emitted by the stream's producer.
type ChunkReader interface {
	// Read the next chunk. This function blocks until the chunk
	// becomes available. When the producer completes, io.EOF is
	// returned. When it fails, its error is returned. Both are
	// returned again by subsequent calls.
	Read() ([]byte, error)
	// Close the reader, detaching it from the stream. Calls to
	// Read() that are blocked in another goroutine are interrupted.
	Close()
}

// ProducerFactory starts a chunk producer. It is invoked in a separate
// goroutine and is expected to keep running until the producer has
// either finished, or observed that the gate has been closed.
type ProducerFactory func(gate *Gate, observer Observer)

// producerRun holds the state of a single invocation of a
// ProducerFactory: all of the chunks emitted, and the terminal error.
type producerRun struct {
	gate     *Gate
	chunks   [][]byte
	err      error
	demanded bool
}

// Stream multiplexes the results of a chunk producer to any number of
// consumers. The producer is started when the first consumer attaches
// and stopped when the last consumer detaches. All chunks emitted are
// retained, so that consumers that attach later observe the same
// sequence as the ones that attached first.
//
// The producer is throttled to not read ahead of the consumers. It
// only issues the next read after at least one consumer has consumed
// all chunks emitted so far and is waiting for more.
type Stream struct {
	factory ProducerFactory

	lock              sync.Mutex
	wakeup            *sync.Cond
	run               *producerRun
	consumers         int
	producerRunsCount int
}

// NewStream creates a Stream that has no consumers. The factory is not
// invoked until NewChunkReader() is called.
func NewStream(factory ProducerFactory) *Stream {
	streamPrometheusMetrics.Do(func() {
		prometheus.MustRegister(streamProducerRunsStartedTotal)
		prometheus.MustRegister(streamChunksEmittedTotal)
	})

	s := &Stream{
		factory: factory,
	}
	s.wakeup = sync.NewCond(&s.lock)
	return s
}

// NewChunkReader attaches a consumer to the stream. If the stream had
// no consumers, a new producer run is started. The reader starts at
// the first chunk of the current run.
func (s *Stream) NewChunkReader() ChunkReader {
	s.lock.Lock()
	run := s.run
	startProducer := run == nil
	if startProducer {
		run = &producerRun{gate: NewGate()}
		s.run = run
		s.producerRunsCount++
	}
	s.consumers++
	s.lock.Unlock()

	if startProducer {
		streamProducerRunsStartedTotal.Inc()
		go s.factory(run.gate, &producerRunObserver{
			stream: s,
			run:    run,
		})
	}
	return &streamChunkReader{
		stream: s,
		run:    run,
	}
}

// GetConsumerCount returns the number of readers that are attached to
// the stream.
func (s *Stream) GetConsumerCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.consumers
}

// GetProducerRunCount returns the number of times the producer of the
// stream has been started.
func (s *Stream) GetProducerRunCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.producerRunsCount
}

// producerRunObserver is the Observer that is provided to the
// producer. It stores results into the producer run, which may already
// have been discarded by the stream.
type producerRunObserver struct {
	stream *Stream
	run    *producerRun
}

func (o *producerRunObserver) OnChunk(chunk []byte) {
	s := o.stream
	run := o.run
	s.lock.Lock()
	defer s.lock.Unlock()

	run.chunks = append(run.chunks, chunk)
	run.demanded = false
	streamChunksEmittedTotal.Inc()
	s.wakeup.Broadcast()

	for !run.demanded && !run.gate.IsClosed() {
		s.wakeup.Wait()
	}
}

func (o *producerRunObserver) terminate(err error) {
	s := o.stream
	s.lock.Lock()
	defer s.lock.Unlock()

	if o.run.err == nil {
		o.run.err = err
		s.wakeup.Broadcast()
	}
}

func (o *producerRunObserver) OnError(err error) {
	o.terminate(err)
}

func (o *producerRunObserver) OnComplete() {
	o.terminate(io.EOF)
}

type streamChunkReader struct {
	stream   *Stream
	run      *producerRun
	position int
	closed   bool
}

func (r *streamChunkReader) Read() ([]byte, error) {
	s := r.stream
	s.lock.Lock()
	defer s.lock.Unlock()

	for {
		if r.closed {
			return nil, errChunkReaderClosed
		}
		run := r.run
		if r.position < len(run.chunks) {
			chunk := run.chunks[r.position]
			r.position++
			return chunk, nil
		}
		if run.err != nil {
			return nil, run.err
		}
		if !run.demanded {
			// Reached the end of the chunks emitted so far.
			// Let the producer issue the next read.
			run.demanded = true
			s.wakeup.Broadcast()
		}
		s.wakeup.Wait()
	}
}

func (r *streamChunkReader) Close() {
	s := r.stream
	s.lock.Lock()
	defer s.lock.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	s.consumers--
	if s.consumers == 0 {
		// Last consumer detached. Stop the producer and discard
		// its results, so that the next consumer to attach
		// starts from scratch.
		r.run.gate.Close()
		s.run = nil
	}
	s.wakeup.Broadcast()
}
