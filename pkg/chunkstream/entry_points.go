package chunkstream

import (
	"context"
	"io"
	"sync"

	"github.com/buildbarn/bb-blobstream/pkg/blob"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToChunks creates a Stream that yields the contents of a ByteSource
// in chunks. The source is only read while at least one consumer is
// attached. Consumers that are attached at the same time share a
// single pass over the source.
func ToChunks(ctx context.Context, source blob.ByteSource, reader blob.Reader, options ReadOptions) *Stream {
	return NewStream(func(gate *Gate, observer Observer) {
		Produce(ctx, source, reader, options, gate, observer)
	})
}

// TextReader is returned by TextStream.NewTextReader(). It yields the
// full contents of a ByteSource decoded as text.
type TextReader interface {
	// Read the text. The first call blocks until the text is
	// available and returns it. Subsequent calls return io.EOF. If
	// the source could not be read, every call returns the
	// *blob.ReadFailure. Read may be called from multiple goroutines.
	Read() (string, error)
	// Close the reader, dropping any result that is still pending.
	Close()
}

// TextStream yields the full contents of a ByteSource decoded as text.
// Unlike Stream, no results are shared. Every reader performs its own
// read of the source.
type TextStream struct {
	ctx    context.Context
	source blob.ByteSource
	reader blob.Reader
}

// ToText creates a TextStream for a ByteSource. No reads are performed
// until NewTextReader() is called.
func ToText(ctx context.Context, source blob.ByteSource, reader blob.Reader) *TextStream {
	return &TextStream{
		ctx:    ctx,
		source: source,
		reader: reader,
	}
}

var errTextReaderClosed = status.Error(codes.Canceled, "Text reader closed")

type textResult struct {
	text string
	err  error
}

// NewTextReader starts a read of the full source in the background.
func (s *TextStream) NewTextReader() TextReader {
	ctx, cancel := context.WithCancel(s.ctx)
	r := &textReader{
		cancel: cancel,
		result: make(chan textResult, 1),
		closed: make(chan struct{}),
	}
	go func() {
		defer cancel()
		text, err := s.reader.ReadAsText(ctx, s.source)
		if err != nil {
			r.result <- textResult{err: blob.NewReadFailure(0, s.source.GetSizeBytes(), err)}
			return
		}
		r.result <- textResult{text: text}
	}()
	return r
}

type textReader struct {
	cancel    context.CancelFunc
	result    chan textResult
	closed    chan struct{}
	closeOnce sync.Once

	lock sync.Mutex
	err  error
}

func (r *textReader) Read() (string, error) {
	// Hold the lock while waiting for the result, so that exactly
	// one caller observes the text. Close() does not need the lock
	// to unblock a waiting caller.
	r.lock.Lock()
	defer r.lock.Unlock()

	select {
	case <-r.closed:
		return "", errTextReaderClosed
	default:
	}
	if r.err != nil {
		return "", r.err
	}

	select {
	case <-r.closed:
		return "", errTextReaderClosed
	case result := <-r.result:
		if result.err != nil {
			r.err = result.err
			return "", r.err
		}
		r.err = io.EOF
		return result.text, nil
	}
}

func (r *textReader) Close() {
	r.closeOnce.Do(func() {
		close(r.closed)
		r.cancel()
	})
}
