package chunkstream

import (
	"context"

	"github.com/buildbarn/bb-blobstream/pkg/blob"
)

// Observer receives the results of a chunk producer. A producer calls
// OnChunk() zero or more times, followed by at most one call to either
// OnError() or OnComplete(). No terminal call is made if the producer
// was stopped by closing its gate.
type Observer interface {
	// OnChunk is called for every chunk in increasing offset order.
	// The producer does not issue the next read until OnChunk()
	// returns, meaning implementations may block to throttle it.
	OnChunk(chunk []byte)
	OnError(err error)
	OnComplete()
}

// ReadOptions controls how a ByteSource is split up into chunks.
type ReadOptions struct {
	// The maximum size of the chunks to emit, in bytes. Values that
	// are zero or negative cause the source to be emitted as a
	// single chunk.
	ChunkSizeBytes int64
}

// GetIncrement returns the number of bytes by which the read offset
// advances after every chunk for a source of a given size.
func (o ReadOptions) GetIncrement(sizeBytes int64) int64 {
	if o.ChunkSizeBytes <= 0 || o.ChunkSizeBytes > sizeBytes {
		return sizeBytes
	}
	return o.ChunkSizeBytes
}

// Produce reads a ByteSource sequentially in chunks, reporting every
// chunk to an observer. One read is in flight at any point in time.
// The gate is consulted before issuing every read. When a read fails,
// the gate is closed and the error is reported as a *blob.ReadFailure.
//
// The offset advances by the nominal chunk size, even when the final
// chunk is shorter. Completion is reported if the offset has reached
// the end of the source, even if the gate was closed while the final
// chunk was being reported.
func Produce(ctx context.Context, source blob.ByteSource, reader blob.Reader, options ReadOptions, gate *Gate, observer Observer) {
	sizeBytes := source.GetSizeBytes()
	incrementBytes := options.GetIncrement(sizeBytes)
	offsetBytes := int64(0)
	for offsetBytes < sizeBytes && !gate.IsClosed() {
		endBytes := min(offsetBytes+incrementBytes, sizeBytes)
		chunk, err := reader.ReadAsBytes(ctx, source.Slice(offsetBytes, endBytes))
		if err != nil {
			gate.Close()
			observer.OnError(blob.NewReadFailure(offsetBytes, endBytes, err))
			return
		}
		observer.OnChunk(chunk)
		offsetBytes += incrementBytes
	}
	if offsetBytes >= sizeBytes {
		observer.OnComplete()
	}
}
