package chunkstream

import (
	"sync/atomic"
)

// Gate is a flag that is shared between a chunk producer and the Stream
// that owns it. Closing the gate causes the producer to stop issuing
// reads. Reads that are already in flight are not interrupted.
//
// A gate starts out open and can only be closed once. It is safe for
// concurrent use.
type Gate struct {
	closed atomic.Bool
}

// NewGate creates a Gate that is open.
func NewGate() *Gate {
	return &Gate{}
}

// Close the gate. The return value indicates whether this call caused
// the gate to transition from open to closed.
func (g *Gate) Close() bool {
	return g.closed.CompareAndSwap(false, true)
}

// IsClosed returns whether Close() has been called.
func (g *Gate) IsClosed() bool {
	return g.closed.Load()
}
