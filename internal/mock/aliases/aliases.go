// Package aliases declares named copies of interfaces provided by the
// Go standard library. It allows mockgen to emit mocks for them from a
// package path within this module, like all other mocks in
// internal/mock.
package aliases

import (
	"io"
)

// ReadCloser is an alias of io.ReadCloser.
type ReadCloser = io.ReadCloser

// Writer is an alias of io.Writer.
type Writer = io.Writer
