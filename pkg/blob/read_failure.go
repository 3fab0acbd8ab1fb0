package blob

import (
	"fmt"

	"google.golang.org/grpc/status"
)

// ReadFailure is the error that is reported when reading a byte range
// of a ByteSource fails. It is the only kind of error that is
// propagated to consumers of chunk and text streams. The cause of the
// failure is preserved, both as the wrapped error and as the code of
// the gRPC status that ReadFailure converts to.
type ReadFailure struct {
	StartBytes int64
	EndBytes   int64
	Err        error
}

// NewReadFailure creates a ReadFailure for the byte range [startBytes,
// endBytes) of a ByteSource.
func NewReadFailure(startBytes, endBytes int64, err error) *ReadFailure {
	return &ReadFailure{
		StartBytes: startBytes,
		EndBytes:   endBytes,
		Err:        err,
	}
}

// GRPCStatus converts the ReadFailure to a gRPC status that has the
// same code as the cause of the failure.
func (e *ReadFailure) GRPCStatus() *status.Status {
	p := status.Convert(e.Err).Proto()
	p.Message = fmt.Sprintf("Failed to read bytes [%d, %d): %s", e.StartBytes, e.EndBytes, p.Message)
	return status.FromProto(p)
}

func (e *ReadFailure) Error() string {
	return e.GRPCStatus().Err().Error()
}

func (e *ReadFailure) Unwrap() error {
	return e.Err
}
