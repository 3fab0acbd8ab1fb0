package digest

import (
	"encoding/hex"
	"fmt"
	"hash"

	remoteexecution "github.com/bazelbuild/remote-apis/build/bazel/remote/execution/v2"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Digest of a stream of data, as computed by a Function.
type Digest struct {
	Function  remoteexecution.DigestFunction_Value
	Hash      []byte
	SizeBytes int64
}

// String returns the digest in the form "<function>:<hash>:<size>".
func (d Digest) String() string {
	return fmt.Sprintf("%s:%s:%d", d.Function, hex.EncodeToString(d.Hash), d.SizeBytes)
}

// Generator computes the digest of data that is written to it in
// sequence. The amount of data written must match the expected size.
type Generator struct {
	function          Function
	hasher            hash.Hash
	expectedSizeBytes int64
	sizeBytes         int64
}

// NewGenerator creates a Generator for data of a given size.
func (f Function) NewGenerator(expectedSizeBytes int64) *Generator {
	return &Generator{
		function:          f,
		hasher:            f.NewHasher(expectedSizeBytes),
		expectedSizeBytes: expectedSizeBytes,
	}
}

func (g *Generator) Write(p []byte) (int, error) {
	g.sizeBytes += int64(len(p))
	return g.hasher.Write(p)
}

// Sum returns the digest of the data written.
func (g *Generator) Sum() (Digest, error) {
	if g.sizeBytes != g.expectedSizeBytes {
		return Digest{}, status.Errorf(codes.Internal, "Expected %d bytes of data, while %d bytes were written", g.expectedSizeBytes, g.sizeBytes)
	}
	return Digest{
		Function:  g.function.GetEnumValue(),
		Hash:      g.hasher.Sum(nil),
		SizeBytes: g.sizeBytes,
	}, nil
}
