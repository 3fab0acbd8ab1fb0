package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	remoteexecution "github.com/bazelbuild/remote-apis/build/bazel/remote/execution/v2"
	"github.com/buildbarn/go-sha256tree"
	"github.com/zeebo/blake3"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SupportedDigestFunctions is the list of digest functions that can be
// computed over streams, using the enumeration values that are part of
// the Remote Execution protocol.
var SupportedDigestFunctions = []remoteexecution.DigestFunction_Value{
	remoteexecution.DigestFunction_BLAKE3,
	remoteexecution.DigestFunction_MD5,
	remoteexecution.DigestFunction_SHA1,
	remoteexecution.DigestFunction_SHA256,
	remoteexecution.DigestFunction_SHA256TREE,
	remoteexecution.DigestFunction_SHA384,
	remoteexecution.DigestFunction_SHA512,
}

// HasherFactory creates hashers for a digest function. The expected
// size of the data is provided, as some digest functions (SHA256TREE)
// use it to size their internal state.
type HasherFactory func(expectedSizeBytes int64) hash.Hash

// bareFunction contains the properties of a REv2 digest function that
// are needed to compute digests. Exactly one instance is declared for
// each of the supported digest functions.
type bareFunction struct {
	enumValue     remoteexecution.DigestFunction_Value
	hasherFactory HasherFactory
}

var bareFunctions = map[remoteexecution.DigestFunction_Value]bareFunction{
	remoteexecution.DigestFunction_BLAKE3: {
		enumValue: remoteexecution.DigestFunction_BLAKE3,
		hasherFactory: func(expectedSizeBytes int64) hash.Hash {
			return blake3.New()
		},
	},
	remoteexecution.DigestFunction_MD5: {
		enumValue: remoteexecution.DigestFunction_MD5,
		hasherFactory: func(expectedSizeBytes int64) hash.Hash {
			return md5.New()
		},
	},
	remoteexecution.DigestFunction_SHA1: {
		enumValue: remoteexecution.DigestFunction_SHA1,
		hasherFactory: func(expectedSizeBytes int64) hash.Hash {
			return sha1.New()
		},
	},
	remoteexecution.DigestFunction_SHA256: {
		enumValue: remoteexecution.DigestFunction_SHA256,
		hasherFactory: func(expectedSizeBytes int64) hash.Hash {
			return sha256.New()
		},
	},
	remoteexecution.DigestFunction_SHA256TREE: {
		enumValue:     remoteexecution.DigestFunction_SHA256TREE,
		hasherFactory: sha256tree.New,
	},
	remoteexecution.DigestFunction_SHA384: {
		enumValue: remoteexecution.DigestFunction_SHA384,
		hasherFactory: func(expectedSizeBytes int64) hash.Hash {
			return sha512.New384()
		},
	},
	remoteexecution.DigestFunction_SHA512: {
		enumValue: remoteexecution.DigestFunction_SHA512,
		hasherFactory: func(expectedSizeBytes int64) hash.Hash {
			return sha512.New()
		},
	},
}

// Function is a digest function that has been selected by name.
type Function struct {
	bareFunction *bareFunction
}

// NewFunction looks up a digest function by the name of its REv2
// enumeration value (e.g., "SHA256").
func NewFunction(name string) (Function, error) {
	value, ok := remoteexecution.DigestFunction_Value_value[name]
	if !ok {
		return Function{}, status.Errorf(codes.InvalidArgument, "Unknown digest function %#v", name)
	}
	bf, ok := bareFunctions[remoteexecution.DigestFunction_Value(value)]
	if !ok {
		return Function{}, status.Errorf(codes.InvalidArgument, "Unsupported digest function %#v", name)
	}
	return Function{bareFunction: &bf}, nil
}

// GetEnumValue returns the REv2 enumeration value of the digest
// function.
func (f Function) GetEnumValue() remoteexecution.DigestFunction_Value {
	return f.bareFunction.enumValue
}

// NewHasher creates a hasher for data of a given size.
func (f Function) NewHasher(expectedSizeBytes int64) hash.Hash {
	return f.bareFunction.hasherFactory(expectedSizeBytes)
}
