package chunkstream_test

import (
	"testing"

	"github.com/buildbarn/bb-blobstream/pkg/chunkstream"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	gate := chunkstream.NewGate()
	require.False(t, gate.IsClosed())

	// Only the first call to Close() performs the transition.
	require.True(t, gate.Close())
	require.True(t, gate.IsClosed())
	require.False(t, gate.Close())
	require.True(t, gate.IsClosed())
}
