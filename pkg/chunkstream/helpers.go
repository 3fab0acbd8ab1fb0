package chunkstream

import (
	"bytes"
	"io"
)

// ForEachChunk calls a function for every chunk returned by a
// ChunkReader. The reader is closed upon return. Nil is returned if
// the reader reached the end of the stream.
func ForEachChunk(r ChunkReader, f func(chunk []byte) error) error {
	defer r.Close()

	for {
		chunk, err := r.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := f(chunk); err != nil {
			return err
		}
	}
}

// ReadAll returns the concatenation of all chunks returned by a
// ChunkReader. The reader is closed upon return.
func ReadAll(r ChunkReader) ([]byte, error) {
	var b bytes.Buffer
	if err := ForEachChunk(r, func(chunk []byte) error {
		b.Write(chunk)
		return nil
	}); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
