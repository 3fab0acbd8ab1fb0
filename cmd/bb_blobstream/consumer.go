package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/buildbarn/bb-blobstream/pkg/digest"
	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.uber.org/zap"
)

// consumer of the data of a stream. Write() is called for every chunk
// of data, followed by a single call to Finish() if all data was
// received successfully.
type consumer interface {
	Write(chunk []byte) (int, error)
	Finish() error
	Abort()
}

// stdoutLock ensures that consumers writing to standard output don't
// interleave their data within a chunk.
var stdoutLock sync.Mutex

type lockedWriter struct {
	w io.Writer
}

func (w lockedWriter) Write(p []byte) (int, error) {
	stdoutLock.Lock()
	defer stdoutLock.Unlock()
	return w.w.Write(p)
}

// newConsumerFromConfiguration creates a consumer for data of a given
// size, based on options provided in a configuration file.
func newConsumerFromConfiguration(configuration *ConsumerConfiguration, sizeBytes int64, stdout io.Writer, logger *zap.Logger) (consumer, error) {
	switch {
	case configuration.Digest != nil:
		function, err := digest.NewFunction(configuration.Digest.Function)
		if err != nil {
			return nil, err
		}
		return &digestConsumer{
			generator: function.NewGenerator(sizeBytes),
			stdout:    lockedWriter{w: stdout},
			logger:    logger,
		}, nil
	case configuration.File != nil:
		path := configuration.File.Path
		f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o666)
		if err != nil {
			return nil, util.StatusWrapf(util.StatusFromError(err), "Failed to create file %#v", path)
		}
		var w io.WriteCloser = f
		if configuration.File.Zstd {
			w, err = util.NewZstdWriteCloser(f)
			if err != nil {
				f.Close()
				return nil, util.StatusWrap(util.StatusFromError(err), "Failed to create Zstandard encoder")
			}
		}
		return &fileConsumer{
			path:   path,
			w:      w,
			logger: logger,
		}, nil
	case configuration.Stdout != nil:
		return &stdoutConsumer{
			stdout: lockedWriter{w: stdout},
			logger: logger,
		}, nil
	default:
		return nil, status.Error(codes.InvalidArgument, "No consumer type configured")
	}
}

type digestConsumer struct {
	generator *digest.Generator
	stdout    io.Writer
	logger    *zap.Logger
}

func (c *digestConsumer) Write(chunk []byte) (int, error) {
	return c.generator.Write(chunk)
}

func (c *digestConsumer) Finish() error {
	d, err := c.generator.Sum()
	if err != nil {
		return err
	}
	c.logger.Info("Computed digest", zap.Stringer("digest", d))
	if _, err := fmt.Fprintln(c.stdout, d); err != nil {
		return util.StatusWrap(util.StatusFromError(err), "Failed to write digest")
	}
	return nil
}

func (c *digestConsumer) Abort() {}

type fileConsumer struct {
	path      string
	w         io.WriteCloser
	sizeBytes int64
	logger    *zap.Logger
}

func (c *fileConsumer) Write(chunk []byte) (int, error) {
	n, err := c.w.Write(chunk)
	c.sizeBytes += int64(n)
	if err != nil {
		return n, util.StatusWrapf(util.StatusFromError(err), "Failed to write to file %#v", c.path)
	}
	return n, nil
}

func (c *fileConsumer) Finish() error {
	if err := c.w.Close(); err != nil {
		return util.StatusWrapf(util.StatusFromError(err), "Failed to close file %#v", c.path)
	}
	c.logger.Info("Wrote file", zap.String("path", c.path), zap.Int64("size_bytes", c.sizeBytes))
	return nil
}

func (c *fileConsumer) Abort() {
	c.w.Close()
}

type stdoutConsumer struct {
	stdout    io.Writer
	sizeBytes int64
	logger    *zap.Logger
}

func (c *stdoutConsumer) Write(chunk []byte) (int, error) {
	n, err := c.stdout.Write(chunk)
	c.sizeBytes += int64(n)
	if err != nil {
		return n, util.StatusWrap(util.StatusFromError(err), "Failed to write to standard output")
	}
	return n, nil
}

func (c *stdoutConsumer) Finish() error {
	c.logger.Info("Wrote to standard output", zap.Int64("size_bytes", c.sizeBytes))
	return nil
}

func (c *stdoutConsumer) Abort() {}
