package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/buildbarn/bb-blobstream/pkg/blob"
	"github.com/buildbarn/bb-blobstream/pkg/chunkstream"
	"github.com/buildbarn/bb-blobstream/pkg/clock"
	"github.com/buildbarn/bb-blobstream/pkg/global"
	"github.com/buildbarn/bb-blobstream/pkg/program"
	"github.com/buildbarn/bb-blobstream/pkg/util"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("Usage: bb_blobstream bb_blobstream.jsonnet")
	}
	var configuration ApplicationConfiguration
	if err := util.UnmarshalConfigurationFromFile(os.Args[1], &configuration); err != nil {
		log.Fatalf("Failed to read configuration from %s: %s", os.Args[1], err)
	}
	diagnosticsServer, logger, tracerProvider, err := global.ApplyConfiguration(&configuration.Global)
	if err != nil {
		log.Fatal("Failed to apply global configuration options: ", err)
	}

	program.RunMain(logger, func(ctx context.Context, group *errgroup.Group) error {
		// Keep the diagnostics server running until streaming
		// has completed.
		diagnosticsContext, cancelDiagnostics := context.WithCancel(ctx)
		defer cancelDiagnostics()
		global.ServeDiagnostics(diagnosticsContext, group, diagnosticsServer)

		return run(ctx, &configuration, logger, tracerProvider, diagnosticsServer)
	})
}

func run(ctx context.Context, configuration *ApplicationConfiguration, logger *zap.Logger, tracerProvider trace.TracerProvider, diagnosticsServer *global.DiagnosticsServer) error {
	if len(configuration.Consumers) == 0 {
		return status.Error(codes.InvalidArgument, "No consumers configured")
	}

	source, closer, err := newByteSourceFromConfiguration(ctx, &configuration.Source, util.NewHTTPClient(tracerProvider))
	if err != nil {
		return util.StatusWrap(err, "Failed to create source")
	}
	errorLogger := util.NewZapErrorLogger(logger)
	defer func() {
		if err := closer.Close(); err != nil {
			errorLogger.Log(util.StatusWrap(util.StatusFromError(err), "Failed to close source"))
		}
	}()

	metricsName := configuration.MetricsName
	if metricsName == "" {
		metricsName = "source"
	}
	reader := blob.NewTracingReader(
		blob.NewMetricsReader(blob.NewDefaultReader(), clock.SystemClock, metricsName),
		tracerProvider)

	diagnosticsServer.SetReady()
	logger.Info(
		"Streaming source",
		zap.Int64("size_bytes", source.GetSizeBytes()),
		zap.Int64("chunk_size_bytes", configuration.ChunkSizeBytes),
		zap.Int("consumers", len(configuration.Consumers)))

	switch configuration.Mode {
	case "", "chunks":
		stream := chunkstream.ToChunks(ctx, source, reader, chunkstream.ReadOptions{
			ChunkSizeBytes: configuration.ChunkSizeBytes,
		})
		return streamChunks(ctx, stream, configuration.Consumers, source.GetSizeBytes(), os.Stdout, logger)
	case "text":
		return streamText(ctx, chunkstream.ToText(ctx, source, reader), configuration.Consumers, os.Stdout, logger)
	default:
		return status.Errorf(codes.InvalidArgument, "Unknown mode %#v", configuration.Mode)
	}
}

// streamChunks attaches all consumers to a stream at once, so that
// they share a single pass over the source. Consumers run
// concurrently, as the stream does not read ahead of them.
func streamChunks(ctx context.Context, stream *chunkstream.Stream, configurations []ConsumerConfiguration, sizeBytes int64, stdout io.Writer, logger *zap.Logger) error {
	consumers := make([]consumer, 0, len(configurations))
	for i := range configurations {
		c, err := newConsumerFromConfiguration(&configurations[i], sizeBytes, stdout, logger)
		if err != nil {
			for _, c := range consumers {
				c.Abort()
			}
			return util.StatusWrapf(err, "Consumer %d", i)
		}
		consumers = append(consumers, c)
	}
	readers := make([]chunkstream.ChunkReader, 0, len(consumers))
	for range consumers {
		readers = append(readers, stream.NewChunkReader())
	}

	group, groupCtx := errgroup.WithContext(ctx)
	go func() {
		// Interrupt all consumers if one of them fails, or
		// when the program is terminated.
		<-groupCtx.Done()
		for _, r := range readers {
			r.Close()
		}
	}()
	for i, c := range consumers {
		r := readers[i]
		consumerLogger := logger.With(zap.Int("consumer", i))
		group.Go(func() error {
			chunks := 0
			if err := chunkstream.ForEachChunk(r, func(chunk []byte) error {
				chunks++
				consumerLogger.Debug("Received chunk", zap.Int("chunk", chunks), zap.Int("size_bytes", len(chunk)))
				_, err := c.Write(chunk)
				return err
			}); err != nil {
				c.Abort()
				return util.StatusWrapf(err, "Consumer %d", i)
			}
			consumerLogger.Info("Received all chunks", zap.Int("chunks", chunks))
			if err := c.Finish(); err != nil {
				return util.StatusWrapf(err, "Consumer %d", i)
			}
			return nil
		})
	}
	return group.Wait()
}

// streamText lets every consumer read the full source as text.
func streamText(ctx context.Context, stream *chunkstream.TextStream, configurations []ConsumerConfiguration, stdout io.Writer, logger *zap.Logger) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for i := range configurations {
		configuration := &configurations[i]
		r := stream.NewTextReader()
		group.Go(func() error {
			stop := context.AfterFunc(groupCtx, r.Close)
			defer stop()
			defer r.Close()

			text, err := r.Read()
			if err != nil {
				return util.StatusWrapf(err, "Consumer %d", i)
			}
			c, err := newConsumerFromConfiguration(configuration, int64(len(text)), stdout, logger.With(zap.Int("consumer", i)))
			if err != nil {
				return util.StatusWrapf(err, "Consumer %d", i)
			}
			if _, err := c.Write([]byte(text)); err != nil {
				c.Abort()
				return util.StatusWrapf(err, "Consumer %d", i)
			}
			if err := c.Finish(); err != nil {
				return util.StatusWrapf(err, "Consumer %d", i)
			}
			return nil
		})
	}
	return group.Wait()
}
