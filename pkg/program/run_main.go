package program

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Routine is the main function of a program. Additional routines,
// such as HTTP servers or consumers of a stream, may be launched in
// the provided group. The context provided to them is canceled when
// the program receives a termination signal, or when any routine
// fails.
type Routine func(ctx context.Context, group *errgroup.Group) error

var terminationSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}

// terminateWithSignal terminates the current process by sending a
// signal to itself.
func terminateWithSignal(terminationSignal os.Signal) {
	if runtime.GOOS == "windows" {
		// On Windows, process.Signal() is not supported so
		// immediately exit.
		os.Exit(1)
	}

	// Clear the signal handler and raise the original signal once
	// again. That way we shut down under the original
	// circumstances.
	signal.Reset(terminationSignal)
	process, err := os.FindProcess(os.Getpid())
	if err != nil {
		panic(err)
	}
	if err := process.Signal(terminationSignal); err != nil {
		panic(err)
	}

	// process.Signal() does not guarantee that the signal is
	// delivered to the same thread. Fall back to calling os.Exit()
	// if we don't get terminated via signal delivery.
	// https://github.com/golang/go/issues/19326
	time.Sleep(5 * time.Second)
	os.Exit(1)
}

// RunMain runs a program that supports graceful termination. The
// program terminates when one of the following occurs:
//
//   - The routine and everything it launched in the group have
//     completed. The program terminates with exit code 0.
//
//   - One of the routines fails with a non-nil error. The program
//     terminates with exit code 1.
//
//   - The program receives SIGINT or SIGTERM. Remaining routines are
//     canceled, after which the program terminates with that signal.
func RunMain(logger *zap.Logger, routine Routine) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, terminationSignals...)

	ctx, cancel := context.WithCancel(context.Background())
	var receivedSignal os.Signal
	go func() {
		receivedSignal = <-signalChan
		logger.Info("Received signal, initiating graceful shutdown", zap.Stringer("signal", receivedSignal))
		cancel()
	}()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return routine(groupCtx, group)
	})
	err := group.Wait()
	signal.Stop(signalChan)
	logger.Sync()

	select {
	case <-ctx.Done():
		if receivedSignal != nil {
			terminateWithSignal(receivedSignal)
		}
	default:
	}
	if err != nil {
		logger.Fatal("Fatal error", zap.Error(err))
	}
	os.Exit(0)
}
