package global

import (
	"context"
	"net/http"
	// The pprof package does not provide a function for registering
	// its endpoints against an arbitrary mux. Load it to force
	// registration against the default mux, so we can forward
	// traffic to that mux instead.
	_ "net/http/pprof"
	"sync/atomic"

	"github.com/buildbarn/bb-blobstream/pkg/util"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"golang.org/x/sync/errgroup"
)

// DiagnosticsServer is returned by ApplyConfiguration. It can be used
// by the caller to report whether the application has started up
// successfully.
type DiagnosticsServer struct {
	config *DiagnosticsHTTPServerConfiguration
	ready  atomic.Bool
}

func (ds *DiagnosticsServer) newRouter() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/-/healthy", func(http.ResponseWriter, *http.Request) {})
	router.HandleFunc("/-/ready", func(w http.ResponseWriter, _ *http.Request) {
		if ds.ready.Load() {
			w.WriteHeader(http.StatusOK)
		} else {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	})
	if ds.config.EnablePrometheus {
		router.Handle("/metrics", promhttp.Handler())
	}
	if ds.config.EnablePprof {
		router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	}
	return router
}

// Serve the diagnostics HTTP server until the termination context is
// canceled. If no diagnostics HTTP server is configured, this function
// merely waits for termination.
func (ds *DiagnosticsServer) Serve(terminationContext context.Context) error {
	if ds.config == nil {
		<-terminationContext.Done()
		return nil
	}

	server := &http.Server{
		Addr:    ds.config.ListenAddress,
		Handler: ds.newRouter(),
	}
	go func() {
		<-terminationContext.Done()
		ds.SetNotServing()
		server.Shutdown(context.Background())
	}()
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// SetReady updates the health probe to report healthy and ready.
func (ds *DiagnosticsServer) SetReady() {
	ds.ready.Store(true)
}

// SetNotServing updates the health probe to report healthy but not
// ready.
func (ds *DiagnosticsServer) SetNotServing() {
	ds.ready.Store(false)
}

// ServeDiagnostics is a wrapper that calls DiagnosticsServer.Serve
// inside a goroutine, managed by the provided errgroup.Group, and
// returns immediately.
func ServeDiagnostics(terminationContext context.Context, terminationGroup *errgroup.Group, diagnosticsServer *DiagnosticsServer) {
	terminationGroup.Go(func() error {
		if err := diagnosticsServer.Serve(terminationContext); err != nil {
			return util.StatusWrap(util.StatusFromError(err), "Diagnostics server")
		}
		return nil
	})
}
