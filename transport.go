package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/athapong/workdesk-mcp/pkg/metrics"
	"github.com/athapong/workdesk-mcp/util"
)

const shutdownTimeout = 5 * time.Second

// newRouter mounts the SSE endpoints (when sse is not nil), /metrics and
// /healthz.
func newRouter(sse *server.SSEServer) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	if sse != nil {
		r.Handle(sse.CompleteSsePath(), corsMiddleware(sse.SSEHandler()))
		r.Handle(sse.CompleteMessagePath(), corsMiddleware(sse.MessageHandler()))
	}

	r.Handle("/metrics", metricsHandler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func metricsHandler() http.Handler {
	next := promhttp.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.UpdateSystemMetrics()
		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		util.Logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("http request")
	})
}

// serveSSE runs the SSE transport on addr until ctx is cancelled.
func serveSSE(ctx context.Context, mcpServer *server.MCPServer, addr, baseURL, basePath string) error {
	httpServer := &http.Server{Addr: addr}
	sse := server.NewSSEServer(mcpServer,
		server.WithBaseURL(baseURL),
		server.WithStaticBasePath(basePath),
		server.WithKeepAlive(true),
		server.WithHTTPServer(httpServer),
	)
	httpServer.Handler = newRouter(sse)

	util.Logger.WithFields(logrus.Fields{
		"addr":     addr,
		"sse":      sse.CompleteSsePath(),
		"message":  sse.CompleteMessagePath(),
		"base_url": baseURL,
	}).Info("starting SSE server")

	return listenUntilDone(ctx, httpServer, sse.Shutdown)
}

// serveMetrics runs a standalone /metrics listener, used in stdio mode.
func serveMetrics(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: newRouter(nil)}
	util.Logger.WithField("addr", addr).Info("starting metrics server")
	return listenUntilDone(ctx, httpServer, httpServer.Shutdown)
}

func listenUntilDone(ctx context.Context, httpServer *http.Server, shutdown func(context.Context) error) error {
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %s", httpServer.Addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		util.Logger.WithField("addr", httpServer.Addr).Info("shutting down HTTP server")
		if err := shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
		return nil
	}
}
