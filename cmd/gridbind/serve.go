package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gridbind-dev/gridbind/internal/config"
	"github.com/gridbind-dev/gridbind/internal/feed"
	"github.com/gridbind-dev/gridbind/pkg/grid"
	"github.com/gridbind-dev/gridbind/pkg/live"
	"github.com/gridbind-dev/gridbind/pkg/middleware"
)

func serveCmd() *cobra.Command {
	var (
		port      int
		host      string
		configDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo streaming server",
		Long: `Start a server that mutates a demo feed on a timer, diffs each
snapshot, and streams the resulting edit batches to websocket clients.

Endpoints:
  /stream   websocket edit stream
  /metrics  Prometheus metrics
  /healthz  liveness check

Examples:
  gridbind serve
  gridbind serve --port=8080
  gridbind serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configDir, port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from gridbind.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from gridbind.json)")
	cmd.Flags().StringVarP(&configDir, "config", "c", ".", "Directory containing gridbind.json")

	return cmd
}

func runServe(configDir string, port int, host string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}

	logger := newLogger(cfg.Log.Level)

	view := live.NewView(live.WithLogger(logger))
	source := feed.New(cfg.Feed.Sections, cfg.Feed.Rows, cfg.Feed.Seed)

	binder := grid.New(
		grid.WithLogger[string](logger),
		grid.WithObserver[string](middleware.Prometheus()),
		grid.WithObserver[string](middleware.OTel()),
	)
	view.Attach(binder)
	binder.Bind(view)
	binder.UpdateCollection(source.Current())

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Handle(cfg.Server.MetricsPath, promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	live.Mount(r, cfg.Server.StreamPath, view)

	server := &http.Server{
		Addr:    cfg.Address(),
		Handler: r,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	}()

	go func() {
		ticker := time.NewTicker(cfg.UpdateInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				binder.UpdateCollectionContext(ctx, source.Next())
			}
		}
	}()

	printBanner()
	fmt.Println()
	success("Listening on http://%s", cfg.Address())
	info("stream:  %s", cfg.Server.StreamPath)
	info("metrics: %s", cfg.Server.MetricsPath)
	fmt.Println()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newLogger builds a slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
