package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pulse-app/pulse/internal/api"
	"github.com/pulse-app/pulse/internal/daemon"
	"github.com/pulse-app/pulse/internal/health"
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to listen on (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local Pulse API server",
	Long:  `Start the HTTP API the web view renders from, at localhost:7433.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := daemon.New()
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}

	// Override config from flags
	if serveHost != "" {
		app.Config.API.Host = serveHost
	}
	if servePort > 0 {
		app.Config.API.Port = servePort
	}

	return serve(context.Background(), app)
}

// serve runs the HTTP server and blocks until shutdown.
func serve(ctx context.Context, app *daemon.App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := api.NewServer(app)
	if app.Config.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	// Prime the snapshot and keep it fresh across day boundaries.
	if _, err := app.Refresh(time.Now()); err != nil {
		log.Printf("[serve] initial refresh: %v", err)
	}
	go refreshLoop(ctx, app)

	// Periodic store checks in the background
	go health.NewChecker(app.DB, app.Config.Data.Dir).Run(ctx)

	addr := fmt.Sprintf("%s:%d", app.Config.API.Host, app.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		app.Close()
	}()

	fmt.Printf("Pulse serving on http://%s\n", addr)
	if app.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// refreshLoop re-derives engagement and the notification schedule hourly, so
// level transitions happen even when no request comes in.
func refreshLoop(ctx context.Context, app *daemon.App) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := app.Refresh(time.Now()); err != nil {
				log.Printf("[serve] refresh: %v", err)
			}
		}
	}
}
