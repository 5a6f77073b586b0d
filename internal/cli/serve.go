package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/versolabs/verso/internal/expand"
	"github.com/versolabs/verso/internal/httpapi"
	"github.com/versolabs/verso/internal/logger"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the expansion HTTP API",
	Long: `Serve exposes the pipeline over HTTP:

  POST /api/v1/expand    expand one story
  GET  /api/v1/trending  list trending expandable stories
  GET  /health           liveness check`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	orchestrator := expand.New(cfg, storeFromConfig(cfg))
	server := httpapi.NewServer(orchestrator)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.WithField("addr", cfg.Server.Addr).Info("expansion API listening")
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-stop:
	}

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
