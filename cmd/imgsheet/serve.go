package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/imgsheet-go/internal/server"
	"github.com/ukaji3/imgsheet-go/internal/ui"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the export HTTP service",
		Long: `serve starts an HTTP service that builds documents from JSON requests.

Endpoints:
- POST /api/export            build a document and return it as an attachment
- GET  /api/toasts            list active notifications
- DELETE /api/toasts/{id}     dismiss a notification
- GET  /api/theme             current theme
- POST /api/theme/toggle      switch between light and dark
- GET  /healthz               health check`,
		RunE: runServe,
	}

	cmd.Flags().String("host", "", "host to bind to (default from config server.host)")
	cmd.Flags().Int("port", 0, "port to listen on (default from config server.port)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	board := ui.NewBoard(cfg.UI.ToastTTL)
	prefs, err := loadPreferences(ctx, board)
	if err != nil {
		return err
	}

	srv := server.New(cfg, logger, board, prefs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	return srv.ListenAndServe(ctx)
}
