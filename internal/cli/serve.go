package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"todos-cli/internal/playground"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory stand-in for the to-do REST API",
		Long: strings.TrimSpace(`
Serve the users/todos routes the client talks to, backed by memory.
Point the client at it with --base-url or TODOS_BASE_URL. Prometheus
metrics are exposed at /metrics.
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := app.stderrLogger(cmd)
			svc := playground.NewService()
			router := playground.NewRouter(svc, playground.NewMetrics(svc), logger)

			ln, err := net.Listen("tcp", strings.TrimSpace(addr))
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			listenAddr := ln.Addr().String()

			_ = writeOutWithHints(cmd, app, map[string]any{
				"addr":      listenAddr,
				"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
			}, "todos --base-url http://"+listenAddr+" login <name>")
			logger.Info("playground listening", "addr", listenAddr)

			server := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
			errCh := make(chan error, 1)
			go func() { errCh <- server.Serve(ln) }()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("playground shutting down")
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Bind address (host:port or :port)")
	return cmd
}
