package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recera/mission-control/internal/fixture"
	"github.com/recera/mission-control/internal/logging"
	"github.com/recera/mission-control/internal/views"
	"github.com/recera/mission-control/pkg/cockpit"
	"github.com/recera/mission-control/pkg/live"
	"github.com/recera/mission-control/pkg/vango/vdom"
	"github.com/recera/mission-control/pkg/zoom"
	"github.com/spf13/cobra"
)

func newServeCommand(configPath *string) *cobra.Command {
	var port int
	var host string
	var anyOrigin bool
	var fixtures fixtureFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live web cockpit",
		Long: `Serves the cockpit over HTTP. Each browser gets its own navigation
session; intents and transition frames travel over a websocket.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath, &fixtures)
			if err != nil {
				return err
			}

			// CLI takes precedence
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger, err := logging.Setup(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, reloader, err := openProvider(cfg.Fixture, logger)
			if err != nil {
				return err
			}

			opts := []live.Option{
				live.WithLogger(logger),
				live.WithTiming(cfg.Zoom.Timing()),
				live.WithMaxAge(cfg.Server.SessionMaxAge),
				live.WithPage("Mission Control", views.Styles.CSS()),
			}
			if anyOrigin {
				// Allow all origins in dev mode
				opts = append(opts, live.WithCheckOrigin(func(*http.Request) bool { return true }))
			}
			liveServer := live.NewServer(renderWith(provider), opts...)
			go liveServer.Run(ctx)

			if reloader != nil {
				reloader.OnReload = func(*fixture.Dataset) { liveServer.Refresh() }
				watch(ctx, reloader, logger)
			}

			return serve(ctx, cfg.Server.Addr(), liveServer.Handler(), logger.Info)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on")
	cmd.Flags().StringVarP(&host, "host", "H", "localhost", "Host to bind to")
	cmd.Flags().BoolVar(&anyOrigin, "any-origin", false, "Accept websocket connections from any origin (development only)")
	fixtures.register(cmd)

	return cmd
}

// renderWith resolves each snapshot against p and renders it
func renderWith(p cockpit.Provider) live.RenderFunc {
	return func(snap zoom.Snapshot) *vdom.VNode {
		return views.Render(snap, views.Resolve(snap.State, p))
	}
}

// serve runs an HTTP server on addr until ctx is done, then shuts it down
func serve(ctx context.Context, addr string, handler http.Handler, info func(string, ...any)) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		info("✨ Mission Control running", "url", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
