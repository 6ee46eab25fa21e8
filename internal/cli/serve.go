package cli

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

	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/server"
	"github.com/nikolayk812/storefront/internal/session"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout    = 10 * time.Second
	sessionSweepPeriod = time.Hour
)

func cmdServe() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.DB.MigrateOnStart {
				if err := db.MigrateUp(cfg.DB.URL); err != nil {
					return fmt.Errorf("db.MigrateUp: %w", err)
				}
			}

			a, err := openApp(ctx, cfg)
			if err != nil {
				return fmt.Errorf("openApp: %w", err)
			}
			defer a.close()

			if err := a.seeder().Seed(ctx); err != nil {
				return fmt.Errorf("seeder.Seed: %w", err)
			}

			sessions := a.sessionStore()

			deps, err := a.serverDeps(sessions)
			if err != nil {
				return fmt.Errorf("serverDeps: %w", err)
			}

			srv := &http.Server{
				Addr: cfg.HTTP.Addr,
				Handler: server.BuildRouter(deps, server.Options{
					CORSOrigins:    cfg.HTTP.CORSOrigins,
					RequestTimeout: cfg.HTTP.RequestTimeout,
					Session: session.Options{
						CookieName: cfg.Session.CookieName,
						TTL:        cfg.Session.TTL,
						Secure:     cfg.Session.Secure,
					},
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go sweepSessions(ctx, sessions, sessionSweepPeriod)

			errCh := make(chan error, 1)
			go func() {
				slog.Info("listening", "addr", srv.Addr, "session_backend", cfg.Session.Backend, "authz_backend", cfg.Authz.Backend)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("srv.ListenAndServe: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			slog.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("srv.Shutdown: %w", err)
			}

			return nil
		},
	}
}

// sweepSessions deletes expired sessions every period until ctx is done.
func sweepSessions(ctx context.Context, store sessionStore, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.DeleteExpiredSessions(ctx)
			if err != nil {
				slog.Error("failed to delete expired sessions", "method", "sweepSessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions deleted", "count", n)
			}
		}
	}
}
