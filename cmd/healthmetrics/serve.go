package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "healthmetrics/internal/adapter/http"
	"healthmetrics/internal/adapter/memory"
	"healthmetrics/internal/app"
	"healthmetrics/internal/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	cfg := c.cfg
	db := memory.New()

	var rec app.Recorder
	if cfg.Metrics.Enabled {
		metrics.Register()
		rec = metrics.Recorder{}
	}

	sessions := app.NewSessionService(db, cfg.Session.TTL)
	svc := adapthttp.Services{
		Sessions:  sessions,
		Reports:   app.NewReportService(db, db, rec),
		History:   app.NewHistoryService(db),
		Water:     app.NewWaterService(db, db),
		Reminders: app.NewReminderService(db),
	}
	shell := adapthttp.Shell{
		Theme:           cfg.Shell.Theme,
		Tabs:            cfg.Shell.Tabs,
		Onboarding:      cfg.Shell.Onboarding,
		DefaultActivity: cfg.Defaults.Activity,
		DefaultMacros:   cfg.Defaults.Macros,
	}
	srv := adapthttp.New(svc, shell, c.log)
	if cfg.Metrics.Enabled {
		srv.WithMetrics(cfg.Metrics.Path, metrics.Handler())
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go sweepSessions(ctx, sessions, db, cfg.Session.SweepInterval, c.log)

	errCh := make(chan error, 1)
	go func() {
		c.log.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	c.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

type sessionCounter interface {
	SessionCount() int
}

// sweepSessions drops expired sessions every interval until ctx is done.
func sweepSessions(ctx context.Context, sessions *app.SessionService, db sessionCounter, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepOnce(ctx, sessions, db, log)
		}
	}
}

func sweepOnce(ctx context.Context, sessions *app.SessionService, db sessionCounter, log *zap.Logger) {
	n, err := sessions.Sweep(ctx)
	if err != nil {
		log.Error("sweep sessions", zap.Error(err))
		return
	}
	if n > 0 {
		log.Debug("expired sessions removed", zap.Int("count", n))
	}
	metrics.SetActiveSessions(db.SessionCount())
}
