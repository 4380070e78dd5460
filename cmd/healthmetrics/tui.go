package main

import (
	"os"
	"os/signal"
	"syscall"

	"healthmetrics/internal/adapter/memory"
	"healthmetrics/internal/app"
	"healthmetrics/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := c.cfg
			db := memory.New()
			sessions := app.NewSessionService(db, cfg.Session.TTL)
			sess, err := sessions.Start(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sessions.End(ctx, sess.ID) }()

			model := tui.New(ctx, tui.Services{
				Reports:   app.NewReportService(db, db, nil),
				History:   app.NewHistoryService(db),
				Water:     app.NewWaterService(db, db),
				Reminders: app.NewReminderService(db),
			}, sess.ID, tui.Options{
				Theme:           cfg.Shell.Theme,
				Tabs:            cfg.Shell.Tabs,
				Onboarding:      cfg.Shell.Onboarding,
				DefaultActivity: cfg.Defaults.Activity,
				DefaultMacros:   cfg.Defaults.Macros,
			})

			// Logging to the terminal would corrupt the alt screen, so only
			// log once the program has exited.
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				c.log.Error("tui exited", zap.Error(err))
				return err
			}
			c.log.Debug("tui exited", zap.String("session", sess.ID))
			return nil
		},
	}
}
