package main

import (
	"fmt"
	"io"
	"os"

	"healthmetrics/internal/config"
	"healthmetrics/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries state shared by every subcommand once flags are parsed.
type cli struct {
	configPath string
	verbose    bool

	cfg config.Config
	log *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "healthmetrics",
		Short: "Personal health metrics: BMI, BMR, calories, water and macros",
		Long: `healthmetrics computes Body Mass Index, Basal Metabolic Rate, a daily
calorie target, recommended water intake and macronutrient targets from a
person's weight, height, age, sex and activity level.

Use "serve" for the JSON API, "tui" for the interactive terminal shell and
"report" for a one-shot computation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if c.verbose {
				cfg.Logging.Level = "debug"
			}
			log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.cfg, c.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newServeCmd(c), newTUICmd(c), newReportCmd(c))
	return root
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
