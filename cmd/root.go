// Package cmd provides the root command and CLI setup for sqlcover.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/sqlcover/internal/adapter"
	"github.com/mouse-blink/sqlcover/internal/config"
	"github.com/mouse-blink/sqlcover/internal/controller"
	"github.com/mouse-blink/sqlcover/internal/coverage"
	"github.com/mouse-blink/sqlcover/internal/domain"
	"github.com/mouse-blink/sqlcover/internal/logger"
)

var workflow domain.Workflow
var cfg = &config.Config{}

var configFlag string
var logLevelFlag string
var logJSONFlag bool
var uiFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sqlcover",
		Short: "SQL code coverage reporting",
		Long: `sqlcover correlates the statements of parsed SQL batches with the
statement-executed events captured while a workload ran, and renders the
result as raw XML, HTML, Cobertura or OpenCover reports.

Configuration is read from sqlcover.yaml in the working directory (or --config)
and from SQLCOVER_* environment variables; flags take precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ./sqlcover.yaml)")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false, "emit JSON logs")
	cmd.PersistentFlags().StringVar(&uiFlag, "ui", "", "summary display: auto, plain or tui")

	return cmd
}

// setup loads the configuration, installs the logger and, unless one was
// injected, builds the workflow.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	cfg = loaded

	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevelFlag
	}

	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = logJSONFlag
	}

	if err := logger.Initialize(logger.Options{
		Level:  cfg.Log.Level,
		JSON:   cfg.Log.JSON,
		Output: cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}

	if cmd.Flags().Changed("ui") {
		cfg.UI = uiFlag
	}

	mode, err := controller.ParseMode(cfg.UI)
	if err != nil {
		return err
	}

	if workflow == nil {
		workflow = newWorkflow(cmd.Root(), cfg, mode)
	}

	return nil
}

func newWorkflow(root *cobra.Command, cfg *config.Config, mode controller.Mode) domain.Workflow {
	ui := controller.NewUI(root, mode)

	return domain.NewWorkflow(
		adapter.NewLocalWorkloadAdapter(),
		adapter.NewLocalTraceAdapter(cfg.Trace.Driver, cfg.Trace.Query),
		adapter.NewResultStore(),
		adapter.NewLocalReportWriter(),
		ui,
		coverage.NewCorrelator(logger.Logger),
		logger.Logger,
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()
	_ = logger.Logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}
