package cmd

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/scortino/ereader"
)

// app holds the state shared by the subcommands, built once the flags
// are parsed.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg      cliConfig
	logger   log.Logger
	registry *prometheus.Registry
	metrics  *ereader.Metrics
	decoder  *ereader.Decoder
}

func (a *app) setup(cmd *cobra.Command, args []string) error {

	cfg, err := loadCLIConfig(a.cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}
	a.cfg = cfg

	a.logger, err = newLogger(cmd.ErrOrStderr(), cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return err
	}

	a.registry = prometheus.NewRegistry()
	a.metrics = ereader.NewMetrics(a.registry)

	a.decoder, err = ereader.NewDecoder(cfg.Config, ereader.WithLogger(a.logger), ereader.WithMetrics(a.metrics))
	if err != nil {
		return fmt.Errorf("invalid decoder configuration: %w", err)
	}

	return nil
}

// newRootCmd returns the ereader command with all subcommands attached.
func newRootCmd() *cobra.Command {

	a := &app{}

	root := &cobra.Command{
		Use:   "ereader",
		Short: "Read EViews workfiles",
		Long: `ereader decodes EViews workfiles (.wf1) and converts their numeric
series to CSV, parquet or one file per column.

Structural variables are dropped and NA observations are written as
missing values.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "logfmt", "Log format: logfmt or json")

	root.AddCommand(
		newCSVCmd(a),
		newColumnizeCmd(a),
		newParquetCmd(a),
		newInfoCmd(a),
		newBatchCmd(a),
	)

	return root
}

// Execute runs the root command.  This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
