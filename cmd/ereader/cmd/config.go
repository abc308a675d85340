package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"

	"github.com/scortino/ereader"
)

// cliConfig is the YAML configuration of the ereader command.  The
// decoder options sit at the top level of the file.
type cliConfig struct {
	ereader.Config `yaml:",inline"`

	Logging loggingConfig `yaml:"logging"`
	Output  outputConfig  `yaml:"output"`
}

type loggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type outputConfig struct {

	// fmt verb used for numeric values in text outputs.
	FloatFormat string `yaml:"float_format"`

	// Parquet compression codec: snappy, gzip, zstd or none.
	Compression string `yaml:"compression"`

	// Number of files converted in parallel by batch.
	Workers int `yaml:"workers"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		Config: ereader.DefaultConfig(),
		Logging: loggingConfig{
			Level:  "info",
			Format: "logfmt",
		},
		Output: outputConfig{
			FloatFormat: "%v",
			Compression: "snappy",
			Workers:     4,
		},
	}
}

// loadCLIConfig reads the configuration file at path.  An empty path
// yields the defaults.
func loadCLIConfig(path string) (cliConfig, error) {

	cfg := defaultCLIConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, cfg.validate()
}

func (cfg cliConfig) validate() error {
	if err := cfg.Config.Validate(); err != nil {
		return err
	}
	if _, err := compressionCodec(cfg.Output.Compression); err != nil {
		return err
	}
	if cfg.Output.Workers < 1 {
		return fmt.Errorf("output.workers must be positive, got %d", cfg.Output.Workers)
	}
	return nil
}

// newLogger returns a leveled logger writing to w in logfmt or JSON.
func newLogger(w io.Writer, format, lvl string) (log.Logger, error) {

	var logger log.Logger
	switch strings.ToLower(format) {
	case "", "logfmt":
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case "json":
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "", "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}

	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	return logger, nil
}
