package ereader

import (
	"fmt"
	"os"
	"strings"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

// Config holds the options of a Decoder.
type Config struct {

	// If true, DecodeFile rejects paths that do not end in .wf1
	// (optionally followed by .gz, .zst or .lz4).
	CheckExtension bool `yaml:"check_extension"`

	// If true, a data block whose observation count differs from
	// the header is an error rather than a logged warning.
	StrictObsCount bool `yaml:"strict_obs_count"`

	// Character set of the variable names, e.g. "windows-1252".
	// Empty or "utf-8" means names must be valid UTF-8 as stored.
	NameEncoding string `yaml:"name_encoding"`

	// Upper bound on variables times observations.  Zero means no
	// limit.
	MaxCells int64 `yaml:"max_cells"`

	// If true, gzip, zstd and lz4 compressed workfiles are
	// decompressed transparently.
	Decompress bool `yaml:"decompress"`
}

// maxCellsLimit is the largest accepted MaxCells.  It keeps the
// decompressed size bound of 8 bytes per cell within an int64.
const maxCellsLimit = 1 << 40

// DefaultConfig returns the default decoder configuration.
func DefaultConfig() Config {
	return Config{
		CheckExtension: true,
		StrictObsCount: false,
		NameEncoding:   "",
		MaxCells:       1 << 28,
		Decompress:     true,
	}
}

// LoadConfig reads a YAML configuration file.  Options missing from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (cfg Config) Validate() error {
	if cfg.MaxCells < 0 {
		return fmt.Errorf("max_cells must not be negative, got %d", cfg.MaxCells)
	}
	if cfg.MaxCells > maxCellsLimit {
		return fmt.Errorf("max_cells must not exceed %d, got %d", int64(maxCellsLimit), cfg.MaxCells)
	}
	if _, err := cfg.nameEncoding(); err != nil {
		return err
	}
	return nil
}

// nameEncoding resolves NameEncoding.  A nil result means strict UTF-8.
func (cfg Config) nameEncoding() (xencoding.Encoding, error) {

	name := strings.ToLower(strings.TrimSpace(cfg.NameEncoding))
	switch name {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown name_encoding %q: %w", cfg.NameEncoding, err)
	}
	return enc, nil
}
