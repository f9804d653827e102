// Package config provides configuration for chessstego.
//
// Values come from NewConfig defaults, then an optional YAML file
// (LoadFile), then command-line flags applied by the caller. Validate
// checks the result once everything is applied.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chessstego-go/internal/compress"
	"github.com/lgbarn/chessstego-go/internal/errors"
)

// Format selects the carrier artifact.
type Format string

const (
	FEN Format = "fen" // Single board position
	PGN Format = "pgn" // Game of legal moves
)

// ParseFormat converts a format name, in any case, to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FEN, PGN:
		return f, nil
	default:
		return "", fmt.Errorf("format %q (want fen or pgn): %w", name, errors.ErrInvalidConfig)
	}
}

// Config holds all program configuration.
type Config struct {
	// Format is the carrier used by encode and decode.
	Format Format `yaml:"format"`

	// Compressor names the PGN payload compressor. "auto" is accepted
	// for decoding and detects the compressor from the payload.
	Compressor string `yaml:"compressor"`

	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log_level"`

	// Output controls PGN layout.
	Output *OutputConfig `yaml:"output"`

	// Batch controls processing of many inputs at once.
	Batch *BatchConfig `yaml:"batch"`

	// Output streams
	OutputFile io.Writer `yaml:"-"`
	LogFile    io.Writer `yaml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:     FEN,
		Compressor: compress.Zlib,
		LogLevel:   zerolog.LevelWarnValue,
		Output:     NewOutputConfig(),
		Batch:      NewBatchConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// LoadFile reads a YAML configuration file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := NewConfig()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %v: %w", path, err, errors.ErrInvalidConfig)
	}
	// A file may leave a whole section out or set it to null.
	if c.Output == nil {
		c.Output = NewOutputConfig()
	}
	if c.Batch == nil {
		c.Batch = NewBatchConfig()
	}
	return nil
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLogFile sets the log stream.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// Level returns the parsed log level.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", c.LogLevel, errors.ErrInvalidConfig)
	}
	return level, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := ParseFormat(string(c.Format)); err != nil {
		return err
	}
	if !validCompressor(c.Compressor) {
		return fmt.Errorf("compressor %q (want one of %s or %s): %w",
			c.Compressor, strings.Join(compress.Names(), ", "), compress.Auto, errors.ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Batch.Validate()
}

func validCompressor(name string) bool {
	name = strings.ToLower(name)
	if name == compress.Auto {
		return true
	}
	for _, n := range compress.Names() {
		if n == name {
			return true
		}
	}
	return false
}
