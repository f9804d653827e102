package config

import (
	"io"
	"runtime"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// BuilderFrom returns a ConfigBuilder that modifies cfg in place.
func BuilderFrom(cfg *Config) *ConfigBuilder {
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithFormat sets the carrier format.
func (b *ConfigBuilder) WithFormat(format Format) *ConfigBuilder {
	b.cfg.Format = format
	return b
}

// WithCompressor sets the PGN payload compressor.
func (b *ConfigBuilder) WithCompressor(name string) *ConfigBuilder {
	b.cfg.Compressor = name
	return b
}

// WithLogLevel sets the log level name.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.LogLevel = level
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithTagFormat sets which tags are written.
func (b *ConfigBuilder) WithTagFormat(form TagOutputForm) *ConfigBuilder {
	b.cfg.Output.TagFormat = form
	return b
}

// WithBatch enables batch mode with the given number of workers.
func (b *ConfigBuilder) WithBatch(enabled bool, workers int) *ConfigBuilder {
	b.cfg.Batch.Enabled = enabled
	b.cfg.Batch.Workers = workers
	return b
}

// WithWorkers sets the number of batch workers. Zero selects one worker
// per CPU.
func (b *ConfigBuilder) WithWorkers(workers int) *ConfigBuilder {
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	b.cfg.Batch.Workers = workers
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}
