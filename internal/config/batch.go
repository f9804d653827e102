package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chessstego-go/internal/errors"
)

// BatchConfig holds settings for processing many inputs in one run.
type BatchConfig struct {
	// Enabled treats each input line (or each PGN game) as its own job
	Enabled bool `yaml:"enabled"`

	// Workers is the number of concurrent codec workers
	Workers int `yaml:"workers"`

	// BufferSize is the job queue depth
	BufferSize int `yaml:"buffer_size"`
}

// NewBatchConfig creates a BatchConfig with default values.
func NewBatchConfig() *BatchConfig {
	return &BatchConfig{
		Workers:    runtime.NumCPU(),
		BufferSize: 64,
	}
}

// Validate checks that the batch configuration is valid.
func (b *BatchConfig) Validate() error {
	if b.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", b.Workers, errors.ErrInvalidConfig)
	}
	if b.BufferSize < 0 {
		return fmt.Errorf("buffer size must not be negative, got %d: %w", b.BufferSize, errors.ErrInvalidConfig)
	}
	return nil
}
