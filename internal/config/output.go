package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chessstego-go/internal/errors"
)

// MinLineLength is the narrowest PGN movetext width accepted.
const MinLineLength = 20

// TagOutputForm specifies which tags to output.
type TagOutputForm int

const (
	AllTags        TagOutputForm = 0
	SevenTagRoster TagOutputForm = 1
	NoTags         TagOutputForm = 2
)

var tagFormNames = map[string]TagOutputForm{
	"all":   AllTags,
	"seven": SevenTagRoster,
	"none":  NoTags,
}

// String returns the name used in configuration files.
func (f TagOutputForm) String() string {
	for name, form := range tagFormNames {
		if form == f {
			return name
		}
	}
	return fmt.Sprintf("TagOutputForm(%d)", int(f))
}

// UnmarshalYAML reads a tag form by name: all, seven or none.
func (f *TagOutputForm) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	form, ok := tagFormNames[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("line %d: tag format %q (want all, seven or none): %w", value.Line, name, errors.ErrInvalidConfig)
	}
	*f = form
	return nil
}

// OutputConfig holds settings related to PGN output formatting.
type OutputConfig struct {
	// MaxLineLength is the maximum line length for PGN movetext
	MaxLineLength uint `yaml:"max_line_length"`

	// KeepMoveNumbers controls whether move numbers are included
	KeepMoveNumbers bool `yaml:"keep_move_numbers"`

	// KeepResults controls whether the result ends the movetext
	KeepResults bool `yaml:"keep_results"`

	// TagFormat specifies which tags to output (AllTags, SevenTagRoster, NoTags)
	TagFormat TagOutputForm `yaml:"tags"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepResults:     true,
		TagFormat:       AllTags,
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength < MinLineLength {
		return fmt.Errorf("max line length %d is below %d: %w", o.MaxLineLength, MinLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
