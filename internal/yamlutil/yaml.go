// Package yamlutil decodes the tool's YAML configuration. It keeps the
// YAML dependency and the decode policy (strict fields, input size bound)
// in one place so every config surface behaves the same way.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxConfigSize bounds config input. Tool configs run a few hundred
// bytes; an input near the bound is not a config file.
const MaxConfigSize = 256 << 10

// Decode errors.
var (
	ErrEmptyInput  = errors.New("yaml: empty input")
	ErrNilTarget   = errors.New("yaml: nil destination")
	ErrInputTooBig = errors.New("yaml: input exceeds size bound")
)

// DecodeStrict unmarshals data into v, rejecting unknown fields so config
// typos surface as errors instead of silently dropped settings.
func DecodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > MaxConfigSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooBig, len(data), MaxConfigSize)
	}
	if v == nil {
		return ErrNilTarget
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return nil
}
