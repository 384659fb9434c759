package sdf

import (
	"errors"
	"math"
)

// ErrInvalidConfig is the sentinel wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("sdf: invalid config")

// Config holds distance field generation parameters.
type Config struct {
	// Radius is the spread of the distance field in pixels.
	// It bounds the width of outline, glow and shadow effects and the extra
	// border added around every glyph texture. A larger radius costs more
	// texture memory and generation time.
	Radius float32
}

// DefaultConfig returns a configuration suitable for outlines of a few pixels.
func DefaultConfig() Config {
	return Config{Radius: 6}
}

// Validate checks the configuration and returns a *ConfigError if it is not
// usable.
func (c Config) Validate() error {
	r := float64(c.Radius)
	switch {
	case math.IsNaN(r):
		return &ConfigError{Field: "Radius", Reason: "must not be NaN"}
	case math.IsInf(r, 0):
		return &ConfigError{Field: "Radius", Reason: "must be finite"}
	case r <= 0:
		return &ConfigError{Field: "Radius", Reason: "must be positive"}
	}
	return nil
}

// Padding returns the number of pixels added on every side of the input
// bitmap, ceil(Radius).
func (c Config) Padding() int {
	return int(math.Ceil(float64(c.Radius)))
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "sdf: invalid config." + e.Field + ": " + e.Reason
}

// Unwrap allows errors.Is(err, ErrInvalidConfig).
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
