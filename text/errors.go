package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNilSource is returned when a nil FontSource is loaded.
	ErrNilSource = errors.New("text: nil font source")

	// ErrInvalidFontSize is returned when a pixel size is not a positive
	// finite number.
	ErrInvalidFontSize = errors.New("text: invalid font size")

	// ErrInvalidSdfConfig is returned when a font is loaded with an SDF
	// radius that is not a positive finite number.
	ErrInvalidSdfConfig = errors.New("text: invalid sdf config")

	// ErrUnknownFont is returned for handles the registry did not issue.
	ErrUnknownFont = errors.New("text: unknown font")

	// ErrUnknownGlyph is returned when a codepoint has not been cached.
	ErrUnknownGlyph = errors.New("text: unknown glyph")
)

// UnknownFontError is returned when a FontHandle does not belong to the
// registry it is used with.
type UnknownFontError struct {
	Handle FontHandle
}

func (e *UnknownFontError) Error() string {
	return fmt.Sprintf("text: unknown font %v", e.Handle)
}

// Unwrap returns ErrUnknownFont.
func (e *UnknownFontError) Unwrap() error { return ErrUnknownFont }

// UnknownGlyphError is returned when a codepoint is read from a cache
// before it was ensured.
type UnknownGlyphError struct {
	Rune rune
}

func (e *UnknownGlyphError) Error() string {
	return fmt.Sprintf("text: glyph %U not cached", e.Rune)
}

// Unwrap returns ErrUnknownGlyph.
func (e *UnknownGlyphError) Unwrap() error { return ErrUnknownGlyph }
