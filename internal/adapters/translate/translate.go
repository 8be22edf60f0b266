// Package translate wraps the machine translation service used for reviews.
package translate

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the service rejects the text or language pair
	ErrInvalidInput = errors.New("invalid translation input")

	// ErrUnavailable is returned when the service cannot be reached
	ErrUnavailable = errors.New("translation service unavailable")
)

// Result is the outcome of one translation
type Result struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
	TargetLanguage string `json:"targetLanguage"`
}

// Translator translates text between languages
type Translator interface {
	// Translate converts text from source to target. source may be "auto"
	// when the backing service supports detection.
	Translate(ctx context.Context, text, source, target string) (*Result, error)
}

// Error reports a failed translation call
type Error struct {
	Source string
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("translate %s->%s: %v", e.Source, e.Target, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvalidInput reports whether err was caused by unusable input
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
