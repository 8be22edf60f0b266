package translate

import (
	"context"

	"movie-reviews-api/internal/adapters/retry"
)

// RetryingTranslator retries transient failures of the wrapped translator
type RetryingTranslator struct {
	next   Translator
	config *retry.Config
}

// NewRetryingTranslator wraps next with bounded exponential backoff
func NewRetryingTranslator(next Translator, config *retry.Config) *RetryingTranslator {
	if config == nil {
		config = retry.DefaultConfig()
	}
	return &RetryingTranslator{next: next, config: config}
}

// Translate implements Translator
func (t *RetryingTranslator) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	var result *Result
	err := retry.Do(ctx, t.config, func(ctx context.Context) error {
		var err error
		result, err = t.next.Translate(ctx, text, source, target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
