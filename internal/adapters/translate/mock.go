package translate

import (
	"context"
	"fmt"
	"sync"
)

// MockTranslator is an in-process Translator for local runs and tests. By
// default it prefixes the text with the target language code.
type MockTranslator struct {
	mu    sync.Mutex
	calls int

	// TranslateFunc overrides the default behavior when set
	TranslateFunc func(ctx context.Context, text, source, target string) (*Result, error)
}

// NewMockTranslator creates a new MockTranslator
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{}
}

// Translate implements Translator
func (m *MockTranslator) Translate(ctx context.Context, text, source, target string) (*Result, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, source, target)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Result{
		Text:           fmt.Sprintf("[%s] %s", target, text),
		SourceLanguage: source,
		TargetLanguage: target,
	}, nil
}

// Calls returns how many times Translate was invoked
func (m *MockTranslator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
