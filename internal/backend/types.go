// Package backend defines the translation provider contract and one
// implementation per supported provider.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMissingCredentials reports that a provider cannot be constructed
// because its credentials are absent. Construction fails fast instead of
// letting untranslated text pass through as output.
var ErrMissingCredentials = errors.New("missing credentials")

// Mode selects which translation styles a dual-output provider produces.
// Direct-translation providers ignore it entirely.
type Mode string

const (
	ModeLiteral Mode = "literal"
	ModePoetic  Mode = "poetic"
	ModeBoth    Mode = "both"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLiteral, ModePoetic, ModeBoth:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid mode %q (choose literal, poetic or both)", s)
}

// Request is a single-paragraph translation request.
type Request struct {
	Text       string
	TargetLang string
	Mode       Mode
}

// Result holds the translated text. Direct providers fill Literal only;
// dual-output providers fill both sides, minus whatever Mode filtered out.
type Result struct {
	Literal  string
	Poetic   string
	Latency  time.Duration
	Metadata map[string]string
}

// Backend is the uniform capability every provider implements.
type Backend interface {
	Name() string
	// DualOutput reports whether Translate can return both a literal and a
	// poetic rendering in one call.
	DualOutput() bool
	Translate(ctx context.Context, req Request) (*Result, error)
}

// Config carries provider credentials and tuning, assembled explicitly by
// the front end. There is no ambient credential state anywhere else.
type Config struct {
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string

	GoogleCredentials string

	DeepLKey     string
	DeepLBaseURL string

	Timeout time.Duration
}

// New constructs the Backend for the named provider. The provider is chosen
// exactly once, here; nothing downstream branches on provider identity.
func New(ctx context.Context, provider string, cfg Config, glossary map[string]string) (Backend, error) {
	switch provider {
	case "openai":
		return NewOpenAI(cfg, glossary)
	case "google":
		return NewGoogle(ctx, cfg)
	case "deepl":
		return NewDeepL(cfg)
	}
	return nil, fmt.Errorf("unknown provider %q (choose openai, google or deepl)", provider)
}
