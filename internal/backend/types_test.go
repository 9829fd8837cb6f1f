package backend

import (
	"context"
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"literal", "poetic", "both"} {
		mode, err := ParseMode(valid)
		if err != nil {
			t.Errorf("ParseMode(%q): unexpected error: %v", valid, err)
		}
		if string(mode) != valid {
			t.Errorf("ParseMode(%q) = %q", valid, mode)
		}
	}

	for _, invalid := range []string{"", "BOTH", "verbatim"} {
		if _, err := ParseMode(invalid); err == nil {
			t.Errorf("ParseMode(%q): expected error", invalid)
		}
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), "babelfish", Config{}, nil)
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNew_OpenAIWithoutKey(t *testing.T) {
	_, err := New(context.Background(), "openai", Config{}, nil)
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestNew_DeepLWithoutKey(t *testing.T) {
	_, err := New(context.Background(), "deepl", Config{}, nil)
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
