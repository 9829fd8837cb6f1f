package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService is a direct-translation provider backed by the Cloud
// Translation API. It returns a single translated string and ignores Mode.
type GoogleService struct {
	client *translate.Client
}

// NewGoogle builds the API client once, up front, so credential problems
// surface at pipeline construction instead of mid-document.
func NewGoogle(ctx context.Context, cfg Config) (*GoogleService, error) {
	opts := []option.ClientOption{}
	if cfg.GoogleCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentials))
	}
	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: failed to create client: %w", err)
	}
	return &GoogleService{client: client}, nil
}

func (s *GoogleService) Name() string { return "google" }

func (s *GoogleService) DualOutput() bool { return false }

func (s *GoogleService) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if strings.TrimSpace(req.Text) == "" {
		result.Literal = req.Text
		return result, nil
	}

	targetTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", req.TargetLang, err)
	}

	translations, err := s.client.Translate(ctx, []string{req.Text}, targetTag, nil)
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return nil, fmt.Errorf("no translation returned")
	}

	result.Literal = translations[0].Text
	return result, nil
}

// Close releases the underlying API client.
func (s *GoogleService) Close() error {
	return s.client.Close()
}
