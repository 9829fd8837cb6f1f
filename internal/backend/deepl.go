package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultDeepLBaseURL = "https://api-free.deepl.com/v2"
	deepLTimeout        = 30 * time.Second
)

// DeepLService is a direct-translation provider backed by the DeepL REST
// API. It returns a single translated string and ignores Mode.
type DeepLService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewDeepL fails when no API key is configured.
func NewDeepL(cfg Config) (*DeepLService, error) {
	if cfg.DeepLKey == "" {
		return nil, fmt.Errorf("deepl: %w (set DEEPL_API_KEY)", ErrMissingCredentials)
	}
	baseURL := cfg.DeepLBaseURL
	if baseURL == "" {
		baseURL = defaultDeepLBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = deepLTimeout
	}
	return &DeepLService{
		apiKey:  cfg.DeepLKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (s *DeepLService) Name() string { return "deepl" }

func (s *DeepLService) DualOutput() bool { return false }

func (s *DeepLService) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if strings.TrimSpace(req.Text) == "" {
		result.Literal = req.Text
		return result, nil
	}

	deeplReq := map[string]interface{}{
		"text":        []string{req.Text},
		"target_lang": strings.ToUpper(req.TargetLang),
	}

	jsonData, err := json.Marshal(deeplReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/translate", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("DeepL-Auth-Key %s", s.apiKey))

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var deeplResp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&deeplResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(deeplResp.Translations) == 0 || deeplResp.Translations[0].Text == "" {
		return nil, fmt.Errorf("empty translation response")
	}

	result.Literal = deeplResp.Translations[0].Text
	return result, nil
}
