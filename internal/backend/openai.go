package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jenjoyx99/booktran/internal/postprocess"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o-mini"
	openAITimeout        = 120 * time.Second
)

// OpenAIService is the generative dual-output provider. One request yields
// both a literal and a poetic rendering, delimited by section markers.
type OpenAIService struct {
	apiKey   string
	baseURL  string
	model    string
	glossary map[string]string
	client   *http.Client
}

// NewOpenAI fails when no API key is configured.
func NewOpenAI(cfg Config, glossary map[string]string) (*OpenAIService, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("openai: %w (set OPENAI_API_KEY)", ErrMissingCredentials)
	}
	baseURL := cfg.OpenAIBaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	model := cfg.OpenAIModel
	if model == "" {
		model = defaultOpenAIModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = openAITimeout
	}
	return &OpenAIService{
		apiKey:   cfg.OpenAIKey,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		model:    model,
		glossary: glossary,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (s *OpenAIService) Name() string { return "openai" }

func (s *OpenAIService) DualOutput() bool { return true }

func (s *OpenAIService) Translate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	if strings.TrimSpace(req.Text) == "" {
		result.Literal = req.Text
		result.Poetic = req.Text
		return result, nil
	}

	chatReq := map[string]interface{}{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": buildDualPrompt(req.Text, req.TargetLang, s.glossary)},
		},
		"temperature": 0.7,
	}

	jsonData, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("API returned status %d: %v", resp.StatusCode, errResp)
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	sections := Split(postprocess.Clean(chatResp.Choices[0].Message.Content))
	result.Literal = sections.Literal
	result.Poetic = sections.Poetic

	// A single-sided mode blanks the other side; the caller skips blank
	// assignments, leaving the cloned source text in place.
	switch req.Mode {
	case ModeLiteral:
		result.Poetic = ""
	case ModePoetic:
		result.Literal = ""
	}

	result.Metadata = map[string]string{
		"model":             s.model,
		"prompt_tokens":     fmt.Sprintf("%d", chatResp.Usage.PromptTokens),
		"completion_tokens": fmt.Sprintf("%d", chatResp.Usage.CompletionTokens),
	}
	return result, nil
}

// buildDualPrompt instructs the model to answer with two delimited sections,
// optionally pinning glossary terminology.
func buildDualPrompt(text, targetLang string, glossary map[string]string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Translate the following passage from English into %s.\n\n", targetLang)
	sb.WriteString(literalMarker + "\n(close to the words)\n\n")
	sb.WriteString(poeticMarker + "\n(soulful, rhythmic, poetic, but faithful)\n\n")

	if len(glossary) > 0 {
		sb.WriteString("Terminology (use these exact translations):\n")
		for src, tgt := range glossary {
			fmt.Fprintf(&sb, "  %s -> %s\n", src, tgt)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Passage:\n%s", text)
	return sb.String()
}
