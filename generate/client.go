package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Providers understood by NewGenerator.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderNone   = "none"
)

const (
	defaultTemperature = 0.7
	defaultTimeout     = 60 * time.Second
	chatPath           = "/v1/chat/completions"
	maxErrorBody       = 2048
)

// Config selects and configures a provider.
type Config struct {
	Provider string        `yaml:"provider"`
	BaseURL  string        `yaml:"base_url"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
	// Temperature is sent as-is when set, so 0 requests deterministic output.
	// Nil selects the default of 0.7.
	Temperature *float64 `yaml:"temperature"`
}

// DefaultURL returns the default base URL for a provider.
func DefaultURL(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "https://api.openai.com"
	case ProviderOllama:
		return "http://localhost:11434"
	default:
		return ""
	}
}

// DefaultModel returns the default model name for a provider.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-3.5-turbo"
	case ProviderOllama:
		return "llama3.2"
	default:
		return ""
	}
}

// NewGenerator creates a Generator for cfg.Provider.
// Supported providers: "openai", "ollama" and "none".
func NewGenerator(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case ProviderNone, "":
		return Disabled{}, nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("generate: openai provider requires an api key")
		}
		return NewClient(cfg), nil
	case ProviderOllama:
		return NewClient(cfg), nil
	default:
		return nil, fmt.Errorf("generate: unknown provider %q (supported: openai, ollama, none)", cfg.Provider)
	}
}

// Client talks to an OpenAI-compatible chat completions endpoint. Ollama
// serves the same API, so one client covers both providers.
type Client struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	httpClient  *http.Client
}

// NewClient creates a Client, filling provider defaults for empty fields.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultURL(cfg.Provider)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	temperature := defaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends one chat completion request. Transport errors, non-2xx
// responses, undecodable bodies and empty content are all *Error values.
func (c *Client) Generate(ctx context.Context, r Request) (string, error) {
	r, err := r.Normalize()
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: Prompt(r)},
		},
		Temperature: c.temperature,
		MaxTokens:   r.Length.MaxTokens(),
	})
	if err != nil {
		return "", &Error{Op: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &Error{
			Op:         "response",
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(msg))),
		}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &Error{Op: "decode", StatusCode: resp.StatusCode, Err: err}
	}
	if len(out.Choices) == 0 {
		return "", &Error{Op: "empty", StatusCode: resp.StatusCode, Err: errors.New("no choices returned")}
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", &Error{Op: "empty", StatusCode: resp.StatusCode, Err: errors.New("empty content")}
	}
	return content, nil
}
