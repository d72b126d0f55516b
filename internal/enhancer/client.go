package enhancer

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

// Supported providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

const (
	anthropicAPIURL     = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"
	openAIAPIURL        = "https://api.openai.com/v1/chat/completions"

	defaultAnthropicModel = "claude-3-5-sonnet-latest"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultMaxTokens      = 900
	defaultTemperature    = 0.6
	defaultTimeout        = 30 * time.Second
)

// Client sends a single-turn prompt to an LLM provider and returns the
// text of the reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// ClientConfig holds provider credentials and sampling options.
type ClientConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func (c *ClientConfig) applyDefaults(defaultModel string) {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = defaultTemperature
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// NewClient builds a client for the named provider.
func NewClient(provider string, config ClientConfig) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderAnthropic:
		return NewAnthropicClient(config), nil
	case ProviderOpenAI:
		return NewOpenAIClient(config), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %q", provider)
	}
}

// AnthropicClient talks to the Anthropic messages API.
type AnthropicClient struct {
	config     ClientConfig
	httpClient *http.Client
	baseURL    string
}

// NewAnthropicClient creates a client for the Anthropic messages API.
func NewAnthropicClient(config ClientConfig) *AnthropicClient {
	config.applyDefaults(defaultAnthropicModel)
	return &AnthropicClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		baseURL:    anthropicAPIURL,
	}
}

func (c *AnthropicClient) Model() string { return c.config.Model }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends a single user message and concatenates the text
// blocks of the reply.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := anthropicRequest{
		Model:       c.config.Model,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	}

	body, err := postJSON(ctx, c.httpClient, c.baseURL, req, map[string]string{
		"x-api-key":         c.config.APIKey,
		"anthropic-version": anthropicAPIVersion,
	})
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", resp.Error.Type, resp.Error.Message)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response from API")
	}
	return text, nil
}

// OpenAIClient talks to the OpenAI chat completions API.
type OpenAIClient struct {
	config     ClientConfig
	httpClient *http.Client
	baseURL    string
}

// NewOpenAIClient creates a client for the OpenAI chat completions API.
func NewOpenAIClient(config ClientConfig) *OpenAIClient {
	config.applyDefaults(defaultOpenAIModel)
	return &OpenAIClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		baseURL:    openAIAPIURL,
	}
}

func (c *OpenAIClient) Model() string { return c.config.Model }

type openAIRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := openAIRequest{
		Model:       c.config.Model,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
		Messages:    []message{{Role: "user", Content: prompt}},
	}

	body, err := postJSON(ctx, c.httpClient, c.baseURL, req, map[string]string{
		"Authorization": "Bearer " + c.config.APIKey,
	})
	if err != nil {
		return "", err
	}

	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s - %s", resp.Error.Type, resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response from API")
	}
	return text, nil
}

func postJSON(ctx context.Context, client *http.Client, url string, payload any, headers map[string]string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
