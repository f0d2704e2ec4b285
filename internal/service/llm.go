package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultLLMAPIURL is the chat completions endpoint used when none is configured
	DefaultLLMAPIURL = "https://api.openai.com/v1/chat/completions"
	// DefaultLLMModel is the model used when none is configured
	DefaultLLMModel = "gpt-4o-mini"

	completionTemperature = 0.7
	completionMaxTokens   = 500
)

// Completer sends a prompt to a text generation backend and returns the reply
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completions request
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMConfig configures LLMService
type LLMConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// LLMService talks to an OpenAI compatible chat completions API
type LLMService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	logger *zap.Logger
}

var _ Completer = (*LLMService)(nil)

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg LLMConfig, logger *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("LLM API key must be set")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultLLMAPIURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &LLMService{
		apiKey: cfg.APIKey,
		apiURL: cfg.APIURL,
		model:  cfg.Model,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

// Complete sends prompt as a single user message. Every failure is a RemoteCallError.
func (s *LLMService) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: recipeSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &RemoteCallError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &RemoteCallError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return "", &RemoteCallError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RemoteCallError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	s.logger.Debug("completion response",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode != http.StatusOK {
		return "", &RemoteCallError{Err: fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))}
	}

	var result completionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &RemoteCallError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if len(result.Choices) == 0 {
		return "", &RemoteCallError{Err: fmt.Errorf("no response from API")}
	}

	return result.Choices[0].Message.Content, nil
}
