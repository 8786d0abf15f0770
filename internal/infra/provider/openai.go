package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"ai-receptionist/internal/domain/dto"
	"ai-receptionist/internal/infra/logger"
)

const defaultCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAIClient issues chat completion requests. It is constructed once
// and handed to the escalation and responder services, so tests can
// substitute a fake behind Iservices.ICompletionClient.
type OpenAIClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	logger     *logger.Logger
}

func NewOpenAIClient(httpClient *http.Client, apiKey, model string, log *logger.Logger) *OpenAIClient {
	return &OpenAIClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultCompletionsURL,
		logger:     log,
	}
}

// CreateCompletion performs a single chat completion attempt. No retry:
// callers degrade to their fixed fallbacks on error.
func (c *OpenAIClient) CreateCompletion(ctx context.Context, messages []dto.ChatMessage, opts dto.CompletionOptions) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY is not set")
	}

	payload, err := json.Marshal(dto.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(fmt.Sprintf("Completion request failed: %v", err))
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error(fmt.Sprintf("Unexpected completion status %s: %s", resp.Status, string(body)))
		return "", fmt.Errorf("completion status %d: %s", resp.StatusCode, string(body))
	}

	var completion dto.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
