package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-receptionist/internal/domain/dto"
	"ai-receptionist/internal/infra/logger"

	"github.com/stretchr/testify/require"
)

func TestCreateCompletionSendsRequestAndReadsFirstChoice(t *testing.T) {
	var gotReq dto.ChatCompletionRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"Hello there."}}]}`))
	}))
	defer server.Close()

	openaiClient := NewOpenAIClient(server.Client(), "sk-test", "gpt-3.5-turbo", logger.NewLogger(context.Background(), false))
	openaiClient.baseURL = server.URL

	reply, err := openaiClient.CreateCompletion(context.Background(), []dto.ChatMessage{
		{Role: dto.RoleUser, Content: "hi"},
	}, dto.CompletionOptions{MaxTokens: 150, Temperature: 0.7})

	require.NoError(t, err)
	require.Equal(t, "Hello there.", reply)
	require.Equal(t, "Bearer sk-test", gotAuth)
	require.Equal(t, "gpt-3.5-turbo", gotReq.Model)
	require.Equal(t, 150, gotReq.MaxTokens)
	require.InDelta(t, 0.7, gotReq.Temperature, 1e-9)
}

func TestCreateCompletionErrorsWithoutAPIKey(t *testing.T) {
	openaiClient := NewOpenAIClient(http.DefaultClient, "", "gpt-3.5-turbo", logger.NewLogger(context.Background(), false))

	_, err := openaiClient.CreateCompletion(context.Background(), nil, dto.CompletionOptions{})
	require.Error(t, err)
}

func TestCreateCompletionErrorsOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	openaiClient := NewOpenAIClient(server.Client(), "sk-test", "gpt-3.5-turbo", logger.NewLogger(context.Background(), false))
	openaiClient.baseURL = server.URL

	_, err := openaiClient.CreateCompletion(context.Background(), nil, dto.CompletionOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestCreateCompletionErrorsOnEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	openaiClient := NewOpenAIClient(server.Client(), "sk-test", "gpt-3.5-turbo", logger.NewLogger(context.Background(), false))
	openaiClient.baseURL = server.URL

	_, err := openaiClient.CreateCompletion(context.Background(), nil, dto.CompletionOptions{})
	require.Error(t, err)
}
