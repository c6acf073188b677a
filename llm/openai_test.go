package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *OpenAIGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewOpenAIGeneratorWithConfig(cfg, "gpt-4o-mini")
}

func TestOpenAIGeneratorSendsPromptPair(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Rainfall is trending well below normal.  "}, "finish_reason": "stop"}]
		}`))
	})

	msg, err := gen.Generate(context.Background(), Request{
		System: "You are a meteorologist advising county planners.",
		User:   "Summarize: anomaly -30%, risk high.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rainfall is trending well below normal.", msg)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "user", second["role"])
	assert.Contains(t, second["content"], "anomaly -30%")
}

func TestOpenAIGeneratorWrapsAPIError(t *testing.T) {
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "requests"}}`))
	})

	_, err := gen.Generate(context.Background(), Request{User: "anything"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai chat completion error")
}

func TestOpenAIGeneratorRejectsEmptyChoices(t *testing.T) {
	gen := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	})

	_, err := gen.Generate(context.Background(), Request{User: "anything"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestTemplateGeneratorIsDeterministic(t *testing.T) {
	gen := TemplateGenerator{}

	first, err := gen.Generate(context.Background(), Request{
		User:    "long prompt body",
		Summary: "Rainfall 30% below baseline; extreme weather risk high.",
	})
	require.NoError(t, err)
	second, _ := gen.Generate(context.Background(), Request{
		User:    "long prompt body",
		Summary: "Rainfall 30% below baseline; extreme weather risk high.",
	})
	assert.Equal(t, first, second)
	assert.Equal(t, "Rainfall 30% below baseline; extreme weather risk high.", first)
}

func TestTemplateGeneratorFallsBackToUserPrompt(t *testing.T) {
	gen := TemplateGenerator{}
	msg, err := gen.Generate(context.Background(), Request{User: " context only "})
	require.NoError(t, err)
	assert.Equal(t, "context only", msg)
}
