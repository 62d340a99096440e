package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/gitai/internal/ai"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/models"
)

func newTestBackend(t *testing.T, status int, body string, captured *map[string]any) *Backend {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(func() {
		srv.Close()
		assert.Equal(t, int32(1), calls.Load(), "exactly one request per turn")
	})

	backend, err := NewBackend("sk-ant-test", "claude-sonnet-4-5", option.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return backend
}

func TestBackend_Complete_Text(t *testing.T) {
	var captured map[string]any
	backend := newTestBackend(t, http.StatusOK, `{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"model": "claude-sonnet-4-5",
		"content": [{"type": "text", "text": "feat: add login"}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 30, "output_tokens": 6}
	}`, &captured)

	completion, err := backend.Complete(context.Background(), models.ChatRequest{
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: "you write commits"},
			{Role: models.RoleUser, Content: "write a commit"},
			{Role: models.RoleAssistant, Content: "feat: x"},
			{Role: models.RoleUser, Content: "shorter"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "feat: add login", completion.Text)
	assert.Nil(t, completion.Call)
	assert.Equal(t, &models.TokenUsage{InputTokens: 30, OutputTokens: 6, TotalTokens: 36}, completion.Usage)

	assert.Equal(t, "claude-sonnet-4-5", captured["model"])
	system, ok := captured["system"].([]any)
	require.True(t, ok)
	require.Len(t, system, 1)
	assert.Equal(t, "you write commits", system[0].(map[string]any)["text"])

	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 3, "the system message is not sent as a turn")
	assert.Equal(t, "user", messages[0].(map[string]any)["role"])
	assert.Equal(t, "assistant", messages[1].(map[string]any)["role"])
	assert.Equal(t, "user", messages[2].(map[string]any)["role"])
	assert.NotContains(t, captured, "tools")
}

func TestBackend_Complete_ToolUse(t *testing.T) {
	var captured map[string]any
	backend := newTestBackend(t, http.StatusOK, `{
		"id": "msg_2",
		"type": "message",
		"role": "assistant",
		"model": "claude-sonnet-4-5",
		"content": [
			{"type": "text", "text": "I found some problems."},
			{"type": "tool_use", "id": "toolu_1", "name": "suggest_code_improvements",
			 "input": {"improvements": [{"severity": "low", "code": "x", "reason": "y"}]}}
		],
		"stop_reason": "tool_use",
		"usage": {"input_tokens": 40, "output_tokens": 20}
	}`, &captured)

	completion, err := backend.Complete(context.Background(), models.ChatRequest{
		Messages:  []models.Message{{Role: models.RoleUser, Content: "review"}},
		Functions: []models.FunctionSpec{ai.ImprovementsFunction()},
	})

	require.NoError(t, err)
	require.NotNil(t, completion.Call)
	assert.Equal(t, "suggest_code_improvements", completion.Call.Name)
	assert.JSONEq(t, `{"improvements": [{"severity": "low", "code": "x", "reason": "y"}]}`, completion.Call.Arguments)

	tools, ok := captured["tools"].([]any)
	require.True(t, ok)
	require.Len(t, tools, 1)
	tool := tools[0].(map[string]any)
	assert.Equal(t, "suggest_code_improvements", tool["name"])
	schema := tool["input_schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"improvements"}, schema["required"])
	assert.Equal(t, "auto", captured["tool_choice"].(map[string]any)["type"])
}

func TestBackend_Complete_APIError(t *testing.T) {
	backend := newTestBackend(t, http.StatusUnauthorized,
		`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`, nil)

	_, err := backend.Complete(context.Background(), models.ChatRequest{
		Messages: []models.Message{{Role: models.RoleUser, Content: "hi"}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrBackendUnavailable))
	var appErr *domainErrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.Context["status"])
	assert.Contains(t, appErr.Suggestion, "ANTHROPIC_API_KEY")
}

func TestNewBackend_MissingKey(t *testing.T) {
	_, err := NewBackend("", "claude-sonnet-4-5")

	assert.True(t, errors.Is(err, domainErrors.ErrCredentialMissing))
}

func TestToJSONSchema(t *testing.T) {
	schema := toJSONSchema(ai.ImprovementsFunction().Parameters.Properties["improvements"])

	assert.Equal(t, "array", schema["type"])
	items := schema["items"].(map[string]any)
	assert.Equal(t, []string{"severity", "code", "reason"}, items["required"])
	severity := items["properties"].(map[string]any)["severity"].(map[string]any)
	assert.Equal(t, []string{"high", "medium", "low"}, severity["enum"])
}

func TestFactory(t *testing.T) {
	backend, err := Factory{}.CreateBackend(context.Background(), "sk-ant-test", "claude-haiku-4-5")

	require.NoError(t, err)
	assert.Equal(t, "anthropic", backend.Name())
	assert.Equal(t, "claude-haiku-4-5", backend.Model())
}
