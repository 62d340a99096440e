package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/models"
	"github.com/thomas-vilte/gitai/internal/ports"
)

var _ ports.ChatBackend = (*Backend)(nil)

// Backend sends chat turns to the OpenAI chat completions API.
type Backend struct {
	client *goopenai.Client
	model  string
}

// NewBackend builds a backend for apiKey. baseURL overrides the API endpoint
// when not empty.
func NewBackend(apiKey, model, baseURL string) (*Backend, error) {
	if apiKey == "" {
		return nil, domainErrors.ErrCredentialMissing.WithContext("key", config.KeyOpenAIAPIKey)
	}
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Backend{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

func (b *Backend) Name() string  { return string(config.AIOpenAI) }
func (b *Backend) Model() string { return b.model }

func (b *Backend) Complete(ctx context.Context, req models.ChatRequest) (models.Completion, error) {
	log := logger.FromContext(ctx)

	request := goopenai.ChatCompletionRequest{
		Model:    b.model,
		Messages: toMessages(req.Messages),
	}
	if len(req.Functions) > 0 {
		request.Tools = toTools(req.Functions)
		request.ToolChoice = "auto"
	}

	resp, err := b.client.CreateChatCompletion(ctx, request)
	if err != nil {
		log.Debug("openai API call failed", "error", err, "model", b.model)
		return models.Completion{}, wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return models.Completion{Usage: toUsage(resp.Usage)}, nil
	}

	msg := resp.Choices[0].Message
	completion := models.Completion{
		Text:  msg.Content,
		Usage: toUsage(resp.Usage),
	}

	switch {
	case len(msg.ToolCalls) > 0:
		completion.Call = &models.FunctionCall{
			Name:      msg.ToolCalls[0].Function.Name,
			Arguments: msg.ToolCalls[0].Function.Arguments,
		}
	case msg.FunctionCall != nil:
		completion.Call = &models.FunctionCall{
			Name:      msg.FunctionCall.Name,
			Arguments: msg.FunctionCall.Arguments,
		}
	}

	return completion, nil
}

func wrapError(err error) error {
	appErr := domainErrors.ErrBackendUnavailable.WithError(err).WithContext("provider", string(config.AIOpenAI))

	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		appErr = appErr.WithContext("status", apiErr.HTTPStatusCode)
		if apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return appErr.WithSuggestion(fmt.Sprintf("Check %s in your git_ai.ini file or run: git-ai init", config.KeyOpenAIAPIKey))
		}
	}
	return appErr
}

func toMessages(messages []models.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := goopenai.ChatMessageRoleUser
		switch m.Role {
		case models.RoleSystem:
			role = goopenai.ChatMessageRoleSystem
		case models.RoleAssistant:
			role = goopenai.ChatMessageRoleAssistant
		}
		out = append(out, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func toTools(functions []models.FunctionSpec) []goopenai.Tool {
	tools := make([]goopenai.Tool, 0, len(functions))
	for _, fn := range functions {
		def := &goopenai.FunctionDefinition{
			Name:        fn.Name,
			Description: fn.Description,
		}
		if fn.Parameters != nil {
			params := toDefinition(fn.Parameters)
			def.Parameters = &params
		}
		tools = append(tools, goopenai.Tool{
			Type:     goopenai.ToolTypeFunction,
			Function: def,
		})
	}
	return tools
}

func toDefinition(s *models.Schema) jsonschema.Definition {
	def := jsonschema.Definition{
		Type:        jsonschema.DataType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		def.Properties = make(map[string]jsonschema.Definition, len(s.Properties))
		for name, prop := range s.Properties {
			def.Properties[name] = toDefinition(prop)
		}
	}
	if s.Items != nil {
		items := toDefinition(s.Items)
		def.Items = &items
	}
	return def
}

func toUsage(u goopenai.Usage) *models.TokenUsage {
	if u.TotalTokens == 0 {
		return nil
	}
	return &models.TokenUsage{
		InputTokens:  u.PromptTokens,
		OutputTokens: u.CompletionTokens,
		TotalTokens:  u.TotalTokens,
	}
}
