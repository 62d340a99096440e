package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/models"
	"github.com/thomas-vilte/gitai/internal/ports"
)

const defaultMaxTokens = 2048

var _ ports.ChatBackend = (*Backend)(nil)

// Backend sends chat turns to the Anthropic messages API.
type Backend struct {
	client sdk.Client
	model  string
}

// NewBackend builds a backend for apiKey. The SDK retries are disabled so a
// turn is exactly one request.
func NewBackend(apiKey, model string, opts ...option.RequestOption) (*Backend, error) {
	if apiKey == "" {
		return nil, domainErrors.ErrCredentialMissing.WithContext("key", config.KeyAnthropicAPIKey)
	}
	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	return &Backend{
		client: sdk.NewClient(opts...),
		model:  model,
	}, nil
}

func (b *Backend) Name() string  { return string(config.AIAnthropic) }
func (b *Backend) Model() string { return b.model }

func (b *Backend) Complete(ctx context.Context, req models.ChatRequest) (models.Completion, error) {
	system, messages := toMessages(req.Messages)

	params := sdk.MessageNewParams{
		Model:     sdk.Model(b.model),
		MaxTokens: defaultMaxTokens,
		System:    system,
		Messages:  messages,
	}
	if len(req.Functions) > 0 {
		params.Tools = toTools(req.Functions)
		params.ToolChoice = sdk.ToolChoiceUnionParam{OfAuto: &sdk.ToolChoiceAutoParam{}}
	}

	resp, err := b.client.Messages.New(ctx, params)
	if err != nil {
		logger.Debug(ctx, "anthropic API call failed", "error", err, "model", b.model)
		return models.Completion{}, wrapError(err)
	}

	completion := models.Completion{
		Usage: &models.TokenUsage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
			TotalTokens:  int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		},
	}

	for _, block := range resp.Content {
		switch block.Type {
		case "tool_use":
			if completion.Call == nil {
				completion.Call = &models.FunctionCall{
					Name:      block.Name,
					Arguments: string(block.Input),
				}
			}
		case "text":
			completion.Text += block.Text
		}
	}

	return completion, nil
}

func wrapError(err error) error {
	appErr := domainErrors.ErrBackendUnavailable.WithError(err).WithContext("provider", string(config.AIAnthropic))

	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		appErr = appErr.WithContext("status", apiErr.StatusCode)
		if apiErr.StatusCode == http.StatusUnauthorized {
			return appErr.WithSuggestion(fmt.Sprintf("Check %s in your git_ai.ini file or run: git-ai init --provider anthropic", config.KeyAnthropicAPIKey))
		}
	}
	return appErr
}

// toMessages moves system messages to the system prompt, the messages API
// has no system role.
func toMessages(messages []models.Message) ([]sdk.TextBlockParam, []sdk.MessageParam) {
	var system []sdk.TextBlockParam
	params := make([]sdk.MessageParam, 0, len(messages))
	for _, m := range messages {
		block := sdk.NewTextBlock(m.Content)
		switch m.Role {
		case models.RoleSystem:
			system = append(system, sdk.TextBlockParam{Text: m.Content})
		case models.RoleAssistant:
			params = append(params, sdk.NewAssistantMessage(block))
		default:
			params = append(params, sdk.NewUserMessage(block))
		}
	}
	return system, params
}

func toTools(functions []models.FunctionSpec) []sdk.ToolUnionParam {
	tools := make([]sdk.ToolUnionParam, 0, len(functions))
	for _, fn := range functions {
		schema := sdk.ToolInputSchemaParam{}
		if fn.Parameters != nil {
			schema.Properties = toProperties(fn.Parameters.Properties)
			schema.Required = fn.Parameters.Required
		}
		tools = append(tools, sdk.ToolUnionParam{
			OfTool: &sdk.ToolParam{
				Name:        fn.Name,
				Description: sdk.String(fn.Description),
				InputSchema: schema,
			},
		})
	}
	return tools
}

func toProperties(props map[string]*models.Schema) map[string]any {
	out := make(map[string]any, len(props))
	for name, prop := range props {
		out[name] = toJSONSchema(prop)
	}
	return out
}

func toJSONSchema(s *models.Schema) map[string]any {
	out := map[string]any{"type": s.Type}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if len(s.Properties) > 0 {
		out["properties"] = toProperties(s.Properties)
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	if s.Items != nil {
		out["items"] = toJSONSchema(s.Items)
	}
	return out
}
