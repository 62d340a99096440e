package gemini

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/thomas-vilte/gitai/internal/config"
	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
	"github.com/thomas-vilte/gitai/internal/logger"
	"github.com/thomas-vilte/gitai/internal/models"
	"github.com/thomas-vilte/gitai/internal/ports"
	"google.golang.org/api/option"
)

var _ ports.ChatBackend = (*Backend)(nil)

// Backend sends chat turns to the Gemini API through a chat session rebuilt
// from the history on every turn.
type Backend struct {
	client *genai.Client
	model  string
}

func NewBackend(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Backend, error) {
	if apiKey == "" {
		return nil, domainErrors.ErrCredentialMissing.WithContext("key", config.KeyGeminiAPIKey)
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}
	return &Backend{client: client, model: model}, nil
}

func (b *Backend) Name() string  { return string(config.AIGemini) }
func (b *Backend) Model() string { return b.model }

// Close releases the underlying client.
func (b *Backend) Close() error {
	return b.client.Close()
}

func (b *Backend) Complete(ctx context.Context, req models.ChatRequest) (models.Completion, error) {
	log := logger.FromContext(ctx)

	system, history, last, err := splitHistory(req.Messages)
	if err != nil {
		return models.Completion{}, domainErrors.NewAppError(domainErrors.TypeInternal, "invalid chat history", err)
	}

	model := b.client.GenerativeModel(b.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if len(req.Functions) > 0 {
		model.Tools = toTools(req.Functions)
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingAuto},
		}
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		log.Debug("gemini API call failed", "error", err, "model", b.model)
		return models.Completion{}, wrapError(err)
	}

	return toCompletion(resp)
}

func wrapError(err error) error {
	appErr := domainErrors.ErrBackendUnavailable.WithError(err).WithContext("provider", string(config.AIGemini))

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "api key") ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "permission denied") {
		return appErr.WithSuggestion("Check " + config.KeyGeminiAPIKey + " in your git_ai.ini file or run: git-ai init --provider gemini")
	}
	return appErr
}
