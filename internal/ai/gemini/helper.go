package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/thomas-vilte/gitai/internal/models"
)

// extractUsage extracts usage metadata from the Gemini response
func extractUsage(resp *genai.GenerateContentResponse) *models.TokenUsage {
	if resp == nil || resp.UsageMetadata == nil {
		return nil
	}
	return &models.TokenUsage{
		InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
		OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
	}
}

// toCompletion joins the text parts of the first candidate and keeps its
// first function call, with the arguments encoded back to JSON.
func toCompletion(resp *genai.GenerateContentResponse) (models.Completion, error) {
	completion := models.Completion{Usage: extractUsage(resp)}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return completion, nil
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			completion.Text += string(p)
		case genai.FunctionCall:
			if err := setCall(&completion, p); err != nil {
				return models.Completion{}, err
			}
		case *genai.FunctionCall:
			if err := setCall(&completion, *p); err != nil {
				return models.Completion{}, err
			}
		}
	}
	return completion, nil
}

func setCall(completion *models.Completion, call genai.FunctionCall) error {
	if completion.Call != nil {
		return nil
	}
	args, err := json.Marshal(call.Args)
	if err != nil {
		return fmt.Errorf("error encoding arguments of %s: %w", call.Name, err)
	}
	completion.Call = &models.FunctionCall{Name: call.Name, Arguments: string(args)}
	return nil
}

// toSchema maps the JSON Schema type names onto the genai enum.
func toSchema(s *models.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	schema := &genai.Schema{
		Type:        toType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       toSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toSchema(prop)
		}
	}
	return schema
}

func toType(name string) genai.Type {
	switch name {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}

func toTools(functions []models.FunctionSpec) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, fn := range functions {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        fn.Name,
			Description: fn.Description,
			Parameters:  toSchema(fn.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// splitHistory separates the system prompt and the earlier turns from the
// last user message, which is what a chat session sends.
func splitHistory(messages []models.Message) (system string, history []*genai.Content, last string, err error) {
	if len(messages) == 0 || messages[len(messages)-1].Role != models.RoleUser {
		return "", nil, "", fmt.Errorf("the last message must come from the user")
	}

	for _, m := range messages[:len(messages)-1] {
		switch m.Role {
		case models.RoleSystem:
			if system != "" {
				system += "\n"
			}
			system += m.Content
		case models.RoleAssistant:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(m.Content)}})
		default:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(m.Content)}})
		}
	}
	return system, history, messages[len(messages)-1].Content, nil
}
