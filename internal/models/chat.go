package models

// Schema is the subset of JSON Schema needed to describe function parameters.
// Backends translate it into their own SDK types.
type Schema struct {
	Type        string
	Description string
	Properties  map[string]*Schema
	Items       *Schema
	Required    []string
	Enum        []string
}

// FunctionSpec advertises a function the model may call instead of replying
// with text.
type FunctionSpec struct {
	Name        string
	Description string
	Parameters  *Schema
}

type (
	// ChatRequest is one turn sent to a backend: the whole history plus the
	// functions the model is allowed to call.
	ChatRequest struct {
		Messages  []Message
		Functions []FunctionSpec
	}

	// FunctionCall is a model's invocation of an advertised function.
	FunctionCall struct {
		Name      string
		Arguments string
	}

	// Completion is the raw reply of a backend. Call is set when the model
	// invoked a function, Text otherwise.
	Completion struct {
		Text  string
		Call  *FunctionCall
		Usage *TokenUsage
	}
)
