package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeGit           ErrorType = "GIT"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same kind of AppError, so a sentinel still
// matches after WithError/WithContext produced a copy of it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Git errors
var (
	ErrExternalTool = NewAppError(TypeGit, "git command failed", nil).
			WithSuggestion("Make sure git is installed and you are inside a repository: git status")

	ErrNothingToCommit = NewAppError(TypeGit, "Nothing to be committed", nil).
				WithSuggestion("Make some changes or stage them first: git add <files>")

	ErrGetRepoURL = NewAppError(TypeGit, "Failed to get repository URL", nil).
			WithSuggestion("Add a remote: git remote add origin <url>")

	ErrExtractRepoInfo = NewAppError(TypeGit, "Failed to extract repository info", nil)

	ErrNoBranch = NewAppError(TypeGit, "No branch detected", nil).
			WithSuggestion("Create a branch first: git checkout -b <branch-name>")
)

// Configuration errors
var (
	ErrCredentialMissing = NewAppError(TypeConfiguration, "API key is missing", nil).
				WithSuggestion("Run: git-ai init")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "Configuration is invalid", nil).
				WithSuggestion("Check the settings in your git_ai.ini file")

	ErrUnknownProvider = NewAppError(TypeConfiguration, "AI provider not supported", nil).
				WithSuggestion("Supported providers: openai, gemini, anthropic")
)

// AI errors
var (
	ErrBackendUnavailable = NewAppError(TypeAI, "AI backend request failed", nil).
				WithSuggestion("Check your network connection and API key, then try again")

	ErrEmptyResponse = NewAppError(TypeAI, "AI backend returned neither text nor a function call", nil).
				WithSuggestion("This is likely a temporary issue, please try again")

	ErrMalformedStructuredResponse = NewAppError(TypeAI, "malformed structured response", nil).
					WithSuggestion("The model called a function with invalid arguments, please try again")

	ErrSchemaViolation = NewAppError(TypeAI, "improvement payload does not match the schema", nil)

	ErrInvalidSeverity = NewAppError(TypeAI, "unexpected severity value", nil)
)

// VCS errors
var (
	ErrVCSNotSupported = NewAppError(TypeVCS, "VCS provider not supported", nil).
				WithSuggestion("Currently only GitHub is supported")

	ErrPublishPR = NewAppError(TypeVCS, "failed to create pull request", nil).
			WithSuggestion("Check your GITHUB_TOKEN has 'repo' permissions and the branch is pushed")
)
