package config

type AI string

const (
	AIOpenAI    AI = "openai"
	AIGemini    AI = "gemini"
	AIAnthropic AI = "anthropic"
)

type Model string

const (
	ModelGPT4       Model = "gpt-4"
	ModelGPTV4o     Model = "gpt-4o"
	ModelGPTV4oMini Model = "gpt-4o-mini"

	ModelGeminiV15Flash Model = "gemini-1.5-flash"
	ModelGeminiV15Pro   Model = "gemini-1.5-pro"

	ModelClaudeSonnet45 Model = "claude-sonnet-4-5"
	ModelClaudeHaiku45  Model = "claude-haiku-4-5"
)

// Keys of the untitled section of the credential file.
const (
	KeyOpenAIAPIKey        = "OPENAI_API_KEY"
	KeyGeminiAPIKey        = "GEMINI_API_KEY"
	KeyAnthropicAPIKey     = "ANTHROPIC_API_KEY"
	KeyGitHubToken         = "GITHUB_TOKEN"
	KeyProvider            = "PROVIDER"
	KeyModel               = "MODEL"
	KeyWrapWidth           = "WRAP_WIDTH"
	KeyExitOnEmpty         = "EXIT_ON_EMPTY"
	KeySuggestImprovements = "SUGGEST_IMPROVEMENTS"
	KeyLanguage            = "LANGUAGE"
)

func SupportedAIs() []AI {
	return []AI{
		AIOpenAI,
		AIGemini,
		AIAnthropic,
	}
}

func IsSupportedAI(ai AI) bool {
	for _, supported := range SupportedAIs() {
		if supported == ai {
			return true
		}
	}
	return false
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIOpenAI:
		return []Model{ModelGPT4, ModelGPTV4o, ModelGPTV4oMini}
	case AIGemini:
		return []Model{ModelGeminiV15Flash, ModelGeminiV15Pro}
	case AIAnthropic:
		return []Model{ModelClaudeSonnet45, ModelClaudeHaiku45}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

// CredentialKeyForAI returns the credential file key holding the API key of ai.
func CredentialKeyForAI(ai AI) string {
	switch ai {
	case AIGemini:
		return KeyGeminiAPIKey
	case AIAnthropic:
		return KeyAnthropicAPIKey
	default:
		return KeyOpenAIAPIKey
	}
}
