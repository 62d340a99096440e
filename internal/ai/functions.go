package ai

import "github.com/thomas-vilte/gitai/internal/models"

// ImprovementsFunctionName is the function the model may call instead of
// replying in text.
const ImprovementsFunctionName = "suggest_code_improvements"

// ImprovementsFunction describes suggest_code_improvements(improvements) where
// improvements is a list of {severity, code, reason}.
func ImprovementsFunction() models.FunctionSpec {
	return models.FunctionSpec{
		Name: ImprovementsFunctionName,
		Description: "Suggest improvements for the code in the given changes. " +
			"Call this instead of replying in text when the changes contain problems " +
			"that should be fixed before they are committed.",
		Parameters: &models.Schema{
			Type: "object",
			Properties: map[string]*models.Schema{
				"improvements": {
					Type:        "array",
					Description: "The improvements, one per problem found",
					Items: &models.Schema{
						Type: "object",
						Properties: map[string]*models.Schema{
							"severity": {
								Type:        "string",
								Description: "How important it is to apply the improvement",
								Enum:        []string{"high", "medium", "low"},
							},
							"code": {
								Type:        "string",
								Description: "The improved code snippet",
							},
							"reason": {
								Type:        "string",
								Description: "Why the change improves the code",
							},
						},
						Required: []string{"severity", "code", "reason"},
					},
				},
			},
			Required: []string{"improvements"},
		},
	}
}
