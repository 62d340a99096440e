package ai

import (
	"bytes"
	"fmt"
	"text/template"
)

// PromptData holds the parameters for template rendering
type PromptData struct {
	Context string
	Diff    string
	Log     string
}

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

const commitMessageStyleGuide = `
Commit Message Format
Format:
<type>: <subject>

<body>

<footer>
Type: This refers to the kind of change that you've made. Options include:
- feat: A new feature
- fix: A bug fix
- docs: Documentation only changes
- style: Changes that do not affect the meaning of the code (white-space, formatting, missing semi-colons, etc.)
- refactor: A code change that neither fixes a bug nor adds a feature
- perf: A code change that improves performance
- test: Adding missing or correcting existing tests
- chore: Changes to the build process or auxiliary tools and libraries such as documentation generation
Example:
feat: add login functionality

The new login functionality allows users to log in with their username and
password. It includes input validation and error handling.

Related issues: #123, #456 or N/A
`

const prDescriptionTemplate = `
PR Template:
Title: [Feature/Bugfix/Refactor]: Brief Description of Change

Description:
Please provide a detailed summary of the changes introduced in this PR. Include the context and motivation for the change.

Related Issue(s):
Please link to any related issues or tasks in your tracking system (e.g., JIRA ticket or GitHub issue).

Changes:
- Change 1
- Change 2
- Change 3

How to Test:
Provide instructions for how to test the changes, including any necessary setup and the expected outcome.

Dependencies: List any dependencies that must be resolved before/after merging this PR. Hide this section if no
dependencies exist.
`

const (
	commitPromptTemplate = "Create me a commit message for these changes:\nThe context is: {{.Context}}\n{{.Diff}}" + commitMessageStyleGuide

	prPromptTemplate = "Create me a PR for these changes:\nThe context is: {{.Context}}\nAll the commit messages are:\n{{.Log}}" +
		"Changes are:\n{{.Diff}}" + prDescriptionTemplate
)

const (
	systemPromptEN = `You are an assistant that writes git commit messages and pull request descriptions from the diffs you are given.
Answer with the requested text only, without surrounding commentary.
When the changes contain problems worth fixing before they are committed, you may call the function suggest_code_improvements instead of answering in text.`

	systemPromptES = `Sos un asistente que escribe mensajes de commit y descripciones de pull requests a partir de los diffs que recibís.
Respondé solo con el texto pedido, sin comentarios adicionales, y escribilo en español.
Cuando los cambios tengan problemas que convenga corregir antes de commitear, podés llamar a la función suggest_code_improvements en lugar de responder con texto.`
)

// BuildCommitPrompt embeds the user context and the diff in the commit
// message request, followed by the commit style guide.
func BuildCommitPrompt(context, diff string) (string, error) {
	return RenderPrompt("commit", commitPromptTemplate, PromptData{Context: context, Diff: diff})
}

// BuildPRPrompt embeds the user context, the commit log and the diff in the
// pull request request, followed by the PR template.
func BuildPRPrompt(context, log, diff string) (string, error) {
	return RenderPrompt("pr", prPromptTemplate, PromptData{Context: context, Log: log, Diff: diff})
}

// GetSystemPrompt returns the system message for lang, English by default.
func GetSystemPrompt(lang string) string {
	if lang == "es" {
		return systemPromptES
	}
	return systemPromptEN
}
