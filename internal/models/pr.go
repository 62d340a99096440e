package models

import "strings"

type (
	// PRDraft is a pull request description ready to be published.
	PRDraft struct {
		Title string
		Body  string
		Base  string
		Head  string
	}

	// PullRequest identifies a pull request created on the VCS host.
	PullRequest struct {
		Number int
		URL    string
	}
)

// NewPRDraft splits a generated description into a title and a body. The
// first non-empty line is the title, without a leading "Title:" or Markdown
// heading marks; the rest, trimmed, is the body.
func NewPRDraft(description, base, head string) PRDraft {
	lines := strings.Split(strings.ReplaceAll(description, "\r\n", "\n"), "\n")

	for i, line := range lines {
		title := strings.TrimSpace(line)
		if title == "" {
			continue
		}
		title = strings.TrimSpace(strings.TrimLeft(title, "#"))
		if len(title) >= len(titlePrefix) && strings.EqualFold(title[:len(titlePrefix)], titlePrefix) {
			title = strings.TrimSpace(title[len(titlePrefix):])
		}
		return PRDraft{
			Title: title,
			Body:  strings.TrimSpace(strings.Join(lines[i+1:], "\n")),
			Base:  base,
			Head:  head,
		}
	}

	return PRDraft{Base: base, Head: head}
}

const titlePrefix = "title:"
