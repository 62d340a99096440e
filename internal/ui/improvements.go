package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/thomas-vilte/gitai/internal/i18n"
	"github.com/thomas-vilte/gitai/internal/models"
)

// Separator closes every rendered improvement.
const Separator = "------------------------------------"

func severityColor(s models.Severity) *color.Color {
	switch s {
	case models.SeverityHigh:
		return color.New(color.FgRed)
	case models.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// PrintImprovements renders set in its current order: severity label, code,
// reason and a separator for each finding.
func PrintImprovements(w io.Writer, set models.ImprovementSet, t *i18n.Translations) {
	for _, improvement := range set {
		c := severityColor(improvement.Severity)
		label := t.GetMessage("improvements.severity", 0, struct{ Severity string }{c.Sprint(improvement.Severity.String())})

		_, _ = fmt.Fprintf(w, "%s\n\n", label)
		_, _ = fmt.Fprintf(w, "%s\n\n", c.Sprint(improvement.Code))
		_, _ = fmt.Fprintf(w, "%s\n\n", improvement.Reason)
		_, _ = fmt.Fprintln(w, Separator)
	}
}
