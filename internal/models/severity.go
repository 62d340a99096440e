package models

import (
	"encoding/json"
	"strings"

	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
)

// Severity ranks a code improvement finding.
type Severity int

const (
	SeverityHigh Severity = iota
	SeverityMedium
	SeverityLow
)

// ParseSeverity accepts "high", "medium" or "low" in any case.
func ParseSeverity(text string) (Severity, error) {
	switch strings.ToLower(text) {
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	default:
		return 0, domainErrors.ErrInvalidSeverity.WithContext("value", text)
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	case SeverityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// weight is independent of the declaration order of the constants above.
func (s Severity) weight() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// CompareSeverity returns a negative number when a is more severe than b, zero
// when they are equal and a positive number otherwise, so sorting with it puts
// High first.
func CompareSeverity(a, b Severity) int {
	return b.weight() - a.weight()
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return domainErrors.ErrInvalidSeverity.WithError(err)
	}
	parsed, err := ParseSeverity(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
