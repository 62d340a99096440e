package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	domainErrors "github.com/thomas-vilte/gitai/internal/errors"
)

// Improvement is a single code review finding suggested by the model.
type Improvement struct {
	Code     string   `json:"code"`
	Reason   string   `json:"reason"`
	Severity Severity `json:"severity"`
}

// ImprovementSet is an ordered list of findings.
type ImprovementSet []Improvement

type improvementJSON struct {
	Severity *string `json:"severity"`
	Code     *string `json:"code"`
	Reason   *string `json:"reason"`
}

// ParseImprovements decodes a JSON array of {severity, code, reason} objects.
// Either every element is valid or an error is returned and no element is.
func ParseImprovements(payload []byte) (ImprovementSet, error) {
	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil, domainErrors.ErrSchemaViolation.WithError(errors.New("improvements must be an array, got null"))
	}

	var raw []improvementJSON
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, domainErrors.ErrSchemaViolation.WithError(err)
	}

	set := make(ImprovementSet, 0, len(raw))
	for i, item := range raw {
		if missing := item.missingField(); missing != "" {
			return nil, domainErrors.ErrSchemaViolation.
				WithError(fmt.Errorf("element %d: missing required field %q", i, missing)).
				WithContext("index", i)
		}

		severity, err := ParseSeverity(*item.Severity)
		if err != nil {
			return nil, domainErrors.ErrSchemaViolation.WithError(err).WithContext("index", i)
		}

		set = append(set, Improvement{
			Code:     *item.Code,
			Reason:   *item.Reason,
			Severity: severity,
		})
	}

	return set, nil
}

func (i improvementJSON) missingField() string {
	switch {
	case i.Severity == nil:
		return "severity"
	case i.Code == nil:
		return "code"
	case i.Reason == nil:
		return "reason"
	default:
		return ""
	}
}

// SortDescending orders the set High first. Findings of equal severity keep
// their relative order.
func (s ImprovementSet) SortDescending() {
	slices.SortStableFunc(s, func(a, b Improvement) int {
		return CompareSeverity(a.Severity, b.Severity)
	})
}
