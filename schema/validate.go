package schema

import (
	"fmt"

	"github.com/go-gum/exhume/lockey"
)

// Issue flags a field whose text is still a raw localization key, meaning
// recovery failed entirely.
type Issue struct {
	Field   string `json:"field"`
	Kind    string `json:"issue"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Warning flags a field that is usable but degraded, such as synthetic text
// or a type identifier that needs a lookup to mean anything.
type Warning struct {
	Field       string  `json:"field"`
	Kind        string  `json:"issue"`
	Value       string  `json:"value,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	OriginalKey string  `json:"original_key,omitempty"`
	Message     string  `json:"message"`
}

const (
	issueMissingLocalization = "missing_localization"

	warnSyntheticLocalization = "synthetic_localization"
	warnComplexType           = "complex_type"
	warnHiddenNoName          = "hidden_no_name"
)

// Validation is the quality assessment of one action schema.
type Validation struct {
	Valid    bool      `json:"valid"`
	Issues   []Issue   `json:"issues"`
	Warnings []Warning `json:"warnings"`
	Quality  float64   `json:"quality_score"`
}

// Validate checks one action schema for leftover localization keys,
// synthetic text and complex type identifiers, and scores it 0 to 100.
func Validate(action ActionSchema) Validation {
	v := Validation{Issues: []Issue{}, Warnings: []Warning{}}

	v.checkText("name", action.Name)
	v.checkText("description_summary", action.DescriptionSummary)

	for i, param := range action.Parameters {
		v.checkText(fmt.Sprintf("parameters[%d].name", i), param.Name)
		v.checkText(fmt.Sprintf("parameters[%d].description", i), param.Description)

		for _, typeID := range param.AcceptedTypes {
			if IsComplexTypeID(typeID) {
				v.Warnings = append(v.Warnings, Warning{
					Field:   fmt.Sprintf("parameters[%d].accepted_types", i),
					Kind:    warnComplexType,
					Value:   typeID,
					Message: fmt.Sprintf("Complex type identifier (may need type info lookup): %s", typeID),
				})
			}
		}
	}

	if action.Hidden && action.Name.Text == "" {
		v.Warnings = append(v.Warnings, Warning{
			Field:   "name",
			Kind:    warnHiddenNoName,
			Message: "Hidden action with no localized name",
		})
	}

	v.Valid = len(v.Issues) == 0
	v.Quality = qualityScore(action, v.Issues, v.Warnings)
	return v
}

func (v *Validation) checkText(field string, text lockey.Parsed) {
	switch {
	case text.Synthetic:
		v.Warnings = append(v.Warnings, Warning{
			Field:       field,
			Kind:        warnSyntheticLocalization,
			Confidence:  text.Confidence,
			OriginalKey: text.OriginalKey,
			Message:     fmt.Sprintf("Text was derived from key: %s", text.OriginalKey),
		})
	case lockey.IsKey(text.Text):
		v.Issues = append(v.Issues, Issue{
			Field:   field,
			Kind:    issueMissingLocalization,
			Value:   text.Text,
			Message: fmt.Sprintf("Field appears to be a localization key: %s", text.Text),
		})
	}
}

// qualityScore starts from 100 and deducts per issue and warning. Complex
// type warnings are capped at 20 points because entity-heavy apps routinely
// have many of them.
func qualityScore(action ActionSchema, issues []Issue, warnings []Warning) float64 {
	score := 100.0

	score -= float64(len(issues)) * 10

	var complexTypes, synthetic int
	for _, w := range warnings {
		switch w.Kind {
		case warnComplexType:
			complexTypes++
		case warnSyntheticLocalization:
			synthetic++
		}
	}
	other := len(warnings) - complexTypes - synthetic

	score -= min(20, float64(complexTypes)*2)
	score -= float64(synthetic) * 2
	score -= float64(other) * 5

	desc := action.DescriptionSummary
	if desc.Text != "" && (desc.Synthetic || !lockey.IsKey(desc.Text)) {
		score += 5
	}
	if len(action.Parameters) > 0 {
		score += 5
	}
	if len(action.Categories) > 0 {
		score += 5
	}

	return max(0, min(100, score))
}

// ProblemAction summarizes one low-quality action inside a Report.
type ProblemAction struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quality  float64 `json:"quality"`
	Issues   int     `json:"issues"`
	Warnings int     `json:"warnings"`
}

// QualityBuckets counts schemas per quality band.
type QualityBuckets struct {
	Excellent int `json:"excellent"` // 90-100
	Good      int `json:"good"`      // 75-89
	Fair      int `json:"fair"`      // 60-74
	Poor      int `json:"poor"`      // <60
}

// Report aggregates validation results over a whole extraction.
type Report struct {
	TotalSchemas       int             `json:"total_schemas"`
	ValidSchemas       int             `json:"valid_schemas"`
	SchemasWithIssues  int             `json:"schemas_with_issues"`
	SchemasWithWarns   int             `json:"schemas_with_warnings"`
	IssuesByType       map[string]int  `json:"issues_by_type"`
	WarningsByType     map[string]int  `json:"warnings_by_type"`
	QualityScores      QualityBuckets  `json:"quality_scores"`
	AverageQuality     float64         `json:"average_quality"`
	ProblematicActions []ProblemAction `json:"problematic_actions"`
}

const maxProblematicActions = 20

// ValidateAll validates every schema and rolls the results up into a
// report. At most 20 problematic actions are listed individually.
func ValidateAll(actions []ActionSchema) Report {
	report := Report{
		IssuesByType:       map[string]int{},
		WarningsByType:     map[string]int{},
		ProblematicActions: []ProblemAction{},
	}
	report.TotalSchemas = len(actions)

	var totalQuality float64
	for _, action := range actions {
		v := Validate(action)

		if v.Valid {
			report.ValidSchemas++
		} else {
			report.SchemasWithIssues++
		}
		if len(v.Warnings) > 0 {
			report.SchemasWithWarns++
		}

		for _, issue := range v.Issues {
			report.IssuesByType[issue.Kind]++
		}
		for _, warning := range v.Warnings {
			report.WarningsByType[warning.Kind]++
		}

		totalQuality += v.Quality
		switch {
		case v.Quality >= 90:
			report.QualityScores.Excellent++
		case v.Quality >= 75:
			report.QualityScores.Good++
		case v.Quality >= 60:
			report.QualityScores.Fair++
		default:
			report.QualityScores.Poor++
			if len(report.ProblematicActions) < maxProblematicActions {
				report.ProblematicActions = append(report.ProblematicActions, ProblemAction{
					ID:       action.ID,
					Name:     action.Name.Text,
					Quality:  v.Quality,
					Issues:   len(v.Issues),
					Warnings: len(v.Warnings),
				})
			}
		}
	}

	if len(actions) > 0 {
		report.AverageQuality = totalQuality / float64(len(actions))
	}

	return report
}
