package services

import (
	"context"
	"encoding/json"
	"strings"

	"essaycoach-be/internal/models"
	"essaycoach-be/internal/stats"
	"essaycoach-be/internal/utils"
)

// Analysis kinds, used as metric labels and log fields
const (
	KindErrors       = "errors"
	KindCompleteness = "completeness"
	KindStyle        = "style"
)

// AnalysisService checks essay text. It never fails: when the check cannot
// be made it returns the default result with Fallback set.
type AnalysisService interface {
	CheckErrors(ctx context.Context, text string, sectionType models.SectionType) models.ErrorCheckResult
	CheckCompleteness(ctx context.Context, text string, sectionType models.SectionType, previousFeedback []string) models.CompletenessVerdict
	AnalyzeStyle(ctx context.Context, text string) models.StyleResult
}

// Rubric requirements per section type
var rubric = map[models.SectionType][]string{
	models.SectionIntroduction: {
		"Clear thesis statement present",
		"Sufficient background context",
		"Main points clearly outlined",
		"Engaging opening",
	},
	models.SectionBody: {
		"Clear topic sentence that directly supports the thesis",
		"Strong supporting evidence and examples",
		"Thorough analysis explaining the evidence",
		"Clear connection back to thesis/main argument",
		"Smooth transitions between ideas",
		"Proper paragraph structure and organization",
	},
	models.SectionConclusion: {
		"Effective restatement of thesis",
		"Comprehensive summary of main points",
		"Meaningful final insights or implications",
		"Strong closing statement",
		"Clear sense of closure",
		"No new arguments introduced",
	},
}

// RubricFor returns the requirements a section of the given type is checked against.
func RubricFor(t models.SectionType) []string {
	return rubric[t]
}

func DefaultErrorResult() models.ErrorCheckResult {
	return models.ErrorCheckResult{Errors: emptyCategorizedErrors(), Fallback: true}
}

func DefaultCompleteness() models.CompletenessVerdict {
	return models.CompletenessVerdict{
		IsComplete: false,
		CompletionStatus: models.CompletenessDetails{
			Met:     []string{},
			Missing: []string{"Section analysis failed"},
		},
		FeedbackItems:         []string{"Unable to complete analysis"},
		SuggestedImprovements: []string{"Please try again"},
		Fallback:              true,
	}
}

func DefaultStyle() models.StyleResult {
	return models.StyleResult{Analysis: defaultStyleAnalysis(), Fallback: true}
}

func defaultStyleAnalysis() models.WritingStyleAnalysis {
	return stats.ClampStyle(models.WritingStyleAnalysis{
		Tone:    models.Tone{Type: "Neutral"},
		Voice:   models.Voice{Type: "Mixed"},
		Clarity: models.Clarity{Level: stats.ClarityLevel(0)},
		Complexity: models.Complexity{
			ParagraphCohesion: models.ParagraphCohesion{TransitionStrength: "Moderate"},
		},
	})
}

func emptyCategorizedErrors() models.CategorizedErrors {
	return models.CategorizedErrors{
		Spelling:       []models.ErrorDetail{},
		Punctuation:    []models.ErrorDetail{},
		LexicoSemantic: []models.ErrorDetail{},
		Stylistic:      []models.ErrorDetail{},
		Typographical:  []models.ErrorDetail{},
	}
}

// categorize sorts findings into their category buckets. Findings with an
// unknown category are dropped.
func categorize(findings []models.ErrorDetail) models.CategorizedErrors {
	out := emptyCategorizedErrors()
	for _, f := range findings {
		if f.Suggestions == nil {
			f.Suggestions = []string{}
		}
		f.Category = strings.TrimSpace(f.Category)
		switch f.Category {
		case models.CategorySpelling:
			out.Spelling = append(out.Spelling, f)
		case models.CategoryPunctuation:
			out.Punctuation = append(out.Punctuation, f)
		case models.CategoryLexicoSemantic:
			out.LexicoSemantic = append(out.LexicoSemantic, f)
		case models.CategoryStylistic:
			out.Stylistic = append(out.Stylistic, f)
		case models.CategoryTypographical:
			out.Typographical = append(out.Typographical, f)
		}
	}
	return out
}

// parseErrorReply reads a checker reply: a JSON array of findings, or an
// object holding one under "errors".
func parseErrorReply(reply string) (models.CategorizedErrors, bool) {
	raw, ok := utils.ExtractJSON(reply)
	if !ok {
		return models.CategorizedErrors{}, false
	}

	var findings []models.ErrorDetail
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &findings); err != nil {
			return models.CategorizedErrors{}, false
		}
		return categorize(findings), true
	}

	var wrapped struct {
		Errors []models.ErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return models.CategorizedErrors{}, false
	}
	return categorize(wrapped.Errors), true
}

// parseCompletenessReply reads a completeness reply. A reply without a
// missing list is treated as needing review; completeness is derived from
// the missing list, never taken from the reply.
func parseCompletenessReply(reply string) (models.CompletenessVerdict, bool) {
	raw, ok := utils.ExtractJSON(reply)
	if !ok || !strings.HasPrefix(raw, "{") {
		return models.CompletenessVerdict{}, false
	}

	var parsed struct {
		CompletionStatus struct {
			Met     []string `json:"met"`
			Missing []string `json:"missing"`
		} `json:"completionStatus"`
		FeedbackItems         []string `json:"feedbackItems"`
		SuggestedImprovements []string `json:"suggestedImprovements"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.CompletenessVerdict{}, false
	}

	missing := parsed.CompletionStatus.Missing
	if missing == nil {
		missing = []string{"Requirements need to be reviewed"}
	}
	v := models.CompletenessVerdict{
		CompletionStatus: models.CompletenessDetails{
			Met:     nonNilStrings(parsed.CompletionStatus.Met),
			Missing: missing,
		},
		FeedbackItems:         nonNilStrings(parsed.FeedbackItems),
		SuggestedImprovements: nonNilStrings(parsed.SuggestedImprovements),
	}
	v.IsComplete = len(v.CompletionStatus.Missing) == 0
	return v, true
}

// parseStyleReply reads a style reply; absent labels get their defaults and
// every score is clamped.
func parseStyleReply(reply string) (models.WritingStyleAnalysis, bool) {
	raw, ok := utils.ExtractJSON(reply)
	if !ok || !strings.HasPrefix(raw, "{") {
		return models.WritingStyleAnalysis{}, false
	}

	var a models.WritingStyleAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return models.WritingStyleAnalysis{}, false
	}
	return fillStyleLabels(a), true
}

func fillStyleLabels(a models.WritingStyleAnalysis) models.WritingStyleAnalysis {
	a = stats.ClampStyle(a)
	if a.Tone.Type == "" {
		a.Tone.Type = "Neutral"
	}
	if a.Voice.Type == "" {
		a.Voice.Type = stats.VoiceType(a.Voice.ActiveVoicePercentage)
	}
	if a.Clarity.Level == "" {
		a.Clarity.Level = stats.ClarityLevel(a.Clarity.Score)
	}
	if a.Complexity.ParagraphCohesion.TransitionStrength == "" {
		a.Complexity.ParagraphCohesion.TransitionStrength = "Moderate"
	}
	return a
}

// completenessFeedback builds feedback and suggestions for missed requirements.
func completenessFeedback(missing []string) (feedback, suggestions []string) {
	feedback = make([]string, 0, len(missing))
	suggestions = make([]string, 0, len(missing))
	seen := make(map[string]bool)
	for _, m := range missing {
		feedback = append(feedback, "Missing: "+m)
		s := stats.SuggestionFor(m)
		if !seen[s] {
			seen[s] = true
			suggestions = append(suggestions, s)
		}
	}
	return feedback, suggestions
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
