package stats

import (
	"fmt"
	"math"
	"sort"

	"essaycoach-be/internal/models"
)

// SanitizeErrorStat coerces an error record into the shape the pipeline
// relies on: non-negative counts, every category present, unknown categories
// dropped. Problems are returned as warnings; the record is always kept.
func SanitizeErrorStat(r models.ErrorStatRecord) (models.ErrorStatRecord, []string) {
	var warnings []string

	if r.TotalErrors < 0 {
		warnings = append(warnings, fmt.Sprintf("negative totalErrors %d clamped to 0", r.TotalErrors))
		r.TotalErrors = 0
	}

	counts := EmptyCategoryCounts()
	unknown := make([]string, 0)
	sum := 0
	for name, n := range r.ErrorsByCategory {
		if !models.IsErrorCategory(name) {
			unknown = append(unknown, name)
			continue
		}
		if n < 0 {
			warnings = append(warnings, fmt.Sprintf("negative %s count %d clamped to 0", name, n))
			n = 0
		}
		counts[name] = n
		sum += n
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		warnings = append(warnings, fmt.Sprintf("unknown error categories dropped: %v", unknown))
	}
	if sum != r.TotalErrors {
		warnings = append(warnings, fmt.Sprintf("category counts sum to %d but totalErrors is %d", sum, r.TotalErrors))
	}
	r.ErrorsByCategory = counts

	if r.DetailedErrors == nil {
		r.DetailedErrors = []models.ErrorDetail{}
	}
	return r, warnings
}

// SanitizeCompleteness clamps requirement counts and fills the detail lists.
// When both counts are zero but the details list requirements, the counts
// are taken from the details.
func SanitizeCompleteness(r models.CompletenessStatRecord) (models.CompletenessStatRecord, []string) {
	var warnings []string

	if r.Details.Met == nil {
		r.Details.Met = []string{}
	}
	if r.Details.Missing == nil {
		r.Details.Missing = []string{}
	}
	if r.MetRequirements < 0 {
		warnings = append(warnings, fmt.Sprintf("negative metRequirements %d clamped to 0", r.MetRequirements))
		r.MetRequirements = 0
	}
	if r.MissingRequirements < 0 {
		warnings = append(warnings, fmt.Sprintf("negative missingRequirements %d clamped to 0", r.MissingRequirements))
		r.MissingRequirements = 0
	}
	if r.MetRequirements == 0 && r.MissingRequirements == 0 {
		r.MetRequirements = len(r.Details.Met)
		r.MissingRequirements = len(r.Details.Missing)
	}
	return r, warnings
}

// ClampStyle re-clamps every score of a style analysis into [0, 100].
// NaN and infinities become 0.
func ClampStyle(a models.WritingStyleAnalysis) models.WritingStyleAnalysis {
	a.Tone.Confidence = clampScore(a.Tone.Confidence)
	a.Tone.Characteristics = nonNil(a.Tone.Characteristics)

	a.Voice.ActiveVoicePercentage = clampScore(a.Voice.ActiveVoicePercentage)
	if a.Voice.PassiveVoiceInstances < 0 {
		a.Voice.PassiveVoiceInstances = 0
	}

	a.Clarity.Score = clampScore(a.Clarity.Score)
	a.Clarity.Strengths = nonNil(a.Clarity.Strengths)
	a.Clarity.Improvements = nonNil(a.Clarity.Improvements)

	ss := &a.Complexity.SentenceStructure
	ss.Score = clampScore(ss.Score)
	ss.VarietyScore = clampScore(ss.VarietyScore)
	ss.AverageLength = finite(ss.AverageLength)
	if ss.AverageLength < 0 {
		ss.AverageLength = 0
	}

	wc := &a.Complexity.WordChoice
	wc.ComplexWordsPercentage = clampScore(wc.ComplexWordsPercentage)
	wc.AcademicVocabularyScore = clampScore(wc.AcademicVocabularyScore)

	pc := &a.Complexity.ParagraphCohesion
	pc.Score = clampScore(pc.Score)
	pc.LogicalFlowScore = clampScore(pc.LogicalFlowScore)

	return a
}

// ComplexityScore is the mean of the sentence structure, academic vocabulary
// and paragraph cohesion scores.
func ComplexityScore(a models.WritingStyleAnalysis) float64 {
	c := a.Complexity
	return (clampScore(c.SentenceStructure.Score) +
		clampScore(c.WordChoice.AcademicVocabularyScore) +
		clampScore(c.ParagraphCohesion.Score)) / 3
}

func clampScore(v float64) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finite(num / den)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
