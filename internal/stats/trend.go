package stats

import (
	"math"

	"essaycoach-be/internal/models"
)

// TrendPoint holds the values compared by the trend functions. A value that
// was never measured is NaN and produces a zero delta.
type TrendPoint struct {
	TotalErrors float64
	Clarity     float64
	ActiveVoice float64
	Complexity  float64
	Vocabulary  float64
}

// Unmeasured marks a TrendPoint value that has no data.
var Unmeasured = math.NaN()

// PercentageChange returns the rounded percent change from oldValue to
// newValue. It is 0 when oldValue is 0 or either value is missing. With
// lowerIsBetter the sign is flipped, so a falling error count is positive.
func PercentageChange(oldValue, newValue float64, lowerIsBetter bool) int {
	if oldValue == 0 || !isMeasured(oldValue) || !isMeasured(newValue) {
		return 0
	}
	change := (newValue - oldValue) / oldValue * 100
	if lowerIsBetter {
		change = -change
	}
	return int(math.Round(change))
}

func ErrorReduction(first, last TrendPoint) int {
	return PercentageChange(first.TotalErrors, last.TotalErrors, true)
}

func ClarityImprovement(first, last TrendPoint) int {
	return PercentageChange(first.Clarity, last.Clarity, false)
}

func ActiveVoiceIncrease(first, last TrendPoint) int {
	return PercentageChange(first.ActiveVoice, last.ActiveVoice, false)
}

func ComplexityImprovement(first, last TrendPoint) int {
	return PercentageChange(first.Complexity, last.Complexity, false)
}

func VocabularyImprovement(first, last TrendPoint) int {
	return PercentageChange(first.Vocabulary, last.Vocabulary, false)
}

// SummaryTrendPoint builds the trend values of a section. style is nil when
// the section was never analysed.
func SummaryTrendPoint(s models.SectionSummary, style *models.WritingStyleAnalysis) TrendPoint {
	p := TrendPoint{
		TotalErrors: float64(s.TotalErrors),
		Clarity:     Unmeasured,
		ActiveVoice: Unmeasured,
		Complexity:  Unmeasured,
		Vocabulary:  Unmeasured,
	}
	if style != nil {
		a := ClampStyle(*style)
		p.Clarity = a.Clarity.Score
		p.ActiveVoice = a.Voice.ActiveVoicePercentage
		p.Complexity = ComplexityScore(a)
		p.Vocabulary = a.Complexity.WordChoice.AcademicVocabularyScore
	}
	return p
}

// PostTrendPoint builds the trend values of a submitted essay.
func PostTrendPoint(p models.Post) TrendPoint {
	if p.Statistics == nil {
		return TrendPoint{
			TotalErrors: Unmeasured,
			Clarity:     Unmeasured,
			ActiveVoice: Unmeasured,
			Complexity:  Unmeasured,
			Vocabulary:  Unmeasured,
		}
	}
	st := p.Statistics
	return TrendPoint{
		TotalErrors: float64(st.TotalErrors),
		Clarity:     clampScore(st.Clarity),
		ActiveVoice: clampScore(st.ActiveVoice),
		Complexity:  clampScore(st.Complexity),
		Vocabulary:  clampScore(st.AcademicVocabularyScore),
	}
}

func isMeasured(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
