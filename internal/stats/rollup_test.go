package stats

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaycoach-be/internal/models"
)

var now = time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

func fixedAggregator() *Aggregator {
	return &Aggregator{Now: func() time.Time { return now }}
}

func style(clarity, active float64) models.WritingStyleAnalysis {
	var a models.WritingStyleAnalysis
	a.Tone.Type = "Formal"
	a.Clarity.Score = clarity
	a.Voice.ActiveVoicePercentage = active
	return a
}

func TestAggregate_EmptyEqualsDefault(t *testing.T) {
	t.Parallel()

	agg := fixedAggregator()

	assert.Equal(t, EmptyStatistics(), agg.Aggregate(nil, nil))
	assert.Equal(t, EmptyStatistics(), agg.Aggregate([]models.SectionSummary{}, map[string]models.WritingStyleAnalysis{"x": style(90, 90)}))
}

func TestEmptyStatistics_NoNullsWhenSerialised(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(EmptyStatistics())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, []any{}, decoded["sectionRates"])
	assert.Equal(t, []any{}, decoded["focusAreas"])
	style := decoded["style"].(map[string]any)
	assert.Equal(t, []any{}, style["strengths"])
	assert.Equal(t, []any{}, style["improvements"])
	quality := decoded["qualityMetrics"].(map[string]any)
	assert.Len(t, quality["errorsByCategory"], len(models.ErrorCategories))
	top := decoded["topPerformance"].(map[string]any)
	assert.Equal(t, false, top["hasData"])
	assert.Equal(t, 0.0, top["lowestErrorCount"])
	// the only nullable field in the schema
	recent := decoded["recentActivity"].(map[string]any)
	assert.Nil(t, recent["lastActivityDate"])
}

func TestAggregate_AverageWordCount(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "a", WordCount: 100, LastActivity: now.Add(-3 * time.Hour)},
		{SectionID: "b", WordCount: 200, LastActivity: now.Add(-2 * time.Hour)},
		{SectionID: "c", WordCount: 300, LastActivity: now.Add(-1 * time.Hour)},
	}

	got := fixedAggregator().Aggregate(summaries, nil)

	assert.InDelta(t, 200.0, got.WritingMetrics.AverageWordCount, 1e-9)
	assert.Equal(t, 600, got.WritingMetrics.TotalWords)
	assert.Equal(t, 3, got.WritingMetrics.TotalSections)
}

func TestAggregate_ErrorRateWithZeroWords(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "a", TotalErrors: 10, WordCount: 0, ErrorsByCategory: map[string]int{"spelling": 10}},
	}

	got := fixedAggregator().Aggregate(summaries, nil)

	assert.Equal(t, 0.0, got.QualityMetrics.ErrorRate)
	assert.Equal(t, 10, got.QualityMetrics.TotalErrors)
	assert.Equal(t, 10, got.QualityMetrics.ErrorsByCategory["spelling"])
	assert.Equal(t, 0.0, got.TopPerformance.LowestErrorRate)
	assert.False(t, math.IsInf(got.TopPerformance.LowestErrorRate, 0))
}

func TestAggregate_ClarityImprovementScenario(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "intro", LastActivity: now.Add(-48 * time.Hour)},
		{SectionID: "body", LastActivity: now.Add(-24 * time.Hour)},
	}
	styles := map[string]models.WritingStyleAnalysis{
		"intro": style(60, 50),
		"body":  style(80, 75),
	}

	got := fixedAggregator().Aggregate(summaries, styles)

	assert.Equal(t, 33, got.Improvement.ClarityImprovement)
	assert.Equal(t, 50, got.Improvement.ActiveVoiceIncrease)
	assert.InDelta(t, 70.0, got.QualityMetrics.Clarity, 1e-9)
	assert.Equal(t, 80.0, got.TopPerformance.HighestClarity)
	assert.Equal(t, 75.0, got.TopPerformance.HighestActiveVoice)
}

func TestAggregate_TrendSkipsUncheckedSections(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "intro", SectionType: models.SectionIntroduction, TotalErrors: 10, LastActivity: now.Add(-48 * time.Hour)},
		{SectionID: "body", SectionType: models.SectionBody},
		{SectionID: "concl", SectionType: models.SectionConclusion, TotalErrors: 2, LastActivity: now.Add(-time.Hour)},
	}
	styles := map[string]models.WritingStyleAnalysis{
		"intro": style(60, 50),
		"concl": style(80, 75),
	}

	got := fixedAggregator().Aggregate(summaries, styles)

	assert.Equal(t, 80, got.Improvement.ErrorReduction)
	assert.Equal(t, 33, got.Improvement.ClarityImprovement)
	assert.Equal(t, 50, got.Improvement.ActiveVoiceIncrease)
	assert.Equal(t, 3, got.WritingMetrics.TotalSections)
}

func TestAggregate_OneCheckedSectionHasNoImprovement(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "intro"},
		{SectionID: "body", TotalErrors: 4, LastActivity: now.Add(-time.Hour)},
		{SectionID: "concl"},
	}

	got := fixedAggregator().Aggregate(summaries, nil)

	assert.Equal(t, models.Improvement{}, got.Improvement)
}

func TestAggregate_SortsUnorderedInputWithoutTouchingIt(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "late", TotalErrors: 2, LastActivity: now.Add(-1 * time.Hour)},
		{SectionID: "early", TotalErrors: 8, LastActivity: now.Add(-10 * time.Hour)},
	}

	got := fixedAggregator().Aggregate(summaries, nil)

	assert.Equal(t, 75, got.Improvement.ErrorReduction)
	assert.Equal(t, "late", summaries[0].SectionID)
}

func TestSortByActivity_StableOnTies(t *testing.T) {
	t.Parallel()

	in := []models.SectionSummary{
		{SectionID: "b", LastActivity: now},
		{SectionID: "a", LastActivity: now},
		{SectionID: "c", LastActivity: now.Add(-time.Hour)},
	}

	got := SortByActivity(in)

	ids := []string{got[0].SectionID, got[1].SectionID, got[2].SectionID}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestAggregate_SingleSummaryHasNoImprovement(t *testing.T) {
	t.Parallel()

	got := fixedAggregator().Aggregate([]models.SectionSummary{{SectionID: "a", TotalErrors: 3, WordCount: 30}}, nil)

	assert.Equal(t, models.Improvement{}, got.Improvement)
	assert.True(t, got.TopPerformance.HasData)
	assert.Equal(t, 3, got.TopPerformance.LowestErrorCount)
	assert.InDelta(t, 0.1, got.TopPerformance.LowestErrorRate, 1e-9)
}

func TestAggregate_RecentActivity(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "old", LastActivity: now.Add(-40 * 24 * time.Hour)},
		{SectionID: "month", LastActivity: now.Add(-20 * 24 * time.Hour)},
		{SectionID: "week", LastActivity: now.Add(-2 * 24 * time.Hour)},
		{SectionID: "untouched"},
	}

	got := fixedAggregator().Aggregate(summaries, nil)

	assert.Equal(t, 1, got.RecentActivity.Last7Days)
	assert.Equal(t, 2, got.RecentActivity.Last30Days)
	require.NotNil(t, got.RecentActivity.LastActivityDate)
	assert.Equal(t, now.Add(-2*24*time.Hour), *got.RecentActivity.LastActivityDate)
}

func TestAggregate_CompletionAndSectionRates(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "i", SectionType: models.SectionIntroduction, IsComplete: true},
		{SectionID: "b1", SectionType: models.SectionBody, IsComplete: true},
		{SectionID: "b2", SectionType: models.SectionBody},
		{SectionID: "c", SectionType: models.SectionConclusion},
	}

	got := fixedAggregator().Aggregate(summaries, nil)

	assert.Equal(t, 2, got.WritingMetrics.CompletedSections)
	assert.InDelta(t, 50.0, got.WritingMetrics.CompletionRate, 1e-9)
	require.Len(t, got.SectionRates, 3)
	assert.Equal(t, models.SectionRate{Type: models.SectionBody, Total: 2, Completed: 1, Rate: 50}, got.SectionRates[1])
	assert.Equal(t, 0.0, got.SectionRates[2].Rate)
}

func TestAggregate_ClampsMalformedStyle(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{{SectionID: "a", WordCount: 10}}
	styles := map[string]models.WritingStyleAnalysis{"a": style(math.NaN(), 250)}

	got := fixedAggregator().Aggregate(summaries, styles)

	assert.Equal(t, 0.0, got.QualityMetrics.Clarity)
	assert.Equal(t, 100.0, got.QualityMetrics.ActiveVoice)
	assert.Equal(t, "Active", got.Style.VoiceType)
	assert.Equal(t, "Low", got.Style.ClarityLevel)
}

func TestAggregate_FocusAreasAndStyle(t *testing.T) {
	t.Parallel()

	summaries := []models.SectionSummary{
		{SectionID: "a", MissingRequirements: []string{"Clear thesis statement", "Hook"}},
		{SectionID: "b", MissingRequirements: []string{"Relevant evidence", "Hook"}},
		{SectionID: "c", MissingRequirements: []string{"Hook", "Relevant evidence", "Summary"}},
	}
	sa := style(85, 80)
	sa.Clarity.Strengths = []string{"concise", "precise"}
	sa.Complexity.ParagraphCohesion.TransitionStrength = "Strong"
	sb := style(82, 90)
	sb.Clarity.Strengths = []string{"precise", "organized", "vivid"}

	got := fixedAggregator().Aggregate(summaries, map[string]models.WritingStyleAnalysis{"a": sa, "b": sb})

	require.Len(t, got.FocusAreas, 3)
	assert.Equal(t, models.FocusArea{Name: "Hook", Count: 3, Suggestion: defaultSuggestion}, got.FocusAreas[0])
	assert.Equal(t, "Relevant evidence", got.FocusAreas[1].Name)
	assert.Equal(t, "Add more supporting examples", got.FocusAreas[1].Suggestion)
	assert.Equal(t, "Make your main argument clearer", got.FocusAreas[2].Suggestion)

	assert.Equal(t, "Formal", got.Style.DominantTone)
	assert.Equal(t, "High", got.Style.ClarityLevel)
	assert.Equal(t, []string{"concise", "precise", "organized"}, got.Style.Strengths)
	assert.Equal(t, "Strong", got.Style.TransitionStrength)
}

func TestAggregate_NoDataSentinelNeverInfinite(t *testing.T) {
	t.Parallel()

	got := fixedAggregator().Aggregate(nil, nil)

	assert.False(t, got.TopPerformance.HasData)
	assert.Equal(t, 0, got.TopPerformance.LowestErrorCount)
	assert.Equal(t, 0.0, got.TopPerformance.LowestErrorRate)
}
