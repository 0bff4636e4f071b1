package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaycoach-be/internal/models"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestNormalize_SingleSectionScenario(t *testing.T) {
	t.Parallel()

	in := NormalizeInput{
		SectionID:   "A",
		SectionType: models.SectionIntroduction,
		Content:     "one two three four five",
		ErrorStats: []models.ErrorStatRecord{{
			SectionID:        "A",
			Timestamp:        t0,
			TotalErrors:      5,
			ErrorsByCategory: map[string]int{"spelling": 3, "punctuation": 2},
		}},
		CompletenessStats: []models.CompletenessStatRecord{{
			SectionID:  "A",
			Timestamp:  t0,
			IsComplete: true,
		}},
	}

	got := Normalize(in)

	assert.Equal(t, "A", got.SectionID)
	assert.Equal(t, 5, got.WordCount)
	assert.Equal(t, 5, got.TotalErrors)
	assert.True(t, got.IsComplete)
	assert.InDelta(t, 100.0, got.CompletionRate, 1e-9)
	assert.Equal(t, 3, got.ErrorsByCategory["spelling"])
	assert.Equal(t, 2, got.ErrorsByCategory["punctuation"])
	assert.Equal(t, 0, got.ErrorsByCategory["stylistic"])
	assert.Len(t, got.ErrorsByCategory, len(models.ErrorCategories))
	assert.Equal(t, t0, got.LastActivity)
}

func TestNormalize_NoRecords(t *testing.T) {
	t.Parallel()

	got := Normalize(NormalizeInput{SectionID: "empty"})

	assert.Equal(t, 0, got.WordCount)
	assert.Equal(t, 0, got.TotalErrors)
	assert.False(t, got.IsComplete)
	assert.Zero(t, got.CompletionRate)
	assert.NotNil(t, got.MissingRequirements)
	assert.True(t, got.LastActivity.IsZero())
	assert.Equal(t, EmptyCategoryCounts(), got.ErrorsByCategory)
}

func TestNormalize_LatestErrorRecordWins(t *testing.T) {
	t.Parallel()

	in := NormalizeInput{
		SectionID: "A",
		ErrorStats: []models.ErrorStatRecord{
			{SectionID: "A", Timestamp: t0.Add(2 * time.Hour), TotalErrors: 2, ErrorsByCategory: map[string]int{"spelling": 2}},
			{SectionID: "A", Timestamp: t0, TotalErrors: 7, ErrorsByCategory: map[string]int{"spelling": 7}},
			{SectionID: "B", Timestamp: t0.Add(5 * time.Hour), TotalErrors: 40},
		},
	}

	got := Normalize(in)

	assert.Equal(t, 2, got.TotalErrors, "the later check replaces the earlier one instead of summing")
	assert.Equal(t, 2, got.ErrorsByCategory["spelling"])
	assert.Equal(t, t0.Add(2*time.Hour), got.LastActivity, "other sections' records are ignored")
}

func TestNormalize_TimestampTieGoesToLaterPosition(t *testing.T) {
	t.Parallel()

	in := NormalizeInput{
		SectionID: "A",
		CompletenessStats: []models.CompletenessStatRecord{
			{SectionID: "A", Timestamp: t0, IsComplete: true},
			{SectionID: "A", Timestamp: t0, IsComplete: false, MetRequirements: 1, MissingRequirements: 3,
				Details: models.CompletenessDetails{Missing: []string{"thesis", "hook", "roadmap"}}},
		},
	}

	got := Normalize(in)

	assert.False(t, got.IsComplete)
	assert.InDelta(t, 25.0, got.CompletionRate, 1e-9)
	assert.Equal(t, 1, got.MetRequirements)
	assert.Equal(t, 4, got.TotalRequirements)
	assert.Equal(t, []string{"thesis", "hook", "roadmap"}, got.MissingRequirements)
}

func TestNormalize_LatestCompletenessDecides(t *testing.T) {
	t.Parallel()

	in := NormalizeInput{
		SectionID: "A",
		CompletenessStats: []models.CompletenessStatRecord{
			{SectionID: "A", Timestamp: t0.Add(time.Hour), IsComplete: true},
			{SectionID: "A", Timestamp: t0, IsComplete: false},
		},
	}

	assert.True(t, Normalize(in).IsComplete)
}

func TestNormalize_StripsMarkupBeforeCounting(t *testing.T) {
	t.Parallel()

	got := Normalize(NormalizeInput{
		SectionID: "A",
		Content:   "<p>Hello <b>brave</b> new</p><p>world</p><script>var x = 1;</script>",
	})

	assert.Equal(t, 4, got.WordCount)
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	in := NormalizeInput{
		SectionID: "A",
		Content:   "a few words here",
		ErrorStats: []models.ErrorStatRecord{
			{SectionID: "A", Timestamp: t0, TotalErrors: 3, ErrorsByCategory: map[string]int{"stylistic": 3}},
		},
		CompletenessStats: []models.CompletenessStatRecord{
			{SectionID: "A", Timestamp: t0, MetRequirements: 2, MissingRequirements: 1},
		},
	}

	first := Normalize(in)
	second := Normalize(in)

	require.Equal(t, first, second)
	assert.Equal(t, 3, in.ErrorStats[0].ErrorsByCategory["stylistic"], "input must not be mutated")
	assert.Len(t, in.ErrorStats[0].ErrorsByCategory, 1)
}

func TestSanitizeErrorStat(t *testing.T) {
	t.Parallel()

	clean, warnings := SanitizeErrorStat(models.ErrorStatRecord{
		TotalErrors:      -1,
		ErrorsByCategory: map[string]int{"spelling": -2, "grammar": 4, "punctuation": 1},
	})

	assert.Equal(t, 0, clean.TotalErrors)
	assert.Equal(t, 0, clean.ErrorsByCategory["spelling"])
	assert.Equal(t, 1, clean.ErrorsByCategory["punctuation"])
	assert.NotContains(t, clean.ErrorsByCategory, "grammar")
	assert.NotNil(t, clean.DetailedErrors)
	assert.Len(t, warnings, 4)
}

func TestSanitizeErrorStat_MismatchIsOnlyAWarning(t *testing.T) {
	t.Parallel()

	clean, warnings := SanitizeErrorStat(models.ErrorStatRecord{
		TotalErrors:      5,
		ErrorsByCategory: map[string]int{"spelling": 1},
	})

	assert.Equal(t, 5, clean.TotalErrors)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "sum to 1")
}

func TestSanitizeCompleteness_CountsFromDetails(t *testing.T) {
	t.Parallel()

	clean, warnings := SanitizeCompleteness(models.CompletenessStatRecord{
		Details: models.CompletenessDetails{Met: []string{"hook"}, Missing: []string{"thesis", "roadmap"}},
	})

	assert.Empty(t, warnings)
	assert.Equal(t, 1, clean.MetRequirements)
	assert.Equal(t, 2, clean.MissingRequirements)
}

func TestClampStyle(t *testing.T) {
	t.Parallel()

	var a models.WritingStyleAnalysis
	a.Clarity.Score = 140
	a.Voice.ActiveVoicePercentage = -5
	a.Voice.PassiveVoiceInstances = -1
	a.Tone.Confidence = Unmeasured
	a.Complexity.SentenceStructure.AverageLength = -3
	a.Complexity.WordChoice.AcademicVocabularyScore = 55

	got := ClampStyle(a)

	assert.Equal(t, 100.0, got.Clarity.Score)
	assert.Equal(t, 0.0, got.Voice.ActiveVoicePercentage)
	assert.Equal(t, 0, got.Voice.PassiveVoiceInstances)
	assert.Equal(t, 0.0, got.Tone.Confidence)
	assert.Equal(t, 0.0, got.Complexity.SentenceStructure.AverageLength)
	assert.Equal(t, 55.0, got.Complexity.WordChoice.AcademicVocabularyScore)
	assert.NotNil(t, got.Clarity.Strengths)
	assert.NotNil(t, got.Tone.Characteristics)
}
