package stats

import (
	"math"
	"sort"

	"essaycoach-be/internal/models"
	"essaycoach-be/internal/utils"
)

// Number of most recent essays that feed the progress focus areas.
const recentPostsForFocus = 3

// BuildProgressReport summarises submitted essays over a period. Posts are
// ordered by creation time here; ActivityTrend and PostTypes are left empty
// for the caller to fill from storage.
func BuildProgressReport(posts []models.Post, period string) models.ProgressReport {
	report := EmptyProgressReport(period)
	if len(posts) == 0 {
		return report
	}

	sorted := make([]models.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	totalWords := 0
	for _, p := range sorted {
		point := qualityTrendPoint(p)
		report.QualityTrends = append(report.QualityTrends, point)

		totalWords += point.WordCount
		report.WritingStats.TotalErrors += point.Errors
		if point.Requirements.Total > 0 && point.Requirements.Met == point.Requirements.Total {
			report.WritingStats.CompletedEssays++
		}
	}
	report.WritingStats.TotalPosts = len(sorted)
	report.WritingStats.AverageWordCount = int(math.Round(safeDiv(float64(totalWords), float64(len(sorted)))))

	if len(sorted) >= 2 {
		first := PostTrendPoint(sorted[0])
		last := PostTrendPoint(sorted[len(sorted)-1])
		report.OverallProgress = models.OverallProgress{
			ErrorReduction:        ErrorReduction(first, last),
			ClarityImprovement:    ClarityImprovement(first, last),
			ActiveVoiceIncrease:   ActiveVoiceIncrease(first, last),
			ComplexityImprovement: ComplexityImprovement(first, last),
		}
		report.Improvements = positiveImprovements(first, last)
	}

	recent := sorted
	if len(recent) > recentPostsForFocus {
		recent = recent[len(recent)-recentPostsForFocus:]
	}
	missing := make([][]string, 0, len(recent))
	for _, p := range recent {
		if p.Statistics != nil {
			missing = append(missing, p.Statistics.MissingRequirements)
		}
	}
	report.FocusAreas = FocusAreas(missing)

	return report
}

// positiveImprovements lists only the areas that got better.
func positiveImprovements(first, last TrendPoint) []models.AreaImprovement {
	candidates := []models.AreaImprovement{
		{Area: "Writing Clarity", Percentage: ClarityImprovement(first, last)},
		{Area: "Error Reduction", Percentage: ErrorReduction(first, last)},
		{Area: "Vocabulary", Percentage: VocabularyImprovement(first, last)},
	}
	out := make([]models.AreaImprovement, 0, len(candidates))
	for _, c := range candidates {
		if c.Percentage > 0 {
			out = append(out, c)
		}
	}
	return out
}

func qualityTrendPoint(p models.Post) models.QualityTrendPoint {
	point := models.QualityTrendPoint{
		Date:             p.CreatedAt,
		ErrorsByCategory: EmptyCategoryCounts(),
		WordCount:        utils.CountWords(p.Content),
	}
	st := p.Statistics
	if st == nil {
		return point
	}
	point.Clarity = clampScore(st.Clarity)
	point.Complexity = clampScore(st.Complexity)
	point.ActiveVoice = clampScore(st.ActiveVoice)
	point.Errors = max(st.TotalErrors, 0)
	point.Tone = st.Tone
	point.Requirements = models.RequirementTally{
		Met:   max(st.RequirementsMet, 0),
		Total: max(st.RequirementsTotal, 0),
	}
	for name, n := range st.ErrorsByCategory {
		if models.IsErrorCategory(name) && n > 0 {
			point.ErrorsByCategory[name] = n
		}
	}
	if st.WordCount > 0 {
		point.WordCount = st.WordCount
	}
	return point
}
