package stats

import "essaycoach-be/internal/models"

// EmptyCategoryCounts returns a map holding every error category at zero.
func EmptyCategoryCounts() map[string]int {
	counts := make(map[string]int, len(models.ErrorCategories))
	for _, c := range models.ErrorCategories {
		counts[c] = 0
	}
	return counts
}

// EmptyStatistics is the rollup shown when there are no records. Every
// number is zero and every list is present but empty.
func EmptyStatistics() models.RollupStatistics {
	return models.RollupStatistics{
		RecentActivity: models.RecentActivity{},
		WritingMetrics: models.WritingMetrics{},
		QualityMetrics: models.QualityMetrics{
			ErrorsByCategory: EmptyCategoryCounts(),
		},
		Improvement:    models.Improvement{},
		TopPerformance: models.TopPerformance{HasData: false},
		SectionRates:   []models.SectionRate{},
		FocusAreas:     []models.FocusArea{},
		Style:          emptyStyleOverview(),
	}
}

// EmptyProgressReport is the progress report of a user with no essays.
func EmptyProgressReport(period string) models.ProgressReport {
	return models.ProgressReport{
		QualityTrends:   []models.QualityTrendPoint{},
		Improvements:    []models.AreaImprovement{},
		FocusAreas:      []models.FocusArea{},
		OverallProgress: models.OverallProgress{},
		WritingStats:    models.WritingStats{},
		ActivityTrend:   []models.EssayTrendPoint{},
		PostTypes:       []models.PostTypeCount{},
		Period:          period,
	}
}

func emptyStyleOverview() models.StyleOverview {
	return models.StyleOverview{
		Strengths:    []string{},
		Improvements: []string{},
	}
}
