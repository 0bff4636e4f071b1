package stats

import "essaycoach-be/internal/models"

// PostSnapshot freezes the statistics of a draft at submission time. The
// snapshot is the only statistics history kept once working records are
// cleared.
func PostSnapshot(summaries []models.SectionSummary, styles map[string]models.WritingStyleAnalysis) models.PostStatistics {
	rollup := (&Aggregator{}).Aggregate(summaries, styles)

	snap := models.PostStatistics{
		WordCount:           rollup.WritingMetrics.TotalWords,
		TotalErrors:         rollup.QualityMetrics.TotalErrors,
		ErrorsByCategory:    rollup.QualityMetrics.ErrorsByCategory,
		MissingRequirements: []string{},
		TotalSections:       rollup.WritingMetrics.TotalSections,
		CompletedSections:   rollup.WritingMetrics.CompletedSections,
		Clarity:             rollup.QualityMetrics.Clarity,
		Complexity:          rollup.QualityMetrics.Complexity,
		ActiveVoice:         rollup.QualityMetrics.ActiveVoice,
		Tone:                rollup.Style.DominantTone,
	}

	seen := make(map[string]struct{})
	var vocabulary float64
	analysed := 0
	for _, s := range summaries {
		snap.RequirementsMet += max(s.MetRequirements, 0)
		snap.RequirementsTotal += max(s.TotalRequirements, 0)
		for _, m := range s.MissingRequirements {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			snap.MissingRequirements = append(snap.MissingRequirements, m)
		}
		if st, ok := styles[s.SectionID]; ok {
			analysed++
			vocabulary += ClampStyle(st).Complexity.WordChoice.AcademicVocabularyScore
		}
	}
	snap.AcademicVocabularyScore = safeDiv(vocabulary, float64(analysed))
	return snap
}
