// Package stats turns per-section writing records into dashboard statistics.
// Everything here is pure: no I/O, no clocks except the injected one.
package stats

import (
	"math"
	"sort"
	"time"

	"essaycoach-be/internal/models"
)

const (
	week  = 7 * 24 * time.Hour
	month = 30 * 24 * time.Hour
)

var sectionTypeOrder = []models.SectionType{
	models.SectionIntroduction,
	models.SectionBody,
	models.SectionConclusion,
}

// Aggregator builds the dashboard rollup from section summaries.
type Aggregator struct {
	// Now is the reference time for recent activity windows.
	Now func() time.Time
}

func NewAggregator() *Aggregator {
	return &Aggregator{Now: time.Now}
}

// Aggregate combines section summaries and their style analyses, keyed by
// section ID, into RollupStatistics. It never fails: with no summaries it
// returns EmptyStatistics, and missing analyses simply leave the style
// metrics out of the means.
func (a *Aggregator) Aggregate(summaries []models.SectionSummary, styles map[string]models.WritingStyleAnalysis) models.RollupStatistics {
	if len(summaries) == 0 {
		return EmptyStatistics()
	}

	sorted := SortByActivity(summaries)

	clamped := make(map[string]models.WritingStyleAnalysis, len(styles))
	for id, s := range styles {
		clamped[id] = ClampStyle(s)
	}
	styleOf := func(id string) *models.WritingStyleAnalysis {
		s, ok := clamped[id]
		if !ok {
			return nil
		}
		return &s
	}

	out := EmptyStatistics()
	out.RecentActivity = a.recentActivity(sorted)
	out.WritingMetrics = writingMetrics(sorted)
	out.QualityMetrics = qualityMetrics(sorted, styleOf)
	out.TopPerformance = topPerformance(sorted, styleOf)
	out.SectionRates = sectionRates(sorted)

	// sections never checked carry no activity and cannot anchor a trend
	active := make([]models.SectionSummary, 0, len(sorted))
	for _, s := range sorted {
		if !s.LastActivity.IsZero() {
			active = append(active, s)
		}
	}
	if len(active) >= 2 {
		first := active[0]
		last := active[len(active)-1]
		fp := SummaryTrendPoint(first, styleOf(first.SectionID))
		lp := SummaryTrendPoint(last, styleOf(last.SectionID))
		out.Improvement = models.Improvement{
			ErrorReduction:        ErrorReduction(fp, lp),
			ClarityImprovement:    ClarityImprovement(fp, lp),
			ActiveVoiceIncrease:   ActiveVoiceIncrease(fp, lp),
			ComplexityImprovement: ComplexityImprovement(fp, lp),
		}
	}

	missing := make([][]string, 0, len(sorted))
	analysed := make([]models.WritingStyleAnalysis, 0, len(sorted))
	for _, s := range sorted {
		missing = append(missing, s.MissingRequirements)
		if st := styleOf(s.SectionID); st != nil {
			analysed = append(analysed, *st)
		}
	}
	out.FocusAreas = FocusAreas(missing)
	out.Style = StyleOverview(analysed)

	return out
}

// SortByActivity returns a copy of summaries ordered by LastActivity,
// oldest first. The sort is stable so equal timestamps keep input order,
// and already sorted input comes back unchanged.
func SortByActivity(summaries []models.SectionSummary) []models.SectionSummary {
	sorted := make([]models.SectionSummary, len(summaries))
	copy(sorted, summaries)
	less := func(i, j int) bool {
		return sorted[i].LastActivity.Before(sorted[j].LastActivity)
	}
	if !sort.SliceIsSorted(sorted, less) {
		sort.SliceStable(sorted, less)
	}
	return sorted
}

func (a *Aggregator) recentActivity(sorted []models.SectionSummary) models.RecentActivity {
	now := time.Now()
	if a != nil && a.Now != nil {
		now = a.Now()
	}

	var ra models.RecentActivity
	var latest time.Time
	for _, s := range sorted {
		if s.LastActivity.IsZero() {
			continue
		}
		if s.LastActivity.After(latest) {
			latest = s.LastActivity
		}
		age := now.Sub(s.LastActivity)
		if age <= week {
			ra.Last7Days++
		}
		if age <= month {
			ra.Last30Days++
		}
	}
	if !latest.IsZero() {
		ra.LastActivityDate = &latest
	}
	return ra
}

func writingMetrics(sorted []models.SectionSummary) models.WritingMetrics {
	wm := models.WritingMetrics{TotalSections: len(sorted)}
	for _, s := range sorted {
		wm.TotalWords += max(s.WordCount, 0)
		if s.IsComplete {
			wm.CompletedSections++
		}
	}
	wm.AverageWordCount = safeDiv(float64(wm.TotalWords), float64(wm.TotalSections))
	wm.CompletionRate = safeDiv(float64(wm.CompletedSections), float64(wm.TotalSections)) * 100
	return wm
}

func qualityMetrics(sorted []models.SectionSummary, styleOf func(string) *models.WritingStyleAnalysis) models.QualityMetrics {
	qm := models.QualityMetrics{ErrorsByCategory: EmptyCategoryCounts()}

	var totalWords int
	var clarity, complexity, active float64
	analysed := 0
	for _, s := range sorted {
		totalWords += max(s.WordCount, 0)
		qm.TotalErrors += max(s.TotalErrors, 0)
		for name, n := range s.ErrorsByCategory {
			if models.IsErrorCategory(name) && n > 0 {
				qm.ErrorsByCategory[name] += n
			}
		}
		if st := styleOf(s.SectionID); st != nil {
			analysed++
			clarity += st.Clarity.Score
			complexity += ComplexityScore(*st)
			active += st.Voice.ActiveVoicePercentage
		}
	}

	qm.Clarity = safeDiv(clarity, float64(analysed))
	qm.Complexity = safeDiv(complexity, float64(analysed))
	qm.ActiveVoice = safeDiv(active, float64(analysed))
	qm.ErrorRate = safeDiv(float64(qm.TotalErrors), float64(totalWords))
	return qm
}

func topPerformance(sorted []models.SectionSummary, styleOf func(string) *models.WritingStyleAnalysis) models.TopPerformance {
	if len(sorted) == 0 {
		return models.TopPerformance{}
	}

	tp := models.TopPerformance{HasData: true, LowestErrorCount: math.MaxInt}
	lowestRate := math.Inf(1)
	for _, s := range sorted {
		tp.LowestErrorCount = min(tp.LowestErrorCount, max(s.TotalErrors, 0))
		if s.WordCount > 0 {
			lowestRate = math.Min(lowestRate, float64(max(s.TotalErrors, 0))/float64(s.WordCount))
		}
		if st := styleOf(s.SectionID); st != nil {
			tp.HighestClarity = math.Max(tp.HighestClarity, st.Clarity.Score)
			tp.HighestActiveVoice = math.Max(tp.HighestActiveVoice, st.Voice.ActiveVoicePercentage)
		}
	}
	// no section had words to rate
	if math.IsInf(lowestRate, 1) {
		lowestRate = 0
	}
	tp.LowestErrorRate = lowestRate
	return tp
}

func sectionRates(sorted []models.SectionSummary) []models.SectionRate {
	byType := make(map[models.SectionType]*models.SectionRate, len(sectionTypeOrder))
	for _, s := range sorted {
		r, ok := byType[s.SectionType]
		if !ok {
			r = &models.SectionRate{Type: s.SectionType}
			byType[s.SectionType] = r
		}
		r.Total++
		if s.IsComplete {
			r.Completed++
		}
	}

	rates := make([]models.SectionRate, 0, len(sectionTypeOrder))
	for _, t := range sectionTypeOrder {
		r, ok := byType[t]
		if !ok {
			continue
		}
		r.Rate = safeDiv(float64(r.Completed), float64(r.Total)) * 100
		rates = append(rates, *r)
	}
	return rates
}
