package stats

import (
	"time"

	"essaycoach-be/internal/models"
	"essaycoach-be/internal/utils"
)

// NormalizeInput is everything known about one section. Records belonging to
// other sections are ignored, so callers may pass an unfiltered batch.
type NormalizeInput struct {
	SectionID         string
	SectionType       models.SectionType
	Content           string
	ErrorStats        []models.ErrorStatRecord
	CompletenessStats []models.CompletenessStatRecord
}

// Normalize reduces the raw records of one section to its summary.
//
// Repeated error checks do not accumulate: the latest error record (by
// timestamp, later position on ties) supplies the error counts. The latest
// completeness record decides IsComplete and the completion rate.
func Normalize(in NormalizeInput) models.SectionSummary {
	summary := models.SectionSummary{
		SectionID:           in.SectionID,
		SectionType:         in.SectionType,
		WordCount:           utils.CountWords(in.Content),
		ErrorsByCategory:    EmptyCategoryCounts(),
		MissingRequirements: []string{},
	}

	var lastActivity time.Time
	touch := func(ts time.Time) {
		if ts.After(lastActivity) {
			lastActivity = ts
		}
	}

	var latestErr *models.ErrorStatRecord
	for i := range in.ErrorStats {
		r := &in.ErrorStats[i]
		if r.SectionID != in.SectionID {
			continue
		}
		touch(r.Timestamp)
		if latestErr == nil || !r.Timestamp.Before(latestErr.Timestamp) {
			latestErr = r
		}
	}
	if latestErr != nil {
		clean, _ := SanitizeErrorStat(*latestErr)
		summary.TotalErrors = clean.TotalErrors
		summary.ErrorsByCategory = clean.ErrorsByCategory
		if summary.SectionType == "" {
			summary.SectionType = clean.SectionType
		}
	}

	var latestComp *models.CompletenessStatRecord
	for i := range in.CompletenessStats {
		r := &in.CompletenessStats[i]
		if r.SectionID != in.SectionID {
			continue
		}
		touch(r.Timestamp)
		if latestComp == nil || !r.Timestamp.Before(latestComp.Timestamp) {
			latestComp = r
		}
	}
	if latestComp != nil {
		clean, _ := SanitizeCompleteness(*latestComp)
		summary.IsComplete = clean.IsComplete
		summary.MetRequirements = clean.MetRequirements
		summary.TotalRequirements = clean.MetRequirements + clean.MissingRequirements
		summary.MissingRequirements = append([]string{}, clean.Details.Missing...)
		if clean.IsComplete {
			summary.CompletionRate = 100
		} else {
			summary.CompletionRate = safeDiv(float64(clean.MetRequirements), float64(summary.TotalRequirements)) * 100
		}
		if summary.SectionType == "" {
			summary.SectionType = clean.SectionType
		}
	}

	summary.LastActivity = lastActivity
	return summary
}
