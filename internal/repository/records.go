package repository

import (
	"context"
	"errors"
	"time"

	"essaycoach-be/internal/models"
)

var ErrNotFound = errors.New("not found")

// RecordStore keeps the working records of a user's draft sections.
// A nil or empty sectionIDs slice selects every section of the user.
// Lists come back ordered by timestamp, oldest first.
type RecordStore interface {
	ListErrorStats(ctx context.Context, userID string, sectionIDs []string) ([]models.ErrorStatRecord, error)
	ListCompletenessStats(ctx context.Context, userID string, sectionIDs []string) ([]models.CompletenessStatRecord, error)
	// GetLatestStyleAnalysis returns nil without error when the section was never analysed.
	GetLatestStyleAnalysis(ctx context.Context, userID, sectionID string) (*models.WritingStyleAnalysis, error)

	AppendErrorStat(ctx context.Context, rec *models.ErrorStatRecord) error
	AppendCompletenessStat(ctx context.Context, rec *models.CompletenessStatRecord) error
	// PutStyleAnalysis replaces any earlier analysis of the section.
	PutStyleAnalysis(ctx context.Context, userID, sectionID string, analysis models.WritingStyleAnalysis) error

	// ClearSections drops every record of the given sections.
	ClearSections(ctx context.Context, userID string, sectionIDs []string) error
	// LastRecordedAt maps each user holding records to the time of their
	// newest check or style analysis.
	LastRecordedAt(ctx context.Context) (map[string]time.Time, error)
}

// DraftStore keeps the section list of each user's essay in progress.
type DraftStore interface {
	// ListSections returns ErrNotFound when the user has no draft.
	ListSections(ctx context.Context, userID string) ([]models.EssaySection, error)
	ReplaceSections(ctx context.Context, userID string, sections []models.EssaySection) error
	DeleteSections(ctx context.Context, userID string) error
	// LastEditedAt maps each user with a draft to its last save.
	LastEditedAt(ctx context.Context) (map[string]time.Time, error)
}

// keepLatest records at for userID unless a later time is already held.
func keepLatest(latest map[string]time.Time, userID string, at time.Time) {
	if cur, ok := latest[userID]; !ok || at.After(cur) {
		latest[userID] = at
	}
}

func sectionSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// inSet reports whether id is selected; a nil set selects everything.
func inSet(set map[string]struct{}, id string) bool {
	if set == nil {
		return true
	}
	_, ok := set[id]
	return ok
}
