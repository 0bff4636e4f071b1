package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"essaycoach-be/internal/models"
)

type styleKey struct {
	userID    string
	sectionID string
}

// MemoryRecordStore is a process-local RecordStore and DraftStore, used in
// tests and when RECORD_STORE=memory.
type MemoryRecordStore struct {
	mu           sync.RWMutex
	errorStats   []models.ErrorStatRecord
	completeness []models.CompletenessStatRecord
	styles       map[styleKey]models.StyleAnalysisRecord
	drafts       map[string]models.EssayDraft

	now func() time.Time
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{
		styles: make(map[styleKey]models.StyleAnalysisRecord),
		drafts: make(map[string]models.EssayDraft),
		now:    time.Now,
	}
}

func (m *MemoryRecordStore) ListErrorStats(_ context.Context, userID string, sectionIDs []string) ([]models.ErrorStatRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set := sectionSet(sectionIDs)
	out := []models.ErrorStatRecord{}
	for _, r := range m.errorStats {
		if r.UserID == userID && inSet(set, r.SectionID) {
			out = append(out, cloneErrorStat(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *MemoryRecordStore) ListCompletenessStats(_ context.Context, userID string, sectionIDs []string) ([]models.CompletenessStatRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set := sectionSet(sectionIDs)
	out := []models.CompletenessStatRecord{}
	for _, r := range m.completeness {
		if r.UserID == userID && inSet(set, r.SectionID) {
			r.Details.Met = append([]string(nil), r.Details.Met...)
			r.Details.Missing = append([]string(nil), r.Details.Missing...)
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (m *MemoryRecordStore) GetLatestStyleAnalysis(_ context.Context, userID, sectionID string) (*models.WritingStyleAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.styles[styleKey{userID, sectionID}]
	if !ok {
		return nil, nil
	}
	a := rec.Analysis
	return &a, nil
}

func (m *MemoryRecordStore) AppendErrorStat(_ context.Context, rec *models.ErrorStatRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorStats = append(m.errorStats, cloneErrorStat(*rec))
	return nil
}

func (m *MemoryRecordStore) AppendCompletenessStat(_ context.Context, rec *models.CompletenessStatRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completeness = append(m.completeness, *rec)
	return nil
}

func (m *MemoryRecordStore) PutStyleAnalysis(_ context.Context, userID, sectionID string, analysis models.WritingStyleAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.styles[styleKey{userID, sectionID}] = models.StyleAnalysisRecord{
		UserID:    userID,
		SectionID: sectionID,
		Analysis:  analysis,
		UpdatedAt: m.now(),
	}
	return nil
}

func (m *MemoryRecordStore) ClearSections(_ context.Context, userID string, sectionIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := sectionSet(sectionIDs)
	drop := func(uid, sid string) bool { return uid == userID && inSet(set, sid) }

	m.errorStats = filterSlice(m.errorStats, func(r models.ErrorStatRecord) bool { return !drop(r.UserID, r.SectionID) })
	m.completeness = filterSlice(m.completeness, func(r models.CompletenessStatRecord) bool { return !drop(r.UserID, r.SectionID) })
	for k := range m.styles {
		if drop(k.userID, k.sectionID) {
			delete(m.styles, k)
		}
	}
	return nil
}

func (m *MemoryRecordStore) LastRecordedAt(_ context.Context) (map[string]time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	latest := make(map[string]time.Time)
	for _, r := range m.errorStats {
		keepLatest(latest, r.UserID, r.Timestamp)
	}
	for _, r := range m.completeness {
		keepLatest(latest, r.UserID, r.Timestamp)
	}
	for _, r := range m.styles {
		keepLatest(latest, r.UserID, r.UpdatedAt)
	}
	return latest, nil
}

func (m *MemoryRecordStore) ListSections(_ context.Context, userID string) ([]models.EssaySection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.drafts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]models.EssaySection(nil), d.Sections...), nil
}

func (m *MemoryRecordStore) ReplaceSections(_ context.Context, userID string, sections []models.EssaySection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[userID] = models.EssayDraft{
		UserID:    userID,
		Sections:  append([]models.EssaySection(nil), sections...),
		UpdatedAt: m.now(),
	}
	return nil
}

func (m *MemoryRecordStore) DeleteSections(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, userID)
	return nil
}

func (m *MemoryRecordStore) LastEditedAt(_ context.Context) (map[string]time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	edited := make(map[string]time.Time, len(m.drafts))
	for uid, d := range m.drafts {
		edited[uid] = d.UpdatedAt
	}
	return edited, nil
}

func cloneErrorStat(r models.ErrorStatRecord) models.ErrorStatRecord {
	counts := make(map[string]int, len(r.ErrorsByCategory))
	for k, v := range r.ErrorsByCategory {
		counts[k] = v
	}
	r.ErrorsByCategory = counts
	r.DetailedErrors = append([]models.ErrorDetail(nil), r.DetailedErrors...)
	return r
}

func filterSlice[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
