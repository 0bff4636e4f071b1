package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"essaycoach-be/internal/models"
	"essaycoach-be/internal/repository"
)

var errStoreDown = errors.New("store down")

type fakePostStore struct {
	mu    sync.Mutex
	posts []models.Post
	err   error
}

func (f *fakePostStore) Create(_ context.Context, post *models.Post) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = primitive.NewObjectID()
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakePostStore) ListByUser(_ context.Context, userID string, _, _ int) ([]models.Post, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Post{}
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, len(out), f.err
}

func (f *fakePostStore) ListByUserSince(_ context.Context, userID string, since time.Time) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Post{}
	for _, p := range f.posts {
		if p.UserID == userID && !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, f.err
}

type fakeAnalysis struct {
	errorsFn       func(text string) models.ErrorCheckResult
	completenessFn func(text string, t models.SectionType) models.CompletenessVerdict
	styleFn        func(text string) models.StyleResult
}

func (f *fakeAnalysis) CheckErrors(_ context.Context, text string, _ models.SectionType) models.ErrorCheckResult {
	if f.errorsFn != nil {
		return f.errorsFn(text)
	}
	return DefaultErrorResult()
}

func (f *fakeAnalysis) CheckCompleteness(_ context.Context, text string, t models.SectionType, _ []string) models.CompletenessVerdict {
	if f.completenessFn != nil {
		return f.completenessFn(text, t)
	}
	return DefaultCompleteness()
}

func (f *fakeAnalysis) AnalyzeStyle(_ context.Context, text string) models.StyleResult {
	if f.styleFn != nil {
		return f.styleFn(text)
	}
	return DefaultStyle()
}

// brokenRecordStore fails every read.
type brokenRecordStore struct {
	*repository.MemoryRecordStore
}

func (brokenRecordStore) ListErrorStats(context.Context, string, []string) ([]models.ErrorStatRecord, error) {
	return nil, errStoreDown
}

type memoryCache struct {
	mu    sync.Mutex
	stats map[string]models.RollupStatistics
}

func newMemoryCache() *memoryCache {
	return &memoryCache{stats: make(map[string]models.RollupStatistics)}
}

func (c *memoryCache) Get(_ context.Context, userID string) (*models.RollupStatistics, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stats[userID]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *memoryCache) Set(_ context.Context, userID string, s models.RollupStatistics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats[userID] = s
	return nil
}

func (c *memoryCache) Delete(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.stats, userID)
	return nil
}

func styleWith(clarity, active float64) models.WritingStyleAnalysis {
	a := defaultStyleAnalysis()
	a.Clarity.Score = clarity
	a.Voice.ActiveVoicePercentage = active
	return a
}
