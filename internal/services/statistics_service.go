package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"essaycoach-be/internal/cache"
	"essaycoach-be/internal/essay"
	"essaycoach-be/internal/logger"
	"essaycoach-be/internal/metrics"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/repository"
	"essaycoach-be/internal/stats"
)

var ErrInvalidSectionType = errors.New("invalid section type")

// StatisticsService records analysis results and builds the dashboard rollup.
type StatisticsService struct {
	records     repository.RecordStore
	drafts      repository.DraftStore
	cache       cache.StatsCache
	analysis    AnalysisService
	metrics     *metrics.Metrics
	aggregator  *stats.Aggregator
	concurrency int
	now         func() time.Time
}

type StatisticsServiceConfig struct {
	Records  repository.RecordStore
	Drafts   repository.DraftStore
	Cache    cache.StatsCache // nil disables the last-known-good fallback
	Analysis AnalysisService
	Metrics  *metrics.Metrics
	// Concurrency bounds parallel style lookups and re-analysis.
	Concurrency int
}

func NewStatisticsService(cfg StatisticsServiceConfig) *StatisticsService {
	c := cfg.Cache
	if c == nil {
		c = cache.NopCache{}
	}
	return &StatisticsService{
		records:     cfg.Records,
		drafts:      cfg.Drafts,
		cache:       c,
		analysis:    cfg.Analysis,
		metrics:     cfg.Metrics,
		aggregator:  stats.NewAggregator(),
		concurrency: max(cfg.Concurrency, 1),
		now:         time.Now,
	}
}

func parseSectionType(label string) (models.SectionType, error) {
	t, ok := models.ParseSectionType(label)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSectionType, label)
	}
	return t, nil
}

// RecordErrorStat appends an error check computed by the client.
func (s *StatisticsService) RecordErrorStat(ctx context.Context, userID string, req models.RecordErrorStatRequest) (*models.ErrorStatRecord, error) {
	sectionType, err := parseSectionType(req.SectionType)
	if err != nil {
		return nil, err
	}
	rec := models.ErrorStatRecord{
		UserID:           userID,
		SectionID:        req.SectionID,
		SectionType:      sectionType,
		Timestamp:        s.now(),
		TotalErrors:      req.TotalErrors,
		ErrorsByCategory: req.ErrorsByCategory,
		DetailedErrors:   req.DetailedErrors,
	}
	return s.appendErrorStat(ctx, rec)
}

// RecordErrorCheck appends the result of a server side error check.
func (s *StatisticsService) RecordErrorCheck(ctx context.Context, userID, sectionID string, sectionType models.SectionType, result models.ErrorCheckResult) (*models.ErrorStatRecord, error) {
	rec := models.ErrorStatRecord{
		UserID:           userID,
		SectionID:        sectionID,
		SectionType:      sectionType,
		Timestamp:        s.now(),
		TotalErrors:      result.Errors.Total(),
		ErrorsByCategory: result.Errors.Counts(),
		DetailedErrors:   result.Errors.Flatten(),
	}
	return s.appendErrorStat(ctx, rec)
}

func (s *StatisticsService) appendErrorStat(ctx context.Context, rec models.ErrorStatRecord) (*models.ErrorStatRecord, error) {
	clean, warnings := stats.SanitizeErrorStat(rec)
	for _, w := range warnings {
		slog.WarnContext(ctx, "error stat adjusted", "reason", w)
	}
	if err := s.records.AppendErrorStat(ctx, &clean); err != nil {
		return nil, fmt.Errorf("appending error stat: %w", err)
	}
	return &clean, nil
}

// RecordCompleteness appends a completeness verdict computed by the client.
func (s *StatisticsService) RecordCompleteness(ctx context.Context, userID string, req models.RecordCompletenessRequest) (*models.CompletenessStatRecord, error) {
	sectionType, err := parseSectionType(req.SectionType)
	if err != nil {
		return nil, err
	}
	return s.appendCompleteness(ctx, userID, req.SectionID, sectionType, req.IsComplete, req.Details)
}

// RecordCompletenessVerdict appends the result of a server side completeness check.
func (s *StatisticsService) RecordCompletenessVerdict(ctx context.Context, userID, sectionID string, sectionType models.SectionType, v models.CompletenessVerdict) (*models.CompletenessStatRecord, error) {
	return s.appendCompleteness(ctx, userID, sectionID, sectionType, v.IsComplete, v.CompletionStatus)
}

func (s *StatisticsService) appendCompleteness(ctx context.Context, userID, sectionID string, sectionType models.SectionType, complete bool, details models.CompletenessDetails) (*models.CompletenessStatRecord, error) {
	rec := models.CompletenessStatRecord{
		UserID:              userID,
		SectionID:           sectionID,
		SectionType:         sectionType,
		Timestamp:           s.now(),
		IsComplete:          complete,
		MetRequirements:     len(details.Met),
		MissingRequirements: len(details.Missing),
		Details:             details,
	}
	clean, warnings := stats.SanitizeCompleteness(rec)
	for _, w := range warnings {
		slog.WarnContext(ctx, "completeness stat adjusted", "reason", w)
	}
	if err := s.records.AppendCompletenessStat(ctx, &clean); err != nil {
		return nil, fmt.Errorf("appending completeness stat: %w", err)
	}
	if err := s.markSection(ctx, userID, sectionID, clean.IsComplete); err != nil {
		slog.WarnContext(ctx, "failed to update section progress", "error", err)
	}
	return &clean, nil
}

// markSection mirrors a completeness verdict into the draft's progress.
func (s *StatisticsService) markSection(ctx context.Context, userID, sectionID string, complete bool) error {
	if s.drafts == nil {
		return nil
	}
	sections, err := s.drafts.ListSections(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.drafts.ReplaceSections(ctx, userID, essay.MarkChecked(sections, sectionID, complete))
}

// PutStyleAnalysis stores the section's analysis, replacing any earlier one.
func (s *StatisticsService) PutStyleAnalysis(ctx context.Context, userID, sectionID string, analysis models.WritingStyleAnalysis) (models.WritingStyleAnalysis, error) {
	clean := fillStyleLabels(analysis)
	if err := s.records.PutStyleAnalysis(ctx, userID, sectionID, clean); err != nil {
		return models.WritingStyleAnalysis{}, fmt.Errorf("storing style analysis: %w", err)
	}
	return clean, nil
}

// GetStyleAnalysis returns repository.ErrNotFound when the section was never analysed.
func (s *StatisticsService) GetStyleAnalysis(ctx context.Context, userID, sectionID string) (*models.WritingStyleAnalysis, error) {
	a, err := s.records.GetLatestStyleAnalysis(ctx, userID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("loading style analysis: %w", err)
	}
	if a == nil {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

// SectionSummary normalizes the records of a single section.
func (s *StatisticsService) SectionSummary(ctx context.Context, userID, sectionID string) (models.SectionSummary, error) {
	sections, err := s.draftSections(ctx, userID)
	if err != nil {
		return models.SectionSummary{}, err
	}
	errorStats, err := s.records.ListErrorStats(ctx, userID, []string{sectionID})
	if err != nil {
		return models.SectionSummary{}, fmt.Errorf("listing error stats: %w", err)
	}
	completeness, err := s.records.ListCompletenessStats(ctx, userID, []string{sectionID})
	if err != nil {
		return models.SectionSummary{}, fmt.Errorf("listing completeness stats: %w", err)
	}

	in := stats.NormalizeInput{SectionID: sectionID, ErrorStats: errorStats, CompletenessStats: completeness}
	found := len(errorStats) > 0 || len(completeness) > 0
	for _, sec := range sections {
		if sec.ID == sectionID {
			in.SectionType, in.Content, found = sec.Type, sec.Content, true
			break
		}
	}
	if !found {
		return models.SectionSummary{}, repository.ErrNotFound
	}
	return stats.Normalize(in), nil
}

// Rollup builds the dashboard statistics. It never fails: when the stores
// cannot be read it serves the last rollup cached for the user, or the
// empty statistics. The returned source is one of the metrics.Source* values.
func (s *StatisticsService) Rollup(ctx context.Context, userID string) (models.RollupStatistics, string) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "essaycoach.services.statistics"})
	sc := logger.StartSpan(ctx, "statistics.rollup")
	defer sc.End()
	ctx = sc.Context()

	rollup, err := s.liveRollup(ctx, userID)
	if err == nil {
		if err := s.cache.Set(ctx, userID, rollup); err != nil {
			slog.WarnContext(ctx, "failed to cache rollup", "error", err)
		}
		s.metrics.RollupServed(metrics.SourceLive)
		return rollup, metrics.SourceLive
	}
	sc.RecordError(err)
	slog.ErrorContext(ctx, "rollup failed, serving fallback", "error", err)

	cached, ok, cacheErr := s.cache.Get(ctx, userID)
	if cacheErr != nil {
		slog.WarnContext(ctx, "failed to read cached rollup", "error", cacheErr)
	}
	if ok {
		s.metrics.RollupServed(metrics.SourceCache)
		return *cached, metrics.SourceCache
	}
	s.metrics.RollupServed(metrics.SourceEmpty)
	return stats.EmptyStatistics(), metrics.SourceEmpty
}

func (s *StatisticsService) liveRollup(ctx context.Context, userID string) (models.RollupStatistics, error) {
	summaries, err := s.Summaries(ctx, userID)
	if err != nil {
		return models.RollupStatistics{}, err
	}
	styles, err := s.gatherStyles(ctx, userID, summaries)
	if err != nil {
		return models.RollupStatistics{}, err
	}
	return s.aggregator.Aggregate(summaries, styles), nil
}

// Summaries normalizes every section of the user's draft plus any section
// that only exists in the records.
func (s *StatisticsService) Summaries(ctx context.Context, userID string) ([]models.SectionSummary, error) {
	sections, err := s.draftSections(ctx, userID)
	if err != nil {
		return nil, err
	}
	errorStats, err := s.records.ListErrorStats(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("listing error stats: %w", err)
	}
	completeness, err := s.records.ListCompletenessStats(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("listing completeness stats: %w", err)
	}

	inputs := make([]stats.NormalizeInput, 0, len(sections))
	known := make(map[string]bool, len(sections))
	for _, sec := range sections {
		known[sec.ID] = true
		inputs = append(inputs, stats.NormalizeInput{SectionID: sec.ID, SectionType: sec.Type, Content: sec.Content})
	}
	addOrphan := func(id string) {
		if !known[id] {
			known[id] = true
			inputs = append(inputs, stats.NormalizeInput{SectionID: id})
		}
	}
	for _, r := range errorStats {
		addOrphan(r.SectionID)
	}
	for _, r := range completeness {
		addOrphan(r.SectionID)
	}

	summaries := make([]models.SectionSummary, len(inputs))
	for i, in := range inputs {
		in.ErrorStats = errorStats
		in.CompletenessStats = completeness
		summaries[i] = stats.Normalize(in)
	}
	return summaries, nil
}

// gatherStyles loads the style analysis of every section with at most
// s.concurrency lookups in flight.
func (s *StatisticsService) gatherStyles(ctx context.Context, userID string, summaries []models.SectionSummary) (map[string]models.WritingStyleAnalysis, error) {
	results := make([]*models.WritingStyleAnalysis, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, sum := range summaries {
		g.Go(func() error {
			a, err := s.records.GetLatestStyleAnalysis(gctx, userID, sum.SectionID)
			if err != nil {
				return fmt.Errorf("loading style analysis of %s: %w", sum.SectionID, err)
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	styles := make(map[string]models.WritingStyleAnalysis, len(summaries))
	for i, a := range results {
		if a != nil {
			styles[summaries[i].SectionID] = *a
		}
	}
	return styles, nil
}

// Snapshot freezes the current draft statistics for a submitted essay.
func (s *StatisticsService) Snapshot(ctx context.Context, userID string) (models.PostStatistics, error) {
	summaries, err := s.Summaries(ctx, userID)
	if err != nil {
		return models.PostStatistics{}, err
	}
	styles, err := s.gatherStyles(ctx, userID, summaries)
	if err != nil {
		return models.PostStatistics{}, err
	}
	return stats.PostSnapshot(summaries, styles), nil
}

// RefreshStyleAnalyses re-runs style analysis on every non-empty draft
// section and stores the results. Fallback results are not stored. It
// returns the number of sections updated.
func (s *StatisticsService) RefreshStyleAnalyses(ctx context.Context, userID string) (int, error) {
	sections, err := s.draftSections(ctx, userID)
	if err != nil {
		return 0, err
	}

	var targets []models.EssaySection
	for _, sec := range sections {
		if strings.TrimSpace(sec.Content) != "" {
			targets = append(targets, sec)
		}
	}
	results := make([]models.StyleResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, sec := range targets {
		g.Go(func() error {
			sctx := logger.WithLogFields(gctx, logger.LogFields{SectionID: logger.Ptr(sec.ID)})
			results[i] = s.analysis.AnalyzeStyle(sctx, sec.Content)
			return nil
		})
	}
	_ = g.Wait()

	updated := 0
	for i, r := range results {
		if r.Fallback {
			continue
		}
		if _, err := s.PutStyleAnalysis(ctx, userID, targets[i].ID, r.Analysis); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *StatisticsService) draftSections(ctx context.Context, userID string) ([]models.EssaySection, error) {
	if s.drafts == nil {
		return nil, nil
	}
	sections, err := s.drafts.ListSections(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing draft sections: %w", err)
	}
	return sections, nil
}
