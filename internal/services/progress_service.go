package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"essaycoach-be/internal/models"
	"essaycoach-be/internal/stats"
)

// Progress report window
const (
	progressMonths = 3
	progressPeriod = "3m"
)

// PostStatisticsStore aggregates submitted essays.
type PostStatisticsStore interface {
	GetPostTypeBreakdown(ctx context.Context, userID string, since time.Time) ([]models.PostTypeCount, error)
	GetEssayTrend(ctx context.Context, userID string, since time.Time) ([]models.EssayTrendPoint, error)
}

// ProgressService builds the long term progress report over submitted essays.
type ProgressService struct {
	posts     PostStore
	postStats PostStatisticsStore
	now       func() time.Time
}

func NewProgressService(posts PostStore, postStats PostStatisticsStore) *ProgressService {
	return &ProgressService{posts: posts, postStats: postStats, now: time.Now}
}

// MonthlyReport covers the essays submitted in the last three months.
func (s *ProgressService) MonthlyReport(ctx context.Context, userID string) (models.ProgressReport, error) {
	since := s.now().AddDate(0, -progressMonths, 0)

	posts, err := s.posts.ListByUserSince(ctx, userID, since)
	if err != nil {
		return models.ProgressReport{}, fmt.Errorf("listing posts: %w", err)
	}
	report := stats.BuildProgressReport(posts, progressPeriod)

	// The aggregations only decorate the report; a failure leaves them empty.
	if trend, err := s.postStats.GetEssayTrend(ctx, userID, since); err != nil {
		slog.WarnContext(ctx, "failed to load essay trend", "error", err)
	} else {
		report.ActivityTrend = trend
	}
	if types, err := s.postStats.GetPostTypeBreakdown(ctx, userID, since); err != nil {
		slog.WarnContext(ctx, "failed to load post types", "error", err)
	} else {
		report.PostTypes = types
	}
	return report, nil
}
