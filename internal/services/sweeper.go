package services

import (
	"context"
	"log/slog"
	"time"

	"essaycoach-be/internal/metrics"
	"essaycoach-be/internal/repository"
)

// StartDraftSweeper starts a background goroutine that periodically removes
// abandoned drafts together with their working records. The worker stops
// when ctx is done.
func StartDraftSweeper(ctx context.Context, interval, ttl time.Duration, records repository.RecordStore, drafts repository.DraftStore, m *metrics.Metrics) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("draft sweeper: shutting down")
				return
			case <-ticker.C:
				SweepOnce(ctx, time.Now().Add(-ttl), records, drafts, m)
			}
		}
	}()
}

// SweepOnce removes the draft and every record of each user whose last save
// and last check both happened before cutoff. Users with any newer activity
// keep all of their records, however old. It returns how many users went.
func SweepOnce(ctx context.Context, cutoff time.Time, records repository.RecordStore, drafts repository.DraftStore, m *metrics.Metrics) int {
	latest, err := records.LastRecordedAt(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "draft sweeper: scan records failed", "error", err)
		return 0
	}
	edited, err := drafts.LastEditedAt(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "draft sweeper: scan drafts failed", "error", err)
		return 0
	}
	for userID, at := range edited {
		if cur, ok := latest[userID]; !ok || at.After(cur) {
			latest[userID] = at
		}
	}

	swept := 0
	for userID, at := range latest {
		if !at.Before(cutoff) {
			continue
		}
		if err := records.ClearSections(ctx, userID, nil); err != nil {
			slog.ErrorContext(ctx, "draft sweeper: clear records failed", "user_id", userID, "error", err)
			continue
		}
		if err := drafts.DeleteSections(ctx, userID); err != nil {
			slog.ErrorContext(ctx, "draft sweeper: delete draft failed", "user_id", userID, "error", err)
			continue
		}
		swept++
	}
	if swept > 0 {
		slog.InfoContext(ctx, "draft sweeper: removed abandoned drafts", "count", swept, "cutoff", cutoff)
	}
	m.DraftsSwept(swept)
	return swept
}
