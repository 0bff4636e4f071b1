package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"essaycoach-be/internal/essay"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/repository"
)

var ErrEmptyEssay = errors.New("essay has no content")

// PostStore persists submitted essays.
type PostStore interface {
	Create(ctx context.Context, post *models.Post) error
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]models.Post, int, error)
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]models.Post, error)
}

// EssayService manages the draft sections of a user's essay and its submission.
type EssayService struct {
	drafts  repository.DraftStore
	records repository.RecordStore
	posts   PostStore
	stats   *StatisticsService
	now     func() time.Time
}

func NewEssayService(drafts repository.DraftStore, records repository.RecordStore, posts PostStore, stats *StatisticsService) *EssayService {
	return &EssayService{
		drafts:  drafts,
		records: records,
		posts:   posts,
		stats:   stats,
		now:     time.Now,
	}
}

// Sections returns the user's draft, creating the default outline on first use.
func (s *EssayService) Sections(ctx context.Context, userID string) ([]models.EssaySection, error) {
	sections, err := s.drafts.ListSections(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		sections = essay.DefaultSections(s.now())
		if err := s.drafts.ReplaceSections(ctx, userID, sections); err != nil {
			return nil, fmt.Errorf("creating draft: %w", err)
		}
		return sections, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading draft: %w", err)
	}
	return sections, nil
}

// SaveSections replaces the draft. Records of sections that disappear from
// the list are cleared.
func (s *EssayService) SaveSections(ctx context.Context, userID string, sections []models.EssaySection) ([]models.EssaySection, error) {
	valid, err := essay.Validate(sections)
	if err != nil {
		return nil, err
	}
	previous, err := s.Sections(ctx, userID)
	if err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(valid))
	for i := range valid {
		keep[valid[i].ID] = true
		if valid[i].UpdatedAt.IsZero() {
			valid[i].UpdatedAt = s.now()
		}
	}
	var dropped []string
	for _, p := range previous {
		if !keep[p.ID] {
			dropped = append(dropped, p.ID)
		}
	}

	if err := s.drafts.ReplaceSections(ctx, userID, valid); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}
	if len(dropped) > 0 {
		if err := s.records.ClearSections(ctx, userID, dropped); err != nil {
			return nil, fmt.Errorf("clearing removed sections: %w", err)
		}
	}
	return valid, nil
}

func (s *EssayService) UpdateContent(ctx context.Context, userID, sectionID, content string) (models.EssaySection, error) {
	sections, err := s.Sections(ctx, userID)
	if err != nil {
		return models.EssaySection{}, err
	}
	updated, err := essay.UpdateContent(sections, sectionID, content, s.now())
	if err != nil {
		return models.EssaySection{}, err
	}
	if err := s.drafts.ReplaceSections(ctx, userID, updated); err != nil {
		return models.EssaySection{}, fmt.Errorf("saving draft: %w", err)
	}
	for _, sec := range updated {
		if sec.ID == sectionID {
			return sec, nil
		}
	}
	return models.EssaySection{}, essay.ErrSectionNotFound
}

// AddBodySection inserts an empty body paragraph before the conclusion.
func (s *EssayService) AddBodySection(ctx context.Context, userID string) ([]models.EssaySection, models.EssaySection, error) {
	sections, err := s.Sections(ctx, userID)
	if err != nil {
		return nil, models.EssaySection{}, err
	}
	updated, added := essay.InsertBodySection(sections, s.now())
	if err := s.drafts.ReplaceSections(ctx, userID, updated); err != nil {
		return nil, models.EssaySection{}, fmt.Errorf("saving draft: %w", err)
	}
	return updated, added, nil
}

// DeleteBodySection removes a body paragraph and every record about it.
func (s *EssayService) DeleteBodySection(ctx context.Context, userID, sectionID string) ([]models.EssaySection, error) {
	sections, err := s.Sections(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := essay.RemoveBodySection(sections, sectionID)
	if err != nil {
		return nil, err
	}
	if err := s.drafts.ReplaceSections(ctx, userID, updated); err != nil {
		return nil, fmt.Errorf("saving draft: %w", err)
	}
	if err := s.records.ClearSections(ctx, userID, []string{sectionID}); err != nil {
		return nil, fmt.Errorf("clearing section records: %w", err)
	}
	return updated, nil
}

// Submit publishes the draft as a post with a statistics snapshot, then
// clears the draft and its working records.
func (s *EssayService) Submit(ctx context.Context, userID, username string, req models.SubmitEssayRequest) (*models.Post, error) {
	sections, err := s.Sections(ctx, userID)
	if err != nil {
		return nil, err
	}
	content := essay.Compose(sections)
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyEssay
	}

	snapshot, err := s.stats.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("building statistics snapshot: %w", err)
	}

	post := &models.Post{
		UserID:     userID,
		Username:   username,
		Title:      strings.TrimSpace(req.Title),
		Content:    content,
		PostType:   req.PostType,
		Prompt:     req.Prompt,
		Statistics: &snapshot,
		CreatedAt:  s.now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("saving post: %w", err)
	}

	ids := make([]string, len(sections))
	for i, sec := range sections {
		ids[i] = sec.ID
	}
	// The post is already saved; leftovers are removed by the sweeper.
	if err := s.records.ClearSections(ctx, userID, ids); err != nil {
		slog.WarnContext(ctx, "failed to clear submitted sections", "error", err)
	}
	if err := s.drafts.DeleteSections(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to delete submitted draft", "error", err)
	}
	return post, nil
}

func (s *EssayService) ListPosts(ctx context.Context, userID string, page, perPage int) ([]models.Post, int, error) {
	posts, total, err := s.posts.ListByUser(ctx, userID, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	return posts, total, nil
}
