// Package essay holds the ordering rules of a draft's sections.
package essay

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"essaycoach-be/internal/models"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrNotBodySection  = errors.New("only body paragraphs can be removed")
	ErrLastBodySection = errors.New("an essay needs at least one body paragraph")
	ErrInvalidSection  = errors.New("invalid section")
)

// Progress values shown next to each section.
const (
	ProgressEmpty    = 0
	ProgressDrafted  = 50
	ProgressComplete = 100
)

const (
	IntroductionID = "introduction"
	ConclusionID   = "conclusion"
)

// NewBodyID generates ids for inserted body paragraphs.
var NewBodyID = func() string {
	return "body-" + uuid.NewString()
}

// DefaultSections is the outline of a new essay.
func DefaultSections(now time.Time) []models.EssaySection {
	return Renumber([]models.EssaySection{
		{ID: IntroductionID, Title: "Introduction", Type: models.SectionIntroduction, UpdatedAt: now},
		{ID: NewBodyID(), Type: models.SectionBody, UpdatedAt: now},
		{ID: ConclusionID, Title: "Conclusion", Type: models.SectionConclusion, UpdatedAt: now},
	})
}

// InsertBodySection adds an empty body paragraph right before the
// conclusion, or at the end when there is none. The input is not modified.
func InsertBodySection(sections []models.EssaySection, now time.Time) ([]models.EssaySection, models.EssaySection) {
	body := models.EssaySection{
		ID:        NewBodyID(),
		Type:      models.SectionBody,
		UpdatedAt: now,
	}

	at := len(sections)
	for i, s := range sections {
		if s.Type == models.SectionConclusion {
			at = i
			break
		}
	}

	out := make([]models.EssaySection, 0, len(sections)+1)
	out = append(out, sections[:at]...)
	out = append(out, body)
	out = append(out, sections[at:]...)
	out = Renumber(out)
	return out, out[at]
}

// RemoveBodySection deletes a body paragraph and renumbers the rest.
func RemoveBodySection(sections []models.EssaySection, id string) ([]models.EssaySection, error) {
	idx := indexOf(sections, id)
	if idx < 0 {
		return nil, fmt.Errorf("remove %q: %w", id, ErrSectionNotFound)
	}
	if sections[idx].Type != models.SectionBody {
		return nil, fmt.Errorf("remove %q: %w", id, ErrNotBodySection)
	}
	bodies := 0
	for _, s := range sections {
		if s.Type == models.SectionBody {
			bodies++
		}
	}
	if bodies <= 1 {
		return nil, ErrLastBodySection
	}

	out := make([]models.EssaySection, 0, len(sections)-1)
	out = append(out, sections[:idx]...)
	out = append(out, sections[idx+1:]...)
	return Renumber(out), nil
}

// Renumber rewrites Order for every section and the "Body Paragraph N"
// titles of body sections in list order. It returns a new slice.
func Renumber(sections []models.EssaySection) []models.EssaySection {
	out := make([]models.EssaySection, len(sections))
	body := 0
	for i, s := range sections {
		s.Order = i
		if s.Type == models.SectionBody {
			body++
			s.Title = fmt.Sprintf("Body Paragraph %d", body)
		}
		out[i] = s
	}
	return out
}

// UpdateContent replaces the text of a section. A section with text is at
// least drafted; clearing it resets the progress.
func UpdateContent(sections []models.EssaySection, id, content string, now time.Time) ([]models.EssaySection, error) {
	idx := indexOf(sections, id)
	if idx < 0 {
		return nil, fmt.Errorf("update %q: %w", id, ErrSectionNotFound)
	}
	out := append([]models.EssaySection(nil), sections...)
	s := &out[idx]
	s.Content = content
	s.UpdatedAt = now
	switch {
	case isBlank(content):
		s.Percentage = ProgressEmpty
	case s.Percentage == ProgressEmpty:
		s.Percentage = ProgressDrafted
	}
	return out, nil
}

// MarkChecked records the outcome of a completeness check on a section.
func MarkChecked(sections []models.EssaySection, id string, complete bool) []models.EssaySection {
	idx := indexOf(sections, id)
	if idx < 0 {
		return sections
	}
	out := append([]models.EssaySection(nil), sections...)
	if complete {
		out[idx].Percentage = ProgressComplete
	} else {
		out[idx].Percentage = ProgressDrafted
	}
	return out
}

// Validate normalises a client supplied section list: types are derived
// from titles when missing and ids must be unique.
func Validate(sections []models.EssaySection) ([]models.EssaySection, error) {
	seen := make(map[string]struct{}, len(sections))
	out := make([]models.EssaySection, 0, len(sections))
	for _, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: section id is required", ErrInvalidSection)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate section id %q", ErrInvalidSection, s.ID)
		}
		seen[s.ID] = struct{}{}

		if s.Type == "" {
			t, ok := models.ParseSectionType(s.Title)
			if !ok {
				return nil, fmt.Errorf("%w: section %q has no known type", ErrInvalidSection, s.ID)
			}
			s.Type = t
		} else if t, ok := models.ParseSectionType(string(s.Type)); ok {
			s.Type = t
		} else {
			return nil, fmt.Errorf("%w: section %q has unknown type %q", ErrInvalidSection, s.ID, s.Type)
		}
		s.Percentage = min(max(s.Percentage, ProgressEmpty), ProgressComplete)
		out = append(out, s)
	}
	return Renumber(out), nil
}

// Compose joins the section texts into the submitted essay body.
func Compose(sections []models.EssaySection) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if !isBlank(s.Content) {
			parts = append(parts, s.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

func indexOf(sections []models.EssaySection, id string) int {
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
