package models

// CategorizedErrors groups checker findings by error category
type CategorizedErrors struct {
	Spelling       []ErrorDetail `json:"spelling"`
	Punctuation    []ErrorDetail `json:"punctuation"`
	LexicoSemantic []ErrorDetail `json:"lexicoSemantic"`
	Stylistic      []ErrorDetail `json:"stylistic"`
	Typographical  []ErrorDetail `json:"typographical"`
}

// Counts returns the number of findings per category, every category present.
func (c CategorizedErrors) Counts() map[string]int {
	return map[string]int{
		CategorySpelling:       len(c.Spelling),
		CategoryPunctuation:    len(c.Punctuation),
		CategoryLexicoSemantic: len(c.LexicoSemantic),
		CategoryStylistic:      len(c.Stylistic),
		CategoryTypographical:  len(c.Typographical),
	}
}

// Flatten returns every finding tagged with its category.
func (c CategorizedErrors) Flatten() []ErrorDetail {
	out := make([]ErrorDetail, 0, c.Total())
	add := func(category string, items []ErrorDetail) {
		for _, it := range items {
			it.Category = category
			out = append(out, it)
		}
	}
	add(CategorySpelling, c.Spelling)
	add(CategoryPunctuation, c.Punctuation)
	add(CategoryLexicoSemantic, c.LexicoSemantic)
	add(CategoryStylistic, c.Stylistic)
	add(CategoryTypographical, c.Typographical)
	return out
}

func (c CategorizedErrors) Total() int {
	return len(c.Spelling) + len(c.Punctuation) + len(c.LexicoSemantic) + len(c.Stylistic) + len(c.Typographical)
}

// ErrorCheckResult - output of the essay checker
type ErrorCheckResult struct {
	Errors   CategorizedErrors `json:"errors"`
	Fallback bool              `json:"fallback"`
}

// CompletenessVerdict - output of the completeness checker
type CompletenessVerdict struct {
	IsComplete            bool                `json:"isComplete"`
	CompletionStatus      CompletenessDetails `json:"completionStatus"`
	FeedbackItems         []string            `json:"feedbackItems"`
	SuggestedImprovements []string            `json:"suggestedImprovements"`
	Fallback              bool                `json:"fallback"`
}

// StyleResult - output of the style analyzer
type StyleResult struct {
	Analysis WritingStyleAnalysis `json:"analysis"`
	Fallback bool                 `json:"fallback"`
}

// AnalyzeSectionRequest is the body of the /api/analysis/* endpoints
type AnalyzeSectionRequest struct {
	SectionID   string `json:"sectionId" binding:"required"`
	SectionType string `json:"sectionType" binding:"required"`
	Content     string `json:"content" binding:"required"`
	// Feedback from the previous completeness check, if any
	PreviousFeedback []string `json:"previousFeedback"`
}

// RecordErrorStatRequest stores an error check result computed by the client
type RecordErrorStatRequest struct {
	SectionID        string         `json:"sectionId" binding:"required"`
	SectionType      string         `json:"sectionType" binding:"required"`
	TotalErrors      int            `json:"totalErrors"`
	ErrorsByCategory map[string]int `json:"errorsByCategory"`
	DetailedErrors   []ErrorDetail  `json:"detailedErrors"`
}

// RecordCompletenessRequest stores a completeness verdict computed by the client
type RecordCompletenessRequest struct {
	SectionID   string              `json:"sectionId" binding:"required"`
	SectionType string              `json:"sectionType" binding:"required"`
	IsComplete  bool                `json:"isComplete"`
	Details     CompletenessDetails `json:"details"`
}

// SectionContentRequest updates the text of one draft section
type SectionContentRequest struct {
	Content string `json:"content"`
}

// SaveSectionsRequest replaces the whole draft section list
type SaveSectionsRequest struct {
	Sections []EssaySection `json:"sections" binding:"required"`
}
