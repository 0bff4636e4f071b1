package models

import (
	"strings"
	"time"
)

// Error categories reported by the essay checker
const (
	CategorySpelling       = "spelling"
	CategoryPunctuation    = "punctuation"
	CategoryLexicoSemantic = "lexicoSemantic"
	CategoryStylistic      = "stylistic"
	CategoryTypographical  = "typographical"
)

// ErrorCategories is the fixed, ordered set of error categories.
var ErrorCategories = []string{
	CategorySpelling,
	CategoryPunctuation,
	CategoryLexicoSemantic,
	CategoryStylistic,
	CategoryTypographical,
}

// IsErrorCategory reports whether name is one of ErrorCategories.
func IsErrorCategory(name string) bool {
	for _, c := range ErrorCategories {
		if c == name {
			return true
		}
	}
	return false
}

type SectionType string

const (
	SectionIntroduction SectionType = "introduction"
	SectionBody         SectionType = "body"
	SectionConclusion   SectionType = "conclusion"
)

// ParseSectionType accepts the labels used by the client ("Body Paragraph 2",
// "bodyParagraph", "Conclusion", ...) and maps them to a SectionType.
func ParseSectionType(label string) (SectionType, bool) {
	s := labelReplacer.Replace(strings.ToLower(label))
	switch {
	case strings.HasPrefix(s, "intro"):
		return SectionIntroduction, true
	case strings.HasPrefix(s, "body"):
		return SectionBody, true
	case strings.HasPrefix(s, "conclusion"):
		return SectionConclusion, true
	}
	return "", false
}

var labelReplacer = strings.NewReplacer(" ", "", "_", "", "-", "")

// ErrorDetail is a single issue found by the essay checker
type ErrorDetail struct {
	Category    string   `json:"category" bson:"category"`
	Type        string   `json:"type" bson:"type"`
	Message     string   `json:"message" bson:"message"`
	Text        string   `json:"text" bson:"text"`
	Suggestions []string `json:"suggestions" bson:"suggestions"`
}

// ErrorStatRecord is appended every time a section is checked for errors.
type ErrorStatRecord struct {
	ID               string         `json:"id" bson:"_id,omitempty"`
	UserID           string         `json:"userId" bson:"userId"`
	SectionID        string         `json:"sectionId" bson:"sectionId"`
	SectionType      SectionType    `json:"sectionType" bson:"sectionType"`
	Timestamp        time.Time      `json:"timestamp" bson:"timestamp"`
	TotalErrors      int            `json:"totalErrors" bson:"totalErrors"`
	ErrorsByCategory map[string]int `json:"errorsByCategory" bson:"errorsByCategory"`
	DetailedErrors   []ErrorDetail  `json:"detailedErrors" bson:"detailedErrors"`
}

// CompletenessDetails lists the rubric requirements a section met or missed
type CompletenessDetails struct {
	Met     []string `json:"met" bson:"met"`
	Missing []string `json:"missing" bson:"missing"`
}

// CompletenessStatRecord is appended every time a section's completeness is evaluated.
type CompletenessStatRecord struct {
	ID                  string              `json:"id" bson:"_id,omitempty"`
	UserID              string              `json:"userId" bson:"userId"`
	SectionID           string              `json:"sectionId" bson:"sectionId"`
	SectionType         SectionType         `json:"sectionType" bson:"sectionType"`
	Timestamp           time.Time           `json:"timestamp" bson:"timestamp"`
	IsComplete          bool                `json:"isComplete" bson:"isComplete"`
	MetRequirements     int                 `json:"metRequirements" bson:"metRequirements"`
	MissingRequirements int                 `json:"missingRequirements" bson:"missingRequirements"`
	Details             CompletenessDetails `json:"details" bson:"details"`
}

type Tone struct {
	Type            string   `json:"type" bson:"type"` // Formal, Informal, Neutral
	Confidence      float64  `json:"confidence" bson:"confidence"`
	Characteristics []string `json:"characteristics" bson:"characteristics"`
}

type Voice struct {
	Type                  string  `json:"type" bson:"type"` // Active, Passive, Mixed
	ActiveVoicePercentage float64 `json:"activeVoicePercentage" bson:"activeVoicePercentage"`
	PassiveVoiceInstances int     `json:"passiveVoiceInstances" bson:"passiveVoiceInstances"`
}

type Clarity struct {
	Score        float64  `json:"score" bson:"score"`
	Level        string   `json:"level" bson:"level"` // High, Moderate, Low
	Strengths    []string `json:"strengths" bson:"strengths"`
	Improvements []string `json:"improvements" bson:"improvements"`
}

type SentenceStructure struct {
	Score         float64 `json:"score" bson:"score"`
	AverageLength float64 `json:"averageLength" bson:"averageLength"`
	VarietyScore  float64 `json:"varietyScore" bson:"varietyScore"`
}

type WordChoice struct {
	ComplexWordsPercentage  float64 `json:"complexWordsPercentage" bson:"complexWordsPercentage"`
	AcademicVocabularyScore float64 `json:"academicVocabularyScore" bson:"academicVocabularyScore"`
}

type ParagraphCohesion struct {
	Score              float64 `json:"score" bson:"score"`
	TransitionStrength string  `json:"transitionStrength" bson:"transitionStrength"` // Strong, Moderate, Weak
	LogicalFlowScore   float64 `json:"logicalFlowScore" bson:"logicalFlowScore"`
}

type Complexity struct {
	SentenceStructure SentenceStructure `json:"sentenceStructure" bson:"sentenceStructure"`
	WordChoice        WordChoice        `json:"wordChoice" bson:"wordChoice"`
	ParagraphCohesion ParagraphCohesion `json:"paragraphCohesion" bson:"paragraphCohesion"`
}

// WritingStyleAnalysis is the latest style assessment of one section.
type WritingStyleAnalysis struct {
	Tone       Tone       `json:"tone" bson:"tone"`
	Voice      Voice      `json:"voice" bson:"voice"`
	Clarity    Clarity    `json:"clarity" bson:"clarity"`
	Complexity Complexity `json:"complexity" bson:"complexity"`
}

// StyleAnalysisRecord is the stored form of a WritingStyleAnalysis (one per user and section)
type StyleAnalysisRecord struct {
	UserID    string               `json:"userId" bson:"userId"`
	SectionID string               `json:"sectionId" bson:"sectionId"`
	Analysis  WritingStyleAnalysis `json:"analysis" bson:"analysis"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// EssaySection is one part of the draft being written
type EssaySection struct {
	ID         string      `json:"id" bson:"id"`
	Title      string      `json:"title" bson:"title"`
	Type       SectionType `json:"type" bson:"type"`
	Order      int         `json:"order" bson:"order"`
	Percentage int         `json:"percentage" bson:"percentage"`
	Content    string      `json:"content" bson:"content"`
	UpdatedAt  time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// EssayDraft is the stored section list of a user's current essay
type EssayDraft struct {
	UserID    string         `json:"userId" bson:"userId"`
	Sections  []EssaySection `json:"sections" bson:"sections"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}
