package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PostTypeDiscussion = "discussion"
	PostTypeAdvice     = "advice"
)

// PostStatistics is the statistics snapshot taken when an essay is submitted
type PostStatistics struct {
	WordCount               int            `json:"wordCount" bson:"wordCount"`
	TotalErrors             int            `json:"totalErrors" bson:"totalErrors"`
	ErrorsByCategory        map[string]int `json:"errorsByCategory" bson:"errorsByCategory"`
	RequirementsMet         int            `json:"requirementsMet" bson:"requirementsMet"`
	RequirementsTotal       int            `json:"requirementsTotal" bson:"requirementsTotal"`
	MissingRequirements     []string       `json:"missingRequirements" bson:"missingRequirements"`
	TotalSections           int            `json:"totalSections" bson:"totalSections"`
	CompletedSections       int            `json:"completedSections" bson:"completedSections"`
	Clarity                 float64        `json:"clarity" bson:"clarity"`
	Complexity              float64        `json:"complexity" bson:"complexity"`
	ActiveVoice             float64        `json:"activeVoice" bson:"activeVoice"`
	AcademicVocabularyScore float64        `json:"academicVocabularyScore" bson:"academicVocabularyScore"`
	Tone                    string         `json:"tone" bson:"tone"`
}

// Post is a submitted essay
type Post struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string             `json:"userId" bson:"userId"`
	Username   string             `json:"username" bson:"username"`
	Title      string             `json:"title" bson:"title"`
	Content    string             `json:"content" bson:"content"`
	PostType   string             `json:"postType" bson:"postType"` // "discussion" or "advice"
	Prompt     string             `json:"prompt,omitempty" bson:"prompt,omitempty"`
	Statistics *PostStatistics    `json:"statistics,omitempty" bson:"statistics,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

type SubmitEssayRequest struct {
	Title    string `json:"title" binding:"required"`
	PostType string `json:"postType" binding:"required,oneof=discussion advice"`
	Prompt   string `json:"prompt"`
}

// PostListResponse is a page of submitted essays
type PostListResponse struct {
	Posts       []Post `json:"posts"`
	Total       int    `json:"total"`
	Page        int    `json:"page"`
	PerPage     int    `json:"perPage"`
	HasNextPage bool   `json:"hasNextPage"`
}
