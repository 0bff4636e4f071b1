package models

import "time"

// SectionSummary - canonical per-section view built from raw records
type SectionSummary struct {
	SectionID           string         `json:"sectionId"`
	SectionType         SectionType    `json:"sectionType"`
	WordCount           int            `json:"wordCount"`
	TotalErrors         int            `json:"totalErrors"`
	ErrorsByCategory    map[string]int `json:"errorsByCategory"`
	IsComplete          bool           `json:"isComplete"`
	CompletionRate      float64        `json:"completionRate"` // 0-100
	MetRequirements     int            `json:"metRequirements"`
	TotalRequirements   int            `json:"totalRequirements"`
	MissingRequirements []string       `json:"missingRequirements"`
	LastActivity        time.Time      `json:"lastActivity"` // zero when the section has no records
}

// RecentActivity - sections touched in the last 7 / 30 days
type RecentActivity struct {
	Last7Days        int        `json:"last7Days"`
	Last30Days       int        `json:"last30Days"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
}

type WritingMetrics struct {
	TotalSections     int     `json:"totalSections"`
	TotalWords        int     `json:"totalWords"`
	AverageWordCount  float64 `json:"averageWordCount"`
	CompletedSections int     `json:"completedSections"`
	CompletionRate    float64 `json:"completionRate"` // 0-100
}

type QualityMetrics struct {
	Clarity          float64        `json:"clarity"`
	Complexity       float64        `json:"complexity"`
	ActiveVoice      float64        `json:"activeVoice"`
	ErrorRate        float64        `json:"errorRate"` // errors per word
	TotalErrors      int            `json:"totalErrors"`
	ErrorsByCategory map[string]int `json:"errorsByCategory"`
}

// Improvement - percentage deltas between the earliest and latest section
type Improvement struct {
	ErrorReduction        int `json:"errorReduction"`
	ClarityImprovement    int `json:"clarityImprovement"`
	ActiveVoiceIncrease   int `json:"activeVoiceIncrease"`
	ComplexityImprovement int `json:"complexityImprovement"`
}

// TopPerformance - best values across sections. HasData is false when there
// was nothing to compare and every number is zero.
type TopPerformance struct {
	HasData            bool    `json:"hasData"`
	HighestClarity     float64 `json:"highestClarity"`
	LowestErrorRate    float64 `json:"lowestErrorRate"`
	LowestErrorCount   int     `json:"lowestErrorCount"`
	HighestActiveVoice float64 `json:"highestActiveVoice"`
}

// SectionRate - completion rate per section type
type SectionRate struct {
	Type      SectionType `json:"type"`
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
	Rate      float64     `json:"rate"`
}

// FocusArea - a frequently missed requirement with a suggestion
type FocusArea struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Suggestion string `json:"suggestion"`
}

// StyleOverview - combined style of all analysed sections
type StyleOverview struct {
	DominantTone       string   `json:"dominantTone"`
	VoiceType          string   `json:"voiceType"`
	ClarityLevel       string   `json:"clarityLevel"`
	TransitionStrength string   `json:"transitionStrength"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
}

// RollupStatistics - complete statistics response for the writing dashboard
type RollupStatistics struct {
	RecentActivity RecentActivity `json:"recentActivity"`
	WritingMetrics WritingMetrics `json:"writingMetrics"`
	QualityMetrics QualityMetrics `json:"qualityMetrics"`
	Improvement    Improvement    `json:"improvement"`
	TopPerformance TopPerformance `json:"topPerformance"`
	SectionRates   []SectionRate  `json:"sectionRates"`
	FocusAreas     []FocusArea    `json:"focusAreas"`
	Style          StyleOverview  `json:"style"`
}

// QualityTrendPoint - one submitted essay in the progress report
type QualityTrendPoint struct {
	Date             time.Time        `json:"date"`
	Clarity          float64          `json:"clarity"`
	Complexity       float64          `json:"complexity"`
	ActiveVoice      float64          `json:"activeVoice"`
	Errors           int              `json:"errors"`
	ErrorsByCategory map[string]int   `json:"errorsByCategory"`
	WordCount        int              `json:"wordCount"`
	Tone             string           `json:"tone"`
	Requirements     RequirementTally `json:"requirements"`
}

type RequirementTally struct {
	Met   int `json:"met"`
	Total int `json:"total"`
}

// AreaImprovement - a positive change in one writing area
type AreaImprovement struct {
	Area       string `json:"area"`
	Percentage int    `json:"percentage"`
}

type OverallProgress struct {
	ErrorReduction        int `json:"errorReduction"`
	ClarityImprovement    int `json:"clarityImprovement"`
	ActiveVoiceIncrease   int `json:"activeVoiceIncrease"`
	ComplexityImprovement int `json:"complexityImprovement"`
}

type WritingStats struct {
	TotalPosts       int `json:"totalPosts"`
	AverageWordCount int `json:"averageWordCount"`
	CompletedEssays  int `json:"completedEssays"`
	TotalErrors      int `json:"totalErrors"`
}

// EssayTrendPoint - count of essays submitted on a specific date
type EssayTrendPoint struct {
	Date  string `json:"date" bson:"_id"` // YYYY-MM-DD format
	Count int    `json:"count" bson:"count"`
}

// PostTypeCount - count of essays by post type
type PostTypeCount struct {
	PostType string `json:"postType" bson:"_id"`
	Count    int    `json:"count" bson:"count"`
}

// ProgressReport - long-term progress over submitted essays
type ProgressReport struct {
	QualityTrends   []QualityTrendPoint `json:"qualityTrends"`
	Improvements    []AreaImprovement   `json:"improvements"`
	FocusAreas      []FocusArea         `json:"focusAreas"`
	OverallProgress OverallProgress     `json:"overallProgress"`
	WritingStats    WritingStats        `json:"writingStats"`
	ActivityTrend   []EssayTrendPoint   `json:"activityTrend"`
	PostTypes       []PostTypeCount     `json:"postTypes"`
	Period          string              `json:"period"`
}
