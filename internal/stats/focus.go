package stats

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"essaycoach-be/internal/models"
)

const (
	maxFocusAreas     = 3
	defaultSuggestion = "Focus on improving this area"
	// Words shorter than this are never fuzzy matched against topics.
	minFuzzyWordLen = 4
)

var focusTopics = []string{"thesis", "evidence", "transitions", "clarity", "complexity", "vocabulary"}

var focusSuggestions = map[string]string{
	"thesis":      "Make your main argument clearer",
	"evidence":    "Add more supporting examples",
	"transitions": "Improve paragraph connections",
	"clarity":     "Use clearer language and structure",
	"complexity":  "Vary your sentence structure",
	"vocabulary":  "Use more academic vocabulary",
}

// SuggestionFor maps a missed requirement to advice. Requirement names are
// free text from the analysis service, so each word is fuzzy matched
// against the known topics and the best scoring topic wins.
func SuggestionFor(requirement string) string {
	if topic, ok := matchTopic(requirement); ok {
		return focusSuggestions[topic]
	}
	return defaultSuggestion
}

func matchTopic(requirement string) (string, bool) {
	text := strings.ToLower(requirement)
	for _, topic := range focusTopics {
		if strings.Contains(text, topic) {
			return topic, true
		}
	}

	best, bestScore, found := "", 0, false
	for _, word := range strings.FieldsFunc(text, notLetter) {
		if len(word) < minFuzzyWordLen {
			continue
		}
		matches := fuzzy.Find(word, focusTopics)
		if len(matches) == 0 {
			continue
		}
		if !found || matches[0].Score > bestScore {
			best, bestScore, found = matches[0].Str, matches[0].Score, true
		}
	}
	return best, found
}

func notLetter(r rune) bool {
	return !(r >= 'a' && r <= 'z')
}

// FocusAreas returns the most frequently missed requirements, most frequent
// first; equal counts keep the order in which they were first seen.
func FocusAreas(missing [][]string) []models.FocusArea {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, list := range missing {
		for _, name := range list {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxFocusAreas {
		order = order[:maxFocusAreas]
	}

	areas := make([]models.FocusArea, 0, len(order))
	for _, name := range order {
		areas = append(areas, models.FocusArea{
			Name:       name,
			Count:      counts[name],
			Suggestion: SuggestionFor(name),
		})
	}
	return areas
}
