package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionFor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"thesis":                     "Make your main argument clearer",
		"Clear thesis statement":     "Make your main argument clearer",
		"Uses relevant EVIDENCE":     "Add more supporting examples",
		"Smooth transitons":          "Improve paragraph connections",
		"Sentence complexity":        "Vary your sentence structure",
		"Academic vocabulary":        "Use more academic vocabulary",
		"Restates the main argument": defaultSuggestion,
		"":                           defaultSuggestion,
	}
	for requirement, want := range cases {
		assert.Equal(t, want, SuggestionFor(requirement), requirement)
	}
}

func TestFocusAreas_LimitAndOrder(t *testing.T) {
	t.Parallel()

	got := FocusAreas([][]string{
		{"a", "b", "c", "d"},
		{"d", "c"},
		{"d", " ", ""},
	})

	assert.Len(t, got, maxFocusAreas)
	assert.Equal(t, "d", got[0].Name)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, "c", got[1].Name)
	assert.Equal(t, "a", got[2].Name)
}

func TestFocusAreas_Empty(t *testing.T) {
	t.Parallel()

	got := FocusAreas(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
