package stats

import "essaycoach-be/internal/models"

const maxStyleNotes = 3

// StyleOverview combines several style analyses into one description.
// analyses must already be clamped.
func StyleOverview(analyses []models.WritingStyleAnalysis) models.StyleOverview {
	if len(analyses) == 0 {
		return emptyStyleOverview()
	}

	var formal, informal, neutral int
	var activeSum, claritySum float64
	strengths := make([]string, 0)
	improvements := make([]string, 0)
	transitions := make([]string, 0, len(analyses))

	for _, a := range analyses {
		switch a.Tone.Type {
		case "Formal":
			formal++
		case "Informal":
			informal++
		case "Neutral":
			neutral++
		}
		activeSum += a.Voice.ActiveVoicePercentage
		claritySum += a.Clarity.Score
		strengths = append(strengths, a.Clarity.Strengths...)
		improvements = append(improvements, a.Clarity.Improvements...)

		strength := a.Complexity.ParagraphCohesion.TransitionStrength
		if strength == "" {
			strength = "Moderate"
		}
		transitions = append(transitions, strength)
	}

	n := float64(len(analyses))
	return models.StyleOverview{
		DominantTone:       dominantTone(formal, informal, neutral),
		VoiceType:          VoiceType(activeSum / n),
		ClarityLevel:       ClarityLevel(claritySum / n),
		TransitionStrength: mostCommon(transitions),
		Strengths:          firstUnique(strengths, maxStyleNotes),
		Improvements:       firstUnique(improvements, maxStyleNotes),
	}
}

// VoiceType labels an active voice percentage.
func VoiceType(activePercentage float64) string {
	switch {
	case activePercentage > 70:
		return "Active"
	case activePercentage < 30:
		return "Passive"
	}
	return "Mixed"
}

// ClarityLevel labels a clarity score.
func ClarityLevel(score float64) string {
	switch {
	case score >= 80:
		return "High"
	case score >= 60:
		return "Moderate"
	}
	return "Low"
}

func dominantTone(formal, informal, neutral int) string {
	if formal > informal && formal > neutral {
		return "Formal"
	}
	if informal > formal && informal > neutral {
		return "Informal"
	}
	return "Neutral"
}

// mostCommon returns the most frequent value; on ties the value that reached
// the count first wins.
func mostCommon(values []string) string {
	counts := make(map[string]int, len(values))
	best, bestCount := "", 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func firstUnique(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, limit)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
