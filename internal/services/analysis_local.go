package services

import (
	"context"
	"math"
	"regexp"
	"strings"
	"unicode"

	"essaycoach-be/internal/metrics"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/stats"
	"essaycoach-be/internal/utils"
)

var (
	sentenceRE    = regexp.MustCompile(`[^.!?]+[.!?]*`)
	wordRE        = regexp.MustCompile(`[\p{L}']+`)
	spaceBeforeRE = regexp.MustCompile(`\s+[,.;:!?]`)
	lowerIRE      = regexp.MustCompile(`(^|\s)i(\s|'|$)`)
	passiveRE     = regexp.MustCompile(`(?i)\b(am|is|are|was|were|be|been|being)\s+(\w+ly\s+)?\w+(ed|en)\b`)
	digitRE       = regexp.MustCompile(`\d`)
)

var transitionWords = []string{
	"however", "therefore", "furthermore", "moreover", "consequently", "in addition",
	"for example", "for instance", "similarly", "in contrast", "on the other hand",
	"as a result", "finally", "firstly", "secondly", "thus", "hence", "meanwhile",
}

var academicWords = map[string]bool{
	"analyze": true, "analysis": true, "approach": true, "assess": true, "concept": true,
	"consequently": true, "context": true, "data": true, "demonstrate": true, "derive": true,
	"significant": true, "evidence": true, "factor": true, "framework": true, "furthermore": true,
	"hypothesis": true, "indicate": true, "interpret": true, "issue": true, "method": true,
	"moreover": true, "perspective": true, "principle": true, "research": true, "significantly": true,
	"structure": true, "theory": true, "therefore": true, "thus": true, "variable": true,
	"argue": true, "establish": true, "illustrate": true, "implication": true, "substantial": true,
}

var informalMarkers = []string{"gonna", "wanna", "kinda", "stuff", "lots of", "really", "pretty much", "!"}

// LocalAnalyzer approximates the checks with text heuristics. It needs no
// network access and never falls back.
type LocalAnalyzer struct {
	metrics *metrics.Metrics
}

func NewLocalAnalyzer(m *metrics.Metrics) *LocalAnalyzer {
	return &LocalAnalyzer{metrics: m}
}

type textFeatures struct {
	plain     string
	lower     string
	sentences []string
	words     []string
}

func features(text string) textFeatures {
	plain := utils.SanitizeHTML(text)
	f := textFeatures{plain: plain, lower: strings.ToLower(plain)}
	for _, s := range sentenceRE.FindAllString(plain, -1) {
		if s = strings.TrimSpace(s); s != "" {
			f.sentences = append(f.sentences, s)
		}
	}
	f.words = wordRE.FindAllString(plain, -1)
	return f
}

func (f textFeatures) containsAny(phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(f.lower, p) {
			return true
		}
	}
	return false
}

func (f textFeatures) firstSentence() string {
	if len(f.sentences) == 0 {
		return ""
	}
	return f.sentences[0]
}

func (f textFeatures) lastSentence() string {
	if len(f.sentences) == 0 {
		return ""
	}
	return f.sentences[len(f.sentences)-1]
}

func (f textFeatures) transitions() int {
	n := 0
	for _, t := range transitionWords {
		n += strings.Count(f.lower, t)
	}
	return n
}

func (a *LocalAnalyzer) CheckErrors(_ context.Context, text string, _ models.SectionType) models.ErrorCheckResult {
	f := features(text)
	var found []models.ErrorDetail

	for i := 1; i < len(f.words); i++ {
		if strings.EqualFold(f.words[i-1], f.words[i]) {
			found = append(found, models.ErrorDetail{
				Category:    models.CategoryStylistic,
				Type:        "repeated_expressions",
				Message:     "Word repeated twice in a row",
				Text:        f.words[i-1] + " " + f.words[i],
				Suggestions: []string{f.words[i]},
			})
		}
	}
	for _, s := range f.sentences {
		if r := []rune(s); unicode.IsLower(r[0]) {
			found = append(found, models.ErrorDetail{
				Category:    models.CategorySpelling,
				Type:        "capital_letters",
				Message:     "Sentence should start with a capital letter",
				Text:        utils.Truncate(s, 40),
				Suggestions: []string{string(unicode.ToUpper(r[0])) + string(r[1:])},
			})
		}
	}
	if lowerIRE.MatchString(f.plain) {
		found = append(found, models.ErrorDetail{
			Category:    models.CategorySpelling,
			Type:        "capital_letters",
			Message:     "The pronoun \"I\" is always capitalized",
			Text:        "i",
			Suggestions: []string{"I"},
		})
	}
	for _, m := range spaceBeforeRE.FindAllString(f.plain, -1) {
		found = append(found, models.ErrorDetail{
			Category:    models.CategoryTypographical,
			Type:        "local_formatting",
			Message:     "Remove the space before punctuation",
			Text:        m,
			Suggestions: []string{strings.TrimSpace(m)},
		})
	}
	if last := f.lastSentence(); last != "" && !strings.ContainsAny(last[len(last)-1:], ".!?") {
		found = append(found, models.ErrorDetail{
			Category:    models.CategoryPunctuation,
			Type:        "dot",
			Message:     "The last sentence has no closing punctuation",
			Text:        utils.Truncate(last, 40),
			Suggestions: []string{last + "."},
		})
	}

	a.metrics.AnalysisCall(KindErrors, metrics.OutcomeOK)
	return models.ErrorCheckResult{Errors: categorize(found)}
}

type requirementCheck func(textFeatures) bool

var localRubric = map[models.SectionType][]requirementCheck{
	models.SectionIntroduction: {
		func(f textFeatures) bool {
			return f.containsAny("this essay", "i argue", "i will", "should", "must", "thesis", "because")
		},
		func(f textFeatures) bool { return len(f.words) >= 40 },
		func(f textFeatures) bool {
			return f.containsAny("first", "second", "finally", "also", "both") || strings.Count(f.plain, ",") >= 2
		},
		func(f textFeatures) bool {
			first := f.firstSentence()
			return strings.HasSuffix(first, "?") || len(strings.Fields(first)) >= 8
		},
	},
	models.SectionBody: {
		func(f textFeatures) bool { return len(strings.Fields(f.firstSentence())) >= 6 },
		func(f textFeatures) bool {
			return f.containsAny("for example", "for instance", "according to", "research", "study", "studies") || digitRE.MatchString(f.plain)
		},
		func(f textFeatures) bool {
			return f.containsAny("because", "this shows", "demonstrates", "suggests", "therefore", "which means")
		},
		func(f textFeatures) bool {
			return f.containsAny("thesis", "argument", "this supports", "overall", "ultimately", "this is why")
		},
		func(f textFeatures) bool { return f.transitions() > 0 },
		func(f textFeatures) bool { return len(f.sentences) >= 3 },
	},
	models.SectionConclusion: {
		func(f textFeatures) bool {
			return f.containsAny("in conclusion", "to conclude", "in summary", "overall", "to sum up")
		},
		func(f textFeatures) bool { return len(f.sentences) >= 2 },
		func(f textFeatures) bool {
			return f.containsAny("should", "must", "future", "implication", "important", "matters")
		},
		func(f textFeatures) bool { return len(strings.Fields(f.lastSentence())) >= 6 },
		func(f textFeatures) bool {
			last := f.lastSentence()
			return last != "" && strings.ContainsAny(last[len(last)-1:], ".!")
		},
		func(f textFeatures) bool {
			return !f.containsAny("another reason", "new evidence", "a further argument")
		},
	},
}

func (a *LocalAnalyzer) CheckCompleteness(_ context.Context, text string, sectionType models.SectionType, _ []string) models.CompletenessVerdict {
	criteria := RubricFor(sectionType)
	checks := localRubric[sectionType]
	f := features(text)

	met, missing := []string{}, []string{}
	for i, c := range criteria {
		if f.plain != "" && checks[i](f) {
			met = append(met, c)
		} else {
			missing = append(missing, c)
		}
	}
	feedback, suggestions := completenessFeedback(missing)

	a.metrics.AnalysisCall(KindCompleteness, metrics.OutcomeOK)
	return models.CompletenessVerdict{
		IsComplete:            len(criteria) > 0 && len(missing) == 0,
		CompletionStatus:      models.CompletenessDetails{Met: met, Missing: missing},
		FeedbackItems:         feedback,
		SuggestedImprovements: suggestions,
	}
}

func (a *LocalAnalyzer) AnalyzeStyle(_ context.Context, text string) models.StyleResult {
	f := features(text)
	if len(f.words) == 0 || len(f.sentences) == 0 {
		a.metrics.AnalysisCall(KindStyle, metrics.OutcomeFallback)
		return DefaultStyle()
	}

	lengths := make([]float64, len(f.sentences))
	passive := 0
	for i, s := range f.sentences {
		lengths[i] = float64(len(wordRE.FindAllString(s, -1)))
		if passiveRE.MatchString(s) {
			passive++
		}
	}
	avgLen := mean(lengths)
	variety := math.Min(100, stddev(lengths, avgLen)*10)

	complexWords, academic := 0, 0
	for _, w := range f.words {
		lw := strings.ToLower(w)
		if syllables(lw) >= 3 {
			complexWords++
		}
		if academicWords[lw] {
			academic++
		}
	}
	complexPct := float64(complexWords) / float64(len(f.words)) * 100
	academicScore := math.Min(100, float64(academic)/float64(len(f.words))*1000)

	activePct := float64(len(f.sentences)-passive) / float64(len(f.sentences)) * 100
	transitions := f.transitions()
	transitionStrength := "Weak"
	switch {
	case len(f.sentences) > 1 && transitions*3 >= len(f.sentences):
		transitionStrength = "Strong"
	case transitions > 0:
		transitionStrength = "Moderate"
	}
	cohesion := math.Min(100, 40+float64(transitions)*15)

	clarity := 100.0
	if avgLen > 20 {
		clarity -= (avgLen - 20) * 3
	}
	clarity -= math.Max(0, complexPct-20)
	clarity -= float64(passive) * 5

	var strengths, improvements []string
	if avgLen <= 20 {
		strengths = append(strengths, "Concise sentences")
	} else {
		improvements = append(improvements, "Shorten long sentences")
	}
	if activePct >= 70 {
		strengths = append(strengths, "Mostly active voice")
	} else {
		improvements = append(improvements, "Use more active voice")
	}
	if transitions > 0 {
		strengths = append(strengths, "Uses transitions between ideas")
	} else {
		improvements = append(improvements, "Add transitions between ideas")
	}
	if variety < 30 && len(f.sentences) > 2 {
		improvements = append(improvements, "Vary sentence length")
	}

	tone, characteristics := "Neutral", []string{}
	switch {
	case f.containsAny(informalMarkers...) || strings.Contains(f.plain, "n't"):
		tone = "Informal"
		characteristics = append(characteristics, "Conversational")
	case academicScore >= 30:
		tone = "Formal"
		characteristics = append(characteristics, "Academic vocabulary")
	}

	analysis := models.WritingStyleAnalysis{
		Tone: models.Tone{Type: tone, Confidence: 60, Characteristics: characteristics},
		Voice: models.Voice{
			Type:                  stats.VoiceType(activePct),
			ActiveVoicePercentage: math.Round(activePct),
			PassiveVoiceInstances: passive,
		},
		Clarity: models.Clarity{
			Score:        math.Round(clarity),
			Strengths:    strengths,
			Improvements: improvements,
		},
		Complexity: models.Complexity{
			SentenceStructure: models.SentenceStructure{
				Score:         math.Round(math.Min(100, avgLen*4)),
				AverageLength: math.Round(avgLen*10) / 10,
				VarietyScore:  math.Round(variety),
			},
			WordChoice: models.WordChoice{
				ComplexWordsPercentage:  math.Round(complexPct),
				AcademicVocabularyScore: math.Round(academicScore),
			},
			ParagraphCohesion: models.ParagraphCohesion{
				Score:              cohesion,
				TransitionStrength: transitionStrength,
				LogicalFlowScore:   cohesion,
			},
		},
	}

	a.metrics.AnalysisCall(KindStyle, metrics.OutcomeOK)
	return models.StyleResult{Analysis: fillStyleLabels(analysis)}
}

// syllables estimates syllables as runs of vowels.
func syllables(word string) int {
	n, inVowel := 0, false
	for _, r := range word {
		v := strings.ContainsRune("aeiouy", r)
		if v && !inVowel {
			n++
		}
		inVowel = v
	}
	if n > 1 && strings.HasSuffix(word, "e") {
		n--
	}
	return n
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, m float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}
	return math.Sqrt(sum / float64(len(xs)))
}
