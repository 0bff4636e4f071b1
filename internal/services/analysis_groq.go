package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"essaycoach-be/config"
	"essaycoach-be/internal/logger"
	"essaycoach-be/internal/metrics"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/utils"
)

// Longest section text sent to the model, in runes
const maxPromptText = 12000

const errorCheckPrompt = `You are an essay error detection system. Return ONLY a JSON array of objects with this EXACT structure, nothing else:
[
  {
    "category": "spelling",
    "type": "typing_errors",
    "message": "Error explanation",
    "suggestions": ["suggestion1"],
    "text": "problematic text"
  }
]

Categories must be one of: spelling, punctuation, lexicoSemantic, stylistic, typographical.
Return an empty array when the text has no errors.`

const completenessPrompt = `You evaluate one %s section of an argumentative essay against these criteria:
%s

Return ONLY a JSON object with this EXACT structure:
{
  "completionStatus": {"met": ["criterion"], "missing": ["criterion"]},
  "feedbackItems": ["feedback"],
  "suggestedImprovements": ["improvement"]
}
Every criterion must appear in either "met" or "missing". Arrays can be empty but must be present.`

const stylePrompt = `Analyze the writing style of the given text and return ONLY a JSON object with this structure:
{
  "tone": {"type": "Formal|Informal|Neutral", "confidence": 0-100, "characteristics": ["..."]},
  "voice": {"type": "Active|Passive|Mixed", "activeVoicePercentage": 0-100, "passiveVoiceInstances": 0},
  "clarity": {"score": 0-100, "level": "High|Moderate|Low", "strengths": ["..."], "improvements": ["..."]},
  "complexity": {
    "sentenceStructure": {"score": 0-100, "averageLength": 0, "varietyScore": 0-100},
    "wordChoice": {"complexWordsPercentage": 0-100, "academicVocabularyScore": 0-100},
    "paragraphCohesion": {"score": 0-100, "transitionStrength": "Strong|Moderate|Weak", "logicalFlowScore": 0-100}
  }
}`

// GroqAnalysisService runs checks through an OpenAI compatible chat
// completions endpoint (Groq by default).
type GroqAnalysisService struct {
	client  openai.Client
	model   string
	metrics *metrics.Metrics
}

// NewAnalysisService returns the LLM backed service when an API key is
// configured and the local heuristic analyzer otherwise.
func NewAnalysisService(groq config.GroqConfig, analysis config.AnalysisConfig, m *metrics.Metrics) AnalysisService {
	if groq.APIKey == "" {
		slog.Info("GROQ_API_KEY not set, using local heuristic analyzer")
		return NewLocalAnalyzer(m)
	}
	return NewGroqAnalysisService(groq, analysis, m)
}

func NewGroqAnalysisService(groq config.GroqConfig, analysis config.AnalysisConfig, m *metrics.Metrics) *GroqAnalysisService {
	opts := []option.RequestOption{
		option.WithAPIKey(groq.APIKey),
		option.WithRequestTimeout(analysis.Timeout),
		option.WithMaxRetries(analysis.MaxRetries),
	}
	if groq.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(groq.BaseURL))
	}
	return &GroqAnalysisService{
		client:  openai.NewClient(opts...),
		model:   groq.Model,
		metrics: m,
	}
}

func (s *GroqAnalysisService) CheckErrors(ctx context.Context, text string, sectionType models.SectionType) models.ErrorCheckResult {
	ctx = logger.WithLogFields(ctx, logger.LogFields{AnalysisKind: logger.Ptr(KindErrors)})
	plain := utils.SanitizeHTML(text)
	if plain == "" {
		s.metrics.AnalysisCall(KindErrors, metrics.OutcomeOK)
		return models.ErrorCheckResult{Errors: emptyCategorizedErrors()}
	}

	reply, err := s.chat(ctx, "analysis.check_errors", errorCheckPrompt,
		fmt.Sprintf("Return ONLY a proper JSON array of errors found in this %s: %q", sectionType, utils.Truncate(plain, maxPromptText)), 2048)
	if err != nil {
		return s.errorFallback(ctx, err)
	}
	found, ok := parseErrorReply(reply)
	if !ok {
		return s.errorFallback(ctx, fmt.Errorf("unparseable reply: %s", utils.Truncate(reply, 200)))
	}

	s.metrics.AnalysisCall(KindErrors, metrics.OutcomeOK)
	return models.ErrorCheckResult{Errors: found}
}

func (s *GroqAnalysisService) CheckCompleteness(ctx context.Context, text string, sectionType models.SectionType, previousFeedback []string) models.CompletenessVerdict {
	ctx = logger.WithLogFields(ctx, logger.LogFields{AnalysisKind: logger.Ptr(KindCompleteness)})
	criteria := RubricFor(sectionType)
	if len(criteria) == 0 {
		return s.completenessFallback(ctx, fmt.Errorf("unknown section type %q", sectionType))
	}

	var user strings.Builder
	if len(previousFeedback) > 0 {
		user.WriteString("Feedback from the previous check:\n- ")
		user.WriteString(strings.Join(previousFeedback, "\n- "))
		user.WriteString("\n\n")
	}
	fmt.Fprintf(&user, "Analyze this content: %q", utils.Truncate(utils.SanitizeHTML(text), maxPromptText))

	system := fmt.Sprintf(completenessPrompt, sectionType, "- "+strings.Join(criteria, "\n- "))
	reply, err := s.chat(ctx, "analysis.check_completeness", system, user.String(), 2048)
	if err != nil {
		return s.completenessFallback(ctx, err)
	}
	verdict, ok := parseCompletenessReply(reply)
	if !ok {
		return s.completenessFallback(ctx, fmt.Errorf("unparseable reply: %s", utils.Truncate(reply, 200)))
	}

	s.metrics.AnalysisCall(KindCompleteness, metrics.OutcomeOK)
	return verdict
}

func (s *GroqAnalysisService) AnalyzeStyle(ctx context.Context, text string) models.StyleResult {
	ctx = logger.WithLogFields(ctx, logger.LogFields{AnalysisKind: logger.Ptr(KindStyle)})
	plain := utils.SanitizeHTML(text)
	if plain == "" {
		return s.styleFallback(ctx, fmt.Errorf("no text to analyze"))
	}

	reply, err := s.chat(ctx, "analysis.analyze_style", stylePrompt,
		fmt.Sprintf("Analyze this text: %q", utils.Truncate(plain, maxPromptText)), 1024)
	if err != nil {
		return s.styleFallback(ctx, err)
	}
	analysis, ok := parseStyleReply(reply)
	if !ok {
		return s.styleFallback(ctx, fmt.Errorf("unparseable reply: %s", utils.Truncate(reply, 200)))
	}

	s.metrics.AnalysisCall(KindStyle, metrics.OutcomeOK)
	return models.StyleResult{Analysis: analysis}
}

func (s *GroqAnalysisService) chat(ctx context.Context, spanName, system, user string, maxTokens int64) (string, error) {
	sc := logger.StartSpan(ctx, spanName)
	defer sc.End()

	start := time.Now()
	resp, err := s.client.Chat.Completions.New(sc.Context(), openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(0),
	})
	if err != nil {
		sc.RecordError(err)
		return "", fmt.Errorf("groq chat: %w", err)
	}

	slog.DebugContext(ctx, "analysis chat completed",
		"model", s.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *GroqAnalysisService) errorFallback(ctx context.Context, err error) models.ErrorCheckResult {
	slog.WarnContext(ctx, "error check failed, returning default", "error", err)
	s.metrics.AnalysisCall(KindErrors, metrics.OutcomeFallback)
	return DefaultErrorResult()
}

func (s *GroqAnalysisService) completenessFallback(ctx context.Context, err error) models.CompletenessVerdict {
	slog.WarnContext(ctx, "completeness check failed, returning default", "error", err)
	s.metrics.AnalysisCall(KindCompleteness, metrics.OutcomeFallback)
	return DefaultCompleteness()
}

func (s *GroqAnalysisService) styleFallback(ctx context.Context, err error) models.StyleResult {
	slog.WarnContext(ctx, "style analysis failed, returning default", "error", err)
	s.metrics.AnalysisCall(KindStyle, metrics.OutcomeFallback)
	return DefaultStyle()
}
