package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are added to every log record written with the context.
type LogFields struct {
	UserID       *string
	SectionID    *string
	AnalysisKind *string // "errors", "completeness" or "style"
	Component    string  // e.g. "essaycoach.services.statistics"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, newer non-empty values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns the fields stored in ctx, or empty fields.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.UserID != nil {
		result.UserID = new.UserID
	}
	if new.SectionID != nil {
		result.SectionID = new.SectionID
	}
	if new.AnalysisKind != nil {
		result.AnalysisKind = new.AnalysisKind
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr returns a pointer to v, for setting LogFields inline.
func Ptr[T any](v T) *T {
	return &v
}
