package logging

import (
	"context"
	"log/slog"
	"regexp"
)

// Redacted replaces masked values.
const Redacted = "***"

var (
	// credentialKey matches attribute keys whose value is masked entirely.
	credentialKey = regexp.MustCompile(`(?i)(password|passwd|token|secret|api_?key|credential)`)
	// credentialAssignment matches name=value or name: value pairs inside
	// string values, e.g. a command line carrying "-password=hunter2"
	credentialAssignment = regexp.MustCompile(`(?i)((?:password|passwd|token|secret|api_?key)\s*[=:]\s*)("[^"]*"|'[^']*'|\S+)`)
)

// RedactingHandler masks credentials before forwarding records to the wrapped handler.
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler wraps handler.
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	return &RedactingHandler{handler: handler}
}

// Enabled implements slog.Handler.
func (r *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return r.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (r *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	redacted := slog.NewRecord(record.Time, record.Level, RedactString(record.Message), record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		redacted.AddAttrs(redactAttr(attr))
		return true
	})
	return r.handler.Handle(ctx, redacted)
}

// WithAttrs implements slog.Handler.
func (r *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		redacted[i] = redactAttr(attr)
	}
	return &RedactingHandler{handler: r.handler.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (r *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: r.handler.WithGroup(name)}
}

// RedactString masks the value part of credential assignments in s.
func RedactString(s string) string {
	return credentialAssignment.ReplaceAllString(s, "${1}"+Redacted)
}

func redactAttr(attr slog.Attr) slog.Attr {
	attr.Value = attr.Value.Resolve()

	if credentialKey.MatchString(attr.Key) {
		return slog.String(attr.Key, Redacted)
	}

	switch attr.Value.Kind() {
	case slog.KindString:
		return slog.String(attr.Key, RedactString(attr.Value.String()))
	case slog.KindAny:
		// launch errors embed the argument string
		if err, ok := attr.Value.Any().(error); ok {
			return slog.String(attr.Key, RedactString(err.Error()))
		}
		return attr
	case slog.KindGroup:
		group := attr.Value.Group()
		redacted := make([]slog.Attr, len(group))
		for i, a := range group {
			redacted[i] = redactAttr(a)
		}
		return slog.Attr{Key: attr.Key, Value: slog.GroupValue(redacted...)}
	default:
		return attr
	}
}
