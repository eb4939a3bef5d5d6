package redactor

import "context"

// Redactor removes sensitive content from text
type Redactor interface {
	Redact(ctx context.Context, text string) Result
}

// Result carries the redacted text (or the original on fallback) and
// whether redaction actually changed the content
type Result struct {
	Text    string
	Changed bool
}
