package summarizer

import "context"

// Summarizer turns a redacted meeting transcript into an LLM-generated
// markdown summary
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}
