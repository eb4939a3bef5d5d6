package redactor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...interface{}) {}

func newTestRedactor(endpoint string) Redactor {
	return New(config.GuardrailConfig{
		Endpoint:       endpoint,
		ID:             "gr-test",
		Version:        "DRAFT",
		TimeoutSeconds: 5,
	}, nopLogger{}, nil)
}

func guardrailServer(t *testing.T, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(response))
	}))
}

func TestRedactResponseShapes(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		changed  bool
	}{
		{
			name:     "nested text.text",
			response: `{"action":"GUARDRAIL_INTERVENED","outputs":[{"text":{"text":"REDACTED"}}]}`,
			want:     "REDACTED",
			changed:  true,
		},
		{
			name:     "flat text string",
			response: `{"action":"GUARDRAIL_INTERVENED","outputs":[{"text":"REDACTED"}]}`,
			want:     "REDACTED",
			changed:  true,
		},
		{
			name:     "content as plain string",
			response: `{"action":"GUARDRAIL_INTERVENED","outputs":[{"content":"REDACTED"}]}`,
			want:     "REDACTED",
			changed:  true,
		},
		{
			name:     "nested content.text",
			response: `{"action":"GUARDRAIL_INTERVENED","outputs":[{"content":{"text":"REDACTED"}}]}`,
			want:     "REDACTED",
			changed:  true,
		},
		{
			name:     "intervened but identical text reports unchanged",
			response: `{"action":"GUARDRAIL_INTERVENED","outputs":[{"text":{"text":"my secret call sign"}}]}`,
			want:     "my secret call sign",
			changed:  false,
		},
		{
			name:     "no action field falls back to original",
			response: `{"outputs":[{"text":{"text":"REDACTED"}}]}`,
			want:     "my secret call sign",
			changed:  false,
		},
		{
			name:     "no intervention passes text through",
			response: `{"action":"NONE","outputs":[]}`,
			want:     "my secret call sign",
			changed:  false,
		},
		{
			name:     "unknown output shape falls back to original",
			response: `{"action":"GUARDRAIL_INTERVENED","outputs":[{"sanitized":"REDACTED"}]}`,
			want:     "my secret call sign",
			changed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := guardrailServer(t, tt.response)
			defer srv.Close()

			got := newTestRedactor(srv.URL).Redact(context.Background(), "my secret call sign")
			if got.Text != tt.want {
				t.Errorf("text = %q, want %q", got.Text, tt.want)
			}
			if got.Changed != tt.changed {
				t.Errorf("changed = %v, want %v", got.Changed, tt.changed)
			}
		})
	}
}

func TestRedactRequestFormat(t *testing.T) {
	var got guardrailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		w.Write([]byte(`{"action":"NONE"}`))
	}))
	defer srv.Close()

	newTestRedactor(srv.URL).Redact(context.Background(), "hello")

	if got.GuardrailIdentifier != "gr-test" {
		t.Errorf("guardrailIdentifier = %q", got.GuardrailIdentifier)
	}
	if got.GuardrailVersion != "DRAFT" {
		t.Errorf("guardrailVersion = %q", got.GuardrailVersion)
	}
	if got.Source != "OUTPUT" {
		t.Errorf("source = %q, want OUTPUT", got.Source)
	}
	if len(got.Content) != 1 || got.Content[0].Text.Text != "hello" {
		t.Errorf("content = %+v", got.Content)
	}
}

func TestRedactFailsOpenOnServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := newTestRedactor(srv.URL).Redact(context.Background(), "original text")
	if got.Text != "original text" || got.Changed {
		t.Errorf("got %+v, want original text unchanged", got)
	}
}

func TestRedactFailsOpenOnUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connections now refused

	got := newTestRedactor(srv.URL).Redact(context.Background(), "original text")
	if got.Text != "original text" || got.Changed {
		t.Errorf("got %+v, want original text unchanged", got)
	}
}

func TestRedactIdempotentOnCleanText(t *testing.T) {
	clean := "the quarterly numbers look fine"
	srv := guardrailServer(t, `{"action":"NONE","outputs":[]}`)
	defer srv.Close()

	r := newTestRedactor(srv.URL)
	first := r.Redact(context.Background(), clean)
	second := r.Redact(context.Background(), first.Text)
	if first.Text != second.Text || first.Text != clean {
		t.Errorf("redaction mutated clean text: %q then %q", first.Text, second.Text)
	}
}

func TestRedactRegexFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := New(config.GuardrailConfig{
		Endpoint:       srv.URL,
		ID:             "gr-test",
		TimeoutSeconds: 5,
		RegexFallback:  true,
	}, nopLogger{}, nil)

	got := r.Redact(context.Background(), "reach me at alice@example.com today")
	if got.Text != "reach me at [EMAIL REDACTED] today" {
		t.Errorf("text = %q", got.Text)
	}
	if !got.Changed {
		t.Error("expected changed = true")
	}
}

func TestExtractTextPriorityOrder(t *testing.T) {
	// An entry matching both the nested and the content shapes must
	// resolve through the nested one.
	out := json.RawMessage(`{"text":{"text":"from text"},"content":"from content"}`)
	text, ok := extractText(out)
	if !ok || text != "from text" {
		t.Errorf("got %q ok=%v, want %q", text, ok, "from text")
	}
}
