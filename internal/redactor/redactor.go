package redactor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const actionIntervened = "GUARDRAIL_INTERVENED"

// guardrailRequest wraps text in the structured content format the
// guardrail service requires, declared for OUTPUT-category scanning
type guardrailRequest struct {
	GuardrailIdentifier string         `json:"guardrailIdentifier"`
	GuardrailVersion    string         `json:"guardrailVersion"`
	Source              string         `json:"source"`
	Content             []contentBlock `json:"content"`
}

type contentBlock struct {
	Text textBlock `json:"text"`
}

type textBlock struct {
	Text string `json:"text"`
}

// guardrailResponse leaves outputs raw; the service returns them in
// several shapes, decoded by the extractor chain below
type guardrailResponse struct {
	Action  string            `json:"action"`
	Outputs []json.RawMessage `json:"outputs"`
}

// Redact runs text through the guardrail service. All failure modes
// return the original text with Changed=false; redaction never errors.
func (r *implRedactor) Redact(ctx context.Context, text string) Result {
	if r.metrics != nil {
		r.metrics.RedactionRequests.Inc()
	}

	resp, err := r.invoke(ctx, text)
	if err != nil {
		return r.fallback(ctx, text, err.Error())
	}

	if resp.Action != actionIntervened || len(resp.Outputs) == 0 {
		r.logger.Debug(ctx, "Guardrail did not intervene, text passes through unchanged")
		return Result{Text: text}
	}

	redacted, ok := extractText(resp.Outputs[0])
	if !ok {
		return r.fallback(ctx, text, "no known output shape matched")
	}

	changed := redacted != text
	if changed {
		r.logger.Info(ctx, "Guardrail redacted sensitive content")
		if r.metrics != nil {
			r.metrics.RedactionChanges.Inc()
		}
	}
	return Result{Text: redacted, Changed: changed}
}

func (r *implRedactor) invoke(ctx context.Context, text string) (*guardrailResponse, error) {
	payload, err := json.Marshal(guardrailRequest{
		GuardrailIdentifier: r.guardrailID,
		GuardrailVersion:    r.version,
		Source:              "OUTPUT",
		Content:             []contentBlock{{Text: textBlock{Text: text}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal guardrail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build guardrail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("invoke guardrail service: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("guardrail service returned %d", httpResp.StatusCode)
	}

	var resp guardrailResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode guardrail response: %w", err)
	}
	return &resp, nil
}

// fallback implements the fail-open policy: log the reason, count the
// event, and hand back text the pipeline can keep using
func (r *implRedactor) fallback(ctx context.Context, text, reason string) Result {
	r.logger.Warn(ctx, "Redaction fell back to original text: %s", reason)
	if r.metrics != nil {
		r.metrics.RedactionFallbacks.Inc()
	}

	if r.regexFallback {
		scrubbed := RegexRedact(text)
		if scrubbed != text {
			r.logger.Info(ctx, "Pattern-based fallback redacted sensitive content")
			return Result{Text: scrubbed, Changed: true}
		}
	}
	return Result{Text: text}
}

// extractText pulls redacted text out of one guardrail output entry,
// trying the known shapes in priority order:
//
//	{"text": {"text": "..."}}      standard
//	{"text": "..."}                flat string
//	{"content": "..."}             plain string content
//	{"content": {"text": "..."}}   nested content
func extractText(output json.RawMessage) (string, bool) {
	extractors := []func(json.RawMessage) (string, bool){
		extractNestedText,
		extractFlatText,
		extractContentString,
		extractContentText,
	}

	for _, extract := range extractors {
		if text, ok := extract(output); ok {
			return text, true
		}
	}
	return "", false
}

func extractNestedText(output json.RawMessage) (string, bool) {
	var v struct {
		Text *textBlock `json:"text"`
	}
	if err := json.Unmarshal(output, &v); err != nil || v.Text == nil {
		return "", false
	}
	return v.Text.Text, true
}

func extractFlatText(output json.RawMessage) (string, bool) {
	var v struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(output, &v); err != nil || v.Text == nil {
		return "", false
	}
	return *v.Text, true
}

func extractContentString(output json.RawMessage) (string, bool) {
	var v struct {
		Content *string `json:"content"`
	}
	if err := json.Unmarshal(output, &v); err != nil || v.Content == nil {
		return "", false
	}
	return *v.Content, true
}

func extractContentText(output json.RawMessage) (string, bool) {
	var v struct {
		Content *textBlock `json:"content"`
	}
	if err := json.Unmarshal(output, &v); err != nil || v.Content == nil {
		return "", false
	}
	return v.Content.Text, true
}
