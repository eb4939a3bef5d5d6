// Package redactor scrubs sensitive content from transcript and summary
// text through a guardrail service, with a deliberate fail-open policy:
// any failure returns the original text so redaction can degrade privacy
// protection but never block the pipeline.
package redactor
