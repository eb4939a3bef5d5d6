package redactor

import "regexp"

// piiPattern rewrites one class of sensitive content
type piiPattern struct {
	re          *regexp.Regexp
	replacement string
}

var piiPatterns = []piiPattern{
	// Self-introductions followed by a capitalized first and last name
	{regexp.MustCompile(`(?i)(my name is|I am|I'm|This is) ([A-Z][a-z]+ [A-Z][a-z]+)`), "${1} [NAME REDACTED]"},
	// Email addresses
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL REDACTED]"},
	// Phone numbers in common separator styles
	{regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`), "[PHONE REDACTED]"},
	// Credit card numbers
	{regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`), "[CREDIT CARD REDACTED]"},
	// US social security numbers
	{regexp.MustCompile(`\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`), "[SSN REDACTED]"},
	// Street addresses with a city, state and ZIP
	{regexp.MustCompile(`\b\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Plaza|Plz|Terrace|Ter|Way),?\s+[A-Za-z\s]+,?\s+[A-Z]{2}\s+\d{5}(?:-\d{4})?\b`), "[ADDRESS REDACTED]"},
}

// RegexRedact scrubs common PII patterns from text. It is a coarse
// last-resort used only when the guardrail service is unavailable.
func RegexRedact(text string) string {
	for _, p := range piiPatterns {
		text = p.re.ReplaceAllString(text, p.replacement)
	}
	return text
}
