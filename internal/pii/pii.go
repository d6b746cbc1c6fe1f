// Package pii detects and redacts personally identifiable information in
// free-text documents before anything is persisted or shipped to an external
// provider.
package pii

import "regexp"

// Family is one category of PII: the patterns that detect it and the
// placeholder that replaces a match. Extraction and redaction consume the
// same table so the two can never drift apart.
type Family struct {
	Name        string
	Placeholder string
	Patterns    []*regexp.Regexp
}

// Families lists the supported PII categories in redaction order. Emails are
// redacted first: phone and SSN patterns are broad enough to match digit runs
// that an email address may contain, so removing emails up front keeps the
// later passes from splitting one.
var Families = []Family{
	{
		Name:        "emails",
		Placeholder: "[EMAIL_REDACTED]",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
			regexp.MustCompile(`\b[A-Za-z0-9._%+-]+\s*@\s*[A-Za-z0-9.-]+\s*\.\s*[A-Za-z]{2,}\b`),
		},
	},
	{
		Name:        "phones",
		Placeholder: "[PHONE_REDACTED]",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
			regexp.MustCompile(`\b[0-9]{3}[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
			regexp.MustCompile(`\b\+?1[-.\s]?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
		},
	},
	{
		Name:        "ssns",
		Placeholder: "[SSN_REDACTED]",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[0-9]{3}-[0-9]{2}-[0-9]{4}\b`),
			regexp.MustCompile(`\b[0-9]{9}\b`),
		},
	},
}

// Findings holds the literal PII matches found in a text, deduplicated in
// first-seen order. Used for audit previews only; never persisted outside the
// original_text column.
type Findings struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
	SSNs   []string `json:"ssns"`
}

// Map returns the findings keyed by family name, for ingestion summaries.
func (f Findings) Map() map[string][]string {
	return map[string][]string{
		"emails": f.Emails,
		"phones": f.Phones,
		"ssns":   f.SSNs,
	}
}

// Extract collects every family-pattern match in text. Overlapping matches
// from different patterns within a family are each recorded; the result is
// deduplicated per family. Never fails; no matches yields empty findings.
func Extract(text string) Findings {
	byFamily := make(map[string][]string, len(Families))
	for _, fam := range Families {
		var matches []string
		for _, re := range fam.Patterns {
			matches = append(matches, re.FindAllString(text, -1)...)
		}
		byFamily[fam.Name] = dedupe(matches)
	}
	return Findings{
		Emails: byFamily["emails"],
		Phones: byFamily["phones"],
		SSNs:   byFamily["ssns"],
	}
}

// Redact replaces every PII match in text with its family placeholder,
// applying families in table order. Redaction is idempotent: placeholders
// contain no digits or @-signs, so no family pattern can match them.
func Redact(text string) string {
	for _, fam := range Families {
		for _, re := range fam.Patterns {
			text = re.ReplaceAllString(text, fam.Placeholder)
		}
	}
	return text
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
