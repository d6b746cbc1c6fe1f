// Package extract is the deterministic field extractor: pattern-based parsing
// of vendor identifiers out of raw document text. It depends on nothing but
// the text itself and never fails; absent fields degrade to null/defaults.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"getgsa/internal/domain"
)

var (
	ueiRe      = regexp.MustCompile(`(?i)UEI[:\s]*([A-Z0-9]{12})`)
	dunsRe     = regexp.MustCompile(`(?i)DUNS[:\s]*([0-9]{9})`)
	naicsRe    = regexp.MustCompile(`(?i)NAICS[:\s]*([0-9, ]+)`)
	naicsCode  = regexp.MustCompile(`[0-9]{6}`)
	samRe      = regexp.MustCompile(`(?i)SAM[:\s]*Status[:\s]*([A-Za-z]+)`)
	pocEmailRe = regexp.MustCompile(`(?i)POC[:\s]*([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)
	pocPhoneRe = regexp.MustCompile(`POC[:\s]*\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
)

// profileNames are the document names whose first lines are scanned for the
// entity name.
var profileNames = map[string]bool{
	"profile":         true,
	"company profile": true,
	"company":         true,
}

// entityKeywords disqualify a line from being the entity name.
var entityKeywords = []string{"uei", "duns", "naics"}

// Extract parses vendor identifiers out of the document corpus. Texts are
// concatenated for the whole-corpus searches since fields may span documents;
// the entity-name heuristic alone works per document.
func Extract(docs []domain.Document) domain.ParsedFields {
	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(doc.Text)
	}
	text := sb.String()

	fields := domain.ParsedFields{
		UEI:             firstGroup(ueiRe, text),
		DUNS:            firstGroup(dunsRe, text),
		NAICS:           extractNAICS(text),
		SAMStatus:       extractSAMStatus(text),
		POCEmail:        firstGroup(pocEmailRe, text),
		POCPhone:        extractPOCPhone(text),
		EntityName:      extractEntityName(docs),
		PastPerformance: []domain.PastPerformanceItem{},
		Pricing:         domain.PricingItems{},
	}
	return fields
}

func firstGroup(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := m[1]
	return &v
}

// extractNAICS collects the distinct 6-digit codes inside the first
// NAICS-labeled span, in first-seen order.
func extractNAICS(text string) []string {
	codes := []string{}
	m := naicsRe.FindStringSubmatch(text)
	if m == nil {
		return codes
	}
	seen := make(map[string]bool)
	for _, code := range naicsCode.FindAllString(m[1], -1) {
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes
}

// extractSAMStatus returns the lowercased status token, or the literal
// "unknown" when absent. The default is load-bearing: the sam_inactive rule
// fires on anything outside {active, pending}.
func extractSAMStatus(text string) string {
	m := samRe.FindStringSubmatch(text)
	if m == nil {
		return "unknown"
	}
	return strings.ToLower(m[1])
}

func extractPOCPhone(text string) *string {
	m := pocPhoneRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := fmt.Sprintf("(%s) %s-%s", m[1], m[2], m[3])
	return &v
}

// extractEntityName scans profile-named documents and takes the first of the
// first three lines that carries no identifier keyword.
func extractEntityName(docs []domain.Document) *string {
	for _, doc := range docs {
		if !profileNames[strings.ToLower(doc.Name)] {
			continue
		}
		lines := strings.Split(doc.Text, "\n")
		if len(lines) > 3 {
			lines = lines[:3]
		}
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			lower := strings.ToLower(line)
			disqualified := false
			for _, kw := range entityKeywords {
				if strings.Contains(lower, kw) {
					disqualified = true
					break
				}
			}
			if !disqualified {
				name := line
				return &name
			}
		}
	}
	return nil
}
