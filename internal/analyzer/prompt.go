package analyzer

import (
	"strings"

	"getgsa/internal/domain"
	"getgsa/internal/rules"
)

// SystemPrompt pins the provider to JSON-only output.
const SystemPrompt = "You are a GSA compliance expert. Always respond with valid JSON only."

// BuildAnalysisPrompt renders the user prompt for one analysis: the document
// corpus, the extraction guidelines, the required response schema and the
// full rules pack.
func BuildAnalysisPrompt(docs []domain.Document) string {
	var corpus strings.Builder
	for _, doc := range docs {
		corpus.WriteString("Document: ")
		corpus.WriteString(doc.Name)
		corpus.WriteString("\n")
		corpus.WriteString(doc.Text)
		corpus.WriteString("\n\n")
	}

	return `You are a GSA compliance expert analyzing onboarding documents. Extract and analyze the following information with high precision.

DOCUMENTS TO ANALYZE:
` + corpus.String() + `CRITICAL EXTRACTION GUIDELINES:
- Extract UEI as a 12-character alphanumeric code
- Extract DUNS as a 9-digit number
- Find NAICS codes as 6-digit numbers
- Extract the primary contact email and phone number in any format they appear
- Look for company names in headers, titles, or business information sections
- Extract past performance projects with values, clients, and durations
- Find pricing information in tables, lists, or structured data

Respond with a JSON object of exactly this shape:

{
  "parsed": {
    "uei": "extracted UEI (12 characters) or null if not found",
    "duns": "extracted DUNS (9 digits) or null if not found",
    "naics": ["list", "of", "NAICS", "codes"],
    "sam_status": "active/inactive/pending/unknown",
    "poc_email": "primary contact email or null",
    "poc_phone": "primary contact phone or null",
    "entity_name": "company/organization name or null",
    "past_performance": [
      {"title": "", "client": "", "value": 0, "duration": "", "scope": ""}
    ],
    "pricing": [
      {"labor_category": "", "rate": 0, "hours": 0, "unit": "Hour"}
    ]
  },
  "checklist": {
    "required_ok": true,
    "problems": [
      {"code": "problem_identifier", "rule_id": "R1", "evidence": "specific evidence from documents"}
    ]
  },
  "brief": "2-3 paragraph executive summary of findings, strengths, and recommendations",
  "client_email": "professional email draft to client with findings and next steps",
  "citations": [
    {"rule_id": "R1", "chunk": "relevant rule text or evidence"}
  ]
}

GSA RULES TO APPLY:
` + rules.PackText() + `

IMPORTANT: Extract ACTUAL values from the text. Return null only after thoroughly searching all document content, including headers, footers, signature blocks, and contact sections.`
}
