package rules

import (
	"strings"

	"getgsa/internal/domain"
)

// Rule is one entry of the GSA rules pack: the full text shipped to the
// generative provider and the one-line excerpt used for citations.
type Rule struct {
	ID      domain.RuleID
	Title   string
	Text    string
	Excerpt string
}

// Pack is the GSA onboarding rules pack, R1 through R5.
var Pack = []Rule{
	{
		ID:    domain.RuleR1,
		Title: "Identity & Registry Requirements",
		Text: `- Required: UEI (12 characters, alphanumeric)
- Required: DUNS number (9 digits)
- SAM.gov registration must be active
- Entity name must match SAM registration`,
		Excerpt: "Required: UEI (12 characters, alphanumeric), DUNS (9 digits), SAM status active",
	},
	{
		ID:    domain.RuleR2,
		Title: "NAICS & SIN Mapping",
		Text: `- 541511 (Custom Computer Programming Services) maps to SIN 54151S
- 541512 (Computer Systems Design Services) maps to SIN 54151S
- 541513 (Computer Facilities Management Services) maps to SIN 54151S
- 541519 (Other Computer Related Services) maps to SIN 54151S
- All NAICS codes must map to valid SINs`,
		Excerpt: "All NAICS codes must map to valid SINs (541511/541512/541513/541519 map to 54151S)",
	},
	{
		ID:    domain.RuleR3,
		Title: "Past Performance Requirements",
		Text: `- At least 1 past performance project >= $25,000 within 36 months
- Must be relevant to proposed NAICS codes
- Include project title, client, value, duration, and scope
- Past performance must demonstrate technical capability`,
		Excerpt: "At least 1 past performance project >= $25,000 within 36 months",
	},
	{
		ID:    domain.RuleR4,
		Title: "Pricing & Catalog Requirements",
		Text: `- Provide labor categories with rates
- Include labor hour estimates
- Show total project value
- Pricing must be competitive and realistic
- Include any discounts or special rates`,
		Excerpt: "Provide labor categories with rates and labor hour estimates",
	},
	{
		ID:    domain.RuleR5,
		Title: "Submission Hygiene",
		Text: `- All PII must be redacted (emails, phones, SSNs)
- Documents must be clearly labeled
- File formats must be supported (PDF, DOC, TXT)
- No password-protected files
- Maximum file size limits apply`,
		Excerpt: "All PII must be redacted (emails, phones, SSNs); documents clearly labeled",
	},
}

// PackText renders the full rules pack for the generative prompt.
func PackText() string {
	var sb strings.Builder
	for i, r := range Pack {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(string(r.ID))
		sb.WriteString(" - ")
		sb.WriteString(r.Title)
		sb.WriteString(":\n")
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Excerpt returns the citation chunk for a rule ID, or an empty string for an
// unknown ID.
func Excerpt(id domain.RuleID) string {
	for _, r := range Pack {
		if r.ID == id {
			return r.Excerpt
		}
	}
	return ""
}
