// Package report composes the negotiation brief, the client email draft and
// the rule citations for the deterministic analysis tier. Pure string
// composition over extracted fields and the checklist; the strengths and
// issues lists are derived once and shared by brief and email so the two
// cannot diverge.
package report

import (
	"fmt"
	"strings"

	"getgsa/internal/domain"
	"getgsa/internal/rules"
)

// Generate builds the brief, the client email and the citations for one
// analysis request. Deterministic and idempotent for identical inputs.
func Generate(fields domain.ParsedFields, checklist domain.ComplianceChecklist, requestID string) (string, string, []domain.RuleCitation) {
	strengths := strengthLines(fields)
	issues := issueLines(checklist)

	brief := buildBrief(fields, checklist, requestID, strengths, issues)
	email := buildClientEmail(fields, checklist, strengths, issues)
	citations := buildCitations(checklist)
	return brief, email, citations
}

func strengthLines(f domain.ParsedFields) []string {
	var out []string
	if f.UEI != nil {
		out = append(out, fmt.Sprintf("UEI present: %s", *f.UEI))
	}
	if f.DUNS != nil {
		out = append(out, fmt.Sprintf("DUNS present: %s", *f.DUNS))
	}
	if len(f.NAICS) > 0 {
		out = append(out, fmt.Sprintf("NAICS codes identified: %s", strings.Join(f.NAICS, ", ")))
	}
	if f.SAMStatus == "active" || f.SAMStatus == "pending" {
		out = append(out, fmt.Sprintf("SAM status: %s", f.SAMStatus))
	}
	return out
}

func issueLines(cl domain.ComplianceChecklist) []string {
	var out []string
	for _, p := range cl.Problems {
		out = append(out, fmt.Sprintf("%s: %s", p.RuleID, p.Evidence))
	}
	return out
}

func bulleted(lines []string, fallback string) string {
	if len(lines) == 0 {
		return "- " + fallback
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(line)
	}
	return sb.String()
}

func buildBrief(f domain.ParsedFields, cl domain.ComplianceChecklist, requestID string, strengths, issues []string) string {
	verdict := "NON-COMPLIANT"
	if cl.RequiredOK {
		verdict = "COMPLIANT"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "GSA Onboarding Analysis Report - Request %s\n\n", requestID)
	sb.WriteString("EXECUTIVE SUMMARY:\n")
	sb.WriteString("This analysis reviews the submitted GSA onboarding documents for compliance with federal contracting requirements (Rules R1-R5).\n\n")
	fmt.Fprintf(&sb, "COMPLIANCE STATUS: %s\n\n", verdict)
	sb.WriteString("STRENGTHS:\n")
	sb.WriteString(bulleted(strengths, "Documents submitted successfully"))
	sb.WriteString("\n\nISSUES IDENTIFIED:\n")
	sb.WriteString(bulleted(issues, "No compliance issues found"))
	if len(f.PastPerformance) == 0 && len(f.Pricing) == 0 {
		sb.WriteString("\n\nNOTES:\n")
		sb.WriteString("- Structured past-performance and pricing extraction is unavailable on this analysis tier; those sections require manual review.")
	}
	sb.WriteString("\n\nRECOMMENDATIONS:\n")
	sb.WriteString("1. Ensure all required fields (UEI, DUNS, SAM status) are complete and accurate\n")
	sb.WriteString("2. Verify past performance projects meet the $25,000 minimum threshold (R3)\n")
	sb.WriteString("3. Confirm pricing is competitive and labor categories align with NAICS codes (R4)\n")
	sb.WriteString("4. Review document formatting and ensure all PII is properly redacted (R5)\n\n")
	sb.WriteString("NEXT STEPS:\n")
	sb.WriteString("- Address any identified compliance issues\n")
	sb.WriteString("- Prepare additional documentation if required\n")
	sb.WriteString("- Schedule follow-up review if needed")
	return sb.String()
}

func buildClientEmail(f domain.ParsedFields, cl domain.ComplianceChecklist, strengths, issues []string) string {
	salutation := "Valued Client"
	if f.EntityName != nil {
		salutation = *f.EntityName
	}
	status := "NON-COMPLIANT"
	if cl.RequiredOK {
		status = "COMPLIANT"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear %s,\n\n", salutation)
	sb.WriteString("Thank you for submitting your GSA onboarding documents for review.\n\n")
	fmt.Fprintf(&sb, "ANALYSIS COMPLETE - Status: %s\n\n", status)
	sb.WriteString("We have completed our comprehensive analysis of your submission. ")
	if cl.RequiredOK {
		sb.WriteString("Congratulations!")
	} else {
		sb.WriteString("We have identified some areas that need attention.")
	}
	sb.WriteString("\n\nSUMMARY OF FINDINGS:\n")
	if cl.RequiredOK {
		sb.WriteString("\nSTRENGTHS:\n")
		sb.WriteString(bulleted(strengths, "Documents submitted successfully"))
		sb.WriteString("\n\nYour submission appears to meet the basic GSA requirements. We recommend proceeding with the next steps in the onboarding process.")
	} else {
		sb.WriteString("\nISSUES REQUIRING ATTENTION:\n")
		sb.WriteString(bulleted(issues, "No compliance issues found"))
		sb.WriteString("\n\nSTRENGTHS:\n")
		sb.WriteString(bulleted(strengths, "Documents submitted successfully"))
	}
	sb.WriteString("\n\nNEXT STEPS:\n")
	if cl.RequiredOK {
		sb.WriteString("1. Proceed with final submission\n")
	} else {
		sb.WriteString("1. Review and address the issues listed above\n")
	}
	sb.WriteString("2. Ensure all required fields are complete and accurate\n")
	sb.WriteString("3. Verify past performance meets GSA requirements (minimum $25,000 per project)\n")
	sb.WriteString("4. Confirm pricing aligns with market rates and labor categories\n\n")
	sb.WriteString("TIMELINE:\n")
	sb.WriteString("- Please respond within 5 business days with any corrections\n")
	sb.WriteString("- We will schedule a follow-up review once issues are addressed\n")
	sb.WriteString("- Final approval typically takes 2-3 weeks after all requirements are met\n\n")
	sb.WriteString("For questions or clarifications, please don't hesitate to contact us at your convenience.\n\n")
	sb.WriteString("Best regards,\nGSA Review Team\nFederal Contracting Division")
	return sb.String()
}

// buildCitations cites the rules that actually fired, distinct in first-fired
// order. A clean checklist cites the rules that were verified instead.
func buildCitations(cl domain.ComplianceChecklist) []domain.RuleCitation {
	var ids []domain.RuleID
	if len(cl.Problems) == 0 {
		ids = rules.VerifiedRules()
	} else {
		seen := make(map[domain.RuleID]bool)
		for _, p := range cl.Problems {
			if seen[p.RuleID] {
				continue
			}
			seen[p.RuleID] = true
			ids = append(ids, p.RuleID)
		}
	}

	citations := make([]domain.RuleCitation, 0, len(ids))
	for _, id := range ids {
		citations = append(citations, domain.RuleCitation{
			RuleID: id,
			Chunk:  rules.Excerpt(id),
		})
	}
	return citations
}
