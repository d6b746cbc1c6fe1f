// Package rules is the compliance rule engine: a fixed, ordered table of
// format and presence checks over extracted fields, plus the rules-pack text
// the checks are drawn from. Evaluate is pure and total.
package rules

import (
	"fmt"

	"getgsa/internal/domain"
)

// check is one row of the evaluation table. The table order is an observable
// contract: problems are appended in exactly this order and both the report
// generator and the API consumers depend on it.
type check struct {
	code   string
	ruleID domain.RuleID
	fire   func(f domain.ParsedFields) (bool, string)
}

var checks = []check{
	{
		code:   "missing_uei",
		ruleID: domain.RuleR1,
		fire: func(f domain.ParsedFields) (bool, string) {
			if f.UEI == nil {
				return true, "UEI not found in documents"
			}
			return false, ""
		},
	},
	{
		code:   "invalid_uei_format",
		ruleID: domain.RuleR1,
		fire: func(f domain.ParsedFields) (bool, string) {
			if f.UEI != nil && len(*f.UEI) != 12 {
				return true, fmt.Sprintf("UEI '%s' is not 12 characters", *f.UEI)
			}
			return false, ""
		},
	},
	{
		code:   "missing_duns",
		ruleID: domain.RuleR1,
		fire: func(f domain.ParsedFields) (bool, string) {
			if f.DUNS == nil {
				return true, "DUNS number not found in documents"
			}
			return false, ""
		},
	},
	{
		code:   "invalid_duns_format",
		ruleID: domain.RuleR1,
		fire: func(f domain.ParsedFields) (bool, string) {
			if f.DUNS != nil && len(*f.DUNS) != 9 {
				return true, fmt.Sprintf("DUNS '%s' is not 9 digits", *f.DUNS)
			}
			return false, ""
		},
	},
	{
		code:   "sam_inactive",
		ruleID: domain.RuleR1,
		fire: func(f domain.ParsedFields) (bool, string) {
			if f.SAMStatus != "active" && f.SAMStatus != "pending" {
				return true, fmt.Sprintf("SAM status is '%s' (should be active)", f.SAMStatus)
			}
			return false, ""
		},
	},
	{
		code:   "missing_naics",
		ruleID: domain.RuleR2,
		fire: func(f domain.ParsedFields) (bool, string) {
			if len(f.NAICS) == 0 {
				return true, "No NAICS codes found in documents"
			}
			return false, ""
		},
	},
}

// Evaluate runs every check against the fields and returns the checklist.
// Checks are independent; several may fire for the same field. required_ok is
// true iff nothing fired.
func Evaluate(f domain.ParsedFields) domain.ComplianceChecklist {
	cl := domain.ComplianceChecklist{
		RequiredOK: true,
		Problems:   []domain.ComplianceProblem{},
	}
	for _, c := range checks {
		fired, evidence := c.fire(f)
		if !fired {
			continue
		}
		cl.RequiredOK = false
		cl.Problems = append(cl.Problems, domain.ComplianceProblem{
			Code:     c.code,
			RuleID:   c.ruleID,
			Evidence: evidence,
		})
	}
	return cl
}

// VerifiedRules lists the rule IDs the deterministic tier actually checks,
// in table order. Used for citations when the checklist is clean.
func VerifiedRules() []domain.RuleID {
	seen := make(map[domain.RuleID]bool)
	var out []domain.RuleID
	for _, c := range checks {
		if seen[c.ruleID] {
			continue
		}
		seen[c.ruleID] = true
		out = append(out, c.ruleID)
	}
	return out
}
