package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getgsa/internal/domain"
	"getgsa/internal/rules"
)

func strptr(s string) *string { return &s }

func compliantInputs() (domain.ParsedFields, domain.ComplianceChecklist) {
	f := domain.ParsedFields{
		UEI:        strptr("ABC123DEF456"),
		DUNS:       strptr("123456789"),
		NAICS:      []string{"541511", "541512"},
		SAMStatus:  "active",
		EntityName: strptr("Acme Robotics LLC"),
	}
	return f, rules.Evaluate(f)
}

func TestGenerateCompliant(t *testing.T) {
	fields, cl := compliantInputs()
	brief, email, citations := Generate(fields, cl, "req-123")

	assert.Contains(t, brief, "Request req-123")
	assert.Contains(t, brief, "COMPLIANCE STATUS: COMPLIANT")
	assert.Contains(t, brief, "UEI present: ABC123DEF456")
	assert.Contains(t, brief, "NAICS codes identified: 541511, 541512")
	assert.Contains(t, brief, "No compliance issues found")

	assert.Contains(t, email, "Dear Acme Robotics LLC,")
	assert.Contains(t, email, "Status: COMPLIANT")
	assert.Contains(t, email, "Congratulations!")
	assert.Contains(t, email, "Proceed with final submission")

	// clean checklist cites the rules that were verified
	require.Len(t, citations, 2)
	assert.Equal(t, domain.RuleR1, citations[0].RuleID)
	assert.Equal(t, domain.RuleR2, citations[1].RuleID)
	for _, c := range citations {
		assert.NotEmpty(t, c.Chunk)
	}
}

func TestGenerateNonCompliant(t *testing.T) {
	fields := domain.ParsedFields{SAMStatus: "unknown"}
	cl := rules.Evaluate(fields)
	brief, email, citations := Generate(fields, cl, "req-456")

	assert.Contains(t, brief, "COMPLIANCE STATUS: NON-COMPLIANT")
	assert.Contains(t, brief, "R1: UEI not found in documents")
	assert.Contains(t, brief, "R2: No NAICS codes found in documents")

	assert.Contains(t, email, "Dear Valued Client,")
	assert.Contains(t, email, "areas that need attention")
	assert.Contains(t, email, "ISSUES REQUIRING ATTENTION:")
	assert.Contains(t, email, "Review and address the issues listed above")

	var ids []domain.RuleID
	for _, c := range citations {
		ids = append(ids, c.RuleID)
	}
	assert.Equal(t, []domain.RuleID{domain.RuleR1, domain.RuleR2}, ids)
}

func TestGenerateCitationsFollowFiredOrder(t *testing.T) {
	cl := domain.ComplianceChecklist{
		RequiredOK: false,
		Problems: []domain.ComplianceProblem{
			{Code: "missing_naics", RuleID: domain.RuleR2, Evidence: "No NAICS codes found in documents"},
			{Code: "missing_uei", RuleID: domain.RuleR1, Evidence: "UEI not found in documents"},
			{Code: "missing_duns", RuleID: domain.RuleR1, Evidence: "DUNS number not found in documents"},
		},
	}
	_, _, citations := Generate(domain.ParsedFields{}, cl, "req-789")

	require.Len(t, citations, 2)
	assert.Equal(t, domain.RuleR2, citations[0].RuleID)
	assert.Equal(t, domain.RuleR1, citations[1].RuleID)
}

func TestGenerateNotesUnavailableSections(t *testing.T) {
	fields, cl := compliantInputs()
	brief, _, _ := Generate(fields, cl, "req-1")
	assert.Contains(t, brief, "past-performance and pricing extraction is unavailable")

	fields.PastPerformance = []domain.PastPerformanceItem{{Title: "Project Alpha", Client: "Sample Client", Value: 75000}}
	fields.Pricing = domain.PricingItems{{LaborCategory: "Engineer", Rate: 125, Hours: 200, Unit: "Hour"}}
	brief, _, _ = Generate(fields, cl, "req-1")
	assert.NotContains(t, brief, "extraction is unavailable")
}

func TestGenerateDeterministic(t *testing.T) {
	fields, cl := compliantInputs()
	b1, e1, c1 := Generate(fields, cl, "req-1")
	b2, e2, c2 := Generate(fields, cl, "req-1")
	assert.Equal(t, b1, b2)
	assert.Equal(t, e1, e2)
	assert.Equal(t, c1, c2)
}

func TestBriefAndEmailShareStrengths(t *testing.T) {
	fields, cl := compliantInputs()
	brief, email, _ := Generate(fields, cl, "req-1")
	for _, line := range []string{"UEI present: ABC123DEF456", "DUNS present: 123456789", "SAM status: active"} {
		assert.Contains(t, brief, line)
		assert.Contains(t, email, line)
	}
}
