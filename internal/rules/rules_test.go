package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getgsa/internal/domain"
)

func strptr(s string) *string { return &s }

func validFields() domain.ParsedFields {
	return domain.ParsedFields{
		UEI:       strptr("ABC123DEF456"),
		DUNS:      strptr("123456789"),
		NAICS:     []string{"541511"},
		SAMStatus: "active",
	}
}

func TestEvaluateAllValid(t *testing.T) {
	cl := Evaluate(validFields())
	assert.True(t, cl.RequiredOK)
	assert.Empty(t, cl.Problems)
}

func TestEvaluatePendingSAMIsAcceptable(t *testing.T) {
	f := validFields()
	f.SAMStatus = "pending"
	cl := Evaluate(f)
	assert.True(t, cl.RequiredOK)
}

func TestEvaluateNothingExtractable(t *testing.T) {
	cl := Evaluate(domain.ParsedFields{SAMStatus: "unknown"})

	assert.False(t, cl.RequiredOK)
	var codes []string
	for _, p := range cl.Problems {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{"missing_uei", "missing_duns", "sam_inactive", "missing_naics"}, codes)
}

func TestEvaluateAllNullFiresEveryPresenceCheck(t *testing.T) {
	cl := Evaluate(domain.ParsedFields{})

	assert.False(t, cl.RequiredOK)
	require.Len(t, cl.Problems, 4)
	assert.Equal(t, "sam_inactive", cl.Problems[2].Code)
	assert.Equal(t, "SAM status is '' (should be active)", cl.Problems[2].Evidence)
}

func TestEvaluateMalformedUEI(t *testing.T) {
	f := validFields()
	f.UEI = strptr("ABC123")
	cl := Evaluate(f)

	assert.False(t, cl.RequiredOK)
	require.Len(t, cl.Problems, 1)
	p := cl.Problems[0]
	assert.Equal(t, "invalid_uei_format", p.Code)
	assert.Equal(t, domain.RuleR1, p.RuleID)
	assert.Contains(t, p.Evidence, "ABC123")
	assert.Equal(t, "UEI 'ABC123' is not 12 characters", p.Evidence)
}

func TestEvaluateMalformedDUNS(t *testing.T) {
	f := validFields()
	f.DUNS = strptr("1234")
	cl := Evaluate(f)

	require.Len(t, cl.Problems, 1)
	assert.Equal(t, "invalid_duns_format", cl.Problems[0].Code)
	assert.Equal(t, "DUNS '1234' is not 9 digits", cl.Problems[0].Evidence)
}

func TestEvaluateSAMInactive(t *testing.T) {
	f := validFields()
	f.SAMStatus = "inactive"
	cl := Evaluate(f)

	require.Len(t, cl.Problems, 1)
	assert.Equal(t, "sam_inactive", cl.Problems[0].Code)
	assert.Equal(t, "SAM status is 'inactive' (should be active)", cl.Problems[0].Evidence)
}

func TestEvaluateMonotonicity(t *testing.T) {
	// Filling in a missing field removes its problem and never adds one.
	f := domain.ParsedFields{SAMStatus: "unknown"}
	before := Evaluate(f)

	f.UEI = strptr("ABC123DEF456")
	after := Evaluate(f)

	assert.Len(t, after.Problems, len(before.Problems)-1)
	for _, p := range after.Problems {
		assert.NotEqual(t, "missing_uei", p.Code)
		assert.NotEqual(t, "invalid_uei_format", p.Code)
	}
}

func TestEvaluateProblemOrderIsStable(t *testing.T) {
	f := domain.ParsedFields{
		UEI:       strptr("SHORT"),
		DUNS:      strptr("12"),
		SAMStatus: "expired",
	}
	cl := Evaluate(f)

	var codes []string
	for _, p := range cl.Problems {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{"invalid_uei_format", "invalid_duns_format", "sam_inactive", "missing_naics"}, codes)
}

func TestVerifiedRules(t *testing.T) {
	assert.Equal(t, []domain.RuleID{domain.RuleR1, domain.RuleR2}, VerifiedRules())
}

func TestPackCoversAllRules(t *testing.T) {
	require.Len(t, Pack, 5)
	text := PackText()
	for _, id := range []domain.RuleID{domain.RuleR1, domain.RuleR2, domain.RuleR3, domain.RuleR4, domain.RuleR5} {
		assert.Contains(t, text, string(id))
		assert.NotEmpty(t, Excerpt(id))
	}
	assert.Empty(t, Excerpt(domain.RuleID("R9")))
}
