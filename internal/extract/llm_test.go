package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareForLLM_GroupsByField(t *testing.T) {
	e := New(DefaultConfig())
	ex := e.ExtractDocument(map[int]string{
		1: "The Loan Amount is $25,000.00 repayable over 60 months at an Interest Rate of 12.5% p.a.",
	})

	in := e.PrepareForLLM(ex)

	require.Len(t, in.Candidates, 5)
	for _, key := range []string{"loan_amounts", "interest_rates", "term_months", "monthly_payments", "fees"} {
		_, present := in.Candidates[key]
		assert.True(t, present, key)
	}

	require.Len(t, in.Candidates["loan_amounts"], 1)
	ref := in.Candidates["loan_amounts"][0]
	assert.Equal(t, 25000.0, ref.Value)
	assert.Equal(t, 1, ref.Page)
	assert.Contains(t, ref.Context, "Loan Amount")

	assert.Empty(t, in.Candidates["monthly_payments"])
	assert.Empty(t, in.Candidates["fees"])
}

func TestPrepareForLLM_TruncatesText(t *testing.T) {
	e := New(Config{MaxLLMTextChars: 40})
	ex := e.ExtractDocument(map[int]string{
		1: "The Loan Amount is $25,000.00 repayable over 60 months at an Interest Rate of 12.5% p.a.",
	})

	in := e.PrepareForLLM(ex)

	assert.True(t, strings.HasSuffix(in.DocumentText, truncationMarker))
	assert.Len(t, in.DocumentText, 40+len(truncationMarker))
	assert.Equal(t, ex.FullText[:40], strings.TrimSuffix(in.DocumentText, truncationMarker))
}

func TestPrepareForLLM_ShortTextUntouched(t *testing.T) {
	e := New(DefaultConfig())
	ex := e.ExtractDocument(map[int]string{1: "short"})

	in := e.PrepareForLLM(ex)
	assert.Equal(t, ex.FullText, in.DocumentText)
	assert.NotContains(t, in.DocumentText, "truncated")
}
