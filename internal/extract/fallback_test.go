package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback_SkippedWhenKeywordPassHits(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("Loan Amount: $50,000. Wire 75,000 to escrow immediately.", 1)

	require.Len(t, out.LoanAmounts, 1)
	assert.Equal(t, 50000.0, out.LoanAmounts[0].Value)
}

func TestFallback_StandaloneAmount(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("A transfer of 75,000 was recorded on the ledger.", 1)

	require.Len(t, out.LoanAmounts, 1)
	assert.Equal(t, 75000.0, out.LoanAmounts[0].Value)
}

func TestFallback_AmountFloor(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("A sum of 9,500 noted in the margin.", 1)

	assert.Empty(t, out.LoanAmounts)
}

func TestFallback_AmountContextSuppression(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("Account balance of 45,000 maintained.", 1)

	assert.Empty(t, out.LoanAmounts)
}

func TestFallback_RateContextSuppression(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("A discount of 12.5% applies to early settlement.", 1)

	assert.Empty(t, out.InterestRates)
}

func TestFallback_StandaloneRate(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("Borrower shall pay 9.5% on the outstanding balance.", 1)

	require.Len(t, out.InterestRates, 1)
	assert.Equal(t, 9.5, out.InterestRates[0].Value)
}

func TestFallback_RateFloor(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("A variance of 0.05% was observed.", 1)

	assert.Empty(t, out.InterestRates)
}

func TestFallback_TermContextSuppression(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("Applicant aged 30 years at signing.", 1)

	assert.Empty(t, out.TermMonths)
}

func TestFallback_StandaloneTerm(t *testing.T) {
	e := New(DefaultConfig())
	out := e.ExtractPage("Repayable in 24 months without penalty.", 1)

	require.Len(t, out.TermMonths, 1)
	assert.Equal(t, 24.0, out.TermMonths[0].Value)
}

func TestFallback_PerPageIndependence(t *testing.T) {
	e := New(DefaultConfig())
	ex := e.ExtractDocument(map[int]string{
		1: "Loan Amount: $50,000",
		2: "Settlement figure 82,000 confirmed.",
	})

	require.Len(t, ex.Candidates.LoanAmounts, 2)
	assert.Equal(t, 50000.0, ex.Candidates.LoanAmounts[0].Value)
	assert.Equal(t, 1, ex.Candidates.LoanAmounts[0].Page)
	assert.Equal(t, 82000.0, ex.Candidates.LoanAmounts[1].Value)
	assert.Equal(t, 2, ex.Candidates.LoanAmounts[1].Page)
}
