package analyze

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanlens/loanlens/internal/extract"
	"github.com/loanlens/loanlens/internal/model"
	"github.com/loanlens/loanlens/pkg/anthropic"
)

// scriptedClient returns one canned response or error per CreateMessage
// call, in order.
type scriptedClient struct {
	responses []string
	errs      []error
	calls     int
	requests  []anthropic.MessageRequest
}

func (c *scriptedClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	i := c.calls
	c.calls++
	c.requests = append(c.requests, req)
	if i < len(c.errs) && c.errs[i] != nil {
		return nil, c.errs[i]
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: c.responses[i]}},
		Usage:   anthropic.TokenUsage{InputTokens: 100, OutputTokens: 50},
	}, nil
}

const summaryJSON = `{
  "document_type": "loan_agreement",
  "overview": "A five year personal loan of 25,000 at 12.5% interest.",
  "key_numbers": {
    "total_loan": 25000,
    "monthly_payment": 562.45,
    "interest_rate": 12.5,
    "term_months": 60,
    "total_interest": 8747
  },
  "highlights": [{"type": "negative", "text": "Rate is above market"}]
}`

const redFlagJSON = `[
  {
    "severity": "high",
    "title": "Prepayment penalty",
    "description": "The loan charges 2% of the outstanding balance on early repayment.",
    "location": {"page": 3, "section": "prepayment"},
    "recommendation": "Ask for the penalty to be removed."
  }
]`

func sampleExtraction(t *testing.T) *model.DocumentExtraction {
	t.Helper()
	engine := extract.New(extract.DefaultConfig())
	ex := engine.ExtractDocument(map[int]string{
		1: "The Loan Amount is $25,000.00 repayable over 60 months at an Interest Rate of 12.5% p.a.",
	})
	require.NotEmpty(t, ex.Candidates.LoanAmounts)
	return ex
}

func TestAnalyze_LLM(t *testing.T) {
	client := &scriptedClient{responses: []string{summaryJSON, redFlagJSON}}
	a := New(client, extract.New(extract.DefaultConfig()), "claude-haiku-4-5-20251001")

	analysis := a.Analyze(context.Background(), "doc-1", sampleExtraction(t))

	require.NotNil(t, analysis.Summary)
	assert.Equal(t, "doc-1", analysis.DocumentID)
	assert.Equal(t, "llm", analysis.Summary.Source)
	assert.Equal(t, "high", analysis.Summary.Confidence)
	assert.Equal(t, 25000.0, analysis.Summary.KeyNumbers.TotalLoan)

	require.Len(t, analysis.RedFlags, 1)
	assert.Equal(t, model.SeverityHigh, analysis.RedFlags[0].Severity)
	assert.Equal(t, "Prepayment penalty", analysis.RedFlags[0].Title)
	assert.NotEmpty(t, analysis.RedFlags[0].ID, "missing flag IDs are filled in")

	require.Equal(t, 2, client.calls)
	assert.Equal(t, "claude-haiku-4-5-20251001", client.requests[0].Model)
	require.NotEmpty(t, client.requests[0].System)
	assert.Contains(t, client.requests[0].Messages[0].Content, "DOCUMENT TEXT:")
	assert.Contains(t, client.requests[0].Messages[0].Content, "EXTRACTED CANDIDATES:")
}

func TestAnalyze_NilClientUsesHeuristics(t *testing.T) {
	a := New(nil, extract.New(extract.DefaultConfig()), "")

	analysis := a.Analyze(context.Background(), "doc-2", sampleExtraction(t))

	require.NotNil(t, analysis.Summary)
	assert.Equal(t, "heuristic", analysis.Summary.Source)
	assert.Equal(t, "low", analysis.Summary.Confidence)
	assert.Equal(t, 25000.0, analysis.Summary.KeyNumbers.TotalLoan)
	assert.InDelta(t, 562.45, analysis.Summary.KeyNumbers.MonthlyPayment, 0.01)

	// 12.5% sits in the medium band.
	require.Len(t, analysis.RedFlags, 1)
	assert.Equal(t, model.SeverityMedium, analysis.RedFlags[0].Severity)
}

func TestAnalyze_LLMErrorFallsBack(t *testing.T) {
	client := &scriptedClient{
		responses: []string{"", ""},
		errs:      []error{eris.New("overloaded"), eris.New("overloaded")},
	}
	a := New(client, extract.New(extract.DefaultConfig()), "claude-haiku-4-5-20251001")

	analysis := a.Analyze(context.Background(), "doc-3", sampleExtraction(t))

	require.NotNil(t, analysis.Summary)
	assert.Equal(t, "heuristic", analysis.Summary.Source)
	require.Len(t, analysis.RedFlags, 1)
}

func TestAnalyze_MalformedSummaryFallsBack(t *testing.T) {
	client := &scriptedClient{responses: []string{"I cannot answer in JSON.", redFlagJSON}}
	a := New(client, extract.New(extract.DefaultConfig()), "claude-haiku-4-5-20251001")

	analysis := a.Analyze(context.Background(), "doc-4", sampleExtraction(t))

	assert.Equal(t, "heuristic", analysis.Summary.Source)
	require.Len(t, analysis.RedFlags, 1)
	assert.Equal(t, "Prepayment penalty", analysis.RedFlags[0].Title)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("  {\"a\":1}  "))
}

func TestParseSummaryResponse(t *testing.T) {
	s, err := parseSummaryResponse("```json\n" + summaryJSON + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "llm", s.Source)
	assert.Equal(t, "high", s.Confidence)
	assert.Equal(t, 60, s.KeyNumbers.TermMonths)

	_, err = parseSummaryResponse("not json")
	assert.Error(t, err)
}

func TestParseRedFlagResponse(t *testing.T) {
	flags, err := parseRedFlagResponse("[]")
	require.NoError(t, err)
	assert.Empty(t, flags)

	flags, err = parseRedFlagResponse(redFlagJSON)
	require.NoError(t, err)
	require.Len(t, flags, 1)
	assert.Equal(t, 3, flags[0].Location.Page)
}
