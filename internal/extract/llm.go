package extract

import (
	"github.com/loanlens/loanlens/internal/model"
)

// truncationMarker is appended when the document text exceeds the budget.
const truncationMarker = "\n\n[... document truncated ...]"

// CandidateRef is the compact candidate projection handed to the
// downstream disambiguator.
type CandidateRef struct {
	Value   float64 `json:"value"`
	Page    int     `json:"page"`
	Context string  `json:"context"`
}

// LLMInput is the disambiguator-facing projection of an extraction: the
// document text truncated to the configured character budget and every
// candidate as {value, page, context}, grouped by field name.
type LLMInput struct {
	DocumentText string                    `json:"document_text"`
	Candidates   map[string][]CandidateRef `json:"candidates"`
}

// PrepareForLLM builds the projection for a completed extraction.
func (e *Engine) PrepareForLLM(ex *model.DocumentExtraction) LLMInput {
	text := ex.FullText
	if len(text) > e.cfg.MaxLLMTextChars {
		text = text[:e.cfg.MaxLLMTextChars] + truncationMarker
	}

	groups := make(map[string][]CandidateRef, 5)
	for name, cands := range map[string][]model.NumericCandidate{
		"loan_amounts":     ex.Candidates.LoanAmounts,
		"interest_rates":   ex.Candidates.InterestRates,
		"term_months":      ex.Candidates.TermMonths,
		"monthly_payments": ex.Candidates.MonthlyPayments,
		"fees":             ex.Candidates.Fees,
	} {
		refs := make([]CandidateRef, len(cands))
		for i, c := range cands {
			refs[i] = CandidateRef{Value: c.Value, Page: c.Page, Context: c.Context}
		}
		groups[name] = refs
	}

	return LLMInput{DocumentText: text, Candidates: groups}
}
