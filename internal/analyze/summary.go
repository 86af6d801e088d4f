// Package analyze turns a finished extraction into a borrower-facing
// summary and red-flag list, through the LLM when a client is configured
// and through candidate heuristics otherwise.
package analyze

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/loanlens/loanlens/internal/amort"
	"github.com/loanlens/loanlens/internal/model"
)

// firstValue returns the first candidate's value, or 0 when the list is
// empty. First occurrence in page order is the best guess absent the LLM.
func firstValue(cands []model.NumericCandidate) float64 {
	if len(cands) == 0 {
		return 0
	}
	return cands[0].Value
}

func firstPage(cands []model.NumericCandidate) int {
	if len(cands) == 0 {
		return 0
	}
	return cands[0].Page
}

// HeuristicSummary builds a summary from candidates alone: first match per
// field, amortization filling the gaps.
func HeuristicSummary(ex *model.DocumentExtraction) *model.LoanSummary {
	loan := firstValue(ex.Candidates.LoanAmounts)
	rate := firstValue(ex.Candidates.InterestRates)
	term := int(firstValue(ex.Candidates.TermMonths))
	payment := firstValue(ex.Candidates.MonthlyPayments)
	fee := firstValue(ex.Candidates.Fees)

	if payment == 0 && loan > 0 && rate > 0 && term > 0 {
		pmt, err := amort.MonthlyPayment(loan, rate, term)
		if err != nil {
			zap.L().Warn("analyze: compute monthly payment", zap.Error(err))
		} else {
			payment = pmt
		}
	}

	var totalInterest float64
	if payment > 0 && term > 0 {
		ti, err := amort.TotalInterest(loan, payment, term)
		if err != nil {
			zap.L().Warn("analyze: compute total interest", zap.Error(err))
		} else {
			totalInterest = ti
		}
	}

	return &model.LoanSummary{
		DocumentType: "loan_agreement",
		Overview:     overviewText(loan, rate, term),
		KeyNumbers: model.KeyNumbers{
			TotalLoan:      loan,
			MonthlyPayment: payment,
			InterestRate:   rate,
			TermMonths:     term,
			TotalInterest:  totalInterest,
		},
		Highlights: highlights(loan, rate, term, fee),
		Source:     "heuristic",
		Confidence: "low",
	}
}

func overviewText(loan, rate float64, term int) string {
	if loan == 0 && rate == 0 && term == 0 {
		return "No loan terms could be identified in this document."
	}
	return fmt.Sprintf(
		"Loan of %.2f repayable over %d months at an annual interest rate of %.2f%%, based on pattern matching of the document text.",
		loan, term, rate,
	)
}

// highlights applies the fixed callout rules to the headline figures.
func highlights(loan, rate float64, term int, fee float64) []model.Highlight {
	var out []model.Highlight

	if rate > 10 {
		out = append(out, model.Highlight{
			Type: model.HighlightNegative,
			Text: fmt.Sprintf("Interest rate of %.2f%% is above typical market rates", rate),
		})
	} else if rate > 0 && rate < 6 {
		out = append(out, model.Highlight{
			Type: model.HighlightPositive,
			Text: fmt.Sprintf("Interest rate of %.2f%% is competitive", rate),
		})
	}

	if term >= 60 {
		out = append(out, model.Highlight{
			Type: model.HighlightWarning,
			Text: fmt.Sprintf("Long repayment term of %d months increases total interest paid", term),
		})
	}

	if loan > 0 && fee > loan*0.03 {
		out = append(out, model.Highlight{
			Type: model.HighlightWarning,
			Text: fmt.Sprintf("Fees of %.2f exceed 3%% of the loan amount", fee),
		})
	}

	return out
}
