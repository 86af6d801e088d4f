// Package extract implements the heuristic candidate-extraction engine for
// loan documents: keyword-proximity pattern matching, locale-aware currency
// parsing, plausibility filtering with standalone fallback detection, and
// context-window provenance for every candidate.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Value grammars. Each grammar captures the numeric portion in group 1
// (groups 1 and 2 for terms: months vs years).
const (
	// currencyValue matches Western ($25,000.00), South-Asian
	// (Rs 25,00,000 / ₹25,00,000) and plain (25000) amounts.
	currencyValue = `(?:Rs\.?|₹|\$)?\s*([\d,]+(?:\.\d{2})?)`

	// percentValue matches 12.5% or 12.5 percent.
	percentValue = `(\d+(?:\.\d+)?)\s*(?:%|percent)`

	// termValue matches 60 months, 5 years, 36-month, 24 mos.
	termValue = `(?:(\d+)\s*[-\s]?(?:months?|mos?\.?)|(\d+)\s*[-\s]?(?:years?|yrs?\.?))`
)

// Keyword vocabularies. Each entry is a regex fragment with flexible
// inter-word whitespace; composites are compiled case-insensitively.
var (
	loanKeywords = []string{
		`loan\s*amount`, `principal`, `amount\s*financed`,
		`total\s*loan`, `borrowing`, `credit\s*amount`,
		`loan\s*sanctioned`, `sanctioned\s*amount`, `loan\s*sanction`,
		`disbursement\s*amount`, `loan\s*value`, `amount\s*of\s*loan`,
		`loan\s*sum`, `principal\s*amount`, `loan\s*principal`,
		`loan\s*amount/limit`, `loan\s*limit`, `limit`, `amount/limit`,
		`loan\s*amount\s*limit`, `sanction\s*amount`, `loan\s*sum\s*sanctioned`,
	}

	interestKeywords = []string{
		`interest\s*rate`, `annual\s*percentage\s*rate`, `apr`,
		`rate\s*of\s*interest`, `fixed\s*rate`, `variable\s*rate`,
		`interest`, `roi`, `annual\s*rate`, `yearly\s*rate`,
		`rate\s*%`, `interest\s*%`, `rate\s*interest`,
		`%?\s*p\.a\.`, `per\s*annum`, `p\.a\.`, `pa\s*compounded`,
	}

	paymentKeywords = []string{
		`monthly\s*payment`, `payment\s*amount`, `installment`,
		`periodic\s*payment`, `emi`, `monthly\s*installment`,
		`equated\s*monthly`, `emi\s*amount`, `monthly\s*emi`,
		`payment\s*per\s*month`, `monthly\s*repayment`,
	}

	termKeywords = []string{
		`loan\s*term`, `repayment\s*period`, `tenor`, `duration`,
		`maturity`, `term\s*of\s*loan`, `emi\s*period`,
		`repayment\s*term`, `loan\s*duration`, `tenure`,
		`term\s*months`, `period\s*months`, `number\s*of\s*months`,
		`number\s*of\s*payments`, `payment\s*term`,
	}

	feeKeywords = []string{
		`processing\s*fee`, `origination\s*fee`, `late\s*fee`,
		`prepayment\s*penalty`, `service\s*charge`, `closing\s*cost`,
		`processing\s*charges`, `upfront\s*charge`, `processing\s*charge`,
		`fee`, `charges`, `cost`,
	}
)

// patternSet holds the precompiled composite patterns for one proximity
// window size. Built once per Engine.
type patternSet struct {
	loanAmount *regexp.Regexp
	rate       *regexp.Regexp
	payment    *regexp.Regexp
	term       *regexp.Regexp
	fee        *regexp.Regexp

	// Standalone value grammars for the fallback scan.
	standaloneCurrency *regexp.Regexp
	standalonePercent  *regexp.Regexp
	standaloneTerm     *regexp.Regexp
}

// keywordValuePattern compiles: (any keyword synonym) then up to window
// characters of arbitrary content, then the value grammar, non-greedy.
// (?s) lets the gap span newlines; the gap is a single bounded quantifier,
// never nested whitespace alternations.
func keywordValuePattern(keywords []string, valuePattern string, window int) *regexp.Regexp {
	group := strings.Join(keywords, "|")
	return regexp.MustCompile(fmt.Sprintf(`(?is)(?:%s).{0,%d}?%s`, group, window, valuePattern))
}

// compilePatterns builds the full pattern set for the given proximity window.
func compilePatterns(window int) *patternSet {
	return &patternSet{
		loanAmount: keywordValuePattern(loanKeywords, currencyValue, window),
		rate:       keywordValuePattern(interestKeywords, percentValue, window),
		payment:    keywordValuePattern(paymentKeywords, currencyValue, window),
		term:       keywordValuePattern(termKeywords, termValue, window),
		fee:        keywordValuePattern(feeKeywords, currencyValue, window),

		standaloneCurrency: regexp.MustCompile(`(?i)` + currencyValue),
		standalonePercent:  regexp.MustCompile(`(?i)` + percentValue),
		standaloneTerm:     regexp.MustCompile(`(?i)` + termValue),
	}
}
