package model

// FieldType identifies which loan field a candidate belongs to.
type FieldType string

const (
	FieldLoanAmount     FieldType = "loan_amount"
	FieldInterestRate   FieldType = "interest_rate"
	FieldTermMonths     FieldType = "term_months"
	FieldMonthlyPayment FieldType = "monthly_payment"
	FieldFee            FieldType = "fee"
)

// AllFieldTypes returns all defined field types.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldLoanAmount,
		FieldInterestRate,
		FieldTermMonths,
		FieldMonthlyPayment,
		FieldFee,
	}
}

// NumericCandidate is a single detected occurrence of a numeric value with
// provenance. Immutable once created; owned by the ExtractedNumbers that
// holds it.
type NumericCandidate struct {
	// Value is the parsed numeric value. Term candidates carry a month
	// count (semantically an integer) stored as float64.
	Value float64 `json:"value"`
	// RawText is the exact matched substring: keyword+value span for
	// keyword-anchored matches, value-only span for fallback matches.
	RawText string `json:"raw_text"`
	// Page is the 1-based page attribution.
	Page int `json:"page"`
	// Context is bounded, whitespace-normalized text surrounding the
	// match, with ellipsis markers where the window was truncated.
	Context string `json:"context"`
}

// ExtractedNumbers holds all numeric candidates found in a document, one
// insertion-ordered sequence per field. Order reflects document scan order
// (page ascending, then match position within page); simple consumers treat
// the first element as most likely.
type ExtractedNumbers struct {
	LoanAmounts     []NumericCandidate `json:"loan_amounts"`
	InterestRates   []NumericCandidate `json:"interest_rates"`
	TermMonths      []NumericCandidate `json:"term_months"`
	MonthlyPayments []NumericCandidate `json:"monthly_payments"`
	Fees            []NumericCandidate `json:"fees"`
}

// ByField returns the candidate sequence for the given field type.
func (e *ExtractedNumbers) ByField(ft FieldType) []NumericCandidate {
	switch ft {
	case FieldLoanAmount:
		return e.LoanAmounts
	case FieldInterestRate:
		return e.InterestRates
	case FieldTermMonths:
		return e.TermMonths
	case FieldMonthlyPayment:
		return e.MonthlyPayments
	case FieldFee:
		return e.Fees
	}
	return nil
}

// Append adds candidates to the sequence for the given field type.
func (e *ExtractedNumbers) Append(ft FieldType, cands ...NumericCandidate) {
	switch ft {
	case FieldLoanAmount:
		e.LoanAmounts = append(e.LoanAmounts, cands...)
	case FieldInterestRate:
		e.InterestRates = append(e.InterestRates, cands...)
	case FieldTermMonths:
		e.TermMonths = append(e.TermMonths, cands...)
	case FieldMonthlyPayment:
		e.MonthlyPayments = append(e.MonthlyPayments, cands...)
	case FieldFee:
		e.Fees = append(e.Fees, cands...)
	}
}

// Total returns the total candidate count across all fields.
func (e *ExtractedNumbers) Total() int {
	return len(e.LoanAmounts) + len(e.InterestRates) + len(e.TermMonths) +
		len(e.MonthlyPayments) + len(e.Fees)
}

// DocumentExtraction is the complete result of extracting one document:
// the full concatenated text with page markers re-inserted for readability,
// the per-page text mapping, and the numeric candidates. Created once per
// document; read-only afterward.
type DocumentExtraction struct {
	FullText   string           `json:"full_text"`
	TextByPage map[int]string   `json:"text_by_page"`
	Candidates ExtractedNumbers `json:"numeric_candidates"`
}
