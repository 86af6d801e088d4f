package model

import "time"

// DocumentStatus tracks a document through its processing lifecycle.
type DocumentStatus string

const (
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusComplete   DocumentStatus = "complete"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Document is an uploaded loan document awaiting or holding analysis.
type Document struct {
	ID         string         `json:"id"`
	Filename   string         `json:"filename"`
	Status     DocumentStatus `json:"status"`
	UploadedAt time.Time      `json:"uploaded_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Location points a finding at a page and a named section.
type Location struct {
	Page    int    `json:"page"`
	Section string `json:"section"`
}

// KeyNumbers holds the disambiguated headline figures of a loan.
type KeyNumbers struct {
	TotalLoan      float64 `json:"total_loan"`
	MonthlyPayment float64 `json:"monthly_payment"`
	InterestRate   float64 `json:"interest_rate"`
	TermMonths     int     `json:"term_months"`
	TotalInterest  float64 `json:"total_interest"`
}

// HighlightType classifies a summary highlight.
type HighlightType string

const (
	HighlightPositive HighlightType = "positive"
	HighlightNegative HighlightType = "negative"
	HighlightWarning  HighlightType = "warning"
)

// Highlight is a short callout attached to a summary.
type Highlight struct {
	Type HighlightType `json:"type"`
	Text string        `json:"text"`
}

// LoanSummary is the disambiguated document summary.
type LoanSummary struct {
	DocumentType string      `json:"document_type"`
	Overview     string      `json:"overview"`
	KeyNumbers   KeyNumbers  `json:"key_numbers"`
	Highlights   []Highlight `json:"highlights"`
	// Source records how the summary was produced: "llm" or "heuristic".
	Source     string `json:"source"`
	Confidence string `json:"confidence"`
}

// Severity grades a red flag by financial impact to the borrower.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RedFlag is a term unfavorable or potentially harmful to the borrower.
type RedFlag struct {
	ID             string   `json:"id"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       Location `json:"location"`
	Recommendation string   `json:"recommendation"`
}

// Analysis bundles everything derived from one document.
type Analysis struct {
	DocumentID string       `json:"document_id"`
	Summary    *LoanSummary `json:"summary,omitempty"`
	RedFlags   []RedFlag    `json:"red_flags,omitempty"`
	Error      string       `json:"error,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}
