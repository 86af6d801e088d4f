package analyze

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/loanlens/loanlens/internal/extract"
	"github.com/loanlens/loanlens/internal/model"
)

const summarySystemPrompt = `You are a loan document analyst. You receive the text of a loan document
and numeric candidates found by pattern matching, each with its page and
surrounding context. Pick the correct value for each field and respond with
JSON only, matching this shape:

{
  "document_type": "loan_agreement",
  "overview": "two or three sentences in plain language",
  "key_numbers": {
    "total_loan": 0,
    "monthly_payment": 0,
    "interest_rate": 0,
    "term_months": 0,
    "total_interest": 0
  },
  "highlights": [{"type": "positive|negative|warning", "text": "..."}]
}`

const redFlagSystemPrompt = `You are a loan document analyst reviewing a loan for terms that are
unfavorable or potentially harmful to the borrower. You receive the
document text and numeric candidates with page references. Respond with a
JSON array only, matching this shape:

[
  {
    "severity": "high|medium|low",
    "title": "...",
    "description": "...",
    "location": {"page": 1, "section": "..."},
    "recommendation": "..."
  }
]

Return [] if nothing warrants a flag.`

// buildUserPrompt renders the LLM input as the user turn.
func buildUserPrompt(in extract.LLMInput) (string, error) {
	cands, err := json.MarshalIndent(in.Candidates, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "analyze: marshal candidates")
	}
	return fmt.Sprintf("DOCUMENT TEXT:\n%s\n\nEXTRACTED CANDIDATES:\n%s", in.DocumentText, cands), nil
}

// stripCodeFence removes a markdown code fence if the model wrapped its
// JSON in one.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func parseSummaryResponse(text string) (*model.LoanSummary, error) {
	var summary model.LoanSummary
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &summary); err != nil {
		return nil, eris.Wrap(err, "analyze: parse summary response")
	}
	summary.Source = "llm"
	if summary.Confidence == "" {
		summary.Confidence = "high"
	}
	return &summary, nil
}

func parseRedFlagResponse(text string) ([]model.RedFlag, error) {
	var flags []model.RedFlag
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &flags); err != nil {
		return nil, eris.Wrap(err, "analyze: parse red flag response")
	}
	return flags, nil
}
