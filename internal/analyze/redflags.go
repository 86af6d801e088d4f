package analyze

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/loanlens/loanlens/internal/model"
)

// HeuristicRedFlags applies the fixed threshold rules to candidates: a
// rate above 15% is a high-severity flag, above 10% medium, and fees over
// 5% of the loan amount high.
func HeuristicRedFlags(ex *model.DocumentExtraction) []model.RedFlag {
	var flags []model.RedFlag

	rate := firstValue(ex.Candidates.InterestRates)
	if rate > 15 {
		flags = append(flags, model.RedFlag{
			ID:          uuid.New().String(),
			Severity:    model.SeverityHigh,
			Title:       "Very high interest rate",
			Description: fmt.Sprintf("The interest rate of %.2f%% is far above typical lending rates.", rate),
			Location: model.Location{
				Page:    firstPage(ex.Candidates.InterestRates),
				Section: "interest rate",
			},
			Recommendation: "Negotiate the rate or compare offers from other lenders before signing.",
		})
	} else if rate > 10 {
		flags = append(flags, model.RedFlag{
			ID:          uuid.New().String(),
			Severity:    model.SeverityMedium,
			Title:       "High interest rate",
			Description: fmt.Sprintf("The interest rate of %.2f%% is above typical lending rates.", rate),
			Location: model.Location{
				Page:    firstPage(ex.Candidates.InterestRates),
				Section: "interest rate",
			},
			Recommendation: "Check whether a lower rate is available for your credit profile.",
		})
	}

	loan := firstValue(ex.Candidates.LoanAmounts)
	fee := firstValue(ex.Candidates.Fees)
	if loan > 0 && fee > loan*0.05 {
		flags = append(flags, model.RedFlag{
			ID:          uuid.New().String(),
			Severity:    model.SeverityHigh,
			Title:       "Excessive fees",
			Description: fmt.Sprintf("Fees of %.2f exceed 5%% of the loan amount of %.2f.", fee, loan),
			Location: model.Location{
				Page:    firstPage(ex.Candidates.Fees),
				Section: "fees",
			},
			Recommendation: "Ask the lender for an itemized fee breakdown and dispute charges that are not justified.",
		})
	}

	return flags
}
