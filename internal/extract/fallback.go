package extract

import (
	"strconv"
	"strings"

	"github.com/loanlens/loanlens/internal/model"
)

// Field-specific exclusion terms for the fallback pass. A standalone match
// whose lower-cased context contains any of these is discarded. Keyword-
// anchored matches are never suppressed: the anchor itself carries the
// contextual confidence.
var (
	amountExclusions = []string{"date", "account", "phone", "pin", "id"}
	rateExclusions   = []string{"discount", "tax", "gst", "vat", "commission"}
	termExclusions   = []string{"age", "year old", "born", "date of"}
)

func contextExcluded(ctx string, exclusions []string) bool {
	lower := strings.ToLower(ctx)
	for _, term := range exclusions {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// fallbackAmounts scans for standalone currency values in the large-amount
// range. Runs only when the keyword pass found no loan amount on the page.
func (e *Engine) fallbackAmounts(text string, page int) []model.NumericCandidate {
	var out []model.NumericCandidate
	for _, m := range e.pats.standaloneCurrency.FindAllStringSubmatchIndex(text, -1) {
		if m[2] < 0 {
			continue
		}
		v, parsed := ParseCurrency(text[m[2]:m[3]])
		if !parsed || !e.cfg.Limits.fallbackAmountOK(v) {
			continue
		}
		ctx := contextWindow(text, m[0], m[1], e.cfg.FallbackContextWindow)
		if contextExcluded(ctx, amountExclusions) {
			continue
		}
		out = append(out, model.NumericCandidate{
			Value:   v,
			RawText: text[m[0]:m[1]],
			Page:    page,
			Context: ctx,
		})
	}
	return out
}

// fallbackRates scans for standalone percentages in the plausible rate
// range.
func (e *Engine) fallbackRates(text string, page int) []model.NumericCandidate {
	var out []model.NumericCandidate
	for _, m := range e.pats.standalonePercent.FindAllStringSubmatchIndex(text, -1) {
		if m[2] < 0 {
			continue
		}
		v, err := strconv.ParseFloat(text[m[2]:m[3]], 64)
		if err != nil || !e.cfg.Limits.fallbackRateOK(v) {
			continue
		}
		ctx := contextWindow(text, m[0], m[1], e.cfg.FallbackContextWindow)
		if contextExcluded(ctx, rateExclusions) {
			continue
		}
		out = append(out, model.NumericCandidate{
			Value:   v,
			RawText: text[m[0]:m[1]],
			Page:    page,
			Context: ctx,
		})
	}
	return out
}

// fallbackTerms scans for standalone month/year spans.
func (e *Engine) fallbackTerms(text string, page int) []model.NumericCandidate {
	var out []model.NumericCandidate
	for _, m := range e.pats.standaloneTerm.FindAllStringSubmatchIndex(text, -1) {
		months, ok := termMonths(text, m)
		if !ok || !e.cfg.Limits.termOK(months) {
			continue
		}
		ctx := contextWindow(text, m[0], m[1], e.cfg.FallbackContextWindow)
		if contextExcluded(ctx, termExclusions) {
			continue
		}
		out = append(out, model.NumericCandidate{
			Value:   float64(months),
			RawText: text[m[0]:m[1]],
			Page:    page,
			Context: ctx,
		})
	}
	return out
}
