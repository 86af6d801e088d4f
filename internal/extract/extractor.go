package extract

import (
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/loanlens/loanlens/internal/model"
	"github.com/loanlens/loanlens/internal/pages"
)

// Config holds the engine's tunable policy. The defaults reproduce the
// canonical behavior; every threshold is policy, not a physical constant.
type Config struct {
	// ProximityWindow is the maximum gap in bytes between a keyword and
	// its value.
	ProximityWindow int `yaml:"proximity_window" mapstructure:"proximity_window"`
	// ContextWindow is the provenance window each side of a keyword match.
	ContextWindow int `yaml:"context_window" mapstructure:"context_window"`
	// FallbackContextWindow is the provenance window for standalone
	// matches; it doubles as the suppression inspection window.
	FallbackContextWindow int `yaml:"fallback_context_window" mapstructure:"fallback_context_window"`
	// MaxLLMTextChars caps the document text handed to the disambiguator.
	MaxLLMTextChars int `yaml:"max_llm_text_chars" mapstructure:"max_llm_text_chars"`
	// PageConcurrency bounds parallel per-page extraction. 1 means serial.
	PageConcurrency int `yaml:"page_concurrency" mapstructure:"page_concurrency"`

	Limits Limits `yaml:"limits" mapstructure:"limits"`
}

// DefaultConfig returns the canonical engine policy.
func DefaultConfig() Config {
	return Config{
		ProximityWindow:       150,
		ContextWindow:         100,
		FallbackContextWindow: 50,
		MaxLLMTextChars:       100_000,
		PageConcurrency:       4,
		Limits:                DefaultLimits(),
	}
}

// Engine finds numeric candidates in page-indexed loan document text.
// It is stateless after construction and safe for concurrent use.
type Engine struct {
	cfg  Config
	pats *patternSet
}

// New creates an Engine. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.ProximityWindow <= 0 {
		cfg.ProximityWindow = def.ProximityWindow
	}
	if cfg.ContextWindow <= 0 {
		cfg.ContextWindow = def.ContextWindow
	}
	if cfg.FallbackContextWindow <= 0 {
		cfg.FallbackContextWindow = def.FallbackContextWindow
	}
	if cfg.MaxLLMTextChars <= 0 {
		cfg.MaxLLMTextChars = def.MaxLLMTextChars
	}
	if cfg.PageConcurrency <= 0 {
		cfg.PageConcurrency = 1
	}
	if cfg.Limits == (Limits{}) {
		cfg.Limits = def.Limits
	}

	return &Engine{
		cfg:  cfg,
		pats: compilePatterns(cfg.ProximityWindow),
	}
}

// ExtractDocument runs candidate extraction over every page and assembles
// the complete result. Candidate order is page ascending, then match
// position ascending within page, in both serial and parallel modes. It is
// total: any input, including empty or garbage text, yields a well-formed
// result with possibly-empty candidate lists.
func (e *Engine) ExtractDocument(textByPage map[int]string) *model.DocumentExtraction {
	if len(textByPage) == 0 {
		textByPage = map[int]string{1: ""}
	}

	nums := make([]int, 0, len(textByPage))
	for n := range textByPage {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	perPage := make([]model.ExtractedNumbers, len(nums))

	if e.cfg.PageConcurrency > 1 && len(nums) > 1 {
		var g errgroup.Group
		g.SetLimit(e.cfg.PageConcurrency)
		for i, n := range nums {
			g.Go(func() error {
				perPage[i] = e.ExtractPage(textByPage[n], n)
				return nil
			})
		}
		// Workers write disjoint slots and never fail.
		_ = g.Wait()
	} else {
		for i, n := range nums {
			perPage[i] = e.ExtractPage(textByPage[n], n)
		}
	}

	var candidates model.ExtractedNumbers
	for _, pc := range perPage {
		for _, ft := range model.AllFieldTypes() {
			candidates.Append(ft, pc.ByField(ft)...)
		}
	}

	result := &model.DocumentExtraction{
		FullText:   pages.FullText(textByPage),
		TextByPage: textByPage,
		Candidates: candidates,
	}

	zap.L().Debug("extract: document complete",
		zap.Int("pages", len(nums)),
		zap.Int("loan_amounts", len(candidates.LoanAmounts)),
		zap.Int("interest_rates", len(candidates.InterestRates)),
		zap.Int("term_months", len(candidates.TermMonths)),
		zap.Int("monthly_payments", len(candidates.MonthlyPayments)),
		zap.Int("fees", len(candidates.Fees)),
	)

	return result
}

// ExtractPage extracts all candidates from a single page. Fields whose
// keyword-anchored pass finds nothing on this page get a standalone
// fallback scan; fields with at least one keyword match do not.
func (e *Engine) ExtractPage(text string, page int) model.ExtractedNumbers {
	var out model.ExtractedNumbers

	out.LoanAmounts = e.scanCurrency(e.pats.loanAmount, text, page, e.cfg.Limits.loanAmountOK)
	out.InterestRates = e.scanPercent(e.pats.rate, text, page)
	out.MonthlyPayments = e.scanCurrency(e.pats.payment, text, page, e.cfg.Limits.paymentOK)
	out.TermMonths = e.scanTerm(e.pats.term, text, page)
	out.Fees = e.scanCurrency(e.pats.fee, text, page, e.cfg.Limits.feeOK)

	if len(out.LoanAmounts) == 0 {
		out.LoanAmounts = e.fallbackAmounts(text, page)
	}
	if len(out.InterestRates) == 0 {
		out.InterestRates = e.fallbackRates(text, page)
	}
	if len(out.TermMonths) == 0 {
		out.TermMonths = e.fallbackTerms(text, page)
	}

	return out
}

// scanCurrency applies a keyword+currency pattern, parses group 1 and
// keeps values that pass the gate. Matched values are not deduplicated:
// the same figure under different keywords carries different downstream
// confidence.
func (e *Engine) scanCurrency(re *regexp.Regexp, text string, page int, ok func(float64) bool) []model.NumericCandidate {
	var out []model.NumericCandidate
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		if m[2] < 0 {
			continue
		}
		v, parsed := ParseCurrency(text[m[2]:m[3]])
		if !parsed || !ok(v) {
			continue
		}
		out = append(out, model.NumericCandidate{
			Value:   v,
			RawText: text[m[0]:m[1]],
			Page:    page,
			Context: contextWindow(text, m[0], m[1], e.cfg.ContextWindow),
		})
	}
	return out
}

// scanPercent applies the keyword+percent pattern and gates on the rate
// range.
func (e *Engine) scanPercent(re *regexp.Regexp, text string, page int) []model.NumericCandidate {
	var out []model.NumericCandidate
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		if m[2] < 0 {
			continue
		}
		v, err := strconv.ParseFloat(text[m[2]:m[3]], 64)
		if err != nil || !e.cfg.Limits.rateOK(v) {
			continue
		}
		out = append(out, model.NumericCandidate{
			Value:   v,
			RawText: text[m[0]:m[1]],
			Page:    page,
			Context: contextWindow(text, m[0], m[1], e.cfg.ContextWindow),
		})
	}
	return out
}

// scanTerm applies the keyword+term pattern. A year match is converted to
// months before the range gate.
func (e *Engine) scanTerm(re *regexp.Regexp, text string, page int) []model.NumericCandidate {
	var out []model.NumericCandidate
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		months, ok := termMonths(text, m)
		if !ok || !e.cfg.Limits.termOK(months) {
			continue
		}
		out = append(out, model.NumericCandidate{
			Value:   float64(months),
			RawText: text[m[0]:m[1]],
			Page:    page,
			Context: contextWindow(text, m[0], m[1], e.cfg.ContextWindow),
		})
	}
	return out
}

// termMonths resolves a term match's submatches to a month count: group 1
// is months directly, group 2 is years multiplied by 12.
func termMonths(text string, m []int) (int, bool) {
	switch {
	case m[2] >= 0:
		n, err := strconv.Atoi(text[m[2]:m[3]])
		return n, err == nil
	case m[4] >= 0:
		n, err := strconv.Atoi(text[m[4]:m[5]])
		return n * 12, err == nil
	}
	return 0, false
}
