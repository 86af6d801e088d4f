package extract

// Limits holds the plausibility range gates. Values outside a gate are
// discarded, not clamped. Bounds are inclusive unless noted.
type Limits struct {
	LoanAmountMin float64 `yaml:"loan_amount_min" mapstructure:"loan_amount_min"`
	LoanAmountMax float64 `yaml:"loan_amount_max" mapstructure:"loan_amount_max"`
	// RateMin is exclusive: a rate must be strictly positive.
	RateMin    float64 `yaml:"rate_min" mapstructure:"rate_min"`
	RateMax    float64 `yaml:"rate_max" mapstructure:"rate_max"`
	PaymentMin float64 `yaml:"payment_min" mapstructure:"payment_min"`
	PaymentMax float64 `yaml:"payment_max" mapstructure:"payment_max"`
	TermMin    int     `yaml:"term_min_months" mapstructure:"term_min_months"`
	TermMax    int     `yaml:"term_max_months" mapstructure:"term_max_months"`
	// FeeMin is exclusive: a fee must be strictly positive.
	FeeMin float64 `yaml:"fee_min" mapstructure:"fee_min"`
	FeeMax float64 `yaml:"fee_max" mapstructure:"fee_max"`

	// Fallback-mode overrides. The standalone amount scan only trusts
	// large values; the standalone rate scan needs a nonzero floor.
	FallbackAmountMin float64 `yaml:"fallback_amount_min" mapstructure:"fallback_amount_min"`
	FallbackRateMin   float64 `yaml:"fallback_rate_min" mapstructure:"fallback_rate_min"`
}

// DefaultLimits returns the standard plausibility gates: loan amount
// 1,000–10,000,000; rate (0, 50]; payment 50–100,000; term 6–480 months;
// fee (0, 50,000].
func DefaultLimits() Limits {
	return Limits{
		LoanAmountMin: 1_000,
		LoanAmountMax: 10_000_000,
		RateMin:       0,
		RateMax:       50,
		PaymentMin:    50,
		PaymentMax:    100_000,
		TermMin:       6,
		TermMax:       480,
		FeeMin:        0,
		FeeMax:        50_000,

		FallbackAmountMin: 10_000,
		FallbackRateMin:   0.1,
	}
}

func (l Limits) loanAmountOK(v float64) bool {
	return v >= l.LoanAmountMin && v <= l.LoanAmountMax
}

func (l Limits) rateOK(v float64) bool {
	return v > l.RateMin && v <= l.RateMax
}

func (l Limits) paymentOK(v float64) bool {
	return v >= l.PaymentMin && v <= l.PaymentMax
}

func (l Limits) termOK(months int) bool {
	return months >= l.TermMin && months <= l.TermMax
}

func (l Limits) feeOK(v float64) bool {
	return v > l.FeeMin && v <= l.FeeMax
}

func (l Limits) fallbackAmountOK(v float64) bool {
	return v >= l.FallbackAmountMin && v <= l.LoanAmountMax
}

func (l Limits) fallbackRateOK(v float64) bool {
	return v >= l.FallbackRateMin && v <= l.RateMax
}
