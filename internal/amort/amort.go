// Package amort provides the standard loan amortization formulas. These are
// the only raising functions in the engine core: bad inputs here indicate
// an upstream logic error that must not be masked.
package amort

import (
	"math"

	"github.com/rotisserie/eris"
)

// MonthlyPayment computes the fixed monthly installment for a loan using
// the standard annuity formula
//
//	PMT = P * r(1+r)^n / ((1+r)^n - 1)
//
// with monthly rate r = annualRatePct/12/100 and n = termMonths. A zero
// rate degenerates to simple linear division principal/termMonths.
func MonthlyPayment(principal, annualRatePct float64, termMonths int) (float64, error) {
	if err := validate(principal, annualRatePct, termMonths); err != nil {
		return 0, err
	}

	if annualRatePct == 0 {
		return principal / float64(termMonths), nil
	}

	r := annualRatePct / 12 / 100
	growth := math.Pow(1+r, float64(termMonths))

	denominator := growth - 1
	if denominator == 0 {
		return 0, eris.New("amort: annuity denominator is zero")
	}

	return principal * (r * growth / denominator), nil
}

// TotalInterest computes the interest paid over the life of the loan:
// monthlyPayment * termMonths - principal.
func TotalInterest(principal, monthlyPayment float64, termMonths int) (float64, error) {
	if err := validate(principal, monthlyPayment, termMonths); err != nil {
		return 0, err
	}
	return monthlyPayment*float64(termMonths) - principal, nil
}

func validate(principal, other float64, termMonths int) error {
	if math.IsNaN(principal) || math.IsNaN(other) ||
		math.IsInf(principal, 0) || math.IsInf(other, 0) {
		return eris.New("amort: inputs must be finite numbers")
	}
	if termMonths <= 0 {
		return eris.Errorf("amort: term months must be positive, got %d", termMonths)
	}
	if principal < 0 {
		return eris.Errorf("amort: principal must be non-negative, got %g", principal)
	}
	return nil
}
