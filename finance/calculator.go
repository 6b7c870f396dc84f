// Package finance holds the pure calculation core: return calculation,
// schedule generation and progress metrics. Nothing here touches the
// database or the network, so the same code backs both the API handlers and
// the client-side preview for unsaved plan drafts.
package finance

import "math"

// Calculation is the result of a return calculation for a principal placed
// against plan terms.
type Calculation struct {
	TotalInterest float64 `json:"total_interest"`
	TotalReturns  float64 `json:"total_returns"`
	EffectiveRate float64 `json:"effective_rate"`
}

// CalculationResult pairs the input principal with its calculations, the
// shape returned by the calculate endpoints.
type CalculationResult struct {
	PrincipalAmount float64     `json:"principal_amount"`
	Calculations    Calculation `json:"calculations"`
}

// CalculateReturns computes interest and total returns for a principal at
// ratePercent per month over tenureMonths. The second return value is false
// when the inputs are not calculable (principal not a positive finite
// number, tenure below one, or a negative/non-finite rate); callers treat
// that as "no result yet", not as an error.
func CalculateReturns(principal, ratePercent float64, interestType string, tenureMonths int) (Calculation, bool) {
	if !isFinite(principal) || principal <= 0 {
		return Calculation{}, false
	}
	if !isFinite(ratePercent) || ratePercent < 0 {
		return Calculation{}, false
	}
	if tenureMonths < 1 {
		return Calculation{}, false
	}

	monthlyRate := ratePercent / 100

	var totalInterest float64
	switch interestType {
	case "reducing":
		totalInterest = principal * (math.Pow(1+monthlyRate, float64(tenureMonths)) - 1)
	case "flat":
		totalInterest = principal * monthlyRate * float64(tenureMonths)
	default:
		return Calculation{}, false
	}

	return Calculation{
		TotalInterest: totalInterest,
		TotalReturns:  principal + totalInterest,
		EffectiveRate: totalInterest / principal * 100,
	}, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
