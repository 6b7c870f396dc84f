package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleInput carries the plan terms a schedule is generated from.
type ScheduleInput struct {
	Principal                    float64
	RatePercent                  float64 // percent per month
	InterestType                 string  // flat | reducing
	PaymentType                  string  // interest | interestWithPrincipal
	Frequency                    string  // monthly | quarterly | half_yearly | yearly | others
	PrincipalRepaymentPercentage float64 // used by interestWithPrincipal plans
	TenureMonths                 int
	StartDate                    time.Time
}

// ScheduleEntry is one generated payment period. Month is the month offset
// at which the payment falls due (the period end), strictly ascending.
type ScheduleEntry struct {
	Month           int       `json:"month"`
	DueDate         time.Time `json:"due_date"`
	InterestAmount  float64   `json:"interest_amount"`
	PrincipalAmount float64   `json:"principal_amount"`
	TotalAmount     float64   `json:"total_amount"`
}

// GenerateSchedule produces one entry per payment period. Interest is spread
// evenly across periods; principal lands in the final entry for
// interest-only plans, or is drawn down per period for
// interest-with-principal plans with the remainder folded into the final
// entry. Amounts are allocated in cents so each entry satisfies
// total == interest + principal exactly and the entries sum to the
// calculator's totals. Returns false when the inputs are not calculable.
func GenerateSchedule(in ScheduleInput) ([]ScheduleEntry, Calculation, bool) {
	calc, ok := CalculateReturns(in.Principal, in.RatePercent, in.InterestType, in.TenureMonths)
	if !ok {
		return nil, Calculation{}, false
	}

	step := periodMonths(in.Frequency, in.TenureMonths)
	periods := in.TenureMonths / step
	if periods < 1 {
		periods = 1
	}

	totalInterest := decimal.NewFromFloat(calc.TotalInterest).Round(2)
	principal := decimal.NewFromFloat(in.Principal).Round(2)

	// Even interest split, cent remainder in the last entry.
	perInterest := totalInterest.Div(decimal.NewFromInt(int64(periods))).Round(2)
	lastInterest := totalInterest.Sub(perInterest.Mul(decimal.NewFromInt(int64(periods - 1))))

	// Per-period principal share; zero for interest-only plans.
	perPrincipal := decimal.Zero
	if in.PaymentType == "interestWithPrincipal" && in.PrincipalRepaymentPercentage > 0 {
		perPrincipal = principal.Mul(decimal.NewFromFloat(in.PrincipalRepaymentPercentage)).Div(decimal.NewFromInt(100)).Round(2)
	}

	entries := make([]ScheduleEntry, 0, periods)
	remaining := principal
	for i := 1; i <= periods; i++ {
		month := i * step
		due := in.StartDate.AddDate(0, month, 0)

		interest := perInterest
		if i == periods {
			interest = lastInterest
			// A tenure that does not divide evenly still matures on time.
			month = in.TenureMonths
			due = in.StartDate.AddDate(0, in.TenureMonths, 0)
		}

		var principalPart decimal.Decimal
		if i == periods {
			principalPart = remaining
		} else {
			principalPart = perPrincipal
			if principalPart.GreaterThan(remaining) {
				principalPart = remaining
			}
		}
		remaining = remaining.Sub(principalPart)

		total := interest.Add(principalPart)
		entries = append(entries, ScheduleEntry{
			Month:           month,
			DueDate:         due,
			InterestAmount:  interest.InexactFloat64(),
			PrincipalAmount: principalPart.InexactFloat64(),
			TotalAmount:     total.InexactFloat64(),
		})
	}

	return entries, calc, true
}

func periodMonths(frequency string, tenureMonths int) int {
	switch frequency {
	case "quarterly":
		return 3
	case "half_yearly":
		return 6
	case "yearly":
		return 12
	case "others":
		// Single bullet payment at maturity.
		if tenureMonths > 0 {
			return tenureMonths
		}
		return 1
	default: // monthly
		return 1
	}
}
