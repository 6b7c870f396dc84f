package client

import (
	"context"
	"errors"

	"github.com/satya-aforv/finance-tracker-sub001/finance"
	"github.com/satya-aforv/finance-tracker-sub001/models"
)

// FormState is a stage of the investment creation flow.
type FormState string

const (
	StateDraft      FormState = "draft"
	StateValidating FormState = "validating"
	StateReady      FormState = "ready"
	StateSubmitting FormState = "submitting"
	StateCreated    FormState = "created"
	StateFailed     FormState = "failed"
)

var (
	ErrNoCalculation = errors.New("no calculation result present")
	ErrSubmitting    = errors.New("submission in progress")
)

// Calculator produces a calculation for the current inputs. The production
// implementation delegates to the server for persisted plans and falls back
// to the local algorithm for unsaved drafts; tests swap in stubs.
type Calculator func(ctx context.Context, plan models.Plan, principal float64) (finance.CalculationResult, error)

// ServerCalculator calculates via the API.
func ServerCalculator(c *Client) Calculator {
	return func(ctx context.Context, plan models.Plan, principal float64) (finance.CalculationResult, error) {
		result, err := c.CalculatePlanReturns(ctx, plan.ID, principal)
		if err != nil {
			return finance.CalculationResult{}, err
		}
		return *result, nil
	}
}

// LocalCalculator runs the same algorithm the server uses, for plan drafts
// that have no server-side identity yet.
func LocalCalculator() Calculator {
	return func(_ context.Context, plan models.Plan, principal float64) (finance.CalculationResult, error) {
		calc, ok := finance.CalculateReturns(principal, plan.InterestRate, plan.InterestType, plan.TenureMonths)
		if !ok {
			return finance.CalculationResult{}, errors.New("amount is not calculable")
		}
		return finance.CalculationResult{PrincipalAmount: principal, Calculations: calc}, nil
	}
}

// InvestmentForm is the creation-flow machine: draft, validating, ready,
// submitting, then created or failed. Input changes in any state except
// submitting reset the machine; submit is refused without a calculation.
// Not safe for concurrent use; drive it from a single goroutine.
type InvestmentForm struct {
	calc    Calculator
	session CalcSession

	state     FormState
	plan      models.Plan
	principal float64
	lastErr   error
}

func NewInvestmentForm(calc Calculator) *InvestmentForm {
	return &InvestmentForm{calc: calc, state: StateDraft}
}

func (f *InvestmentForm) State() FormState { return f.state }

// Result is the current calculation, nil until a calculation has succeeded.
func (f *InvestmentForm) Result() *finance.CalculationResult { return f.session.Result() }

// Err is the error from the last failed calculation or submission.
func (f *InvestmentForm) Err() error { return f.lastErr }

// SetInputs updates the plan selection and principal amount. A valid
// principal (at or above the plan minimum) moves the form to validating and
// runs the calculation; anything else clears the result and returns to
// draft. Input changes are refused only while a submission is in flight.
func (f *InvestmentForm) SetInputs(ctx context.Context, plan models.Plan, principal float64) error {
	if f.state == StateSubmitting {
		return ErrSubmitting
	}

	f.plan = plan
	f.principal = principal
	f.lastErr = nil

	if principal < plan.MinInvestment || principal <= 0 {
		f.session.Reset()
		f.state = StateDraft
		return nil
	}

	f.state = StateValidating
	seq := f.session.Begin()

	result, err := f.calc(ctx, plan, principal)
	if err != nil {
		// No automatic retry; the next input change re-triggers.
		if f.session.Fail(seq) && f.state == StateValidating {
			f.state = StateDraft
			f.lastErr = err
		}
		return nil
	}

	if f.session.Apply(seq, result) && f.state == StateValidating {
		f.state = StateReady
	}
	return nil
}

// Submit creates the investment. Guarded: it refuses unless a calculation
// result is present. Server rejection moves the form to failed with the
// inputs intact; nothing is persisted client-side on failure.
func (f *InvestmentForm) Submit(ctx context.Context, c *Client, investorID uint, notes string) (*models.Investment, error) {
	if f.state == StateSubmitting {
		return nil, ErrSubmitting
	}
	if f.state != StateReady || f.session.Result() == nil {
		return nil, ErrNoCalculation
	}

	f.state = StateSubmitting
	investment, err := c.CreateInvestment(ctx, investorID, f.plan.ID, f.principal, notes)
	if err != nil {
		f.state = StateFailed
		f.lastErr = err
		return nil, err
	}

	f.state = StateCreated
	return investment, nil
}
