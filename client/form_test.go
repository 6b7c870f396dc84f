package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/satya-aforv/finance-tracker-sub001/finance"
	"github.com/satya-aforv/finance-tracker-sub001/models"
)

func testPlan() models.Plan {
	return models.Plan{
		ID:            1,
		Name:          "Monthly Income",
		InterestRate:  2.5,
		InterestType:  models.InterestFlat,
		TenureMonths:  12,
		MinInvestment: 5000,
		MaxInvestment: 500000,
	}
}

func TestInvestmentForm_HappyPath(t *testing.T) {
	form := NewInvestmentForm(LocalCalculator())

	if form.State() != StateDraft {
		t.Fatalf("initial state = %s, want draft", form.State())
	}

	if err := form.SetInputs(context.Background(), testPlan(), 100000); err != nil {
		t.Fatal(err)
	}
	if form.State() != StateReady {
		t.Fatalf("state after valid inputs = %s, want ready", form.State())
	}

	result := form.Result()
	if result == nil {
		t.Fatal("expected a calculation result")
	}
	if result.Calculations.TotalInterest != 30000 {
		t.Errorf("total interest = %v, want 30000", result.Calculations.TotalInterest)
	}
}

func TestInvestmentForm_PrincipalBelowMinimumResetsToDraft(t *testing.T) {
	form := NewInvestmentForm(LocalCalculator())

	if err := form.SetInputs(context.Background(), testPlan(), 100000); err != nil {
		t.Fatal(err)
	}
	if form.State() != StateReady {
		t.Fatalf("state = %s, want ready", form.State())
	}

	// Dropping below the plan minimum clears the result, no calculation runs.
	if err := form.SetInputs(context.Background(), testPlan(), 1000); err != nil {
		t.Fatal(err)
	}
	if form.State() != StateDraft {
		t.Errorf("state = %s, want draft", form.State())
	}
	if form.Result() != nil {
		t.Error("result should be cleared when principal is below minimum")
	}
}

func TestInvestmentForm_CalculationFailureReturnsToDraft(t *testing.T) {
	calcErr := errors.New("calculation unavailable")
	calls := 0
	failing := func(_ context.Context, _ models.Plan, _ float64) (finance.CalculationResult, error) {
		calls++
		return finance.CalculationResult{}, calcErr
	}

	form := NewInvestmentForm(failing)
	if err := form.SetInputs(context.Background(), testPlan(), 100000); err != nil {
		t.Fatal(err)
	}

	if form.State() != StateDraft {
		t.Errorf("state = %s, want draft", form.State())
	}
	if form.Result() != nil {
		t.Error("failed calculation must not leave a result")
	}
	if !errors.Is(form.Err(), calcErr) {
		t.Errorf("err = %v, want %v", form.Err(), calcErr)
	}
	// No automatic retry.
	if calls != 1 {
		t.Errorf("calculator called %d times, want 1", calls)
	}
}

func TestInvestmentForm_SubmitGuardedOnCalculation(t *testing.T) {
	form := NewInvestmentForm(LocalCalculator())

	_, err := form.Submit(context.Background(), New("http://unused", ""), 1, "")
	if !errors.Is(err, ErrNoCalculation) {
		t.Fatalf("submit without calculation: err = %v, want ErrNoCalculation", err)
	}
}

func TestInvestmentForm_SubmitCreatedAndFailed(t *testing.T) {
	var rejectNext bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/investments" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if rejectNext {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Principal amount is outside the plan's investment range"})
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": models.Investment{ID: 42, PlanID: 1, PrincipalAmount: 100000},
		})
	}))
	defer server.Close()

	api := New(server.URL, "test-token")

	form := NewInvestmentForm(LocalCalculator())
	if err := form.SetInputs(context.Background(), testPlan(), 100000); err != nil {
		t.Fatal(err)
	}

	investment, err := form.Submit(context.Background(), api, 7, "first tranche")
	if err != nil {
		t.Fatal(err)
	}
	if investment.ID != 42 {
		t.Errorf("created investment ID = %d, want 42", investment.ID)
	}
	if form.State() != StateCreated {
		t.Errorf("state = %s, want created", form.State())
	}

	// A second form whose submission the server rejects ends in failed with
	// the error surfaced.
	rejectNext = true
	form2 := NewInvestmentForm(LocalCalculator())
	if err := form2.SetInputs(context.Background(), testPlan(), 100000); err != nil {
		t.Fatal(err)
	}
	if _, err := form2.Submit(context.Background(), api, 7, ""); err == nil {
		t.Fatal("expected submission error")
	}
	if form2.State() != StateFailed {
		t.Errorf("state = %s, want failed", form2.State())
	}
	var apiErr *APIError
	if !errors.As(form2.Err(), &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("err = %v, want 400 APIError", form2.Err())
	}
}

func TestInvestmentForm_InputChangeAfterFailureReEnters(t *testing.T) {
	form := NewInvestmentForm(LocalCalculator())
	if err := form.SetInputs(context.Background(), testPlan(), 100000); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Failed to create investment"})
	}))
	defer server.Close()

	if _, err := form.Submit(context.Background(), New(server.URL, ""), 7, ""); err == nil {
		t.Fatal("expected submission error")
	}
	if form.State() != StateFailed {
		t.Fatalf("state = %s, want failed", form.State())
	}

	// The machine is re-entrant: new inputs leave the failed state.
	if err := form.SetInputs(context.Background(), testPlan(), 150000); err != nil {
		t.Fatal(err)
	}
	if form.State() != StateReady {
		t.Errorf("state = %s, want ready", form.State())
	}
}

func TestLocalCalculatorMatchesServerAlgorithm(t *testing.T) {
	plan := testPlan()
	local, err := LocalCalculator()(context.Background(), plan, 100000)
	if err != nil {
		t.Fatal(err)
	}

	direct, ok := finance.CalculateReturns(100000, plan.InterestRate, plan.InterestType, plan.TenureMonths)
	if !ok {
		t.Fatal("direct calculation should succeed")
	}
	if local.Calculations != direct {
		t.Errorf("local fallback %+v diverges from %+v", local.Calculations, direct)
	}
}
