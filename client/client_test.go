package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/satya-aforv/finance-tracker-sub001/finance"
)

func TestClient_CalculateReturnsUsesPlanTerms(t *testing.T) {
	planRate, planTenure := 2.5, 12

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/investments/calculate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req struct {
			PlanID          uint    `json:"plan_id"`
			PrincipalAmount float64 `json:"principal_amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.PlanID != 1 {
			t.Errorf("plan_id = %d, want 1", req.PlanID)
		}
		if req.PrincipalAmount != 10000 {
			t.Errorf("principal_amount = %v, want 10000", req.PrincipalAmount)
		}

		calc, _ := finance.CalculateReturns(req.PrincipalAmount, planRate, "flat", planTenure)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": finance.CalculationResult{PrincipalAmount: req.PrincipalAmount, Calculations: calc},
		})
	}))
	defer server.Close()

	api := New(server.URL, "test-token")
	result, err := api.CalculateReturns(context.Background(), 1, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if result.PrincipalAmount != 10000 {
		t.Errorf("principal = %v, want 10000", result.PrincipalAmount)
	}
	if result.Calculations.TotalInterest != 3000 {
		t.Errorf("total interest = %v, want 3000", result.Calculations.TotalInterest)
	}
}

func TestClient_CalculateDraftReturnsSendsExplicitTerms(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PlanID       uint    `json:"plan_id"`
			InterestRate float64 `json:"interest_rate"`
			InterestType string  `json:"interest_type"`
			TenureMonths int     `json:"tenure_months"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.PlanID != 0 {
			t.Errorf("draft calculation must not carry a plan_id, got %d", req.PlanID)
		}
		if req.InterestRate != 2 || req.InterestType != "reducing" || req.TenureMonths != 6 {
			t.Errorf("terms = %v %s %d, want 2 reducing 6", req.InterestRate, req.InterestType, req.TenureMonths)
		}

		calc, _ := finance.CalculateReturns(50000, req.InterestRate, req.InterestType, req.TenureMonths)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": finance.CalculationResult{PrincipalAmount: 50000, Calculations: calc},
		})
	}))
	defer server.Close()

	api := New(server.URL, "")
	result, err := api.CalculateDraftReturns(context.Background(), 50000, 2, "reducing", 6)
	if err != nil {
		t.Fatal(err)
	}
	if result.Calculations.TotalReturns <= 50000 {
		t.Errorf("total returns = %v, want > principal", result.Calculations.TotalReturns)
	}
}
