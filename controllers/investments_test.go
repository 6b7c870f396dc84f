package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/satya-aforv/finance-tracker-sub001/finance"
)

func postCalculate(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/investments/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	CalculateInvestmentHandler(rec, req)
	return rec
}

func TestCalculateInvestmentHandler_ExplicitTerms(t *testing.T) {
	rec := postCalculate(t, `{"principal_amount":100000,"interest_rate":2.5,"interest_type":"flat","tenure_months":12}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data finance.CalculationResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data.Calculations.TotalInterest != 30000 {
		t.Errorf("total interest = %v, want 30000", resp.Data.Calculations.TotalInterest)
	}
	if resp.Data.Calculations.TotalReturns != 130000 {
		t.Errorf("total returns = %v, want 130000", resp.Data.Calculations.TotalReturns)
	}
}

func TestCalculateInvestmentHandler_NotCalculable(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty terms", `{}`},
		{"zero principal", `{"interest_rate":2.5,"interest_type":"flat","tenure_months":12}`},
		{"zero tenure", `{"principal_amount":100000,"interest_rate":2.5,"interest_type":"flat"}`},
		{"unknown interest type", `{"principal_amount":100000,"interest_rate":2.5,"interest_type":"compound","tenure_months":12}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postCalculate(t, tc.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
		})
	}
}
