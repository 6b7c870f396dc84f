package finance

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff/scale < 1e-6
}

func TestCalculateReturnsFlat(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		tenure    int
		wantInt   float64
	}{
		{"twelve months", 100000, 2.5, 12, 30000},
		{"single month", 1000, 1, 1, 10},
		{"zero rate", 5000, 0, 24, 0},
		{"fractional rate", 75000, 1.75, 18, 75000 * 0.0175 * 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, ok := CalculateReturns(tt.principal, tt.rate, "flat", tt.tenure)
			if !ok {
				t.Fatal("expected a calculable result")
			}
			if !almostEqual(calc.TotalInterest, tt.wantInt) {
				t.Errorf("total interest = %f, want %f", calc.TotalInterest, tt.wantInt)
			}
			if !almostEqual(calc.TotalReturns, tt.principal+tt.wantInt) {
				t.Errorf("total returns = %f, want %f", calc.TotalReturns, tt.principal+tt.wantInt)
			}
		})
	}
}

func TestCalculateReturnsReducing(t *testing.T) {
	calc, ok := CalculateReturns(50000, 2, "reducing", 6)
	if !ok {
		t.Fatal("expected a calculable result")
	}
	want := 50000 * (math.Pow(1.02, 6) - 1)
	if !almostEqual(calc.TotalInterest, want) {
		t.Errorf("total interest = %f, want %f", calc.TotalInterest, want)
	}
	// Spec scenario: approximately 6308.12 interest, 56308.12 returns.
	if math.Abs(calc.TotalInterest-6308.12) > 0.01 {
		t.Errorf("total interest = %f, want about 6308.12", calc.TotalInterest)
	}
	if math.Abs(calc.TotalReturns-56308.12) > 0.01 {
		t.Errorf("total returns = %f, want about 56308.12", calc.TotalReturns)
	}
}

func TestCalculateReturnsScenarioFlat12Month(t *testing.T) {
	calc, ok := CalculateReturns(100000, 2.5, "flat", 12)
	if !ok {
		t.Fatal("expected a calculable result")
	}
	if !almostEqual(calc.TotalInterest, 30000) {
		t.Errorf("total interest = %f, want 30000", calc.TotalInterest)
	}
	if !almostEqual(calc.TotalReturns, 130000) {
		t.Errorf("total returns = %f, want 130000", calc.TotalReturns)
	}
	if !almostEqual(calc.EffectiveRate, 30) {
		t.Errorf("effective rate = %f, want 30", calc.EffectiveRate)
	}
}

func TestCalculateReturnsIdempotent(t *testing.T) {
	a, okA := CalculateReturns(12345.67, 1.9, "reducing", 14)
	b, okB := CalculateReturns(12345.67, 1.9, "reducing", 14)
	if !okA || !okB {
		t.Fatal("expected calculable results")
	}
	if a != b {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", a, b)
	}
}

func TestCalculateReturnsNotCalculable(t *testing.T) {
	tests := []struct {
		name         string
		principal    float64
		rate         float64
		interestType string
		tenure       int
	}{
		{"zero principal", 0, 2, "flat", 12},
		{"negative principal", -100, 2, "flat", 12},
		{"NaN principal", math.NaN(), 2, "flat", 12},
		{"infinite principal", math.Inf(1), 2, "flat", 12},
		{"zero tenure", 10000, 2, "flat", 0},
		{"negative tenure", 10000, 2, "reducing", -3},
		{"negative rate", 10000, -1, "flat", 12},
		{"unknown interest type", 10000, 2, "simple", 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, ok := CalculateReturns(tt.principal, tt.rate, tt.interestType, tt.tenure)
			if ok {
				t.Fatalf("expected not calculable, got %+v", calc)
			}
			if calc != (Calculation{}) {
				t.Errorf("expected zero result, got %+v", calc)
			}
		})
	}
}
