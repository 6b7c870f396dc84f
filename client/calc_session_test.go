package client

import (
	"testing"

	"github.com/satya-aforv/finance-tracker-sub001/finance"
)

func calcFor(principal float64) finance.CalculationResult {
	calc, ok := finance.CalculateReturns(principal, 2.5, "flat", 12)
	if !ok {
		panic("fixture inputs must be calculable")
	}
	return finance.CalculationResult{PrincipalAmount: principal, Calculations: calc}
}

func TestCalcSession_StaleResponseDiscarded(t *testing.T) {
	var s CalcSession

	// Request A for 10000, then request B for 20000 before A completes.
	seqA := s.Begin()
	seqB := s.Begin()

	// B's response lands first and is applied.
	if !s.Apply(seqB, calcFor(20000)) {
		t.Fatal("latest response should be applied")
	}

	// A's response arrives late and must be discarded.
	if s.Apply(seqA, calcFor(10000)) {
		t.Fatal("stale response should be discarded")
	}

	result := s.Result()
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.PrincipalAmount != 20000 {
		t.Errorf("result reflects principal %v, want 20000", result.PrincipalAmount)
	}
}

func TestCalcSession_StaleFailureIgnored(t *testing.T) {
	var s CalcSession

	seqA := s.Begin()
	seqB := s.Begin()

	if !s.Apply(seqB, calcFor(20000)) {
		t.Fatal("latest response should be applied")
	}
	if s.Fail(seqA) {
		t.Fatal("stale failure should be ignored")
	}
	if s.Result() == nil {
		t.Fatal("stale failure must not clear the applied result")
	}
}

func TestCalcSession_LatestFailureClearsResult(t *testing.T) {
	var s CalcSession

	seqA := s.Begin()
	if !s.Apply(seqA, calcFor(10000)) {
		t.Fatal("latest response should be applied")
	}

	seqB := s.Begin()
	if !s.Fail(seqB) {
		t.Fatal("latest failure should be recorded")
	}
	if s.Result() != nil {
		t.Fatal("failure of the latest request must clear the result")
	}
}

func TestCalcSession_ResetInvalidatesInFlight(t *testing.T) {
	var s CalcSession

	seq := s.Begin()
	s.Reset()

	if s.Apply(seq, calcFor(10000)) {
		t.Fatal("response from before reset should be discarded")
	}
	if s.Result() != nil {
		t.Fatal("reset must clear the result")
	}
}
