package finance

import (
	"math"
	"testing"
	"time"
)

var scheduleStart = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func TestGenerateScheduleMonthlyInterestOnly(t *testing.T) {
	entries, calc, ok := GenerateSchedule(ScheduleInput{
		Principal:    100000,
		RatePercent:  2.5,
		InterestType: "flat",
		PaymentType:  "interest",
		Frequency:    "monthly",
		TenureMonths: 12,
		StartDate:    scheduleStart,
	})
	if !ok {
		t.Fatal("expected a schedule")
	}
	if len(entries) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Month != i+1 {
			t.Errorf("entry %d month = %d, want %d", i, e.Month, i+1)
		}
		if e.TotalAmount != e.InterestAmount+e.PrincipalAmount {
			t.Errorf("entry %d violates total = interest + principal: %+v", i, e)
		}
		if e.InterestAmount != 2500 {
			t.Errorf("entry %d interest = %f, want 2500", i, e.InterestAmount)
		}
		wantDue := scheduleStart.AddDate(0, i+1, 0)
		if !e.DueDate.Equal(wantDue) {
			t.Errorf("entry %d due date = %v, want %v", i, e.DueDate, wantDue)
		}
	}
	// Principal returns in full at maturity for interest-only plans.
	last := entries[len(entries)-1]
	if last.PrincipalAmount != 100000 {
		t.Errorf("final principal = %f, want 100000", last.PrincipalAmount)
	}
	var sum float64
	for _, e := range entries {
		sum += e.TotalAmount
	}
	if math.Abs(sum-calc.TotalReturns) > 0.005 {
		t.Errorf("schedule sums to %f, calculator says %f", sum, calc.TotalReturns)
	}
}

func TestGenerateScheduleQuarterly(t *testing.T) {
	entries, _, ok := GenerateSchedule(ScheduleInput{
		Principal:    60000,
		RatePercent:  2,
		InterestType: "flat",
		PaymentType:  "interest",
		Frequency:    "quarterly",
		TenureMonths: 12,
		StartDate:    scheduleStart,
	})
	if !ok {
		t.Fatal("expected a schedule")
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	wantMonths := []int{3, 6, 9, 12}
	for i, e := range entries {
		if e.Month != wantMonths[i] {
			t.Errorf("entry %d month = %d, want %d", i, e.Month, wantMonths[i])
		}
	}
}

func TestGenerateScheduleWithPrincipalDrawdown(t *testing.T) {
	entries, calc, ok := GenerateSchedule(ScheduleInput{
		Principal:                    100000,
		RatePercent:                  2,
		InterestType:                 "flat",
		PaymentType:                  "interestWithPrincipal",
		Frequency:                    "monthly",
		PrincipalRepaymentPercentage: 10,
		TenureMonths:                 12,
		StartDate:                    scheduleStart,
	})
	if !ok {
		t.Fatal("expected a schedule")
	}
	if len(entries) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(entries))
	}
	var principalSum, totalSum float64
	for i, e := range entries {
		if e.TotalAmount != e.InterestAmount+e.PrincipalAmount {
			t.Errorf("entry %d violates total = interest + principal: %+v", i, e)
		}
		principalSum += e.PrincipalAmount
		totalSum += e.TotalAmount
	}
	if math.Abs(principalSum-100000) > 0.005 {
		t.Errorf("principal across schedule sums to %f, want 100000", principalSum)
	}
	if math.Abs(totalSum-calc.TotalReturns) > 0.005 {
		t.Errorf("schedule sums to %f, calculator says %f", totalSum, calc.TotalReturns)
	}
	// 10% per month exhausts the principal by month 10.
	if entries[0].PrincipalAmount != 10000 {
		t.Errorf("first principal share = %f, want 10000", entries[0].PrincipalAmount)
	}
	if entries[10].PrincipalAmount != 0 {
		t.Errorf("month 11 principal share = %f, want 0", entries[10].PrincipalAmount)
	}
}

func TestGenerateScheduleReducingCentExact(t *testing.T) {
	entries, calc, ok := GenerateSchedule(ScheduleInput{
		Principal:    50000,
		RatePercent:  2,
		InterestType: "reducing",
		PaymentType:  "interest",
		Frequency:    "monthly",
		TenureMonths: 6,
		StartDate:    scheduleStart,
	})
	if !ok {
		t.Fatal("expected a schedule")
	}
	var interestSum float64
	for _, e := range entries {
		interestSum += e.InterestAmount
	}
	// Entries carry cent-rounded amounts that reproduce the calculator's
	// total to the cent, remainder folded into the final entry.
	want := math.Round(calc.TotalInterest*100) / 100
	if math.Abs(interestSum-want) > 0.001 {
		t.Errorf("interest across schedule sums to %f, want %f", interestSum, want)
	}
}

func TestGenerateScheduleOthersFrequency(t *testing.T) {
	entries, _, ok := GenerateSchedule(ScheduleInput{
		Principal:    20000,
		RatePercent:  1.5,
		InterestType: "flat",
		PaymentType:  "interest",
		Frequency:    "others",
		TenureMonths: 9,
		StartDate:    scheduleStart,
	})
	if !ok {
		t.Fatal("expected a schedule")
	}
	if len(entries) != 1 {
		t.Fatalf("expected a single bullet entry, got %d", len(entries))
	}
	if entries[0].Month != 9 {
		t.Errorf("bullet month = %d, want 9", entries[0].Month)
	}
	if entries[0].PrincipalAmount != 20000 {
		t.Errorf("bullet principal = %f, want 20000", entries[0].PrincipalAmount)
	}
}

func TestGenerateScheduleNotCalculable(t *testing.T) {
	_, _, ok := GenerateSchedule(ScheduleInput{
		Principal:    0,
		RatePercent:  2,
		InterestType: "flat",
		PaymentType:  "interest",
		Frequency:    "monthly",
		TenureMonths: 12,
		StartDate:    scheduleStart,
	})
	if ok {
		t.Fatal("expected not calculable for zero principal")
	}
}
