package finance

import "testing"

func TestCompletedCountSemantics(t *testing.T) {
	statuses := []string{"paid", "partial_paid", "pending", "overdue"}
	if got := CompletedCount(statuses); got != 2 {
		t.Errorf("completed count = %d, want 2", got)
	}
	if got := ProgressPercentage(statuses); got != 50 {
		t.Errorf("progress percentage = %d, want 50", got)
	}
	if got := PendingCount(statuses); got != 2 {
		t.Errorf("pending count = %d, want 2", got)
	}
}

func TestProgressEmptySchedule(t *testing.T) {
	if got := ProgressPercentage(nil); got != 0 {
		t.Errorf("progress percentage on empty schedule = %d, want 0", got)
	}
	if got := CompletedCount(nil); got != 0 {
		t.Errorf("completed count on empty schedule = %d, want 0", got)
	}
	summary := Progress(nil, 0, 0)
	if summary.ProgressPercentage != 0 || summary.AmountProgressPercentage != 0 {
		t.Errorf("empty schedule summary = %+v, want zero percentages", summary)
	}
}

func TestProgressRounding(t *testing.T) {
	statuses := []string{"paid", "pending", "pending"} // 1/3
	if got := ProgressPercentage(statuses); got != 33 {
		t.Errorf("progress percentage = %d, want 33", got)
	}
	statuses = []string{"paid", "paid", "pending"} // 2/3
	if got := ProgressPercentage(statuses); got != 67 {
		t.Errorf("progress percentage = %d, want 67", got)
	}
}

func TestAmountProgressPercentage(t *testing.T) {
	if got := AmountProgressPercentage(0, 0); got != 0 {
		t.Errorf("zero expected amount = %d, want 0", got)
	}
	if got := AmountProgressPercentage(65000, 130000); got != 50 {
		t.Errorf("half paid = %d, want 50", got)
	}
	// Overpayment stays unclamped.
	if got := AmountProgressPercentage(150000, 130000); got != 115 {
		t.Errorf("overpayment = %d, want 115 (unclamped)", got)
	}
}

// Count-based and amount-based progress are independent computations; a
// schedule can read 50% by count and something else entirely by amount.
func TestCountAndAmountDiverge(t *testing.T) {
	statuses := []string{"paid", "partial_paid", "pending", "overdue"}
	summary := Progress(statuses, 10000, 130000)
	if summary.ProgressPercentage != 50 {
		t.Errorf("count-based = %d, want 50", summary.ProgressPercentage)
	}
	if summary.AmountProgressPercentage != 8 {
		t.Errorf("amount-based = %d, want 8", summary.AmountProgressPercentage)
	}
	if summary.ProgressPercentage == summary.AmountProgressPercentage {
		t.Error("expected the two percentages to diverge for this schedule")
	}
}
