package finance

import "math"

// ProgressSummary is the read-only completion view derived from a schedule's
// per-entry statuses. Count-based and amount-based percentages are computed
// independently and are not expected to agree.
type ProgressSummary struct {
	TotalInstallments        int `json:"total_installments"`
	CompletedInstallments    int `json:"completed_installments"`
	PendingInstallments      int `json:"pending_installments"`
	ProgressPercentage       int `json:"progress_percentage"`
	AmountProgressPercentage int `json:"amount_progress_percentage"`
}

// CompletedCount counts schedule entries whose status marks them completed
// for progress purposes: paid or partial_paid. Partial payments counting as
// progress is a deliberate business rule.
func CompletedCount(statuses []string) int {
	n := 0
	for _, s := range statuses {
		if s == "paid" || s == "partial_paid" {
			n++
		}
	}
	return n
}

// ProgressPercentage is the rounded count-based completion percentage, 0 for
// an empty schedule.
func ProgressPercentage(statuses []string) int {
	if len(statuses) == 0 {
		return 0
	}
	return int(math.Round(float64(CompletedCount(statuses)) / float64(len(statuses)) * 100))
}

// PendingCount is the number of entries not yet counted as completed.
func PendingCount(statuses []string) int {
	return len(statuses) - CompletedCount(statuses)
}

// AmountProgressPercentage is the rounded amount-based completion
// percentage, 0 when nothing is expected. Values above 100 are passed
// through unclamped; inconsistent upstream data is tolerated, not hidden.
func AmountProgressPercentage(totalPaid, totalExpected float64) int {
	if totalExpected == 0 {
		return 0
	}
	return int(math.Round(totalPaid / totalExpected * 100))
}

// Progress assembles the full summary for a schedule.
func Progress(statuses []string, totalPaid, totalExpected float64) ProgressSummary {
	completed := CompletedCount(statuses)
	return ProgressSummary{
		TotalInstallments:        len(statuses),
		CompletedInstallments:    completed,
		PendingInstallments:      len(statuses) - completed,
		ProgressPercentage:       ProgressPercentage(statuses),
		AmountProgressPercentage: AmountProgressPercentage(totalPaid, totalExpected),
	}
}
