package controllers

import (
	"errors"
	"testing"
	"time"

	"github.com/satya-aforv/finance-tracker-sub001/models"
)

func pendingEntry() models.PaymentEntry {
	return models.PaymentEntry{
		InvestmentID:   1,
		Month:          1,
		InterestAmount: 2500,
		TotalAmount:    2500,
		Status:         models.EntryPending,
	}
}

func TestApplyPayment_FullPayment(t *testing.T) {
	entry := pendingEntry()
	paidAt := time.Now()

	if err := applyPayment(&entry, 2500, paidAt); err != nil {
		t.Fatal(err)
	}
	if entry.Status != models.EntryPaid {
		t.Errorf("status = %s, want paid", entry.Status)
	}
	if entry.PaidAmount != 2500 {
		t.Errorf("paid amount = %v, want 2500", entry.PaidAmount)
	}
	if entry.PaidAt == nil || !entry.PaidAt.Equal(paidAt) {
		t.Errorf("paid at = %v, want %v", entry.PaidAt, paidAt)
	}
}

func TestApplyPayment_PartialThenCompleting(t *testing.T) {
	entry := pendingEntry()

	if err := applyPayment(&entry, 1000, time.Now()); err != nil {
		t.Fatal(err)
	}
	if entry.Status != models.EntryPartialPaid {
		t.Errorf("status after partial = %s, want partial_paid", entry.Status)
	}

	if err := applyPayment(&entry, 1500, time.Now()); err != nil {
		t.Fatal(err)
	}
	if entry.Status != models.EntryPaid {
		t.Errorf("status after completion = %s, want paid", entry.Status)
	}
	if entry.PaidAmount != entry.TotalAmount {
		t.Errorf("paid amount = %v, want %v", entry.PaidAmount, entry.TotalAmount)
	}
}

func TestApplyPayment_RejectsOverpayment(t *testing.T) {
	entry := pendingEntry()

	if err := applyPayment(&entry, 3000, time.Now()); !errors.Is(err, errOverpayment) {
		t.Fatalf("err = %v, want errOverpayment", err)
	}
	// The rejected payment leaves the entry untouched.
	if entry.Status != models.EntryPending || entry.PaidAmount != 0 || entry.PaidAt != nil {
		t.Errorf("entry mutated by rejected payment: %+v", entry)
	}

	// Same bound holds for the remainder after a partial payment.
	if err := applyPayment(&entry, 2000, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := applyPayment(&entry, 501, time.Now()); !errors.Is(err, errOverpayment) {
		t.Fatalf("err = %v, want errOverpayment", err)
	}
}

func TestApplyPayment_RejectsWhenAlreadyPaid(t *testing.T) {
	entry := pendingEntry()
	if err := applyPayment(&entry, 2500, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := applyPayment(&entry, 1, time.Now()); !errors.Is(err, errAlreadyPaid) {
		t.Fatalf("err = %v, want errAlreadyPaid", err)
	}
}
