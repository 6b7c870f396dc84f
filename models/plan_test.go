package models

import "testing"

func completeInterestPlan() Plan {
	return Plan{
		Name:                     "Monthly Income",
		InterestRate:             2.5,
		InterestType:             InterestFlat,
		TenureMonths:             12,
		PaymentType:              PaymentInterest,
		MinInvestment:            5000,
		MaxInvestment:            500000,
		PaymentFrequency:         FrequencyMonthly,
		PrincipalRepaymentOption: "fixed",
	}
}

func TestPlanIsComplete(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Plan)
		want   bool
	}{
		{"complete interest-only plan", func(p *Plan) {}, true},
		{"flexible repayment option also complete", func(p *Plan) {
			p.PrincipalRepaymentOption = "flexible"
		}, true},
		{"interest-only without repayment option", func(p *Plan) {
			p.PrincipalRepaymentOption = ""
		}, false},
		{"interest-only with unknown repayment option", func(p *Plan) {
			p.PrincipalRepaymentOption = "sometimes"
		}, false},
		{"missing name", func(p *Plan) { p.Name = "   " }, false},
		{"zero interest rate", func(p *Plan) { p.InterestRate = 0 }, false},
		{"tenure below one month", func(p *Plan) { p.TenureMonths = 0 }, false},
		{"zero minimum investment", func(p *Plan) { p.MinInvestment = 0 }, false},
		{"maximum below minimum", func(p *Plan) { p.MaxInvestment = 1000 }, false},
		{"missing payment frequency", func(p *Plan) { p.PaymentFrequency = "" }, false},
		{"unknown payment type", func(p *Plan) { p.PaymentType = "balloon" }, false},
		{"with-principal plan needs a percentage", func(p *Plan) {
			p.PaymentType = PaymentInterestWithPrincipal
			p.PrincipalRepaymentPercentage = 0
		}, false},
		{"with-principal plan complete", func(p *Plan) {
			p.PaymentType = PaymentInterestWithPrincipal
			p.PrincipalRepaymentOption = ""
			p.PrincipalRepaymentPercentage = 10
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan := completeInterestPlan()
			tc.mutate(&plan)
			if got := plan.IsComplete(); got != tc.want {
				t.Errorf("IsComplete() = %v, want %v", got, tc.want)
			}
		})
	}
}
