package models

import "time"

// Income frequency classifications.
const (
	FrequencyRegularMonthly  = "regular_monthly"
	FrequencyRegularBiweekly = "regular_biweekly"
	FrequencyIrregular       = "irregular"
)

// IncomeWindow is the expected arrival window of the next income event.
type IncomeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ObligationStatus is the per-loan view of the current billing period:
// what is planned and whether a matching payment already went out.
type ObligationStatus struct {
	AgreementID     string    `json:"agreement_id"`
	PlannedAmount   float64   `json:"planned_amount"`
	PaidInPeriod    bool      `json:"paid_in_period"`
	LastPaymentDate time.Time `json:"last_payment_date,omitempty"`
}

// IncomeProfile is the Categorizer's output: the income estimate, its
// regularity, the next expected income window and the per-loan obligation
// status for the current period.
type IncomeProfile struct {
	EstimatedMonthlyIncome float64            `json:"estimated_monthly_income"`
	Frequency              string             `json:"frequency"`
	NextIncomeWindow       IncomeWindow       `json:"next_income_window"`
	Obligations            []ObligationStatus `json:"obligations"`
}

// ObligationFor returns the obligation status for the given agreement,
// or false when the categorizer produced none for it.
func (p IncomeProfile) ObligationFor(agreementID string) (ObligationStatus, bool) {
	for _, ob := range p.Obligations {
		if ob.AgreementID == agreementID {
			return ob, true
		}
	}
	return ObligationStatus{}, false
}
