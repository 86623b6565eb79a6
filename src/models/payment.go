package models

import "time"

// Repayment speed preferences and their ADP coefficients.
const (
	SpeedConservative = "conservative"
	SpeedBalanced     = "balanced"
	SpeedFast         = "fast"
)

// Debt prioritization strategies for discretionary paydown.
const (
	StrategyAvalanche = "avalanche"
	StrategySnowball  = "snowball"
)

// LoanPayment is the per-loan slice of today's mandatory payment, exposed
// for UI and audit use.
type LoanPayment struct {
	AgreementID   string    `json:"agreement_id"`
	MonthlyAmount float64   `json:"monthly_amount"`
	DueDate       time.Time `json:"due_date"`
	DaysLeft      int       `json:"days_left"`
	DailyAmount   float64   `json:"daily_amount"`
	Paid          bool      `json:"paid"`
	Estimated     bool      `json:"estimated"` // true when the annuity fallback sized the month
}

// MDPResult is the Payment Sizer's mandatory side: the total daily debt
// service and its per-loan breakdown.
type MDPResult struct {
	Total   float64       `json:"total"`
	PerLoan []LoanPayment `json:"per_loan"`
}

// ADPResult is the discretionary side: how much extra to pay today, toward
// which loan, and why that loan was chosen.
type ADPResult struct {
	Total        float64 `json:"total"`
	TargetLoanID string  `json:"target_loan_id,omitempty"`
	Reason       string  `json:"reason,omitempty"`
}
