package models

import "time"

// Canonical product types produced by the Loan Normalizer.
const (
	ProductLoan       = "loan"
	ProductCreditCard = "credit_card"
	ProductMortgage   = "mortgage"
	ProductOverdraft  = "overdraft"
)

// Loan statuses. Only active loans participate in debt and payment math.
const (
	LoanStatusActive = "active"
	LoanStatusClosed = "closed"
)

// RawAgreement is a product-agreement record exactly as a bank reports it.
// Numeric fields arrive as strings on purpose: banks disagree on formats and
// the engine coerces anything unparseable to zero rather than failing.
type RawAgreement struct {
	AgreementID       string             `json:"agreement_id"`
	Bank              string             `json:"bank"`
	ProductType       string             `json:"product_type"`
	ProductName       string             `json:"product_name"`
	Status            string             `json:"status"`
	Amount            string             `json:"amount"`             // outstanding principal
	OutstandingAmount string             `json:"outstanding_amount"` // card balance waterfall
	OverdueAmount     string             `json:"overdue_amount"`
	InterestRate      string             `json:"interest_rate"` // annual, percent
	TermMonths        string             `json:"term_months"`
	StartDate         string             `json:"start_date"` // YYYY-MM-DD
	EndDate           string             `json:"end_date"`
	PaymentSchedule   []RawScheduleEntry `json:"payment_schedule,omitempty"`
}

// RawScheduleEntry is one raw {date, amount} pair from a payment schedule.
type RawScheduleEntry struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// ScheduleEntry is a parsed payment-schedule entry.
type ScheduleEntry struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Loan is the uniform credit-obligation representation the rest of the
// engine operates on.
type Loan struct {
	AgreementID   string          `json:"agreement_id"`
	Bank          string          `json:"bank"`
	ProductType   string          `json:"product_type"`
	ProductName   string          `json:"product_name"`
	Status        string          `json:"status"`
	Principal     float64         `json:"principal"`
	OverdueAmount float64         `json:"overdue_amount"`
	InterestRate  float64         `json:"interest_rate"`
	TermMonths    int             `json:"term_months"`
	StartDate     time.Time       `json:"start_date,omitempty"`
	EndDate       time.Time       `json:"end_date,omitempty"`
	Schedule      []ScheduleEntry `json:"schedule,omitempty"`
}

// IsActive reports whether the loan participates in debt calculations.
func (l Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// IsOverdue reports whether the loan carries overdue debt.
func (l Loan) IsOverdue() bool {
	return l.OverdueAmount > 0
}

// NextScheduledPayment returns the first schedule entry on or after the given
// date, or false if the schedule has none.
func (l Loan) NextScheduledPayment(from time.Time) (ScheduleEntry, bool) {
	for _, entry := range l.Schedule {
		if !entry.Date.Before(from) {
			return entry, true
		}
	}
	return ScheduleEntry{}, false
}
