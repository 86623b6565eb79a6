package models

import (
	"strings"
	"time"
)

// Transaction is one booked transaction from a linked bank. Immutable,
// read-only input; the engine never persists it.
type Transaction struct {
	AccountID           string    `json:"account_id"`
	Amount              float64   `json:"amount"`
	Indicator           string    `json:"credit_debit_indicator"` // "credit" or "debit"
	BookingDate         time.Time `json:"booking_date"`
	Description         string    `json:"description"`
	MerchantName        string    `json:"merchant_name,omitempty"`
	MCC                 string    `json:"mcc,omitempty"`
	BankTransactionCode string    `json:"bank_transaction_code,omitempty"`
}

// IsCredit reports whether the transaction added money to the account.
func (t Transaction) IsCredit() bool {
	return strings.EqualFold(t.Indicator, IndicatorCredit)
}

// IsDebit reports whether the transaction removed money from the account.
func (t Transaction) IsDebit() bool {
	return strings.EqualFold(t.Indicator, IndicatorDebit)
}
