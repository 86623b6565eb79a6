package models

// Account statuses that make an account eligible for the spendable total.
const (
	AccountStatusEnabled = "enabled"
	AccountStatusActive  = "active"
)

// Credit/debit indicator values shared by accounts and transactions.
const (
	IndicatorCredit = "credit"
	IndicatorDebit  = "debit"
)

// Account is a single linked bank account as delivered by the aggregation
// layer. It is a read-only snapshot; the engine never mutates it.
type Account struct {
	ID        string  `json:"id"`
	Bank      string  `json:"bank"`
	SubType   string  `json:"sub_type"` // e.g. "checking", "savings", "card", "wallet"
	Status    string  `json:"status"`
	Balance   float64 `json:"balance"`
	Indicator string  `json:"credit_debit_indicator"` // "credit" or "debit"
}

// BankBalance is the per-bank slice of the spendable total.
type BankBalance struct {
	Total        float64 `json:"total"`
	AccountCount int     `json:"account_count"`
}

// BalanceSummary is the Balance Aggregator's output: one spendable scalar
// plus its per-bank breakdown.
type BalanceSummary struct {
	Total  float64                `json:"total"`
	ByBank map[string]BankBalance `json:"by_bank"`
}
