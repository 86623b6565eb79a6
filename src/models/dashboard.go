package models

import "time"

// Snapshot is the complete per-invocation input: everything the surrounding
// service fetched from the banks, plus the user's engine preferences. The
// engine treats it as immutable.
type Snapshot struct {
	Accounts     []Account        `json:"accounts"`
	Transactions []Transaction    `json:"transactions"`
	Agreements   []RawAgreement   `json:"agreements"`
	Catalog      []CatalogProduct `json:"catalog,omitempty"`

	// Per-user preference overrides; config defaults apply when empty.
	RepaymentSpeed    string  `json:"repayment_speed,omitempty"`
	RepaymentStrategy string  `json:"repayment_strategy,omitempty"`
	SavingsTarget     float64 `json:"savings_target,omitempty"`

	// AsOf pins "now" for the whole computation; zero means wall clock.
	AsOf time.Time `json:"as_of,omitempty"`
}

// DebtSummary splits outstanding debt between installment products and
// credit cards.
type DebtSummary struct {
	Loans float64 `json:"loans"`
	Cards float64 `json:"cards"`
	Total float64 `json:"total"`
}

// DashboardPayload is the engine's single output: everything the dashboard
// needs to answer "what can I spend, what must I pay, should I refinance".
type DashboardPayload struct {
	TotalBalance   float64                `json:"total_balance"`
	BalancesByBank map[string]BankBalance `json:"balances_by_bank"`
	TotalDebt      DebtSummary            `json:"total_debt"`
	Income         IncomeProfile          `json:"income"`
	MDP            MDPResult              `json:"mdp"`
	ADP            ADPResult              `json:"adp"`
	SafeToSpend    SimulationResult       `json:"safe_to_spend"`
	Refinance      FinancingAssessment    `json:"refinance"`
}

// RankedLoan is one loan in the strategy-ordered loans view.
type RankedLoan struct {
	ID             string    `json:"id"`
	Bank           string    `json:"bank"`
	Type           string    `json:"type"`
	Balance        float64   `json:"balance"`
	Rate           float64   `json:"rate"`
	MonthlyPayment float64   `json:"monthly_payment"`
	Priority       int       `json:"priority"`
	RefiCandidate  bool      `json:"is_refi_candidate"`
	MaturityDate   time.Time `json:"maturity_date,omitempty"`
}

// LoansPayload is the loans view: strategy-ordered loans plus the headline
// payment numbers.
type LoansPayload struct {
	Loans            []RankedLoan `json:"loans"`
	TotalOutstanding float64      `json:"total_outstanding"`
	MDP              float64      `json:"mdp"`
	ADP              float64      `json:"adp"`
	Strategy         string       `json:"strategy"`
}

// Deposit is one savings product in the deposits view.
type Deposit struct {
	ID           string    `json:"id"`
	Bank         string    `json:"bank"`
	Type         string    `json:"type"`
	Balance      float64   `json:"balance"`
	Rate         float64   `json:"rate"`
	TermMonths   int       `json:"term_months"`
	MaturityDate time.Time `json:"maturity_date,omitempty"`
}

// SavingsPayload is the deposits view: saved total, the daily savings
// contribution and progress toward the target.
type SavingsPayload struct {
	Deposits        []Deposit `json:"deposits"`
	TotalSaved      float64   `json:"total_saved"`
	SDP             float64   `json:"sdp"`
	Target          float64   `json:"target"`
	ProgressPercent float64   `json:"progress_percent"`
}
