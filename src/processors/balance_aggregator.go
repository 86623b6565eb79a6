// backend/src/processors/balance_aggregator.go
package processors

import (
	"math"
	"strings"

	"github.com/username/finpulse/backend/src/models"
)

// Account subtypes whose balance counts as spendable money.
var spendableSubtypes = map[string]bool{
	"checking":        true,
	"current_account": true,
	"currentaccount":  true,
	"savings":         true,
	"personal":        true,
	"wallet":          true,
}

// BalanceAggregator sums eligible account balances into the single
// spendable total the solvency simulation starts from.
type BalanceAggregator struct{}

func NewBalanceAggregator() *BalanceAggregator { return &BalanceAggregator{} }

// Aggregate returns the spendable total and a per-bank breakdown. Only
// enabled/active accounts of spendable subtypes count; a debit indicator
// flips the sign, and each account's contribution is floored at zero so one
// overdrawn account cannot eat into what the others provide.
func (a *BalanceAggregator) Aggregate(accounts []models.Account) models.BalanceSummary {
	summary := models.BalanceSummary{ByBank: make(map[string]models.BankBalance)}

	for _, acc := range accounts {
		status := strings.ToLower(acc.Status)
		if status != models.AccountStatusEnabled && status != models.AccountStatusActive {
			continue
		}
		if !spendableSubtypes[strings.ToLower(acc.SubType)] {
			continue
		}

		amount := acc.Balance
		switch strings.ToLower(acc.Indicator) {
		case models.IndicatorDebit:
			amount = -math.Abs(amount)
		case models.IndicatorCredit:
			amount = math.Abs(amount)
		}
		contribution := math.Max(0, amount)

		summary.Total += contribution
		bank := summary.ByBank[acc.Bank]
		bank.Total += contribution
		bank.AccountCount++
		summary.ByBank[acc.Bank] = bank
	}

	return summary
}
