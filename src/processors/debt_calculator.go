// backend/src/processors/debt_calculator.go
package processors

import (
	"github.com/username/finpulse/backend/src/models"
)

// DebtCalculator aggregates outstanding debt by category from normalized
// loans. Pure aggregation; active-status filtering is the only judgment.
type DebtCalculator struct{}

func NewDebtCalculator() *DebtCalculator { return &DebtCalculator{} }

// Calculate splits active debt into installment products
// (loan + mortgage + overdraft, overdue amounts included) and credit cards.
func (d *DebtCalculator) Calculate(loans []models.Loan) models.DebtSummary {
	var summary models.DebtSummary
	for _, loan := range loans {
		if !loan.IsActive() {
			continue
		}
		switch loan.ProductType {
		case models.ProductCreditCard:
			summary.Cards += loan.Principal
		case models.ProductLoan, models.ProductMortgage, models.ProductOverdraft:
			summary.Loans += loan.Principal + loan.OverdueAmount
		}
	}
	summary.Total = summary.Loans + summary.Cards
	return summary
}
