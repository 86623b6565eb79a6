// backend/src/processors/payment_sizer.go
package processors

import (
	"sort"
	"time"

	"github.com/username/finpulse/backend/src/logger"
	"github.com/username/finpulse/backend/src/models"
)

// ADP sizing knobs.
const (
	incomeShareCap = 0.20 // at most 20% of monthly income goes to extra paydown
	daysPerMonth   = 30.0
)

// speedCoefficients maps the repayment-speed preference to the share of MDP
// added as discretionary paydown.
var speedCoefficients = map[string]float64{
	models.SpeedConservative: 0.10,
	models.SpeedBalanced:     0.30,
	models.SpeedFast:         0.50,
}

// PaymentSizer computes today's mandatory (MDP) and additional (ADP) debt
// payments per loan and in total.
type PaymentSizer struct{}

func NewPaymentSizer() *PaymentSizer { return &PaymentSizer{} }

// SizeMandatory amortizes each unpaid obligation over the days left until
// its due date and sums the per-loan daily contributions.
func (s *PaymentSizer) SizeMandatory(loans []models.Loan, profile models.IncomeProfile, now time.Time) models.MDPResult {
	var result models.MDPResult
	for _, loan := range loans {
		if !loan.IsActive() || !isDebtBearing(loan.ProductType) {
			continue
		}

		obligation, _ := profile.ObligationFor(loan.AgreementID)
		monthly, estimated := monthlyPaymentFor(loan, obligation)
		dueDate := dueDateFor(loan, now)

		remaining := monthly
		if obligation.PaidInPeriod {
			remaining = 0
		}

		daysLeft := daysBetween(now, dueDate)
		if daysLeft < 1 {
			daysLeft = 1 // due today: the whole remainder is due now
		}

		payment := models.LoanPayment{
			AgreementID:   loan.AgreementID,
			MonthlyAmount: monthly,
			DueDate:       dueDate,
			DaysLeft:      daysLeft,
			DailyAmount:   remaining / float64(daysLeft),
			Paid:          obligation.PaidInPeriod,
			Estimated:     estimated,
		}
		result.Total += payment.DailyAmount
		result.PerLoan = append(result.PerLoan, payment)
	}

	logger.L.Debug("MDP sized", "total", result.Total, "loans", len(result.PerLoan))
	return result
}

// monthlyPaymentFor prefers the schedule-derived planned amount. Without
// schedule data it falls back to an interest-only estimate plus 1% principal
// amortization, an acknowledged approximation rather than a validated annuity.
func monthlyPaymentFor(loan models.Loan, obligation models.ObligationStatus) (amount float64, estimated bool) {
	if obligation.PlannedAmount > 0 {
		return obligation.PlannedAmount, false
	}
	interestPart := loan.Principal * loan.InterestRate / 12 / 100
	principalPart := loan.Principal * 0.01
	return interestPart + principalPart, true
}

// dueDateFor resolves the payment due date in order of confidence: the next
// scheduled payment, then the loan's start day-of-month rolled forward, then
// the end of the current month.
func dueDateFor(loan models.Loan, now time.Time) time.Time {
	if entry, ok := loan.NextScheduledPayment(now); ok {
		return entry.Date
	}

	if !loan.StartDate.IsZero() {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		due := clampDayOfMonth(now.Year(), now.Month(), loan.StartDate.Day(), now.Location())
		if due.Before(today) {
			next := now.AddDate(0, 1, 0)
			due = clampDayOfMonth(next.Year(), next.Month(), loan.StartDate.Day(), now.Location())
		}
		return due
	}

	// No schedule and no start date: assume the end of the current month.
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}

// clampDayOfMonth builds a date in the given month, pulling the day back to
// the month's last day when the month is shorter.
func clampDayOfMonth(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// SizeAdditional sizes the discretionary extra paydown: a share of MDP
// chosen by the speed preference, capped by income, aimed at one target loan
// picked by the strategy and never exceeding that loan's balance.
func (s *PaymentSizer) SizeAdditional(mdpTotal float64, loans []models.Loan, monthlyIncome float64, speed, strategy string) models.ADPResult {
	active := ActiveDebtBearing(loans)
	if len(active) == 0 {
		return models.ADPResult{Reason: "no active loans"}
	}

	k, ok := speedCoefficients[speed]
	if !ok {
		k = speedCoefficients[models.SpeedBalanced]
	}
	adp := mdpTotal * k

	if monthlyIncome > 0 {
		maxDaily := monthlyIncome * incomeShareCap / daysPerMonth
		if adp > maxDaily {
			adp = maxDaily
		}
	}

	ranked := RankLoans(active, strategy)
	target := ranked[0]
	if adp > target.Principal {
		adp = target.Principal
	}

	reason := "highest rate"
	if strategy == models.StrategySnowball {
		reason = "smallest balance"
	}
	return models.ADPResult{
		Total:        adp,
		TargetLoanID: target.AgreementID,
		Reason:       reason,
	}
}

// RankLoans orders active debt-bearing loans by the repayment strategy:
// avalanche puts the highest rate first (smaller balance breaks ties),
// snowball puts the smallest balance first (higher rate breaks ties).
// The agreement id is the final tie-break so the order is deterministic.
func RankLoans(loans []models.Loan, strategy string) []models.Loan {
	ranked := make([]models.Loan, len(loans))
	copy(ranked, loans)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if strategy == models.StrategySnowball {
			if a.Principal != b.Principal {
				return a.Principal < b.Principal
			}
			if a.InterestRate != b.InterestRate {
				return a.InterestRate > b.InterestRate
			}
		} else {
			if a.InterestRate != b.InterestRate {
				return a.InterestRate > b.InterestRate
			}
			if a.Principal != b.Principal {
				return a.Principal < b.Principal
			}
		}
		return a.AgreementID < b.AgreementID
	})
	return ranked
}

// ActiveDebtBearing filters the loans down to the ones that owe money and
// are still active.
func ActiveDebtBearing(loans []models.Loan) []models.Loan {
	var out []models.Loan
	for _, loan := range loans {
		if loan.IsActive() && isDebtBearing(loan.ProductType) {
			out = append(out, loan)
		}
	}
	return out
}

// isDebtBearing lists the canonical types that owe money.
func isDebtBearing(productType string) bool {
	switch productType {
	case models.ProductLoan, models.ProductCreditCard, models.ProductMortgage, models.ProductOverdraft:
		return true
	}
	return false
}
