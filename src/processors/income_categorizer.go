// backend/src/processors/income_categorizer.go
package processors

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/username/finpulse/backend/src/logger"
	"github.com/username/finpulse/backend/src/models"
)

// Bank transaction code banks use for payroll credits.
const salaryTransactionCode = "02"

// Description fragments that signal a salary-like credit. Matched
// case-insensitively as substrings.
var salaryKeywords = []string{
	"зарплата", "salary", "payroll", "аванс", "премия", "доход", "заработная",
}

// Payments within this share of the planned amount count as the planned
// payment (partial and rounded payments happen).
const paidMatchTolerance = 0.9

// Frequency classification windows, in days between income events.
const (
	gapStdDevLimit  = 5.0
	monthlyGapLow   = 25.0
	monthlyGapHigh  = 35.0
	biweeklyGapLow  = 10.0
	biweeklyGapHigh = 20.0
)

// IncomeCategorizer mines the transaction history for recurring income and
// matches debit patterns against loan obligations.
type IncomeCategorizer struct{}

func NewIncomeCategorizer() *IncomeCategorizer { return &IncomeCategorizer{} }

// Categorize builds the income profile for one snapshot: the monthly income
// estimate, its regularity, the next expected income window and the
// obligation status of every debt-bearing loan for the current period.
func (c *IncomeCategorizer) Categorize(transactions []models.Transaction, loans []models.Loan, now time.Time) models.IncomeProfile {
	incomeTxs := filterSalaryTransactions(transactions)
	sort.Slice(incomeTxs, func(i, j int) bool {
		return incomeTxs[i].BookingDate.Before(incomeTxs[j].BookingDate)
	})

	profile := models.IncomeProfile{
		EstimatedMonthlyIncome: estimateMonthlyIncome(incomeTxs, now),
		Obligations:            deriveObligations(transactions, loans, now),
	}
	profile.Frequency = classifyFrequency(incomeTxs)
	profile.NextIncomeWindow = nextIncomeWindow(incomeTxs, profile.Frequency, now)

	logger.L.Debug("Income categorization complete",
		"incomeEvents", len(incomeTxs),
		"estimatedMonthlyIncome", profile.EstimatedMonthlyIncome,
		"frequency", profile.Frequency,
		"obligations", len(profile.Obligations))
	return profile
}

// IsSalaryTransaction is the named heuristic behind income detection: a
// credit transaction whose bank code is the payroll code or whose
// description mentions salary.
func IsSalaryTransaction(tx models.Transaction) bool {
	if !tx.IsCredit() {
		return false
	}
	if tx.BankTransactionCode == salaryTransactionCode {
		return true
	}
	desc := strings.ToLower(tx.Description)
	for _, keyword := range salaryKeywords {
		if strings.Contains(desc, keyword) {
			return true
		}
	}
	return false
}

func filterSalaryTransactions(transactions []models.Transaction) []models.Transaction {
	var out []models.Transaction
	for _, tx := range transactions {
		if IsSalaryTransaction(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// estimateMonthlyIncome is the median of per-month salary sums. The median
// protects the estimate from one-off bonus months; the current (partial)
// month is excluded because it would always read low.
func estimateMonthlyIncome(incomeTxs []models.Transaction, now time.Time) float64 {
	currentMonth := now.Format("2006-01")
	monthlySums := make(map[string]float64)
	for _, tx := range incomeTxs {
		month := tx.BookingDate.Format("2006-01")
		if month >= currentMonth {
			continue
		}
		monthlySums[month] += math.Abs(tx.Amount)
	}

	sums := make([]float64, 0, len(monthlySums))
	for _, v := range monthlySums {
		sums = append(sums, v)
	}
	if len(sums) == 0 {
		return 0
	}
	return median(sums)
}

// classifyFrequency looks at the day-gaps between consecutive income events.
// A tight monthly cadence needs both a small spread and a gap near 30 days;
// the biweekly window is judged on the mean gap alone. Everything else is
// irregular.
func classifyFrequency(incomeTxs []models.Transaction) string {
	if len(incomeTxs) < 2 {
		return models.FrequencyIrregular
	}

	gaps := make([]float64, 0, len(incomeTxs)-1)
	for i := 1; i < len(incomeTxs); i++ {
		gap := daysBetween(incomeTxs[i-1].BookingDate, incomeTxs[i].BookingDate)
		gaps = append(gaps, float64(gap))
	}

	m := mean(gaps)
	sd := populationStdDev(gaps, m)

	switch {
	case sd <= gapStdDevLimit && m >= monthlyGapLow && m <= monthlyGapHigh:
		return models.FrequencyRegularMonthly
	case m >= biweeklyGapLow && m <= biweeklyGapHigh:
		return models.FrequencyRegularBiweekly
	default:
		return models.FrequencyIrregular
	}
}

// nextIncomeWindow projects the next income date from the last observed one
// and widens it by two days either side to absorb bank processing jitter.
// With no observed income at all the window degrades to "sometime in the
// next month".
func nextIncomeWindow(incomeTxs []models.Transaction, frequency string, now time.Time) models.IncomeWindow {
	if len(incomeTxs) == 0 {
		return models.IncomeWindow{
			Start: now.AddDate(0, 0, 1),
			End:   now.AddDate(0, 0, 30),
		}
	}

	last := incomeTxs[len(incomeTxs)-1].BookingDate
	step := 14
	if frequency == models.FrequencyRegularMonthly {
		step = 30
	}
	projected := last.AddDate(0, 0, step)
	return models.IncomeWindow{
		Start: projected.AddDate(0, 0, -2),
		End:   projected.AddDate(0, 0, 2),
	}
}

// deriveObligations builds the per-loan view of the current billing period.
// The planned amount comes from the first schedule entry on/after month
// start (zero without a schedule); "paid" means a debit since month start
// mentions the loan id and covers at least 90% of the planned amount.
func deriveObligations(transactions []models.Transaction, loans []models.Loan, now time.Time) []models.ObligationStatus {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var monthDebits []models.Transaction
	for _, tx := range transactions {
		if tx.IsDebit() && !tx.BookingDate.Before(monthStart) {
			monthDebits = append(monthDebits, tx)
		}
	}

	var obligations []models.ObligationStatus
	for _, loan := range loans {
		if !loan.IsActive() || !isObligationType(loan.ProductType) {
			continue
		}

		status := models.ObligationStatus{AgreementID: loan.AgreementID}
		if entry, ok := loan.NextScheduledPayment(monthStart); ok {
			status.PlannedAmount = entry.Amount
		}

		if status.PlannedAmount > 0 {
			idLower := strings.ToLower(loan.AgreementID)
			for _, tx := range monthDebits {
				if !strings.Contains(strings.ToLower(tx.Description), idLower) {
					continue
				}
				if math.Abs(tx.Amount) >= status.PlannedAmount*paidMatchTolerance {
					status.PaidInPeriod = true
					if tx.BookingDate.After(status.LastPaymentDate) {
						status.LastPaymentDate = tx.BookingDate
					}
				}
			}
		}

		obligations = append(obligations, status)
	}
	return obligations
}

// isObligationType lists the product types that carry a monthly obligation
// the categorizer tracks. Overdrafts have no schedule to match against.
func isObligationType(productType string) bool {
	switch productType {
	case models.ProductLoan, models.ProductCreditCard, models.ProductMortgage:
		return true
	}
	return false
}

// daysBetween counts whole calendar days from a to b, ignoring clock time.
func daysBetween(a, b time.Time) int {
	aDay := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
