// backend/src/processors/loan_normalizer.go
package processors

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/username/finpulse/backend/src/logger"
	"github.com/username/finpulse/backend/src/models"
)

// Statuses under which a bank still expects payments on the agreement.
var activeAgreementStatuses = map[string]bool{
	"active":     true,
	"enabled":    true,
	"in_arrears": true,
}

// LoanNormalizer maps bank-specific product-agreement records onto the four
// canonical loan types the rest of the engine understands.
type LoanNormalizer struct{}

func NewLoanNormalizer() *LoanNormalizer { return &LoanNormalizer{} }

// Normalize classifies raw agreements into uniform loans. Records that are
// not credit products (deposits, ambiguous debit cards) are dropped; nothing
// here errors; malformed numeric fields coerce to zero.
func (n *LoanNormalizer) Normalize(agreements []models.RawAgreement) []models.Loan {
	var loans []models.Loan
	for _, raw := range agreements {
		productType, ok := classifyProductType(raw)
		if !ok {
			continue
		}

		status := models.LoanStatusClosed
		if activeAgreementStatuses[strings.ToLower(raw.Status)] {
			status = models.LoanStatusActive
		}

		principal := ParseAmount(raw.Amount)
		if productType == models.ProductCreditCard {
			// Card balance waterfall: outstanding first, agreement amount second.
			if outstanding := ParseAmount(raw.OutstandingAmount); outstanding > 0 {
				principal = outstanding
			}
		}

		loan := models.Loan{
			AgreementID:   raw.AgreementID,
			Bank:          raw.Bank,
			ProductType:   productType,
			ProductName:   raw.ProductName,
			Status:        status,
			Principal:     principal,
			OverdueAmount: ParseAmount(raw.OverdueAmount),
			InterestRate:  ParseAmount(raw.InterestRate),
			TermMonths:    int(ParseAmount(raw.TermMonths)),
			StartDate:     ParseDate(raw.StartDate),
			EndDate:       ParseDate(raw.EndDate),
			Schedule:      parseSchedule(raw.PaymentSchedule),
		}
		loans = append(loans, loan)
	}

	logger.L.Debug("Normalized agreements", "in", len(agreements), "out", len(loans))
	return loans
}

// classifyProductType maps a raw product-type string onto a canonical type.
// The second return is false when the agreement is not a credit product at
// all, or when a "card" record fails the credit-card heuristic.
func classifyProductType(raw models.RawAgreement) (string, bool) {
	pt := strings.ToLower(raw.ProductType)

	switch {
	case strings.Contains(pt, "mortgage") || strings.Contains(pt, "ипотека"):
		return models.ProductMortgage, true
	case strings.Contains(pt, "overdraft"):
		return models.ProductOverdraft, true
	case strings.Contains(pt, "card"):
		if isCreditCard(raw) {
			return models.ProductCreditCard, true
		}
		return "", false
	case strings.Contains(pt, "loan") || strings.Contains(pt, "credit") ||
		strings.Contains(pt, "кредит") || strings.Contains(pt, "заем") || strings.Contains(pt, "займ"):
		return models.ProductLoan, true
	}
	return "", false
}

// isCreditCard decides whether a raw "card" agreement is a credit product.
// A positive outstanding balance is the strongest signal; otherwise the
// product name has to say so. Plain debit cards fail both and are excluded.
func isCreditCard(raw models.RawAgreement) bool {
	if ParseAmount(raw.OutstandingAmount) > 0 || ParseAmount(raw.Amount) > 0 {
		return true
	}
	name := strings.ToLower(raw.ProductName)
	return strings.Contains(name, "credit") || strings.Contains(name, "кредит")
}

func parseSchedule(entries []models.RawScheduleEntry) []models.ScheduleEntry {
	var schedule []models.ScheduleEntry
	for _, e := range entries {
		date := ParseDate(e.Date)
		if date.IsZero() {
			continue
		}
		schedule = append(schedule, models.ScheduleEntry{
			Date:   date,
			Amount: ParseAmount(e.Amount),
		})
	}
	sort.Slice(schedule, func(i, j int) bool { return schedule[i].Date.Before(schedule[j].Date) })
	return schedule
}

// ParseAmount coerces a bank-reported numeric string to a float64, falling
// back to zero on anything unparseable.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseDate accepts the date formats banks actually send (date-only and
// RFC3339); anything else yields the zero time.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
