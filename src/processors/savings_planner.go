// backend/src/processors/savings_planner.go
package processors

import (
	"strings"

	"github.com/username/finpulse/backend/src/models"
)

// SavingsPlanner builds the deposits view: saved total, daily savings
// contribution (SDP) and progress toward the savings target.
type SavingsPlanner struct{}

func NewSavingsPlanner() *SavingsPlanner { return &SavingsPlanner{} }

// Plan filters savings products out of the raw agreements and sizes the
// daily savings contribution. The SDP of total/30 is a placeholder carried
// over until a real goal-pacing model exists; it is labeled as such rather
// than dressed up as one.
func (p *SavingsPlanner) Plan(agreements []models.RawAgreement, target float64) models.SavingsPayload {
	payload := models.SavingsPayload{Deposits: []models.Deposit{}}

	for _, raw := range agreements {
		pt := strings.ToLower(raw.ProductType)
		if !strings.Contains(pt, "deposit") && !strings.Contains(pt, "savings") {
			continue
		}
		balance := ParseAmount(raw.Amount)
		payload.TotalSaved += balance
		payload.Deposits = append(payload.Deposits, models.Deposit{
			ID:           raw.AgreementID,
			Bank:         raw.Bank,
			Type:         pt,
			Balance:      balance,
			Rate:         ParseAmount(raw.InterestRate),
			TermMonths:   int(ParseAmount(raw.TermMonths)),
			MaturityDate: ParseDate(raw.EndDate),
		})
	}

	if len(payload.Deposits) == 0 {
		return payload
	}

	// Placeholder pacing: spread the saved total over a month.
	payload.SDP = payload.TotalSaved / daysPerMonth

	payload.Target = target
	if payload.Target <= 0 {
		payload.Target = payload.TotalSaved * 1.5
	}
	if payload.Target > 0 {
		progress := payload.TotalSaved / payload.Target * 100
		if progress > 100 {
			progress = 100
		}
		payload.ProgressPercent = progress
	}
	return payload
}
