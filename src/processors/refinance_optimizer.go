// backend/src/processors/refinance_optimizer.go
package processors

import (
	"fmt"
	"math"
	"sort"

	"github.com/username/finpulse/backend/src/logger"
	"github.com/username/finpulse/backend/src/models"
)

const (
	maxOffers       = 3
	defaultOfferTTM = 60 // months, when a catalog product omits its max term
)

// RefinanceOptimizer detects financing stress and ranks refinance and
// consolidation offers from the product catalog by monthly savings.
type RefinanceOptimizer struct {
	DTIThreshold float64 // debt-to-income ratio above which high_dti fires
	MinRateDiff  float64 // minimum rate improvement, percentage points
}

func NewRefinanceOptimizer(dtiThreshold, minRateDiff float64) *RefinanceOptimizer {
	return &RefinanceOptimizer{DTIThreshold: dtiThreshold, MinRateDiff: minRateDiff}
}

// Optimize runs detection then selection and returns the full assessment.
func (o *RefinanceOptimizer) Optimize(
	loans []models.Loan,
	catalog []models.CatalogProduct,
	mdp models.MDPResult,
	monthlyIncome float64,
	simulation models.SimulationResult,
) models.FinancingAssessment {
	assessment := o.detectFinancingNeed(loans, catalog, mdp, monthlyIncome, simulation)
	if len(assessment.RefiCandidateIDs) > 0 {
		assessment.Offers = o.selectOffers(loans, catalog, mdp, assessment.RefiCandidateIDs)
	}
	if assessment.Offers == nil {
		assessment.Offers = []models.RefinanceOffer{}
	}

	logger.L.Debug("Refinance optimization complete",
		"financingNeeded", assessment.FinancingNeeded,
		"urgency", assessment.Urgency,
		"triggers", assessment.Triggers,
		"offers", len(assessment.Offers))
	return assessment
}

// detectFinancingNeed computes the DTI and raises the four trigger kinds.
// An unknown income defaults the DTI to 1.0 (maximal stress) so missing
// data flags need rather than hiding it.
func (o *RefinanceOptimizer) detectFinancingNeed(
	loans []models.Loan,
	catalog []models.CatalogProduct,
	mdp models.MDPResult,
	monthlyIncome float64,
	simulation models.SimulationResult,
) models.FinancingAssessment {
	active := ActiveDebtBearing(loans)

	var totalPlanned float64
	for _, p := range mdp.PerLoan {
		totalPlanned += p.MonthlyAmount
	}

	dti := 1.0
	if monthlyIncome > 0 {
		dti = totalPlanned / monthlyIncome
	}

	var triggers []string
	hasOverdue := false
	for _, loan := range active {
		if loan.IsOverdue() {
			hasOverdue = true
			break
		}
	}
	if hasOverdue {
		triggers = append(triggers, models.TriggerOverdue)
	}
	if simulation.Status == models.SimulationDanger {
		triggers = append(triggers, models.TriggerGapRisk)
	}
	highDTI := dti > o.DTIThreshold
	if highDTI {
		triggers = append(triggers, models.TriggerHighDTI)
	}

	var candidates []string
	for _, loan := range active {
		if IsRefiCandidate(loan, catalog, o.MinRateDiff) {
			candidates = append(candidates, loan.AgreementID)
		}
	}
	if len(candidates) > 0 {
		triggers = append(triggers, models.TriggerRefiOpportunity)
	}

	urgency := models.UrgencyNone
	switch {
	case hasOverdue || simulation.Status == models.SimulationDanger:
		urgency = models.UrgencyHigh
	case highDTI:
		urgency = models.UrgencyMedium
	case len(candidates) > 0:
		urgency = models.UrgencyWatch
	}

	if triggers == nil {
		triggers = []string{}
	}
	return models.FinancingAssessment{
		FinancingNeeded:  urgency != models.UrgencyNone,
		Urgency:          urgency,
		Triggers:         triggers,
		DTI:              dti,
		RefiCandidateIDs: candidates,
	}
}

// IsRefiCandidate is the named heuristic behind the refi_opportunity
// trigger: the loan has no overdue debt and the best compatible catalog
// rate undercuts its rate by at least the configured margin.
func IsRefiCandidate(loan models.Loan, catalog []models.CatalogProduct, minRateDiff float64) bool {
	if loan.IsOverdue() || loan.InterestRate <= 0 {
		return false
	}
	best, ok := bestCatalogRate(loan, catalog)
	if !ok {
		return false
	}
	return loan.InterestRate-best >= minRateDiff
}

// bestCatalogRate finds the lowest rate among catalog products compatible
// with the loan's type and amount.
func bestCatalogRate(loan models.Loan, catalog []models.CatalogProduct) (float64, bool) {
	best := math.MaxFloat64
	found := false
	for _, product := range catalog {
		if !productCompatible(product, loan) {
			continue
		}
		if product.InterestRate < best {
			best = product.InterestRate
			found = true
		}
	}
	return best, found
}

// productCompatible matches a catalog product against a loan: the amount
// must fit the product's range, and the type must match directly, or be a
// plain refinance loan, which can also absorb card debt.
func productCompatible(product models.CatalogProduct, loan models.Loan) bool {
	if !product.Covers(loan.Principal) {
		return false
	}
	if product.ProductType == loan.ProductType {
		return true
	}
	return product.ProductType == models.ProductLoan && loan.ProductType == models.ProductCreditCard
}

// selectOffers builds the candidate pool: one offer per (flagged loan,
// qualifying product), plus a single consolidation offer when at least two
// loans are flagged. The pool is ranked by monthly saving and cut to three.
func (o *RefinanceOptimizer) selectOffers(
	loans []models.Loan,
	catalog []models.CatalogProduct,
	mdp models.MDPResult,
	candidateIDs []string,
) []models.RefinanceOffer {
	currentPayment := make(map[string]float64, len(mdp.PerLoan))
	for _, p := range mdp.PerLoan {
		currentPayment[p.AgreementID] = p.MonthlyAmount
	}

	byID := make(map[string]models.Loan, len(loans))
	for _, loan := range loans {
		byID[loan.AgreementID] = loan
	}

	var pool []models.RefinanceOffer

	for _, id := range candidateIDs {
		loan, ok := byID[id]
		if !ok {
			continue
		}
		oldPayment := currentPayment[id]
		for _, product := range catalog {
			if !productCompatible(product, loan) {
				continue
			}
			if loan.InterestRate-product.InterestRate < o.MinRateDiff {
				continue
			}
			term := product.MaxTermMonths
			if term <= 0 {
				term = defaultOfferTTM
			}
			newPayment := AnnuityPayment(loan.Principal, product.InterestRate, term)
			saving := oldPayment - newPayment
			if saving <= 0 {
				continue
			}
			pool = append(pool, models.RefinanceOffer{
				Strategy:          models.OfferRefinanceOne,
				Bank:              product.Bank,
				Product:           product.Name,
				Rate:              product.InterestRate,
				TermMonths:        term,
				OldMonthlyPayment: oldPayment,
				NewMonthlyPayment: newPayment,
				MonthlySaving:     saving,
				TotalSaving:       saving * float64(term),
				Commission:        product.Commission,
				TargetLoanIDs:     []string{id},
			})
		}
	}

	if len(candidateIDs) >= 2 {
		pool = append(pool, o.consolidationOffers(byID, catalog, currentPayment, candidateIDs)...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].MonthlySaving != pool[j].MonthlySaving {
			return pool[i].MonthlySaving > pool[j].MonthlySaving
		}
		if pool[i].Bank != pool[j].Bank {
			return pool[i].Bank < pool[j].Bank
		}
		return pool[i].Product < pool[j].Product
	})

	if len(pool) > maxOffers {
		pool = pool[:maxOffers]
	}
	for i := range pool {
		pool[i].ID = fmt.Sprintf("refi-offer-%d", i)
		if pool[i].Commission > 0 && pool[i].MonthlySaving > 0 {
			pool[i].BreakevenMonths = pool[i].Commission / pool[i].MonthlySaving
		}
	}
	return pool
}

// consolidationOffers evaluates one combined offer per catalog product able
// to cover the flagged loans' total principal.
func (o *RefinanceOptimizer) consolidationOffers(
	byID map[string]models.Loan,
	catalog []models.CatalogProduct,
	currentPayment map[string]float64,
	candidateIDs []string,
) []models.RefinanceOffer {
	var totalPrincipal, totalPayment float64
	ids := make([]string, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		loan, ok := byID[id]
		if !ok {
			continue
		}
		totalPrincipal += loan.Principal
		totalPayment += currentPayment[id]
		ids = append(ids, id)
	}
	if totalPrincipal <= 0 || len(ids) < 2 {
		return nil
	}

	var offers []models.RefinanceOffer
	for _, product := range catalog {
		if product.ProductType != models.ProductLoan || !product.Covers(totalPrincipal) {
			continue
		}
		term := product.MaxTermMonths
		if term <= 0 {
			term = defaultOfferTTM
		}
		newPayment := AnnuityPayment(totalPrincipal, product.InterestRate, term)
		saving := totalPayment - newPayment
		if saving <= 0 {
			continue
		}
		offers = append(offers, models.RefinanceOffer{
			Strategy:          models.OfferConsolidation,
			Bank:              product.Bank,
			Product:           product.Name,
			Rate:              product.InterestRate,
			TermMonths:        term,
			OldMonthlyPayment: totalPayment,
			NewMonthlyPayment: newPayment,
			MonthlySaving:     saving,
			TotalSaving:       saving * float64(term),
			Commission:        product.Commission,
			TargetLoanIDs:     ids,
		})
	}
	return offers
}

// AnnuityPayment is the standard fixed-payment formula
// PMT = PV·r(1+r)^n / ((1+r)^n − 1), degenerating to PV/n at zero rate.
func AnnuityPayment(principal, annualRatePct float64, termMonths int) float64 {
	if termMonths < 1 {
		termMonths = 1
	}
	n := float64(termMonths)
	r := annualRatePct / 100 / 12
	if r == 0 {
		return principal / n
	}
	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}
