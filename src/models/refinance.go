package models

// Financing-need triggers raised by the detector.
const (
	TriggerOverdue         = "overdue"
	TriggerGapRisk         = "gap_risk"
	TriggerHighDTI         = "high_dti"
	TriggerRefiOpportunity = "refi_opportunity"
)

// Urgency levels for a detected financing need.
const (
	UrgencyHigh   = "HIGH"
	UrgencyMedium = "MEDIUM"
	UrgencyWatch  = "WATCH"
	UrgencyNone   = "NONE"
)

// Offer strategies produced by the selector.
const (
	OfferRefinanceOne  = "refinance_one"
	OfferConsolidation = "consolidation"
)

// CatalogProduct is one refinance/consolidation product from a bank's
// public catalog.
type CatalogProduct struct {
	Bank          string  `json:"bank"`
	ProductType   string  `json:"product_type"`
	Name          string  `json:"name"`
	InterestRate  float64 `json:"interest_rate"` // annual, percent
	MinAmount     float64 `json:"min_amount"`
	MaxAmount     float64 `json:"max_amount"`
	MaxTermMonths int     `json:"max_term_months"`
	Commission    float64 `json:"commission"`
}

// Covers reports whether the product can finance the given amount.
func (p CatalogProduct) Covers(amount float64) bool {
	if amount <= 0 {
		return false
	}
	if p.MinAmount > 0 && amount < p.MinAmount {
		return false
	}
	if p.MaxAmount > 0 && amount > p.MaxAmount {
		return false
	}
	return true
}

// RefinanceOffer is one ranked refinance or consolidation proposal.
type RefinanceOffer struct {
	ID                string   `json:"id"`
	Strategy          string   `json:"strategy"` // refinance_one | consolidation
	Bank              string   `json:"bank"`
	Product           string   `json:"product"`
	Rate              float64  `json:"rate"`
	TermMonths        int      `json:"term_months"`
	OldMonthlyPayment float64  `json:"old_monthly_payment"`
	NewMonthlyPayment float64  `json:"new_monthly_payment"`
	MonthlySaving     float64  `json:"monthly_saving"`
	TotalSaving       float64  `json:"total_saving"`
	Commission        float64  `json:"commission"`
	BreakevenMonths   float64  `json:"breakeven_months"`
	TargetLoanIDs     []string `json:"target_loan_ids"`
}

// FinancingAssessment is the Refinance Optimizer's full output: whether
// financing stress exists, how urgent it is, what raised it and the top
// ranked offers.
type FinancingAssessment struct {
	FinancingNeeded  bool             `json:"financing_needed"`
	Urgency          string           `json:"urgency"`
	Triggers         []string         `json:"triggers"`
	DTI              float64          `json:"dti"`
	RefiCandidateIDs []string         `json:"refi_candidate_ids,omitempty"`
	Offers           []RefinanceOffer `json:"offers"`
}
