// backend/src/services/engine_service.go
package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/finpulse/backend/src/logger"
	"github.com/username/finpulse/backend/src/models"
	"github.com/username/finpulse/backend/src/processors"
)

const (
	ckDashboard = "res_dashboard_%s"
	ckLoans     = "res_loans_%s"
	ckRefinance = "res_refinance_%s"
	ckSavings   = "res_savings_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// EngineDefaults are the config-level preferences applied when a snapshot
// does not carry its own.
type EngineDefaults struct {
	RepaymentSpeed    string
	RepaymentStrategy string
	MinRateDiff       float64
}

type engineServiceImpl struct {
	normalizer     *processors.LoanNormalizer
	aggregator     *processors.BalanceAggregator
	categorizer    *processors.IncomeCategorizer
	debtCalculator *processors.DebtCalculator
	paymentSizer   *processors.PaymentSizer
	simulator      *processors.SolvencySimulator
	optimizer      *processors.RefinanceOptimizer
	savingsPlanner *processors.SavingsPlanner
	defaults       EngineDefaults
	resultCache    *cache.Cache
}

// NewEngineService wires the pipeline stages together. The cache memoizes
// results per snapshot content hash; the stages themselves stay pure.
func NewEngineService(
	normalizer *processors.LoanNormalizer,
	aggregator *processors.BalanceAggregator,
	categorizer *processors.IncomeCategorizer,
	debtCalculator *processors.DebtCalculator,
	paymentSizer *processors.PaymentSizer,
	simulator *processors.SolvencySimulator,
	optimizer *processors.RefinanceOptimizer,
	savingsPlanner *processors.SavingsPlanner,
	defaults EngineDefaults,
	resultCache *cache.Cache,
) EngineService {
	return &engineServiceImpl{
		normalizer:     normalizer,
		aggregator:     aggregator,
		categorizer:    categorizer,
		debtCalculator: debtCalculator,
		paymentSizer:   paymentSizer,
		simulator:      simulator,
		optimizer:      optimizer,
		savingsPlanner: savingsPlanner,
		defaults:       defaults,
		resultCache:    resultCache,
	}
}

func (s *engineServiceImpl) BuildDashboard(ctx context.Context, snapshot models.Snapshot) *models.DashboardPayload {
	cacheKey := fmt.Sprintf(ckDashboard, snapshotHash(snapshot))
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.(*models.DashboardPayload)
	}

	now := resolveNow(snapshot)
	speed, strategy := s.resolvePreferences(snapshot)

	loans := s.normalizer.Normalize(snapshot.Agreements)
	balances := s.aggregator.Aggregate(snapshot.Accounts)
	profile := s.categorizer.Categorize(snapshot.Transactions, loans, now)
	debt := s.debtCalculator.Calculate(loans)
	mdp := s.paymentSizer.SizeMandatory(loans, profile, now)
	adp := s.paymentSizer.SizeAdditional(mdp.Total, loans, profile.EstimatedMonthlyIncome, speed, strategy)
	simulation := s.simulator.Simulate(balances.Total, loans, mdp, adp, profile, now)
	refinance := s.optimizer.Optimize(loans, snapshot.Catalog, mdp, profile.EstimatedMonthlyIncome, simulation)

	payload := &models.DashboardPayload{
		TotalBalance:   balances.Total,
		BalancesByBank: balances.ByBank,
		TotalDebt:      debt,
		Income:         profile,
		MDP:            mdp,
		ADP:            adp,
		SafeToSpend:    simulation,
		Refinance:      refinance,
	}

	logger.FromContext(ctx).Info("Dashboard computed",
		"totalBalance", payload.TotalBalance,
		"totalDebt", payload.TotalDebt.Total,
		"mdp", payload.MDP.Total,
		"adp", payload.ADP.Total,
		"safeToSpendDaily", payload.SafeToSpend.DailyAmount,
		"status", payload.SafeToSpend.Status,
		"financingNeeded", payload.Refinance.FinancingNeeded)

	s.cacheSet(cacheKey, payload)
	return payload
}

func (s *engineServiceImpl) BuildLoansView(ctx context.Context, snapshot models.Snapshot) *models.LoansPayload {
	cacheKey := fmt.Sprintf(ckLoans, snapshotHash(snapshot))
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.(*models.LoansPayload)
	}

	now := resolveNow(snapshot)
	speed, strategy := s.resolvePreferences(snapshot)

	loans := s.normalizer.Normalize(snapshot.Agreements)
	profile := s.categorizer.Categorize(snapshot.Transactions, loans, now)
	debt := s.debtCalculator.Calculate(loans)
	mdp := s.paymentSizer.SizeMandatory(loans, profile, now)
	adp := s.paymentSizer.SizeAdditional(mdp.Total, loans, profile.EstimatedMonthlyIncome, speed, strategy)

	monthlyPayment := make(map[string]float64, len(mdp.PerLoan))
	for _, p := range mdp.PerLoan {
		monthlyPayment[p.AgreementID] = p.MonthlyAmount
	}

	ranked := processors.RankLoans(processors.ActiveDebtBearing(loans), strategy)
	view := make([]models.RankedLoan, 0, len(ranked))
	for i, loan := range ranked {
		view = append(view, models.RankedLoan{
			ID:             loan.AgreementID,
			Bank:           loan.Bank,
			Type:           loan.ProductType,
			Balance:        loan.Principal,
			Rate:           loan.InterestRate,
			MonthlyPayment: monthlyPayment[loan.AgreementID],
			Priority:       i + 1,
			RefiCandidate:  processors.IsRefiCandidate(loan, snapshot.Catalog, s.defaults.MinRateDiff),
			MaturityDate:   loan.EndDate,
		})
	}

	payload := &models.LoansPayload{
		Loans:            view,
		TotalOutstanding: debt.Total,
		MDP:              mdp.Total,
		ADP:              adp.Total,
		Strategy:         strategy,
	}

	logger.FromContext(ctx).Info("Loans view computed",
		"loans", len(payload.Loans),
		"totalOutstanding", payload.TotalOutstanding,
		"strategy", payload.Strategy)

	s.cacheSet(cacheKey, payload)
	return payload
}

func (s *engineServiceImpl) BuildRefinanceView(ctx context.Context, snapshot models.Snapshot) *models.FinancingAssessment {
	cacheKey := fmt.Sprintf(ckRefinance, snapshotHash(snapshot))
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.(*models.FinancingAssessment)
	}

	now := resolveNow(snapshot)
	speed, strategy := s.resolvePreferences(snapshot)

	loans := s.normalizer.Normalize(snapshot.Agreements)
	balances := s.aggregator.Aggregate(snapshot.Accounts)
	profile := s.categorizer.Categorize(snapshot.Transactions, loans, now)
	mdp := s.paymentSizer.SizeMandatory(loans, profile, now)
	adp := s.paymentSizer.SizeAdditional(mdp.Total, loans, profile.EstimatedMonthlyIncome, speed, strategy)
	simulation := s.simulator.Simulate(balances.Total, loans, mdp, adp, profile, now)

	assessment := s.optimizer.Optimize(loans, snapshot.Catalog, mdp, profile.EstimatedMonthlyIncome, simulation)

	logger.FromContext(ctx).Info("Refinance view computed",
		"financingNeeded", assessment.FinancingNeeded,
		"urgency", assessment.Urgency,
		"offers", len(assessment.Offers))

	s.cacheSet(cacheKey, &assessment)
	return &assessment
}

func (s *engineServiceImpl) BuildSavingsView(ctx context.Context, snapshot models.Snapshot) *models.SavingsPayload {
	cacheKey := fmt.Sprintf(ckSavings, snapshotHash(snapshot))
	if cached, found := s.cacheGet(cacheKey); found {
		return cached.(*models.SavingsPayload)
	}

	payload := s.savingsPlanner.Plan(snapshot.Agreements, snapshot.SavingsTarget)

	logger.FromContext(ctx).Info("Savings view computed",
		"deposits", len(payload.Deposits),
		"totalSaved", payload.TotalSaved,
		"sdp", payload.SDP)

	s.cacheSet(cacheKey, &payload)
	return &payload
}

// resolvePreferences applies the snapshot's overrides over the configured
// defaults, validating the values so unknown strings fall back cleanly.
func (s *engineServiceImpl) resolvePreferences(snapshot models.Snapshot) (speed, strategy string) {
	speed = s.defaults.RepaymentSpeed
	switch snapshot.RepaymentSpeed {
	case models.SpeedConservative, models.SpeedBalanced, models.SpeedFast:
		speed = snapshot.RepaymentSpeed
	}

	strategy = s.defaults.RepaymentStrategy
	switch snapshot.RepaymentStrategy {
	case models.StrategyAvalanche, models.StrategySnowball:
		strategy = snapshot.RepaymentStrategy
	}
	return speed, strategy
}

// resolveNow pins the engine's "now" to the snapshot's capture time when the
// caller provided one, keeping recomputation reproducible.
func resolveNow(snapshot models.Snapshot) time.Time {
	if !snapshot.AsOf.IsZero() {
		return snapshot.AsOf
	}
	return time.Now()
}

func (s *engineServiceImpl) cacheGet(key string) (interface{}, bool) {
	if s.resultCache == nil {
		return nil, false
	}
	return s.resultCache.Get(key)
}

func (s *engineServiceImpl) cacheSet(key string, value interface{}) {
	if s.resultCache != nil {
		s.resultCache.Set(key, value, cache.DefaultExpiration)
	}
}

// snapshotHash identifies a snapshot by content so identical inputs reuse
// the memoized result. Struct field order makes json.Marshal deterministic.
func snapshotHash(snapshot models.Snapshot) string {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		// Marshal of plain value structs cannot realistically fail; an empty
		// key just disables memoization for this call.
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
