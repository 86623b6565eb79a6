package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/finpulse/backend/src/models"
)

func activeLoan(id string, principal, rate float64) models.Loan {
	return models.Loan{
		AgreementID:  id,
		ProductType:  models.ProductLoan,
		Status:       models.LoanStatusActive,
		Principal:    principal,
		InterestRate: rate,
	}
}

func TestSizeMandatoryAmortizesOverDaysLeft(t *testing.T) {
	s := NewPaymentSizer()
	now := day(2026, 4, 20)

	loan := activeLoan("loan-1", 100000, 20)
	loan.Schedule = []models.ScheduleEntry{{Date: day(2026, 4, 30), Amount: 6000}}

	profile := models.IncomeProfile{
		Obligations: []models.ObligationStatus{{AgreementID: "loan-1", PlannedAmount: 6000}},
	}

	mdp := s.SizeMandatory([]models.Loan{loan}, profile, now)
	require.Len(t, mdp.PerLoan, 1)
	p := mdp.PerLoan[0]
	assert.Equal(t, 10, p.DaysLeft)
	assert.InDelta(t, 600, p.DailyAmount, 1e-9)
	assert.InDelta(t, 600, mdp.Total, 1e-9)
	assert.False(t, p.Estimated)
}

func TestSizeMandatoryZeroWhenAllPaid(t *testing.T) {
	s := NewPaymentSizer()
	now := day(2026, 4, 20)

	loans := []models.Loan{
		activeLoan("loan-1", 100000, 20),
		activeLoan("loan-2", 50000, 15),
	}
	loans[0].Schedule = []models.ScheduleEntry{{Date: day(2026, 4, 25), Amount: 6000}}
	loans[1].Schedule = []models.ScheduleEntry{{Date: day(2026, 4, 28), Amount: 3000}}

	profile := models.IncomeProfile{
		Obligations: []models.ObligationStatus{
			{AgreementID: "loan-1", PlannedAmount: 6000, PaidInPeriod: true},
			{AgreementID: "loan-2", PlannedAmount: 3000, PaidInPeriod: true},
		},
	}

	mdp := s.SizeMandatory(loans, profile, now)
	assert.Zero(t, mdp.Total)
	for _, p := range mdp.PerLoan {
		assert.Zero(t, p.DailyAmount)
		assert.True(t, p.Paid)
	}
}

func TestSizeMandatoryFallbackEstimate(t *testing.T) {
	s := NewPaymentSizer()
	now := day(2026, 4, 20)

	// No schedule, no obligation: interest-only plus 1% principal.
	loan := activeLoan("loan-1", 300000, 22)
	mdp := s.SizeMandatory([]models.Loan{loan}, models.IncomeProfile{}, now)

	require.Len(t, mdp.PerLoan, 1)
	wantMonthly := 300000*22.0/12/100 + 300000*0.01
	assert.InDelta(t, wantMonthly, mdp.PerLoan[0].MonthlyAmount, 1e-6)
	assert.True(t, mdp.PerLoan[0].Estimated)
	assert.GreaterOrEqual(t, mdp.PerLoan[0].DaysLeft, 1)
}

func TestSizeMandatoryDueTodayClampsToOneDay(t *testing.T) {
	s := NewPaymentSizer()
	now := day(2026, 4, 30)

	loan := activeLoan("loan-1", 100000, 20)
	loan.Schedule = []models.ScheduleEntry{{Date: day(2026, 4, 30), Amount: 6000}}
	profile := models.IncomeProfile{
		Obligations: []models.ObligationStatus{{AgreementID: "loan-1", PlannedAmount: 6000}},
	}

	mdp := s.SizeMandatory([]models.Loan{loan}, profile, now)
	require.Len(t, mdp.PerLoan, 1)
	assert.Equal(t, 1, mdp.PerLoan[0].DaysLeft)
	assert.InDelta(t, 6000, mdp.PerLoan[0].DailyAmount, 1e-9)
}

func TestSizeMandatorySkipsClosedLoans(t *testing.T) {
	s := NewPaymentSizer()

	closed := activeLoan("loan-1", 100000, 20)
	closed.Status = models.LoanStatusClosed

	mdp := s.SizeMandatory([]models.Loan{closed}, models.IncomeProfile{}, day(2026, 4, 20))
	assert.Empty(t, mdp.PerLoan)
	assert.Zero(t, mdp.Total)
}

func TestSizeAdditionalBoundedByMDPShare(t *testing.T) {
	s := NewPaymentSizer()
	loans := []models.Loan{activeLoan("loan-1", 100000, 20)}

	mdpTotal := 500.0
	for _, speed := range []string{models.SpeedConservative, models.SpeedBalanced, models.SpeedFast} {
		adp := s.SizeAdditional(mdpTotal, loans, 0, speed, models.StrategyAvalanche)
		assert.LessOrEqual(t, adp.Total, mdpTotal*0.5, "speed %s", speed)
	}

	adp := s.SizeAdditional(mdpTotal, loans, 0, models.SpeedFast, models.StrategyAvalanche)
	assert.InDelta(t, 250, adp.Total, 1e-9)
}

func TestSizeAdditionalCappedByIncome(t *testing.T) {
	s := NewPaymentSizer()
	loans := []models.Loan{activeLoan("loan-1", 100000, 20)}

	// 20% of 30,000 over 30 days = 200/day, below fast's 500.
	adp := s.SizeAdditional(1000, loans, 30000, models.SpeedFast, models.StrategyAvalanche)
	assert.InDelta(t, 200, adp.Total, 1e-9)
}

func TestSizeAdditionalNeverExceedsTargetBalance(t *testing.T) {
	s := NewPaymentSizer()
	loans := []models.Loan{activeLoan("tiny", 50, 30)}

	adp := s.SizeAdditional(1000, loans, 0, models.SpeedFast, models.StrategyAvalanche)
	assert.InDelta(t, 50, adp.Total, 1e-9)
	assert.Equal(t, "tiny", adp.TargetLoanID)
}

func TestSizeAdditionalNoActiveLoans(t *testing.T) {
	s := NewPaymentSizer()

	closed := activeLoan("loan-1", 100000, 20)
	closed.Status = models.LoanStatusClosed

	adp := s.SizeAdditional(1000, []models.Loan{closed}, 50000, models.SpeedBalanced, models.StrategyAvalanche)
	assert.Zero(t, adp.Total)
	assert.Empty(t, adp.TargetLoanID)
	assert.Equal(t, "no active loans", adp.Reason)
}

func TestSizeAdditionalStrategyTargets(t *testing.T) {
	s := NewPaymentSizer()

	t.Run("avalanche picks highest rate", func(t *testing.T) {
		loans := []models.Loan{
			activeLoan("low-rate", 100000, 12),
			activeLoan("high-rate", 100000, 24),
		}
		adp := s.SizeAdditional(1000, loans, 0, models.SpeedBalanced, models.StrategyAvalanche)
		assert.Equal(t, "high-rate", adp.TargetLoanID)
		assert.Equal(t, "highest rate", adp.Reason)
	})

	t.Run("snowball picks smallest balance", func(t *testing.T) {
		loans := []models.Loan{
			activeLoan("big", 100000, 24),
			activeLoan("small", 50000, 12),
		}
		adp := s.SizeAdditional(1000, loans, 0, models.SpeedBalanced, models.StrategySnowball)
		assert.Equal(t, "small", adp.TargetLoanID)
		assert.Equal(t, "smallest balance", adp.Reason)
	})
}

func TestRankLoansDeterministic(t *testing.T) {
	loans := []models.Loan{
		activeLoan("b", 100000, 20),
		activeLoan("a", 100000, 20),
		activeLoan("c", 50000, 20),
	}

	ranked := RankLoans(loans, models.StrategyAvalanche)
	require.Len(t, ranked, 3)
	// Equal rates: smaller balance first, then id.
	assert.Equal(t, "c", ranked[0].AgreementID)
	assert.Equal(t, "a", ranked[1].AgreementID)
	assert.Equal(t, "b", ranked[2].AgreementID)

	again := RankLoans(loans, models.StrategyAvalanche)
	assert.Equal(t, ranked, again)
}

func TestDueDateForFallsBackToStartDay(t *testing.T) {
	s := NewPaymentSizer()
	now := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

	loan := activeLoan("loan-1", 100000, 20)
	loan.StartDate = day(2023, 6, 25)
	profile := models.IncomeProfile{}

	mdp := s.SizeMandatory([]models.Loan{loan}, profile, now)
	require.Len(t, mdp.PerLoan, 1)
	assert.Equal(t, day(2026, 4, 25), mdp.PerLoan[0].DueDate)

	// Start day already past this month: rolls to next month.
	loan.StartDate = day(2023, 6, 5)
	mdp = s.SizeMandatory([]models.Loan{loan}, profile, now)
	require.Len(t, mdp.PerLoan, 1)
	assert.Equal(t, day(2026, 5, 5), mdp.PerLoan[0].DueDate)
}
