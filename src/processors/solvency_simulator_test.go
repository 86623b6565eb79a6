package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/finpulse/backend/src/models"
)

func TestSimulateLargePaymentBeyondBufferIsDanger(t *testing.T) {
	s := NewSolvencySimulator(30, 1000)
	now := day(2026, 4, 1)

	loan := activeLoan("loan-1", 500000, 20)
	loan.Schedule = []models.ScheduleEntry{{Date: day(2026, 4, 6), Amount: 50000}}

	result := s.Simulate(10000, []models.Loan{loan}, models.MDPResult{}, models.ADPResult{}, models.IncomeProfile{}, now)

	assert.Equal(t, models.SimulationDanger, result.Status)
	assert.Zero(t, result.DailyAmount)
	assert.InDelta(t, -40000, result.MinProjectedBalance, 1e-9)
	assert.Less(t, result.FreeCash, 0.0)
}

func TestSimulateSafeDailySpend(t *testing.T) {
	s := NewSolvencySimulator(30, 5000)
	now := day(2026, 4, 1)

	profile := models.IncomeProfile{
		EstimatedMonthlyIncome: 50000,
		Frequency:              models.FrequencyRegularMonthly,
		NextIncomeWindow: models.IncomeWindow{
			Start: day(2026, 4, 11),
			End:   day(2026, 4, 15),
		},
	}
	mdp := models.MDPResult{Total: 100}

	result := s.Simulate(20000, nil, mdp, models.ADPResult{}, profile, now)

	// Lowest point is right before the paycheck on day 10.
	assert.Equal(t, models.SimulationOK, result.Status)
	assert.InDelta(t, 19000, result.MinProjectedBalance, 1e-9)
	assert.InDelta(t, 14000, result.FreeCash, 1e-9)
	assert.InDelta(t, 1400, result.DailyAmount, 1e-9)
}

func TestSimulateIrregularIncomeIsNotProjected(t *testing.T) {
	s := NewSolvencySimulator(30, 0)
	now := day(2026, 4, 1)

	profile := models.IncomeProfile{
		EstimatedMonthlyIncome: 50000,
		Frequency:              models.FrequencyIrregular,
		NextIncomeWindow:       models.IncomeWindow{Start: day(2026, 4, 11)},
	}
	mdp := models.MDPResult{Total: 100}

	result := s.Simulate(20000, nil, mdp, models.ADPResult{}, profile, now)
	// Without the projected paycheck the balance only drains.
	assert.InDelta(t, 17000, result.MinProjectedBalance, 1e-9)
}

func TestSimulateADPReducesFreeCash(t *testing.T) {
	s := NewSolvencySimulator(30, 1000)
	now := day(2026, 4, 1)

	base := s.Simulate(20000, nil, models.MDPResult{Total: 100}, models.ADPResult{}, models.IncomeProfile{}, now)
	withADP := s.Simulate(20000, nil, models.MDPResult{Total: 100}, models.ADPResult{Total: 3000}, models.IncomeProfile{}, now)

	assert.InDelta(t, base.FreeCash-3000, withADP.FreeCash, 1e-9)
}

func TestSimulateScheduledDaysSkipFlatMDP(t *testing.T) {
	s := NewSolvencySimulator(10, 0)
	now := day(2026, 4, 1)

	loan := activeLoan("loan-1", 100000, 20)
	loan.Schedule = []models.ScheduleEntry{{Date: day(2026, 4, 3), Amount: 5000}}
	mdp := models.MDPResult{Total: 100}

	result := s.Simulate(20000, []models.Loan{loan}, mdp, models.ADPResult{}, models.IncomeProfile{}, now)
	// 9 flat days at 100 plus one scheduled 5000.
	assert.InDelta(t, 20000-900-5000, result.MinProjectedBalance, 1e-9)
}
