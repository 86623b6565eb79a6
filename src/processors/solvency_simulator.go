// backend/src/processors/solvency_simulator.go
package processors

import (
	"time"

	"github.com/username/finpulse/backend/src/logger"
	"github.com/username/finpulse/backend/src/models"
)

// SolvencySimulator projects the spendable balance forward day by day and
// derives the safe daily spending limit from the lowest point it reaches.
type SolvencySimulator struct {
	HorizonDays  int
	SafetyBuffer float64
}

func NewSolvencySimulator(horizonDays int, safetyBuffer float64) *SolvencySimulator {
	return &SolvencySimulator{HorizonDays: horizonDays, SafetyBuffer: safetyBuffer}
}

// Simulate walks the horizon one day at a time. Scheduled loan payments are
// subtracted on their due day; on days without any scheduled payment the
// flat MDP total is subtracted instead, so sparse schedules never make debt
// service disappear. Projected income is credited on its expected days.
//
// The safe daily spend divides the free cash above the buffer (measured at
// the simulation's minimum, not at today's balance) across the days until
// the next income; overspending today must not sink a payment that falls
// before the next paycheck.
func (s *SolvencySimulator) Simulate(
	startBalance float64,
	loans []models.Loan,
	mdp models.MDPResult,
	adp models.ADPResult,
	profile models.IncomeProfile,
	now time.Time,
) models.SimulationResult {
	horizon := s.HorizonDays
	if horizon <= 0 {
		horizon = 30
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	balance := startBalance
	minBalance := startBalance

	incomeRegular := profile.Frequency == models.FrequencyRegularMonthly ||
		profile.Frequency == models.FrequencyRegularBiweekly
	nextIncome := profile.NextIncomeWindow.Start

	for day := 1; day <= horizon; day++ {
		simDate := today.AddDate(0, 0, day)

		scheduled := scheduledPaymentsOn(loans, simDate)
		if scheduled > 0 {
			balance -= scheduled
		} else {
			balance -= mdp.Total
		}

		if incomeRegular && !nextIncome.IsZero() && sameDay(simDate, nextIncome) {
			balance += profile.EstimatedMonthlyIncome
			if profile.Frequency == models.FrequencyRegularMonthly {
				nextIncome = nextIncome.AddDate(0, 1, 0)
			} else {
				nextIncome = nextIncome.AddDate(0, 0, 14)
			}
		}

		if balance < minBalance {
			minBalance = balance
		}
	}

	freeCash := minBalance - s.SafetyBuffer - adp.Total

	daysUntilIncome := horizon
	if start := profile.NextIncomeWindow.Start; !start.IsZero() && start.After(today) {
		if d := daysBetween(today, start); d >= 1 {
			daysUntilIncome = d
		} else {
			daysUntilIncome = 1
		}
	}

	result := models.SimulationResult{
		MinProjectedBalance: minBalance,
		FreeCash:            freeCash,
	}
	if freeCash <= 0 {
		result.Status = models.SimulationDanger
		result.DailyAmount = 0
	} else {
		result.Status = models.SimulationOK
		result.DailyAmount = freeCash / float64(daysUntilIncome)
	}

	logger.L.Debug("Solvency simulation complete",
		"minLowPoint", result.MinProjectedBalance,
		"freeCash", result.FreeCash,
		"dailyAmount", result.DailyAmount,
		"status", result.Status)
	return result
}

// scheduledPaymentsOn sums schedule entries of active debt-bearing loans
// that fall on the given day.
func scheduledPaymentsOn(loans []models.Loan, day time.Time) float64 {
	var total float64
	for _, loan := range loans {
		if !loan.IsActive() || !isDebtBearing(loan.ProductType) {
			continue
		}
		for _, entry := range loan.Schedule {
			if sameDay(entry.Date, day) {
				total += entry.Amount
			}
		}
	}
	return total
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
