package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/finpulse/backend/src/models"
)

func TestAggregateSumsSpendableAccounts(t *testing.T) {
	a := NewBalanceAggregator()

	summary := a.Aggregate([]models.Account{
		{ID: "1", Bank: "alpha", SubType: "checking", Status: "enabled", Balance: 1000, Indicator: "credit"},
		{ID: "2", Bank: "alpha", SubType: "savings", Status: "active", Balance: 2500, Indicator: "credit"},
		{ID: "3", Bank: "beta", SubType: "wallet", Status: "enabled", Balance: 300, Indicator: "credit"},
	})

	assert.InDelta(t, 3800, summary.Total, 1e-9)
	assert.InDelta(t, 3500, summary.ByBank["alpha"].Total, 1e-9)
	assert.Equal(t, 2, summary.ByBank["alpha"].AccountCount)
	assert.Equal(t, 1, summary.ByBank["beta"].AccountCount)
}

func TestAggregateNeverGoesNegative(t *testing.T) {
	a := NewBalanceAggregator()

	// An overdrawn account must not eat into the other bank's money.
	summary := a.Aggregate([]models.Account{
		{ID: "1", Bank: "alpha", SubType: "checking", Status: "enabled", Balance: 700, Indicator: "debit"},
		{ID: "2", Bank: "beta", SubType: "checking", Status: "enabled", Balance: 500, Indicator: "credit"},
	})

	assert.InDelta(t, 500, summary.Total, 1e-9)
	assert.GreaterOrEqual(t, summary.Total, 0.0)
	assert.Zero(t, summary.ByBank["alpha"].Total)

	summary = a.Aggregate([]models.Account{
		{ID: "1", Bank: "alpha", SubType: "checking", Status: "enabled", Balance: 700, Indicator: "debit"},
	})
	assert.Zero(t, summary.Total)
}

func TestAggregateFiltersStatusAndSubtype(t *testing.T) {
	a := NewBalanceAggregator()

	summary := a.Aggregate([]models.Account{
		{ID: "1", Bank: "alpha", SubType: "checking", Status: "disabled", Balance: 1000, Indicator: "credit"},
		{ID: "2", Bank: "alpha", SubType: "card", Status: "enabled", Balance: 1000, Indicator: "credit"},
		{ID: "3", Bank: "alpha", SubType: "brokerage", Status: "enabled", Balance: 1000, Indicator: "credit"},
		{ID: "4", Bank: "alpha", SubType: "Checking", Status: "Enabled", Balance: 250, Indicator: "credit"},
	})

	assert.InDelta(t, 250, summary.Total, 1e-9)
	assert.Equal(t, 1, summary.ByBank["alpha"].AccountCount)
}
