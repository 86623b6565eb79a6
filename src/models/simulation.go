package models

// Solvency simulation statuses.
const (
	SimulationOK     = "OK"
	SimulationDanger = "DANGER"
)

// SimulationResult is the Solvency Simulator's output. MinProjectedBalance
// is the lowest point the forward simulation reaches over the horizon;
// DailyAmount is the recommended safe daily spend derived from it.
type SimulationResult struct {
	MinProjectedBalance float64 `json:"min_low_point"`
	FreeCash            float64 `json:"free_cash"`
	DailyAmount         float64 `json:"daily_amount"`
	Status              string  `json:"status"`
}
