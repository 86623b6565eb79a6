// backend/src/services/interfaces.go
package services

import (
	"context"

	"github.com/username/finpulse/backend/src/models"
)

// EngineService is the decision engine's single entry point. Every method is
// a pure derivation over the posted snapshot: no persistence, no outbound
// calls, no state between invocations. Degenerate inputs degrade to
// conservative output values rather than errors, so nothing here returns one.
type EngineService interface {
	// BuildDashboard runs the full pipeline and returns the dashboard payload.
	BuildDashboard(ctx context.Context, snapshot models.Snapshot) *models.DashboardPayload

	// BuildLoansView returns the strategy-ordered loans with headline numbers.
	BuildLoansView(ctx context.Context, snapshot models.Snapshot) *models.LoansPayload

	// BuildRefinanceView returns the financing assessment with ranked offers.
	BuildRefinanceView(ctx context.Context, snapshot models.Snapshot) *models.FinancingAssessment

	// BuildSavingsView returns the deposits view with the SDP pacing.
	BuildSavingsView(ctx context.Context, snapshot models.Snapshot) *models.SavingsPayload
}
