package costing

import (
	"context"
	"fmt"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

// Totals is a member's accumulated cost-sharing for one benefit period
type Totals struct {
	DeductibleMet  float64
	OutOfPocket    float64
	ApprovedAmount float64
}

// Accumulator supplies year-to-date cost-sharing totals for a member. The
// engine is written against this interface so the historical-scan estimate
// below can be replaced by a precise running ledger without touching the
// calculation steps.
type Accumulator interface {
	YearToDate(ctx context.Context, memberID int64, year int) (Totals, error)
}

// ClaimHistory is the slice of claim persistence the accumulator reads
type ClaimHistory interface {
	ListApprovedByMemberYear(ctx context.Context, memberID int64, year int) ([]*entity.Claim, error)
}

// HistoryAccumulator derives year-to-date totals by scanning the member's
// approved and settled claims for the period. This is an estimate, not a
// ledger: concurrent approvals for the same member can race and the scan has
// no serialization guarantee.
type HistoryAccumulator struct {
	history ClaimHistory
}

// NewHistoryAccumulator creates an accumulator backed by claim history
func NewHistoryAccumulator(history ClaimHistory) *HistoryAccumulator {
	return &HistoryAccumulator{history: history}
}

// YearToDate sums the deductible and patient cost-sharing recorded on the
// member's adjudicated claims in the given calendar year
func (a *HistoryAccumulator) YearToDate(ctx context.Context, memberID int64, year int) (Totals, error) {
	claims, err := a.history.ListApprovedByMemberYear(ctx, memberID, year)
	if err != nil {
		return Totals{}, fmt.Errorf("scan claim history: %w", err)
	}

	var totals Totals
	for _, c := range claims {
		totals.DeductibleMet = round2(totals.DeductibleMet + c.DeductibleApplied)
		totals.OutOfPocket = round2(totals.OutOfPocket + c.PatientCoPay)
		totals.ApprovedAmount = round2(totals.ApprovedAmount + c.ApprovedAmount)
	}
	return totals, nil
}
