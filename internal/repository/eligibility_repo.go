package repository

import (
	"context"
	"fmt"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/pkg/database"
	"go.uber.org/zap"
)

// EligibilityCheckRepository persists eligibility audit records
type EligibilityCheckRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewEligibilityCheckRepository creates a new eligibility check repository
func NewEligibilityCheckRepository(db *database.DB, logger *zap.Logger) *EligibilityCheckRepository {
	return &EligibilityCheckRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new eligibility check record
func (r *EligibilityCheckRepository) Create(ctx context.Context, check *entity.EligibilityCheck) error {
	query := `
		INSERT INTO eligibility_checks (
			request_id, member_id, policy_id, service_date, eligible, reasons,
			member_number, member_name, policy_number, plan_name,
			rules_evaluated, elapsed_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		check.RequestID,
		check.MemberID,
		check.PolicyID,
		check.ServiceDate,
		check.Eligible,
		check.Reasons,
		check.MemberNumber,
		check.MemberName,
		check.PolicyNumber,
		check.PlanName,
		check.RulesEvaluated,
		check.ElapsedMs,
		check.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create eligibility check", zap.Error(err))
		return fmt.Errorf("failed to create eligibility check: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	check.ID = id
	return nil
}

// Verify interface compliance
var _ port.EligibilityCheckRepository = (*EligibilityCheckRepository)(nil)
