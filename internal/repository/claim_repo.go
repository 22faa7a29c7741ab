package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/pkg/database"
	"go.uber.org/zap"
)

const claimColumns = `
	id, claim_number, member_id, policy_id, provider_name, claim_type, status,
	service_date, requested_amount, approved_amount, patient_co_pay,
	net_provider_amount, co_pay_percent, deductible_applied, difference_amount,
	reviewer_comment, payment_reference, pre_approval_ref, reviewed_at,
	settled_at, updated_by, active, version, created_at, updated_at`

// ClaimRepository handles claim database operations
type ClaimRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *database.DB, logger *zap.Logger) *ClaimRepository {
	return &ClaimRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new claim
func (r *ClaimRepository) Create(ctx context.Context, claim *entity.Claim) error {
	query := `
		INSERT INTO claims (
			claim_number, member_id, policy_id, provider_name, claim_type,
			status, service_date, requested_amount, approved_amount,
			patient_co_pay, net_provider_amount, co_pay_percent,
			deductible_applied, difference_amount, reviewer_comment,
			payment_reference, pre_approval_ref, reviewed_at, settled_at,
			updated_by, active, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		claim.ClaimNumber,
		claim.MemberID,
		claim.PolicyID,
		claim.ProviderName,
		claim.ClaimType,
		claim.Status,
		claim.ServiceDate,
		claim.RequestedAmount,
		claim.ApprovedAmount,
		claim.PatientCoPay,
		claim.NetProviderAmount,
		claim.CoPayPercent,
		claim.DeductibleApplied,
		claim.DifferenceAmount,
		claim.ReviewerComment,
		claim.PaymentReference,
		claim.PreApprovalRef,
		claim.ReviewedAt,
		claim.SettledAt,
		claim.UpdatedBy,
		claim.Active,
		claim.Version,
		claim.CreatedAt,
		claim.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create claim", zap.Error(err))
		return fmt.Errorf("failed to create claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	claim.ID = id
	return nil
}

// GetByID retrieves a claim by ID
func (r *ClaimRepository) GetByID(ctx context.Context, id int64) (*entity.Claim, error) {
	query := `SELECT` + claimColumns + ` FROM claims WHERE id = ?`

	claim, err := scanClaim(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return claim, nil
}

// Update persists the claim with an optimistic version check. The row is
// matched on (id, version); a stale version updates no rows and yields
// ErrVersionConflict.
func (r *ClaimRepository) Update(ctx context.Context, claim *entity.Claim) error {
	query := `
		UPDATE claims SET
			status = ?, approved_amount = ?, patient_co_pay = ?,
			net_provider_amount = ?, co_pay_percent = ?, deductible_applied = ?,
			difference_amount = ?, reviewer_comment = ?, payment_reference = ?,
			reviewed_at = ?, settled_at = ?, updated_by = ?, active = ?,
			version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		claim.Status,
		claim.ApprovedAmount,
		claim.PatientCoPay,
		claim.NetProviderAmount,
		claim.CoPayPercent,
		claim.DeductibleApplied,
		claim.DifferenceAmount,
		claim.ReviewerComment,
		claim.PaymentReference,
		claim.ReviewedAt,
		claim.SettledAt,
		claim.UpdatedBy,
		claim.Active,
		claim.UpdatedAt,
		claim.ID,
		claim.Version,
	)
	if err != nil {
		r.logger.Error("Failed to update claim", zap.Error(err), zap.Int64("id", claim.ID))
		return fmt.Errorf("failed to update claim: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return port.ErrVersionConflict
	}

	claim.Version++
	return nil
}

// ListByMember returns a member's claims, newest first
func (r *ClaimRepository) ListByMember(ctx context.Context, memberID int64, limit, offset int) ([]*entity.Claim, error) {
	query := `SELECT` + claimColumns + `
		FROM claims
		WHERE member_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	return collectClaims(rows)
}

// ListApprovedByMemberYear returns the member's adjudicated claims for a
// calendar year. Both APPROVED and SETTLED claims count toward the member's
// accumulated totals.
func (r *ClaimRepository) ListApprovedByMemberYear(ctx context.Context, memberID int64, year int) ([]*entity.Claim, error) {
	query := `SELECT` + claimColumns + `
		FROM claims
		WHERE member_id = ?
		  AND status IN (?, ?)
		  AND CAST(strftime('%Y', service_date) AS INTEGER) = ?
		ORDER BY service_date ASC`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query,
		memberID, entity.StatusApproved, entity.StatusSettled, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjudicated claims: %w", err)
	}
	defer rows.Close()

	return collectClaims(rows)
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClaim(row rowScanner) (*entity.Claim, error) {
	var claim entity.Claim
	var reviewedAt, settledAt sql.NullTime

	err := row.Scan(
		&claim.ID,
		&claim.ClaimNumber,
		&claim.MemberID,
		&claim.PolicyID,
		&claim.ProviderName,
		&claim.ClaimType,
		&claim.Status,
		&claim.ServiceDate,
		&claim.RequestedAmount,
		&claim.ApprovedAmount,
		&claim.PatientCoPay,
		&claim.NetProviderAmount,
		&claim.CoPayPercent,
		&claim.DeductibleApplied,
		&claim.DifferenceAmount,
		&claim.ReviewerComment,
		&claim.PaymentReference,
		&claim.PreApprovalRef,
		&reviewedAt,
		&settledAt,
		&claim.UpdatedBy,
		&claim.Active,
		&claim.Version,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reviewedAt.Valid {
		claim.ReviewedAt = &reviewedAt.Time
	}
	if settledAt.Valid {
		claim.SettledAt = &settledAt.Time
	}
	return &claim, nil
}

func collectClaims(rows *sql.Rows) ([]*entity.Claim, error) {
	var claims []*entity.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, claim)
	}
	return claims, rows.Err()
}

// Verify interface compliance
var _ port.ClaimRepository = (*ClaimRepository)(nil)
