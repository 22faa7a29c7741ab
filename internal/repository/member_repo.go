package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/pkg/database"
	"go.uber.org/zap"
)

// MemberRepository reads member, policy and provider master data. It backs
// the MemberDirectory port; master data is written by an external enrollment
// system, so only lookups live here.
type MemberRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *database.DB, logger *zap.Logger) *MemberRepository {
	return &MemberRepository{
		db:     db,
		logger: logger,
	}
}

// GetMember retrieves a member by ID
func (r *MemberRepository) GetMember(ctx context.Context, id int64) (*entity.Member, error) {
	query := `
		SELECT id, member_number, full_name, email, active, enrolled_at
		FROM members
		WHERE id = ?
	`

	var member entity.Member
	var email sql.NullString

	err := r.db.Executor(ctx).QueryRowContext(ctx, query, id).Scan(
		&member.ID,
		&member.MemberNumber,
		&member.FullName,
		&email,
		&member.Active,
		&member.EnrolledAt,
	)
	if err == sql.ErrNoRows {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	member.Email = email.String
	return &member, nil
}

// GetPolicy retrieves a benefit policy by ID
func (r *MemberRepository) GetPolicy(ctx context.Context, id int64) (*entity.BenefitPolicy, error) {
	query := policyQuery + ` WHERE id = ?`

	policy, err := scanPolicy(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return policy, nil
}

// GetActivePolicy retrieves the member's active policy covering the service
// date. When several overlap, the most recently effective one wins.
func (r *MemberRepository) GetActivePolicy(ctx context.Context, memberID int64, serviceDate time.Time) (*entity.BenefitPolicy, error) {
	query := policyQuery + `
		WHERE member_id = ?
		  AND active = 1
		  AND effective_from <= ?
		  AND (effective_to IS NULL OR effective_to >= ?)
		ORDER BY effective_from DESC
		LIMIT 1`

	policy, err := scanPolicy(r.db.Executor(ctx).QueryRowContext(ctx, query, memberID, serviceDate, serviceDate))
	if err == sql.ErrNoRows {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active policy: %w", err)
	}
	return policy, nil
}

// GetProviderByName retrieves a provider from the network registry
func (r *MemberRepository) GetProviderByName(ctx context.Context, name string) (*entity.Provider, error) {
	query := `
		SELECT id, name, network_status, active
		FROM providers
		WHERE name = ?
	`

	var provider entity.Provider
	err := r.db.Executor(ctx).QueryRowContext(ctx, query, name).Scan(
		&provider.ID,
		&provider.Name,
		&provider.NetworkStatus,
		&provider.Active,
	)
	if err == sql.ErrNoRows {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}
	return &provider, nil
}

const policyQuery = `
	SELECT id, member_id, policy_number, plan_name, annual_deductible,
		co_pay_percent, out_of_network_penalty, out_of_pocket_max,
		annual_limit, waiting_period_days, effective_from, effective_to, active
	FROM benefit_policies`

func scanPolicy(row rowScanner) (*entity.BenefitPolicy, error) {
	var policy entity.BenefitPolicy
	var effectiveTo sql.NullTime

	err := row.Scan(
		&policy.ID,
		&policy.MemberID,
		&policy.PolicyNumber,
		&policy.PlanName,
		&policy.AnnualDeductible,
		&policy.CoPayPercent,
		&policy.OutOfNetworkPenalty,
		&policy.OutOfPocketMax,
		&policy.AnnualLimit,
		&policy.WaitingPeriodDays,
		&policy.EffectiveFrom,
		&effectiveTo,
		&policy.Active,
	)
	if err != nil {
		return nil, err
	}

	if effectiveTo.Valid {
		policy.EffectiveTo = &effectiveTo.Time
	}
	return &policy, nil
}

// Verify interface compliance
var _ port.MemberDirectory = (*MemberRepository)(nil)
