package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/costing"
	"github.com/clearbenefit/claims-engine/internal/domain/eligibility"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/pkg/utils"
)

// CheckInput identifies whose eligibility to evaluate and for when
type CheckInput struct {
	MemberID     int64
	ServiceDate  time.Time
	PolicyID     int64 // 0 resolves the member's active policy
	ProviderName string
}

// CheckResult is the verdict returned to the caller, mirroring the persisted
// audit record
type CheckResult struct {
	RequestID      string               `json:"request_id"`
	Eligible       bool                 `json:"eligible"`
	Reasons        []eligibility.Reason `json:"reasons"`
	RulesEvaluated int                  `json:"rules_evaluated"`
	ElapsedMs      int64                `json:"elapsed_ms"`
}

// EligibilityService evaluates the rule chain against a member and records
// every evaluation, eligible or not.
type EligibilityService interface {
	Check(ctx context.Context, in CheckInput) (*CheckResult, error)
}

type eligibilityServiceImpl struct {
	chain       *eligibility.Chain
	directory   port.MemberDirectory
	checkRepo   port.EligibilityCheckRepository
	accumulator costing.Accumulator
	logger      Logger
}

// NewEligibilityService creates a new EligibilityService
func NewEligibilityService(
	chain *eligibility.Chain,
	directory port.MemberDirectory,
	checkRepo port.EligibilityCheckRepository,
	accumulator costing.Accumulator,
	logger Logger,
) EligibilityService {
	return &eligibilityServiceImpl{
		chain:       chain,
		directory:   directory,
		checkRepo:   checkRepo,
		accumulator: accumulator,
		logger:      logger,
	}
}

// Check runs the eligibility rule chain for the member on the service date.
// Master data that cannot be loaded is passed to the chain as nil and denied
// by the corresponding hard rule, so exactly one audit record is written per
// call regardless of the verdict.
func (s *eligibilityServiceImpl) Check(ctx context.Context, in CheckInput) (*CheckResult, error) {
	if err := utils.ValidateServiceDate(in.ServiceDate); err != nil {
		return nil, &ValidationError{Field: "service_date", Message: err.Error()}
	}

	ec := &eligibility.Context{
		MemberID:    in.MemberID,
		ServiceDate: in.ServiceDate,
	}

	member, err := s.directory.GetMember(ctx, in.MemberID)
	switch {
	case err == nil:
		ec.Member = member
	case errors.Is(err, port.ErrNotFound):
		s.logger.Warn("Member not found for eligibility check", "member_id", in.MemberID)
	default:
		return nil, fmt.Errorf("lookup member: %w", err)
	}

	policy, err := s.lookupPolicy(ctx, in)
	if err != nil {
		return nil, err
	}
	ec.Policy = policy

	if in.ProviderName != "" {
		provider, err := s.directory.GetProviderByName(ctx, in.ProviderName)
		switch {
		case err == nil:
			ec.Provider = provider
		case errors.Is(err, port.ErrNotFound):
			s.logger.Warn("Provider not found for eligibility check", "provider", in.ProviderName)
		default:
			return nil, fmt.Errorf("lookup provider: %w", err)
		}
	}

	totals, err := s.accumulator.YearToDate(ctx, in.MemberID, in.ServiceDate.Year())
	if err != nil {
		// The annual-limit rule is soft; a failed accumulation must not turn
		// into a hard denial.
		s.logger.Warn("Failed to accumulate year-to-date spend", "error", err, "member_id", in.MemberID)
	} else {
		ec.YTDApproved = totals.ApprovedAmount
	}

	verdict := s.chain.Evaluate(ctx, ec)

	check := &entity.EligibilityCheck{
		RequestID:      fmt.Sprintf("ELG-%d", time.Now().UnixNano()),
		MemberID:       in.MemberID,
		ServiceDate:    in.ServiceDate,
		Eligible:       verdict.Eligible,
		RulesEvaluated: verdict.RulesEvaluated,
		ElapsedMs:      verdict.Elapsed.Milliseconds(),
		CreatedAt:      time.Now(),
	}
	if reasons, err := json.Marshal(verdict.Reasons); err == nil {
		check.Reasons = string(reasons)
	}
	if ec.Member != nil {
		check.MemberNumber = ec.Member.MemberNumber
		check.MemberName = ec.Member.FullName
	}
	if ec.Policy != nil {
		check.PolicyID = ec.Policy.ID
		check.PolicyNumber = ec.Policy.PolicyNumber
		check.PlanName = ec.Policy.PlanName
	}

	if err := s.checkRepo.Create(ctx, check); err != nil {
		s.logger.Error("Failed to persist eligibility check", "error", err, "request_id", check.RequestID)
		return nil, fmt.Errorf("persist eligibility check: %w", err)
	}

	s.logger.Info("Eligibility evaluated",
		"request_id", check.RequestID,
		"member_id", in.MemberID,
		"eligible", verdict.Eligible,
		"rules_evaluated", verdict.RulesEvaluated)

	return &CheckResult{
		RequestID:      check.RequestID,
		Eligible:       verdict.Eligible,
		Reasons:        verdict.Reasons,
		RulesEvaluated: verdict.RulesEvaluated,
		ElapsedMs:      check.ElapsedMs,
	}, nil
}

func (s *eligibilityServiceImpl) lookupPolicy(ctx context.Context, in CheckInput) (*entity.BenefitPolicy, error) {
	var (
		policy *entity.BenefitPolicy
		err    error
	)
	if in.PolicyID != 0 {
		policy, err = s.directory.GetPolicy(ctx, in.PolicyID)
	} else {
		policy, err = s.directory.GetActivePolicy(ctx, in.MemberID, in.ServiceDate)
	}
	switch {
	case err == nil:
		return policy, nil
	case errors.Is(err, port.ErrNotFound):
		// The policy-exists hard rule produces the denial.
		return nil, nil
	default:
		return nil, fmt.Errorf("lookup policy: %w", err)
	}
}
