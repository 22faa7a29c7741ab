package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/attachment"
	"github.com/clearbenefit/claims-engine/internal/domain/costing"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/internal/domain/workflow"
	"github.com/clearbenefit/claims-engine/pkg/utils"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// AttachmentError reports an insufficient attachment set at submission time.
// It carries the full gate result so callers can render the missing
// categories.
type AttachmentError struct {
	Result attachment.Result
}

func (e *AttachmentError) Error() string {
	missing := make([]string, 0, len(e.Result.MissingRequired))
	for _, c := range e.Result.MissingRequired {
		missing = append(missing, string(c))
	}
	return fmt.Sprintf("insufficient attachments: missing required categories [%s]", strings.Join(missing, ", "))
}

// ClaimLineInput is one billed service on a new claim
type ClaimLineInput struct {
	ServiceCode string
	Description string
	Quantity    int
	UnitPrice   float64
}

// AttachmentInput is one document submitted with a new claim
type AttachmentInput struct {
	FileName    string
	FilePath    string
	ContentType string
	FileSize    int64
}

// CreateClaimInput carries everything needed to open a claim in DRAFT
type CreateClaimInput struct {
	MemberID        int64
	PolicyID        int64 // 0 resolves the member's active policy
	ClaimType       string
	ProviderName    string
	ServiceDate     time.Time
	RequestedAmount float64
	PreApprovalRef  string
	Lines           []ClaimLineInput
	Attachments     []AttachmentInput
}

// ClaimService owns the claim lifecycle: creation, submission, review
// decisions and settlement. Every mutating operation executes in one atomic
// unit of work and appends exactly one audit entry.
type ClaimService interface {
	CreateClaim(ctx context.Context, in CreateClaimInput, actor workflow.Actor) (*entity.Claim, error)
	GetClaim(ctx context.Context, claimID int64) (*entity.Claim, error)
	ListClaims(ctx context.Context, memberID int64, limit, offset int) ([]*entity.Claim, error)
	SubmitClaim(ctx context.Context, claimID int64, actor workflow.Actor) (*entity.Claim, error)
	TransitionStatus(ctx context.Context, claimID int64, target workflow.Status, comment string, actor workflow.Actor) (*entity.Claim, error)
	ApproveClaim(ctx context.Context, claimID int64, approvedAmount float64, useSystemCalculation bool, notes string, actor workflow.Actor) (*entity.Claim, error)
	RejectClaim(ctx context.Context, claimID int64, reason string, actor workflow.Actor) (*entity.Claim, error)
	SettleClaim(ctx context.Context, claimID int64, paymentReference, notes string, actor workflow.Actor) (*entity.Claim, error)
	DeactivateClaim(ctx context.Context, claimID int64, actor workflow.Actor) error
	AvailableTransitions(ctx context.Context, claimID int64, actor workflow.Actor) ([]workflow.Status, error)
	CanEdit(ctx context.Context, claimID int64) (bool, error)
	CostBreakdown(ctx context.Context, claimID int64) (*costing.Breakdown, error)
	AuditHistory(ctx context.Context, claimID int64) ([]*entity.AuditLogEntry, error)
}

type claimServiceImpl struct {
	claimRepo      port.ClaimRepository
	lineRepo       port.ClaimLineRepository
	attachmentRepo port.AttachmentRepository
	auditRepo      port.AuditRepository
	directory      port.MemberDirectory
	txManager      port.TransactionManager
	machine        *workflow.Machine
	gate           *attachment.Gate
	engine         *costing.Engine
	accumulator    costing.Accumulator
	notifier       port.DecisionNotifier
	logger         Logger
}

// NewClaimService creates a new ClaimService
func NewClaimService(
	claimRepo port.ClaimRepository,
	lineRepo port.ClaimLineRepository,
	attachmentRepo port.AttachmentRepository,
	auditRepo port.AuditRepository,
	directory port.MemberDirectory,
	txManager port.TransactionManager,
	gate *attachment.Gate,
	engine *costing.Engine,
	accumulator costing.Accumulator,
	notifier port.DecisionNotifier,
	logger Logger,
) ClaimService {
	return &claimServiceImpl{
		claimRepo:      claimRepo,
		lineRepo:       lineRepo,
		attachmentRepo: attachmentRepo,
		auditRepo:      auditRepo,
		directory:      directory,
		txManager:      txManager,
		machine:        NewClaimStateMachine(),
		gate:           gate,
		engine:         engine,
		accumulator:    accumulator,
		notifier:       notifier,
		logger:         logger,
	}
}

// CreateClaim validates the inputs and opens a claim in DRAFT
func (s *claimServiceImpl) CreateClaim(ctx context.Context, in CreateClaimInput, actor workflow.Actor) (*entity.Claim, error) {
	if err := utils.ValidateAmount(in.RequestedAmount); err != nil {
		return nil, &ValidationError{Field: "requested_amount", Message: err.Error()}
	}
	if err := utils.ValidateServiceDate(in.ServiceDate); err != nil {
		return nil, &ValidationError{Field: "service_date", Message: err.Error()}
	}
	if strings.TrimSpace(in.ProviderName) == "" {
		return nil, &ValidationError{Field: "provider_name", Message: "provider name is required"}
	}
	if _, ok := attachment.RequirementsFor(in.ClaimType); !ok {
		return nil, &ValidationError{Field: "claim_type", Message: fmt.Sprintf("unknown claim type %q", in.ClaimType)}
	}

	member, err := s.directory.GetMember(ctx, in.MemberID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, &NotFoundError{Entity: "member", ID: in.MemberID}
		}
		return nil, fmt.Errorf("lookup member: %w", err)
	}

	policy, err := s.resolvePolicy(ctx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	claim := &entity.Claim{
		ClaimNumber:     fmt.Sprintf("CLM-%s-%06d", now.Format("20060102"), now.UnixNano()%1000000),
		MemberID:        member.ID,
		PolicyID:        policy.ID,
		ProviderName:    in.ProviderName,
		ClaimType:       in.ClaimType,
		Status:          entity.StatusDraft,
		ServiceDate:     in.ServiceDate,
		RequestedAmount: costing.Round2(in.RequestedAmount),
		PreApprovalRef:  in.PreApprovalRef,
		UpdatedBy:       actor.ID,
		Active:          true,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.Create(txCtx, claim); err != nil {
			return fmt.Errorf("create claim: %w", err)
		}
		for _, l := range in.Lines {
			line := &entity.ClaimLine{
				ClaimID:     claim.ID,
				ServiceCode: l.ServiceCode,
				Description: l.Description,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
				Amount:      costing.Round2(float64(l.Quantity) * l.UnitPrice),
				CreatedAt:   now,
			}
			if err := s.lineRepo.Create(txCtx, line); err != nil {
				return fmt.Errorf("create claim line: %w", err)
			}
		}
		for _, a := range in.Attachments {
			att := &entity.Attachment{
				ClaimID:     claim.ID,
				FileName:    a.FileName,
				FilePath:    a.FilePath,
				ContentType: a.ContentType,
				FileSize:    a.FileSize,
				CreatedAt:   now,
			}
			if err := s.attachmentRepo.Create(txCtx, att); err != nil {
				return fmt.Errorf("create attachment: %w", err)
			}
		}
		return s.appendAudit(txCtx, claim, entity.ActionCreate, "", "claim created", actor)
	})
	if err != nil {
		s.logger.Error("Failed to create claim", "error", err, "member_id", in.MemberID)
		return nil, err
	}

	s.logger.Info("Claim created", "claim_id", claim.ID, "claim_number", claim.ClaimNumber, "member_id", member.ID)
	return claim, nil
}

// GetClaim retrieves a claim by ID
func (s *claimServiceImpl) GetClaim(ctx context.Context, claimID int64) (*entity.Claim, error) {
	return s.loadClaim(ctx, claimID)
}

// ListClaims lists a member's claims with pagination
func (s *claimServiceImpl) ListClaims(ctx context.Context, memberID int64, limit, offset int) ([]*entity.Claim, error) {
	claims, err := s.claimRepo.ListByMember(ctx, memberID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list claims", "error", err, "member_id", memberID)
		return nil, err
	}
	return claims, nil
}

// SubmitClaim runs the attachment sufficiency gate and moves the claim to
// SUBMITTED. Classifier verdicts are written back onto the attachments.
func (s *claimServiceImpl) SubmitClaim(ctx context.Context, claimID int64, actor workflow.Actor) (*entity.Claim, error) {
	claim, err := s.loadActiveClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	files, err := s.attachmentRepo.GetByClaimID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("load attachments: %w", err)
	}

	result := s.gate.ValidateForSubmission(ctx, claim, claim.ClaimType, files)
	if !result.Valid {
		s.logger.Info("Submission blocked by attachment gate",
			"claim_id", claimID, "missing_required", result.MissingRequired)
		return nil, &AttachmentError{Result: result}
	}
	for _, c := range result.MissingOptional {
		s.logger.Warn("Optional attachment category missing", "claim_id", claimID, "category", c)
	}

	prev := claim.Status
	if err := s.machine.Transition(ctx, claim, workflow.StatusSubmitted, actor); err != nil {
		return nil, err
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.Update(txCtx, claim); err != nil {
			return err
		}
		for _, f := range files {
			if err := s.attachmentRepo.UpdateCategory(txCtx, f.ID, f.Category); err != nil {
				return fmt.Errorf("update attachment category: %w", err)
			}
		}
		return s.appendAudit(txCtx, claim, entity.ActionSubmit, prev, "claim submitted", actor)
	})
	if err != nil {
		s.logger.Error("Failed to submit claim", "error", err, "claim_id", claimID)
		return nil, err
	}

	s.logger.Info("Claim submitted", "claim_id", claimID)
	return claim, nil
}

// TransitionStatus performs a generic validated transition. Submission
// targets still pass through the attachment gate, so the generic path can
// never bypass it.
func (s *claimServiceImpl) TransitionStatus(ctx context.Context, claimID int64, target workflow.Status, comment string, actor workflow.Actor) (*entity.Claim, error) {
	if target == workflow.StatusSubmitted {
		return s.SubmitClaim(ctx, claimID, actor)
	}

	claim, err := s.loadActiveClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	if comment != "" {
		claim.ReviewerComment = comment
	}

	prev := claim.Status
	if err := s.machine.Transition(ctx, claim, target, actor); err != nil {
		return nil, err
	}
	if claim.Status == prev {
		// Permitted self-transition: nothing changed, nothing to audit.
		return claim, nil
	}

	action := actionForTarget(target)
	if err := s.commit(ctx, claim, action, prev, comment, actor); err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, claim, action, comment)
	return claim, nil
}

// ApproveClaim adjudicates the claim: it runs the cost engine, copies the
// breakdown onto the claim, enforces the financial invariant and transitions
// to APPROVED. Passing useSystemCalculation approves the engine's insurer
// amount.
func (s *claimServiceImpl) ApproveClaim(ctx context.Context, claimID int64, approvedAmount float64, useSystemCalculation bool, notes string, actor workflow.Actor) (*entity.Claim, error) {
	claim, err := s.loadActiveClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	bd, err := s.breakdownFor(ctx, claim)
	if err != nil {
		return nil, err
	}

	amount := costing.Round2(approvedAmount)
	if useSystemCalculation {
		amount = bd.InsurerAmount
	}
	if amount <= 0 {
		return nil, &BusinessRuleError{
			Rule:    "approved_amount_required",
			Message: "approved amount must be positive",
		}
	}
	if amount > claim.RequestedAmount {
		return nil, &BusinessRuleError{
			Rule:    "approved_amount_exceeds_requested",
			Message: fmt.Sprintf("approved amount %.2f exceeds requested amount %.2f", amount, claim.RequestedAmount),
		}
	}

	claim.ApprovedAmount = amount
	claim.PatientCoPay = bd.PatientResponsibility
	claim.NetProviderAmount = bd.InsurerAmount
	claim.CoPayPercent = bd.CoPayPercent
	claim.DeductibleApplied = bd.DeductibleApplied
	claim.DifferenceAmount = costing.Round2(claim.RequestedAmount - amount)
	if notes != "" {
		claim.ReviewerComment = notes
	}

	// Financial invariant: the patient and insurer shares must reconstruct
	// the requested amount exactly.
	if costing.Round2(claim.PatientCoPay+claim.NetProviderAmount) != claim.RequestedAmount {
		return nil, fmt.Errorf("cost breakdown does not reconcile: %.2f + %.2f != %.2f",
			claim.PatientCoPay, claim.NetProviderAmount, claim.RequestedAmount)
	}

	prev := claim.Status
	if err := s.machine.Transition(ctx, claim, workflow.StatusApproved, actor); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, claim, entity.ActionApprove, prev, notes, actor); err != nil {
		return nil, err
	}

	s.logger.Info("Claim approved",
		"claim_id", claimID,
		"approved_amount", claim.ApprovedAmount,
		"patient_co_pay", claim.PatientCoPay,
		"net_provider_amount", claim.NetProviderAmount)
	s.notifyDecision(ctx, claim, entity.ActionApprove, notes)
	return claim, nil
}

// RejectClaim transitions the claim to REJECTED with a mandatory reason
func (s *claimServiceImpl) RejectClaim(ctx context.Context, claimID int64, reason string, actor workflow.Actor) (*entity.Claim, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, &BusinessRuleError{
			Rule:    "rejection_reason_required",
			Message: "rejection reason is required",
		}
	}
	if len(reason) < MinRejectReasonLength {
		return nil, &BusinessRuleError{
			Rule:    "rejection_reason_too_short",
			Message: fmt.Sprintf("rejection reason must be at least %d characters", MinRejectReasonLength),
		}
	}

	claim, err := s.loadActiveClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	claim.ReviewerComment = reason

	prev := claim.Status
	if err := s.machine.Transition(ctx, claim, workflow.StatusRejected, actor); err != nil {
		return nil, err
	}

	if err := s.commit(ctx, claim, entity.ActionReject, prev, reason, actor); err != nil {
		return nil, err
	}

	s.logger.Info("Claim rejected", "claim_id", claimID)
	s.notifyDecision(ctx, claim, entity.ActionReject, reason)
	return claim, nil
}

// SettleClaim records the payment reference and transitions to SETTLED
func (s *claimServiceImpl) SettleClaim(ctx context.Context, claimID int64, paymentReference, notes string, actor workflow.Actor) (*entity.Claim, error) {
	if err := utils.ValidatePaymentReference(paymentReference); err != nil {
		return nil, &ValidationError{Field: "payment_reference", Message: err.Error()}
	}

	claim, err := s.loadActiveClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	prev := claim.Status
	if err := s.machine.Transition(ctx, claim, workflow.StatusSettled, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	claim.PaymentReference = strings.TrimSpace(paymentReference)
	claim.SettledAt = &now

	if err := s.commit(ctx, claim, entity.ActionSettle, prev, notes, actor); err != nil {
		return nil, err
	}

	s.logger.Info("Claim settled", "claim_id", claimID, "payment_reference", claim.PaymentReference)
	s.notifyDecision(ctx, claim, entity.ActionSettle, notes)
	return claim, nil
}

// DeactivateClaim soft-deletes the claim; claims are never hard-deleted
func (s *claimServiceImpl) DeactivateClaim(ctx context.Context, claimID int64, actor workflow.Actor) error {
	claim, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return err
	}
	if !claim.Active {
		return nil
	}

	claim.Active = false
	claim.UpdatedBy = actor.ID

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.Update(txCtx, claim); err != nil {
			return err
		}
		return s.appendAudit(txCtx, claim, entity.ActionDeactivate, claim.Status, "claim deactivated", actor)
	})
	if err != nil {
		s.logger.Error("Failed to deactivate claim", "error", err, "claim_id", claimID)
		return err
	}

	s.logger.Info("Claim deactivated", "claim_id", claimID)
	return nil
}

// AvailableTransitions returns the targets the actor may transition the
// claim to from its current status
func (s *claimServiceImpl) AvailableTransitions(ctx context.Context, claimID int64, actor workflow.Actor) ([]workflow.Status, error) {
	claim, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	return s.machine.AvailableTransitions(claim, actor), nil
}

// CanEdit reports whether the claim's contents may still be modified
func (s *claimServiceImpl) CanEdit(ctx context.Context, claimID int64) (bool, error) {
	claim, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return false, err
	}
	return s.machine.CanEdit(claim), nil
}

// CostBreakdown computes the adjudication split for the claim as it stands.
// The calculation is pure; nothing is persisted.
func (s *claimServiceImpl) CostBreakdown(ctx context.Context, claimID int64) (*costing.Breakdown, error) {
	claim, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	return s.breakdownFor(ctx, claim)
}

// AuditHistory returns the claim's lifecycle events in append order
func (s *claimServiceImpl) AuditHistory(ctx context.Context, claimID int64) ([]*entity.AuditLogEntry, error) {
	if _, err := s.loadClaim(ctx, claimID); err != nil {
		return nil, err
	}
	return s.auditRepo.ListByClaimID(ctx, claimID)
}

func (s *claimServiceImpl) loadClaim(ctx context.Context, claimID int64) (*entity.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, &NotFoundError{Entity: "claim", ID: claimID}
		}
		return nil, fmt.Errorf("load claim: %w", err)
	}
	return claim, nil
}

func (s *claimServiceImpl) loadActiveClaim(ctx context.Context, claimID int64) (*entity.Claim, error) {
	claim, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !claim.Active {
		return nil, &BusinessRuleError{
			Rule:    "claim_inactive",
			Message: fmt.Sprintf("claim %d is deactivated", claimID),
		}
	}
	return claim, nil
}

func (s *claimServiceImpl) resolvePolicy(ctx context.Context, in CreateClaimInput) (*entity.BenefitPolicy, error) {
	if in.PolicyID != 0 {
		policy, err := s.directory.GetPolicy(ctx, in.PolicyID)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				return nil, &NotFoundError{Entity: "policy", ID: in.PolicyID}
			}
			return nil, fmt.Errorf("lookup policy: %w", err)
		}
		return policy, nil
	}
	policy, err := s.directory.GetActivePolicy(ctx, in.MemberID, in.ServiceDate)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, &BusinessRuleError{
				Rule:    "no_active_policy",
				Message: "member has no active benefit policy covering the service date",
			}
		}
		return nil, fmt.Errorf("lookup active policy: %w", err)
	}
	return policy, nil
}

// breakdownFor assembles the cost engine input from the claim, its policy
// and the member's year-to-date accumulations
func (s *claimServiceImpl) breakdownFor(ctx context.Context, claim *entity.Claim) (*costing.Breakdown, error) {
	policy, err := s.directory.GetPolicy(ctx, claim.PolicyID)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, &NotFoundError{Entity: "policy", ID: claim.PolicyID}
		}
		return nil, fmt.Errorf("lookup policy: %w", err)
	}

	// An unknown or out-of-network provider is a secondary finding: it is
	// logged and priced as out-of-network, never a blocking error.
	network := entity.NetworkOut
	provider, err := s.directory.GetProviderByName(ctx, claim.ProviderName)
	switch {
	case err == nil && provider.InNetwork():
		network = entity.NetworkIn
	case err == nil:
		s.logger.Warn("Provider is out of network", "claim_id", claim.ID, "provider", claim.ProviderName)
	case errors.Is(err, port.ErrNotFound):
		s.logger.Warn("Provider not found in network registry", "claim_id", claim.ID, "provider", claim.ProviderName)
	default:
		return nil, fmt.Errorf("lookup provider: %w", err)
	}

	totals, err := s.accumulator.YearToDate(ctx, claim.MemberID, claim.ServiceDate.Year())
	if err != nil {
		return nil, fmt.Errorf("accumulate year-to-date totals: %w", err)
	}

	bd := s.engine.Calculate(costing.Input{
		RequestedAmount:     claim.RequestedAmount,
		AnnualDeductible:    policy.AnnualDeductible,
		DeductibleMetYTD:    totals.DeductibleMet,
		CoPayPercent:        policy.CoPayPercent,
		OutOfNetworkPenalty: policy.OutOfNetworkPenalty,
		InNetwork:           network == entity.NetworkIn,
		OutOfPocketMax:      policy.OutOfPocketMax,
		OutOfPocketYTD:      totals.OutOfPocket,
		Network:             network,
	})
	return &bd, nil
}

// commit persists a transitioned claim and its audit entry in one unit of
// work
func (s *claimServiceImpl) commit(ctx context.Context, claim *entity.Claim, action, prevStatus, comment string, actor workflow.Actor) error {
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.Update(txCtx, claim); err != nil {
			return err
		}
		return s.appendAudit(txCtx, claim, action, prevStatus, comment, actor)
	})
	if err != nil {
		s.logger.Error("Failed to commit transition",
			"error", err, "claim_id", claim.ID, "action", action)
		return err
	}
	return nil
}

func (s *claimServiceImpl) appendAudit(ctx context.Context, claim *entity.Claim, action, prevStatus, comment string, actor workflow.Actor) error {
	entry := &entity.AuditLogEntry{
		ClaimID:        claim.ID,
		Action:         action,
		PreviousStatus: prevStatus,
		NewStatus:      claim.Status,
		ActorID:        actor.ID,
		Comment:        comment,
		Timestamp:      time.Now(),
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// notifyDecision notifies interested parties about a decision. Notification
// failures are logged and never block the decision.
func (s *claimServiceImpl) notifyDecision(ctx context.Context, claim *entity.Claim, action, comment string) {
	if s.notifier == nil {
		return
	}
	if action != entity.ActionApprove && action != entity.ActionReject && action != entity.ActionSettle {
		return
	}
	if err := s.notifier.NotifyDecision(ctx, claim, action, comment); err != nil {
		s.logger.Warn("Failed to send decision notification",
			"error", err, "claim_id", claim.ID, "action", action)
	}
}

// actionForTarget maps a transition target to its audit action kind
func actionForTarget(target workflow.Status) string {
	switch target {
	case workflow.StatusApproved:
		return entity.ActionApprove
	case workflow.StatusRejected:
		return entity.ActionReject
	case workflow.StatusSettled:
		return entity.ActionSettle
	default:
		return entity.ActionStatusChange
	}
}
