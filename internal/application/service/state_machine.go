package service

import (
	"context"
	"strings"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/internal/domain/workflow"
)

// MinRejectReasonLength is the shortest acceptable rejection reason
const MinRejectReasonLength = 10

// NewClaimStateMachine builds the claim lifecycle graph. Every edge, its
// authorized roles and its preconditions are declared here; the admin role
// is accepted on every edge by the machine itself.
func NewClaimStateMachine() *workflow.Machine {
	builder := workflow.NewBuilder()

	builder.Configure(workflow.StatusDraft).
		Permit(workflow.StatusSubmitted, entity.RoleMember, entity.RoleClaimsOfficer)

	builder.Configure(workflow.StatusSubmitted).
		Permit(workflow.StatusUnderReview, entity.RoleClaimsOfficer, entity.RoleMedicalReviewer)

	builder.Configure(workflow.StatusUnderReview).
		PermitIf(workflow.StatusApproved, approvedAmountPresent, entity.RoleMedicalReviewer).
		PermitIf(workflow.StatusRejected, reviewerCommentPresent, entity.RoleMedicalReviewer).
		Permit(workflow.StatusReturnedForInfo, entity.RoleClaimsOfficer, entity.RoleMedicalReviewer)

	builder.Configure(workflow.StatusReturnedForInfo).
		Permit(workflow.StatusSubmitted, entity.RoleMember, entity.RoleClaimsOfficer)

	builder.Configure(workflow.StatusApproved).
		PermitIf(workflow.StatusSettled, settleOnlyFromApproved, entity.RoleFinanceOfficer)

	// REJECTED and SETTLED are terminal; they have no outgoing edges.

	return builder.Build()
}

// approvedAmountPresent requires a positive approved amount to already be on
// the claim before it enters APPROVED
func approvedAmountPresent(_ context.Context, claim *entity.Claim) error {
	if claim.ApprovedAmount <= 0 {
		return &BusinessRuleError{
			Rule:    "approved_amount_required",
			Message: "cannot approve a claim without a positive approved amount",
		}
	}
	return nil
}

// reviewerCommentPresent requires a non-blank reviewer comment before a
// claim enters REJECTED
func reviewerCommentPresent(_ context.Context, claim *entity.Claim) error {
	if strings.TrimSpace(claim.ReviewerComment) == "" {
		return &BusinessRuleError{
			Rule:    "rejection_reason_required",
			Message: "cannot reject a claim without a reviewer comment",
		}
	}
	return nil
}

// settleOnlyFromApproved refuses settlement unless the claim is currently
// APPROVED
func settleOnlyFromApproved(_ context.Context, claim *entity.Claim) error {
	if claim.Status != entity.StatusApproved {
		return &BusinessRuleError{
			Rule:    "settle_requires_approval",
			Message: "only approved claims can be settled",
		}
	}
	return nil
}
