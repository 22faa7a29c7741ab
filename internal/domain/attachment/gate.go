package attachment

import (
	"context"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/internal/domain/workflow"
)

// Requirements declares the document categories a claim type needs before
// submission
type Requirements struct {
	Required         []Category
	Optional         []Category
	NeedsPreApproval bool
}

// requirementsByClaimType is the per-claim-type requirement table. Inpatient
// and optical claims additionally require a linked pre-approval.
var requirementsByClaimType = map[string]Requirements{
	entity.ClaimTypeOutpatient: {
		Required: []Category{CategoryMedicalReport, CategoryItemizedBill},
		Optional: []Category{CategoryReferralLetter, CategoryReceipt},
	},
	entity.ClaimTypeInpatient: {
		Required:         []Category{CategoryMedicalReport, CategoryItemizedBill},
		Optional:         []Category{CategoryReferralLetter, CategoryIDDocument},
		NeedsPreApproval: true,
	},
	entity.ClaimTypePharmacy: {
		Required: []Category{CategoryPrescription, CategoryReceipt},
		Optional: []Category{CategoryItemizedBill},
	},
	entity.ClaimTypeDental: {
		Required: []Category{CategoryItemizedBill},
		Optional: []Category{CategoryMedicalReport, CategoryReceipt},
	},
	entity.ClaimTypeOptical: {
		Required:         []Category{CategoryPrescription, CategoryItemizedBill},
		Optional:         []Category{CategoryReceipt},
		NeedsPreApproval: true,
	},
}

// RequirementsFor returns the requirement set for a claim type
func RequirementsFor(claimType string) (Requirements, bool) {
	req, ok := requirementsByClaimType[claimType]
	return req, ok
}

// Result is the outcome of one submission-attempt validation. Missing
// required categories block submission; missing optional ones are warnings.
type Result struct {
	Valid           bool       `json:"valid"`
	MissingRequired []Category `json:"missing_required"`
	MissingOptional []Category `json:"missing_optional"`
	Present         []Category `json:"present"`
}

// Gate checks submitted documents against per-claim-type requirements
type Gate struct {
	classifier Classifier
}

// NewGate creates an attachment sufficiency gate using the given classifier
func NewGate(classifier Classifier) *Gate {
	return &Gate{classifier: classifier}
}

// ValidateForSubmission classifies the submitted attachments and checks them
// against the claim type's requirements. At least one attachment is always
// required. A claim type that demands pre-approval fails unless the claim
// links a pre-approval reference or a PRE_APPROVAL document is present.
func (g *Gate) ValidateForSubmission(ctx context.Context, claim *entity.Claim, claimType string, files []*entity.Attachment) Result {
	req, ok := RequirementsFor(claimType)
	if !ok {
		// Unknown claim types fall back to the baseline requirement of at
		// least one attachment of any category.
		req = Requirements{}
	}

	present := map[Category]bool{}
	result := Result{MissingRequired: []Category{}, MissingOptional: []Category{}, Present: []Category{}}

	for _, f := range files {
		category := g.classifier.Classify(ctx, f)
		f.Category = string(category)
		if !present[category] {
			present[category] = true
			result.Present = append(result.Present, category)
		}
	}

	for _, c := range req.Required {
		if !present[c] {
			result.MissingRequired = append(result.MissingRequired, c)
		}
	}
	for _, c := range req.Optional {
		if !present[c] {
			result.MissingOptional = append(result.MissingOptional, c)
		}
	}

	if req.NeedsPreApproval && claim.PreApprovalRef == "" && !present[CategoryPreApproval] {
		result.MissingRequired = append(result.MissingRequired, CategoryPreApproval)
	}

	result.Valid = len(files) > 0 && len(result.MissingRequired) == 0
	return result
}

// CanTransitionTo is the boolean convenience wrapper around the gate: it
// only guards the SUBMITTED target and is a no-op (true) for anything else.
func (g *Gate) CanTransitionTo(ctx context.Context, claim *entity.Claim, target workflow.Status, claimType string, files []*entity.Attachment) bool {
	if target != workflow.StatusSubmitted {
		return true
	}
	return g.ValidateForSubmission(ctx, claim, claimType, files).Valid
}
