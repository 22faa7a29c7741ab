package entity

// Status constants for Claim
const (
	StatusDraft           = "DRAFT"
	StatusSubmitted       = "SUBMITTED"
	StatusUnderReview     = "UNDER_REVIEW"
	StatusApproved        = "APPROVED"
	StatusRejected        = "REJECTED"
	StatusReturnedForInfo = "RETURNED_FOR_INFO"
	StatusSettled         = "SETTLED"
)

// Role constants. RoleAdmin is authorized for every transition.
const (
	RoleAdmin           = "ADMIN"
	RoleMember          = "MEMBER"
	RoleClaimsOfficer   = "CLAIMS_OFFICER"
	RoleMedicalReviewer = "MEDICAL_REVIEWER"
	RoleFinanceOfficer  = "FINANCE_OFFICER"
)

// Claim type constants
const (
	ClaimTypeOutpatient = "OUTPATIENT"
	ClaimTypeInpatient  = "INPATIENT"
	ClaimTypePharmacy   = "PHARMACY"
	ClaimTypeDental     = "DENTAL"
	ClaimTypeOptical    = "OPTICAL"
)

// Audit action constants
const (
	ActionCreate       = "CREATE"
	ActionSubmit       = "SUBMIT"
	ActionStatusChange = "STATUS_CHANGE"
	ActionApprove      = "APPROVE"
	ActionReject       = "REJECT"
	ActionSettle       = "SETTLE"
	ActionDeactivate   = "DEACTIVATE"
)

// Network classification constants
const (
	NetworkIn  = "IN_NETWORK"
	NetworkOut = "OUT_OF_NETWORK"
)
