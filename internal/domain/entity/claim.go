package entity

import "time"

// Claim represents a medical insurance claim moving through the adjudication
// lifecycle. Claims are never hard-deleted; Active is flipped off instead.
type Claim struct {
	ID                int64      `json:"id"`
	ClaimNumber       string     `json:"claim_number"`
	MemberID          int64      `json:"member_id"`
	PolicyID          int64      `json:"policy_id"`
	ProviderName      string     `json:"provider_name"`
	ClaimType         string     `json:"claim_type"`
	Status            string     `json:"status"`
	ServiceDate       time.Time  `json:"service_date"`
	RequestedAmount   float64    `json:"requested_amount"`
	ApprovedAmount    float64    `json:"approved_amount"`
	PatientCoPay      float64    `json:"patient_co_pay"`
	NetProviderAmount float64    `json:"net_provider_amount"`
	CoPayPercent      float64    `json:"co_pay_percent"`
	DeductibleApplied float64    `json:"deductible_applied"`
	DifferenceAmount  float64    `json:"difference_amount"`
	ReviewerComment   string     `json:"reviewer_comment,omitempty"`
	PaymentReference  string     `json:"payment_reference,omitempty"`
	PreApprovalRef    string     `json:"pre_approval_ref,omitempty"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	SettledAt         *time.Time `json:"settled_at,omitempty"`
	UpdatedBy         string     `json:"updated_by,omitempty"`
	Active            bool       `json:"active"`
	Version           int64      `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ClaimLine represents a single billed service on a claim.
type ClaimLine struct {
	ID          int64     `json:"id"`
	ClaimID     int64     `json:"claim_id"`
	ServiceCode string    `json:"service_code"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}
