package entity

import "time"

// Member represents an enrolled plan member. Member master data is owned by
// an external system; this is the projection the adjudication core reads.
type Member struct {
	ID           int64     `json:"id"`
	MemberNumber string    `json:"member_number"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email,omitempty"`
	Active       bool      `json:"active"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// BenefitPolicy is the coverage contract governing what is payable for a
// member, its cost-sharing parameters and its effective window.
type BenefitPolicy struct {
	ID                  int64      `json:"id"`
	MemberID            int64      `json:"member_id"`
	PolicyNumber        string     `json:"policy_number"`
	PlanName            string     `json:"plan_name"`
	AnnualDeductible    float64    `json:"annual_deductible"`
	CoPayPercent        float64    `json:"co_pay_percent"`
	OutOfNetworkPenalty float64    `json:"out_of_network_penalty"`
	OutOfPocketMax      float64    `json:"out_of_pocket_max"`
	AnnualLimit         float64    `json:"annual_limit"`
	WaitingPeriodDays   int        `json:"waiting_period_days"`
	EffectiveFrom       time.Time  `json:"effective_from"`
	EffectiveTo         *time.Time `json:"effective_to,omitempty"`
	Active              bool       `json:"active"`
}

// InForceOn reports whether the policy covers the given service date.
func (p *BenefitPolicy) InForceOn(serviceDate time.Time) bool {
	if serviceDate.Before(p.EffectiveFrom) {
		return false
	}
	if p.EffectiveTo != nil && serviceDate.After(*p.EffectiveTo) {
		return false
	}
	return true
}

// Provider represents a care provider as known to the network registry.
type Provider struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	NetworkStatus string `json:"network_status"`
	Active        bool   `json:"active"`
}

// InNetwork reports whether the provider is contracted in-network.
func (p *Provider) InNetwork() bool {
	return p.NetworkStatus == NetworkIn
}
