package eligibility

import (
	"context"
	"fmt"
)

// Rule priorities. Identity and coverage baselines run before the
// purpose-specific checks; network classification comes last because its
// failure is advisory only.
const (
	priorityPolicyExists    = 10
	priorityPolicyInForce   = 20
	priorityMemberActive    = 30
	priorityWaitingPeriod   = 40
	priorityAnnualLimit     = 50
	priorityProviderNetwork = 60
)

// DefaultChain returns the production rule chain
func DefaultChain() *Chain {
	return NewChain(
		PolicyExistsRule{},
		PolicyInForceRule{},
		MemberActiveRule{},
		WaitingPeriodRule{},
		AnnualLimitRule{},
		ProviderNetworkRule{},
	)
}

// PolicyExistsRule fails hard when the member has no active benefit policy
type PolicyExistsRule struct{}

func (PolicyExistsRule) Code() string  { return "policy_exists" }
func (PolicyExistsRule) Priority() int { return priorityPolicyExists }
func (PolicyExistsRule) Hard() bool    { return true }

func (PolicyExistsRule) Evaluate(_ context.Context, ec *Context) RuleResult {
	if ec.Policy == nil || !ec.Policy.Active {
		return RuleResult{Passed: false, Message: "member has no active benefit policy"}
	}
	return RuleResult{Passed: true, Message: fmt.Sprintf("found active policy %s", ec.Policy.PolicyNumber)}
}

// PolicyInForceRule fails hard when the service date falls outside the
// policy's effective window
type PolicyInForceRule struct{}

func (PolicyInForceRule) Code() string  { return "policy_in_force" }
func (PolicyInForceRule) Priority() int { return priorityPolicyInForce }
func (PolicyInForceRule) Hard() bool    { return true }

func (PolicyInForceRule) Evaluate(_ context.Context, ec *Context) RuleResult {
	if ec.Policy == nil {
		return RuleResult{Passed: false, Message: "no policy to verify effective window against"}
	}
	if !ec.Policy.InForceOn(ec.ServiceDate) {
		return RuleResult{Passed: false, Message: fmt.Sprintf(
			"service date %s outside policy effective window", ec.ServiceDate.Format("2006-01-02"))}
	}
	return RuleResult{Passed: true, Message: "policy in force on service date"}
}

// MemberActiveRule fails hard when the member record is missing or inactive
type MemberActiveRule struct{}

func (MemberActiveRule) Code() string  { return "member_active" }
func (MemberActiveRule) Priority() int { return priorityMemberActive }
func (MemberActiveRule) Hard() bool    { return true }

func (MemberActiveRule) Evaluate(_ context.Context, ec *Context) RuleResult {
	if ec.Member == nil {
		return RuleResult{Passed: false, Message: fmt.Sprintf("member %d not found", ec.MemberID)}
	}
	if !ec.Member.Active {
		return RuleResult{Passed: false, Message: fmt.Sprintf("member %s is inactive", ec.Member.MemberNumber)}
	}
	return RuleResult{Passed: true, Message: "member is active"}
}

// WaitingPeriodRule fails hard when the service date falls inside the
// policy's waiting period
type WaitingPeriodRule struct{}

func (WaitingPeriodRule) Code() string  { return "waiting_period" }
func (WaitingPeriodRule) Priority() int { return priorityWaitingPeriod }
func (WaitingPeriodRule) Hard() bool    { return true }

func (WaitingPeriodRule) Evaluate(_ context.Context, ec *Context) RuleResult {
	if ec.Policy == nil {
		return RuleResult{Passed: false, Message: "no policy to verify waiting period against"}
	}
	if ec.Policy.WaitingPeriodDays <= 0 {
		return RuleResult{Passed: true, Message: "policy has no waiting period"}
	}
	coverageStart := ec.Policy.EffectiveFrom.AddDate(0, 0, ec.Policy.WaitingPeriodDays)
	if ec.ServiceDate.Before(coverageStart) {
		return RuleResult{Passed: false, Message: fmt.Sprintf(
			"service date inside %d-day waiting period (coverage starts %s)",
			ec.Policy.WaitingPeriodDays, coverageStart.Format("2006-01-02"))}
	}
	return RuleResult{Passed: true, Message: "waiting period has elapsed"}
}

// AnnualLimitRule is a soft check: year-to-date approved spend at or above
// the policy annual limit is flagged but does not deny eligibility, because
// the final amount is decided at adjudication.
type AnnualLimitRule struct{}

func (AnnualLimitRule) Code() string  { return "annual_limit" }
func (AnnualLimitRule) Priority() int { return priorityAnnualLimit }
func (AnnualLimitRule) Hard() bool    { return false }

func (AnnualLimitRule) Evaluate(_ context.Context, ec *Context) RuleResult {
	if ec.Policy == nil || ec.Policy.AnnualLimit <= 0 {
		return RuleResult{Passed: true, Message: "policy has no annual limit"}
	}
	if ec.YTDApproved >= ec.Policy.AnnualLimit {
		return RuleResult{Passed: false, Message: fmt.Sprintf(
			"year-to-date approved %.2f has reached the annual limit %.2f",
			ec.YTDApproved, ec.Policy.AnnualLimit)}
	}
	return RuleResult{Passed: true, Message: "annual limit not reached"}
}

// ProviderNetworkRule is a soft check: an out-of-network or unknown provider
// is recorded as a warning only; the cost engine applies the penalty.
type ProviderNetworkRule struct{}

func (ProviderNetworkRule) Code() string  { return "provider_network" }
func (ProviderNetworkRule) Priority() int { return priorityProviderNetwork }
func (ProviderNetworkRule) Hard() bool    { return false }

func (ProviderNetworkRule) Evaluate(_ context.Context, ec *Context) RuleResult {
	if ec.Provider == nil {
		return RuleResult{Passed: false, Message: "provider not found in network registry"}
	}
	if !ec.Provider.InNetwork() {
		return RuleResult{Passed: false, Message: fmt.Sprintf("provider %s is out of network", ec.Provider.Name)}
	}
	return RuleResult{Passed: true, Message: "provider is in network"}
}
