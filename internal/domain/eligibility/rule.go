package eligibility

import (
	"context"
	"time"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

// Context carries everything a rule may inspect. Lookups happen before the
// chain runs; rules themselves are pure and do no I/O. Missing master data is
// represented by nil fields and handled by the rules, so that one chain run
// always produces a verdict.
type Context struct {
	MemberID    int64
	ServiceDate time.Time
	Member      *entity.Member
	Policy      *entity.BenefitPolicy
	Provider    *entity.Provider

	// YTDApproved is the member's approved spend in the service-date year,
	// supplied by the caller for the annual-limit rule.
	YTDApproved float64
}

// RuleResult is the outcome of one rule evaluation
type RuleResult struct {
	Passed  bool
	Message string
}

// Rule is one eligibility check. Rules are registered in a Chain with an
// explicit priority; lower priorities run first. A hard rule failure stops
// the chain and denies eligibility, a soft failure is recorded and evaluation
// continues.
type Rule interface {
	Code() string
	Priority() int
	Hard() bool
	Evaluate(ctx context.Context, ec *Context) RuleResult
}

// Reason records one rule's verdict in the order it was evaluated
type Reason struct {
	RuleCode string `json:"rule_code"`
	Passed   bool   `json:"passed"`
	Hard     bool   `json:"hard"`
	Message  string `json:"message"`
}

// Result is the aggregate verdict of one chain evaluation
type Result struct {
	Eligible       bool
	Reasons        []Reason
	RulesEvaluated int
	Elapsed        time.Duration
}
