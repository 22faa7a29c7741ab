package entity

import "time"

// AuditLogEntry is an append-only record of a claim lifecycle event.
// Entries are never updated or deleted.
type AuditLogEntry struct {
	ID             int64     `json:"id"`
	ClaimID        int64     `json:"claim_id"`
	Action         string    `json:"action"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ActorID        string    `json:"actor_id"`
	Comment        string    `json:"comment,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// EligibilityCheck is the immutable audit record of one eligibility
// evaluation. It snapshots the member and policy as they were at check time
// so the verdict stays explainable after master data changes.
type EligibilityCheck struct {
	ID             int64     `json:"id"`
	RequestID      string    `json:"request_id"`
	MemberID       int64     `json:"member_id"`
	PolicyID       int64     `json:"policy_id,omitempty"`
	ServiceDate    time.Time `json:"service_date"`
	Eligible       bool      `json:"eligible"`
	Reasons        string    `json:"reasons"`
	MemberNumber   string    `json:"member_number,omitempty"`
	MemberName     string    `json:"member_name,omitempty"`
	PolicyNumber   string    `json:"policy_number,omitempty"`
	PlanName       string    `json:"plan_name,omitempty"`
	RulesEvaluated int       `json:"rules_evaluated"`
	ElapsedMs      int64     `json:"elapsed_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
