package workflow

import "github.com/clearbenefit/claims-engine/internal/domain/entity"

// Status represents a claim status in the adjudication lifecycle
type Status string

const (
	StatusDraft           Status = Status(entity.StatusDraft)
	StatusSubmitted       Status = Status(entity.StatusSubmitted)
	StatusUnderReview     Status = Status(entity.StatusUnderReview)
	StatusApproved        Status = Status(entity.StatusApproved)
	StatusRejected        Status = Status(entity.StatusRejected)
	StatusReturnedForInfo Status = Status(entity.StatusReturnedForInfo)
	StatusSettled         Status = Status(entity.StatusSettled)
)

var validStatuses = map[Status]bool{
	StatusDraft:           true,
	StatusSubmitted:       true,
	StatusUnderReview:     true,
	StatusApproved:        true,
	StatusRejected:        true,
	StatusReturnedForInfo: true,
	StatusSettled:         true,
}

// REJECTED and SETTLED are the only sink nodes of the status graph.
var terminalStatuses = map[Status]bool{
	StatusRejected: true,
	StatusSettled:  true,
}

// Statuses reached by a reviewer action; committing a transition into one of
// these stamps the claim's review timestamp.
var reviewerTargets = map[Status]bool{
	StatusUnderReview:     true,
	StatusApproved:        true,
	StatusRejected:        true,
	StatusReturnedForInfo: true,
}

// IsTerminal returns true if the status permits no further transitions
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsValid returns true if the status is a member of the closed enumeration
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// Actor is the resolved identity attempting a transition. Authentication is
// an external concern; actors arrive here already resolved.
type Actor struct {
	ID    string
	Roles []string
}

// HasRole returns true if the actor holds the given role
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
