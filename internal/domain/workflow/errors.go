package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition is returned when the target is not a declared
	// outgoing edge of the current status
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrTerminalState is returned when transitioning out of a terminal status
	ErrTerminalState = errors.New("status is terminal")

	// ErrUnauthorizedRole is returned when the actor holds none of the roles
	// required for the edge
	ErrUnauthorizedRole = errors.New("actor lacks required role")

	// ErrInvalidStatus is returned when a status is not a valid lifecycle status
	ErrInvalidStatus = errors.New("invalid status")
)

// StateTransitionError describes a refused transition. It always identifies
// the attempted edge and, for role refusals, the role set that would have
// been accepted.
type StateTransitionError struct {
	From          Status
	To            Status
	RequiredRoles []string
	Err           error
}

// Error returns a human-readable description of the refused transition
func (e *StateTransitionError) Error() string {
	if len(e.RequiredRoles) > 0 {
		return fmt.Sprintf("transition %s -> %s refused: requires one of roles [%s]",
			e.From, e.To, strings.Join(e.RequiredRoles, ", "))
	}
	return fmt.Sprintf("transition %s -> %s refused: %v", e.From, e.To, e.Err)
}

// Unwrap exposes the underlying sentinel for errors.Is checks
func (e *StateTransitionError) Unwrap() error {
	return e.Err
}
