package workflow

import (
	"context"
	"time"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

// Machine validates and commits claim status transitions against the frozen
// edge table. It is stateless: the claim carries its own status, so one
// machine instance serves every claim.
type Machine struct {
	edges map[Status][]edge
}

// Transition attempts to move the claim to the target status on behalf of
// the actor. Checks run in order: path validity, role authorization, then
// the edge's guard. A successful commit sets the status, records the actor
// as last modifier and stamps the review timestamp for reviewer targets.
// Transitioning to the current status is a permitted no-op.
func (m *Machine) Transition(ctx context.Context, claim *entity.Claim, target Status, actor Actor) error {
	current := Status(claim.Status)

	if !target.IsValid() {
		return &StateTransitionError{From: current, To: target, Err: ErrInvalidStatus}
	}
	if target == current {
		return nil
	}
	if current.IsTerminal() {
		return &StateTransitionError{From: current, To: target, Err: ErrTerminalState}
	}

	e, ok := m.findEdge(current, target)
	if !ok {
		return &StateTransitionError{From: current, To: target, Err: ErrInvalidTransition}
	}

	if !authorized(e, actor) {
		return &StateTransitionError{
			From:          current,
			To:            target,
			RequiredRoles: append([]string{}, e.roles...),
			Err:           ErrUnauthorizedRole,
		}
	}

	if e.guard != nil {
		if err := e.guard(ctx, claim); err != nil {
			return err
		}
	}

	now := time.Now()
	claim.Status = string(target)
	claim.UpdatedBy = actor.ID
	claim.UpdatedAt = now
	if reviewerTargets[target] {
		claim.ReviewedAt = &now
	}
	return nil
}

// CanFire reports whether the actor could take the edge to the target,
// ignoring guards. Self-transitions report true.
func (m *Machine) CanFire(claim *entity.Claim, target Status, actor Actor) bool {
	current := Status(claim.Status)
	if target == current {
		return target.IsValid()
	}
	if current.IsTerminal() {
		return false
	}
	e, ok := m.findEdge(current, target)
	if !ok {
		return false
	}
	return authorized(e, actor)
}

// AvailableTransitions returns the outgoing edges of the claim's current
// status that the actor is authorized to take, in declaration order. It
// shares the role resolution used by Transition so the two cannot disagree.
func (m *Machine) AvailableTransitions(claim *entity.Claim, actor Actor) []Status {
	current := Status(claim.Status)
	if current.IsTerminal() {
		return []Status{}
	}

	targets := []Status{}
	for _, e := range m.edges[current] {
		if authorized(e, actor) {
			targets = append(targets, e.to)
		}
	}
	return targets
}

// CanEdit reports whether the claim's contents may still be modified.
// Only DRAFT and RETURNED_FOR_INFO claims are editable.
func (m *Machine) CanEdit(claim *entity.Claim) bool {
	s := Status(claim.Status)
	return s == StatusDraft || s == StatusReturnedForInfo
}

func (m *Machine) findEdge(from, to Status) (edge, bool) {
	for _, e := range m.edges[from] {
		if e.to == to {
			return e, true
		}
	}
	return edge{}, false
}

// authorized applies the per-edge role check. The admin role is universally
// accepted; an edge with no declared roles is open to any actor.
func authorized(e edge, actor Actor) bool {
	if actor.HasRole(entity.RoleAdmin) {
		return true
	}
	if len(e.roles) == 0 {
		return true
	}
	for _, r := range e.roles {
		if actor.HasRole(r) {
			return true
		}
	}
	return false
}
