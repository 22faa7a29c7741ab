package workflow

import (
	"context"
	"fmt"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

// GuardFunc evaluates a business precondition for a transition. A non-nil
// error blocks the commit and is returned to the caller unchanged, so guards
// decide their own error taxonomy.
type GuardFunc func(ctx context.Context, claim *entity.Claim) error

// edge is one declared transition of the status graph, keyed by its target.
type edge struct {
	to    Status
	roles []string
	guard GuardFunc
}

// Builder assembles the claim status graph. Edges, their role requirements
// and their guards are all declared here so the whole transition table is
// visible at construction time.
type Builder struct {
	edges map[Status][]edge
}

// StatusConfig configures the outgoing edges of a single status
type StatusConfig struct {
	builder *Builder
	from    Status
}

// NewBuilder creates a new status graph builder
func NewBuilder() *Builder {
	return &Builder{edges: make(map[Status][]edge)}
}

// Configure returns the edge configuration for the given status
func (b *Builder) Configure(from Status) *StatusConfig {
	if !from.IsValid() {
		panic(fmt.Sprintf("invalid status: %s", from))
	}
	if _, ok := b.edges[from]; !ok {
		b.edges[from] = nil
	}
	return &StatusConfig{builder: b, from: from}
}

// Permit declares an edge to the target status, authorized for the given
// roles. The admin role is always accepted in addition to the listed roles.
func (c *StatusConfig) Permit(to Status, roles ...string) *StatusConfig {
	return c.PermitIf(to, nil, roles...)
}

// PermitIf declares an edge whose commit is additionally gated by a guard
func (c *StatusConfig) PermitIf(to Status, guard GuardFunc, roles ...string) *StatusConfig {
	if !to.IsValid() {
		panic(fmt.Sprintf("invalid target status: %s", to))
	}
	if c.from.IsTerminal() {
		panic(fmt.Sprintf("terminal status %s cannot have outgoing edges", c.from))
	}
	c.builder.edges[c.from] = append(c.builder.edges[c.from], edge{
		to:    to,
		roles: roles,
		guard: guard,
	})
	return c
}

// Build freezes the configured graph into an immutable machine
func (b *Builder) Build() *Machine {
	edgesCopy := make(map[Status][]edge, len(b.edges))
	for from, list := range b.edges {
		edgesCopy[from] = append([]edge{}, list...)
	}
	return &Machine{edges: edgesCopy}
}
