package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		expected bool
	}{
		{StatusDraft, false},
		{StatusSubmitted, false},
		{StatusUnderReview, false},
		{StatusApproved, false},
		{StatusReturnedForInfo, false},
		{StatusRejected, true},
		{StatusSettled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("Status.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		status   Status
		expected bool
	}{
		{"valid status", StatusDraft, true},
		{"valid status", StatusSettled, true},
		{"invalid status", Status("INVALID"), false},
		{"empty status", Status(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("Status.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestActor_HasRole(t *testing.T) {
	actor := Actor{ID: "u-1", Roles: []string{entity.RoleMember, entity.RoleClaimsOfficer}}

	if !actor.HasRole(entity.RoleMember) {
		t.Error("HasRole() should return true for held role")
	}
	if actor.HasRole(entity.RoleFinanceOfficer) {
		t.Error("HasRole() should return false for missing role")
	}
}

func TestBuilder_ConfigurePanicsOnInvalidStatus(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() should panic on invalid status")
		}
	}()

	builder.Configure(Status("INVALID"))
}

func TestBuilder_PermitPanicsOnTerminalSource(t *testing.T) {
	builder := NewBuilder()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Permit() should panic when configuring an edge out of a terminal status")
		}
	}()

	builder.Configure(StatusRejected).Permit(StatusDraft)
}

func testMachine() *Machine {
	builder := NewBuilder()
	builder.Configure(StatusDraft).
		Permit(StatusSubmitted, entity.RoleMember, entity.RoleClaimsOfficer)
	builder.Configure(StatusSubmitted).
		Permit(StatusUnderReview, entity.RoleClaimsOfficer, entity.RoleMedicalReviewer)
	builder.Configure(StatusUnderReview).
		Permit(StatusApproved, entity.RoleMedicalReviewer).
		Permit(StatusRejected, entity.RoleMedicalReviewer).
		Permit(StatusReturnedForInfo, entity.RoleClaimsOfficer, entity.RoleMedicalReviewer)
	builder.Configure(StatusReturnedForInfo).
		Permit(StatusSubmitted, entity.RoleMember, entity.RoleClaimsOfficer)
	builder.Configure(StatusApproved).
		Permit(StatusSettled, entity.RoleFinanceOfficer)
	return builder.Build()
}

func TestMachine_Transition_HappyPath(t *testing.T) {
	machine := testMachine()
	claim := &entity.Claim{Status: entity.StatusDraft}
	member := Actor{ID: "m-1", Roles: []string{entity.RoleMember}}

	if err := machine.Transition(context.Background(), claim, StatusSubmitted, member); err != nil {
		t.Fatalf("Transition() unexpected error: %v", err)
	}
	if claim.Status != entity.StatusSubmitted {
		t.Errorf("claim status = %s, want %s", claim.Status, entity.StatusSubmitted)
	}
	if claim.UpdatedBy != "m-1" {
		t.Errorf("claim updated_by = %s, want m-1", claim.UpdatedBy)
	}
	if claim.ReviewedAt != nil {
		t.Error("ReviewedAt should not be stamped for non-reviewer target")
	}
}

func TestMachine_Transition_StampsReviewedAt(t *testing.T) {
	machine := testMachine()
	claim := &entity.Claim{Status: entity.StatusSubmitted}
	reviewer := Actor{ID: "r-1", Roles: []string{entity.RoleMedicalReviewer}}

	if err := machine.Transition(context.Background(), claim, StatusUnderReview, reviewer); err != nil {
		t.Fatalf("Transition() unexpected error: %v", err)
	}
	if claim.ReviewedAt == nil {
		t.Error("ReviewedAt should be stamped when entering UNDER_REVIEW")
	}
}

func TestMachine_Transition_SelfIsNoOp(t *testing.T) {
	machine := testMachine()
	claim := &entity.Claim{Status: entity.StatusDraft}

	if err := machine.Transition(context.Background(), claim, StatusDraft, Actor{ID: "m-1"}); err != nil {
		t.Fatalf("self transition should be a no-op, got error: %v", err)
	}
	if claim.UpdatedBy != "" {
		t.Error("self transition must not mutate the claim")
	}
}

func TestMachine_Transition_InvalidPath(t *testing.T) {
	machine := testMachine()
	claim := &entity.Claim{Status: entity.StatusDraft}
	admin := Actor{ID: "a-1", Roles: []string{entity.RoleAdmin}}

	err := machine.Transition(context.Background(), claim, StatusApproved, admin)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	var stErr *StateTransitionError
	if !errors.As(err, &stErr) {
		t.Fatal("expected *StateTransitionError")
	}
	if stErr.From != StatusDraft || stErr.To != StatusApproved {
		t.Errorf("error edge = %s -> %s, want DRAFT -> APPROVED", stErr.From, stErr.To)
	}
}

func TestMachine_Transition_TerminalStatesHaveNoExits(t *testing.T) {
	machine := testMachine()
	admin := Actor{ID: "a-1", Roles: []string{entity.RoleAdmin}}

	for _, terminal := range []string{entity.StatusRejected, entity.StatusSettled} {
		claim := &entity.Claim{Status: terminal}
		for target := range validStatuses {
			if string(target) == terminal {
				continue
			}
			err := machine.Transition(context.Background(), claim, target, admin)
			if !errors.Is(err, ErrTerminalState) {
				t.Errorf("expected ErrTerminalState for %s -> %s, got %v", terminal, target, err)
			}
		}
	}
}

func TestMachine_Transition_UnauthorizedRoleNamesRequirement(t *testing.T) {
	machine := testMachine()
	claim := &entity.Claim{Status: entity.StatusUnderReview}
	member := Actor{ID: "m-1", Roles: []string{entity.RoleMember}}

	err := machine.Transition(context.Background(), claim, StatusApproved, member)
	if !errors.Is(err, ErrUnauthorizedRole) {
		t.Fatalf("expected ErrUnauthorizedRole, got %v", err)
	}

	var stErr *StateTransitionError
	if !errors.As(err, &stErr) {
		t.Fatal("expected *StateTransitionError")
	}
	if len(stErr.RequiredRoles) != 1 || stErr.RequiredRoles[0] != entity.RoleMedicalReviewer {
		t.Errorf("error should name the missing role requirement, got %v", stErr.RequiredRoles)
	}
	if claim.Status != entity.StatusUnderReview {
		t.Error("refused transition must not mutate the claim")
	}
}

func TestMachine_Transition_AdminIsAlwaysAuthorized(t *testing.T) {
	machine := testMachine()
	claim := &entity.Claim{Status: entity.StatusApproved}
	admin := Actor{ID: "a-1", Roles: []string{entity.RoleAdmin}}

	if err := machine.Transition(context.Background(), claim, StatusSettled, admin); err != nil {
		t.Fatalf("admin should be authorized for every edge, got %v", err)
	}
}

func TestMachine_Transition_GuardBlocksCommit(t *testing.T) {
	guardErr := errors.New("precondition failed")
	builder := NewBuilder()
	builder.Configure(StatusUnderReview).
		PermitIf(StatusApproved, func(ctx context.Context, c *entity.Claim) error {
			if c.ApprovedAmount <= 0 {
				return guardErr
			}
			return nil
		}, entity.RoleMedicalReviewer)
	machine := builder.Build()

	reviewer := Actor{ID: "r-1", Roles: []string{entity.RoleMedicalReviewer}}
	claim := &entity.Claim{Status: entity.StatusUnderReview}

	if err := machine.Transition(context.Background(), claim, StatusApproved, reviewer); !errors.Is(err, guardErr) {
		t.Fatalf("guard error should be returned unchanged, got %v", err)
	}
	if claim.Status != entity.StatusUnderReview {
		t.Error("failed guard must not mutate the claim")
	}

	claim.ApprovedAmount = 100
	if err := machine.Transition(context.Background(), claim, StatusApproved, reviewer); err != nil {
		t.Fatalf("passing guard should allow commit, got %v", err)
	}
}

func TestMachine_AvailableTransitions(t *testing.T) {
	machine := testMachine()

	tests := []struct {
		name     string
		status   string
		actor    Actor
		expected []Status
	}{
		{
			name:     "reviewer under review",
			status:   entity.StatusUnderReview,
			actor:    Actor{ID: "r-1", Roles: []string{entity.RoleMedicalReviewer}},
			expected: []Status{StatusApproved, StatusRejected, StatusReturnedForInfo},
		},
		{
			name:     "member under review",
			status:   entity.StatusUnderReview,
			actor:    Actor{ID: "m-1", Roles: []string{entity.RoleMember}},
			expected: []Status{},
		},
		{
			name:     "admin sees everything",
			status:   entity.StatusUnderReview,
			actor:    Actor{ID: "a-1", Roles: []string{entity.RoleAdmin}},
			expected: []Status{StatusApproved, StatusRejected, StatusReturnedForInfo},
		},
		{
			name:     "terminal has none",
			status:   entity.StatusSettled,
			actor:    Actor{ID: "a-1", Roles: []string{entity.RoleAdmin}},
			expected: []Status{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claim := &entity.Claim{Status: tt.status}
			got := machine.AvailableTransitions(claim, tt.actor)
			if len(got) != len(tt.expected) {
				t.Fatalf("AvailableTransitions() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("AvailableTransitions()[%d] = %s, want %s", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestMachine_AvailableTransitionsAgreesWithCanFire(t *testing.T) {
	machine := testMachine()
	actors := []Actor{
		{ID: "m-1", Roles: []string{entity.RoleMember}},
		{ID: "c-1", Roles: []string{entity.RoleClaimsOfficer}},
		{ID: "r-1", Roles: []string{entity.RoleMedicalReviewer}},
		{ID: "f-1", Roles: []string{entity.RoleFinanceOfficer}},
		{ID: "a-1", Roles: []string{entity.RoleAdmin}},
	}

	for from := range validStatuses {
		for _, actor := range actors {
			claim := &entity.Claim{Status: string(from)}
			available := map[Status]bool{}
			for _, to := range machine.AvailableTransitions(claim, actor) {
				available[to] = true
			}
			for to := range validStatuses {
				if to == from {
					continue
				}
				if machine.CanFire(claim, to, actor) != available[to] {
					t.Errorf("CanFire and AvailableTransitions disagree on %s -> %s for %s", from, to, actor.ID)
				}
			}
		}
	}
}

func TestMachine_CanEdit(t *testing.T) {
	machine := testMachine()

	tests := []struct {
		status   string
		expected bool
	}{
		{entity.StatusDraft, true},
		{entity.StatusReturnedForInfo, true},
		{entity.StatusSubmitted, false},
		{entity.StatusUnderReview, false},
		{entity.StatusApproved, false},
		{entity.StatusRejected, false},
		{entity.StatusSettled, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			claim := &entity.Claim{Status: tt.status}
			if got := machine.CanEdit(claim); got != tt.expected {
				t.Errorf("CanEdit(%s) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}
