package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/attachment"
	"github.com/clearbenefit/claims-engine/internal/domain/costing"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/internal/domain/workflow"
)

// Mock repositories

type mockClaimRepo struct {
	claims     map[int64]*entity.Claim
	nextID     int64
	createFunc func(ctx context.Context, claim *entity.Claim) error
	getFunc    func(ctx context.Context, id int64) (*entity.Claim, error)
	updateFunc func(ctx context.Context, claim *entity.Claim) error
}

func newMockClaimRepo() *mockClaimRepo {
	return &mockClaimRepo{claims: map[int64]*entity.Claim{}}
}

func (m *mockClaimRepo) Create(ctx context.Context, claim *entity.Claim) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, claim)
	}
	m.nextID++
	claim.ID = m.nextID
	stored := *claim
	m.claims[claim.ID] = &stored
	return nil
}

func (m *mockClaimRepo) GetByID(ctx context.Context, id int64) (*entity.Claim, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	stored, ok := m.claims[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	c := *stored
	return &c, nil
}

func (m *mockClaimRepo) Update(ctx context.Context, claim *entity.Claim) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, claim)
	}
	stored, ok := m.claims[claim.ID]
	if !ok {
		return port.ErrNotFound
	}
	if stored.Version != claim.Version {
		return port.ErrVersionConflict
	}
	claim.Version++
	updated := *claim
	m.claims[claim.ID] = &updated
	return nil
}

func (m *mockClaimRepo) ListByMember(ctx context.Context, memberID int64, limit, offset int) ([]*entity.Claim, error) {
	var out []*entity.Claim
	for _, c := range m.claims {
		if c.MemberID == memberID {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (m *mockClaimRepo) ListApprovedByMemberYear(ctx context.Context, memberID int64, year int) ([]*entity.Claim, error) {
	var out []*entity.Claim
	for _, c := range m.claims {
		if c.MemberID == memberID && c.ServiceDate.Year() == year &&
			(c.Status == entity.StatusApproved || c.Status == entity.StatusSettled) {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

type mockLineRepo struct {
	lines []*entity.ClaimLine
}

func (m *mockLineRepo) Create(ctx context.Context, line *entity.ClaimLine) error {
	line.ID = int64(len(m.lines) + 1)
	m.lines = append(m.lines, line)
	return nil
}

func (m *mockLineRepo) GetByClaimID(ctx context.Context, claimID int64) ([]*entity.ClaimLine, error) {
	var out []*entity.ClaimLine
	for _, l := range m.lines {
		if l.ClaimID == claimID {
			out = append(out, l)
		}
	}
	return out, nil
}

type mockAttachmentRepo struct {
	attachments map[int64][]*entity.Attachment
	categorized map[int64]string
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{
		attachments: map[int64][]*entity.Attachment{},
		categorized: map[int64]string{},
	}
}

func (m *mockAttachmentRepo) Create(ctx context.Context, att *entity.Attachment) error {
	att.ID = int64(len(m.attachments[att.ClaimID]) + 1)
	m.attachments[att.ClaimID] = append(m.attachments[att.ClaimID], att)
	return nil
}

func (m *mockAttachmentRepo) GetByClaimID(ctx context.Context, claimID int64) ([]*entity.Attachment, error) {
	return m.attachments[claimID], nil
}

func (m *mockAttachmentRepo) UpdateCategory(ctx context.Context, id int64, category string) error {
	m.categorized[id] = category
	return nil
}

type mockAuditRepo struct {
	entries    []*entity.AuditLogEntry
	appendFunc func(ctx context.Context, entry *entity.AuditLogEntry) error
}

func (m *mockAuditRepo) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, entry)
	}
	entry.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) ListByClaimID(ctx context.Context, claimID int64) ([]*entity.AuditLogEntry, error) {
	var out []*entity.AuditLogEntry
	for _, e := range m.entries {
		if e.ClaimID == claimID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockAuditRepo) actions(claimID int64) []string {
	var out []string
	for _, e := range m.entries {
		if e.ClaimID == claimID {
			out = append(out, e.Action)
		}
	}
	return out
}

type mockDirectory struct {
	member   *entity.Member
	policy   *entity.BenefitPolicy
	provider *entity.Provider
}

func (m *mockDirectory) GetMember(ctx context.Context, id int64) (*entity.Member, error) {
	if m.member == nil || m.member.ID != id {
		return nil, port.ErrNotFound
	}
	return m.member, nil
}

func (m *mockDirectory) GetPolicy(ctx context.Context, id int64) (*entity.BenefitPolicy, error) {
	if m.policy == nil || m.policy.ID != id {
		return nil, port.ErrNotFound
	}
	return m.policy, nil
}

func (m *mockDirectory) GetActivePolicy(ctx context.Context, memberID int64, serviceDate time.Time) (*entity.BenefitPolicy, error) {
	if m.policy == nil || m.policy.MemberID != memberID || !m.policy.InForceOn(serviceDate) {
		return nil, port.ErrNotFound
	}
	return m.policy, nil
}

func (m *mockDirectory) GetProviderByName(ctx context.Context, name string) (*entity.Provider, error) {
	if m.provider == nil || m.provider.Name != name {
		return nil, port.ErrNotFound
	}
	return m.provider, nil
}

type mockTxManager struct{}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockNotifier struct {
	actions    []string
	notifyFunc func(ctx context.Context, claim *entity.Claim, action, comment string) error
}

func (m *mockNotifier) NotifyDecision(ctx context.Context, claim *entity.Claim, action, comment string) error {
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, claim, action, comment)
	}
	m.actions = append(m.actions, action)
	return nil
}

type stubAccumulator struct {
	totals costing.Totals
	err    error
}

func (s *stubAccumulator) YearToDate(ctx context.Context, memberID int64, year int) (costing.Totals, error) {
	return s.totals, s.err
}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

// Test environment

type testEnv struct {
	service     ClaimService
	claimRepo   *mockClaimRepo
	lineRepo    *mockLineRepo
	attRepo     *mockAttachmentRepo
	auditRepo   *mockAuditRepo
	directory   *mockDirectory
	notifier    *mockNotifier
	accumulator *stubAccumulator
}

func newTestEnv() *testEnv {
	env := &testEnv{
		claimRepo:   newMockClaimRepo(),
		lineRepo:    &mockLineRepo{},
		attRepo:     newMockAttachmentRepo(),
		auditRepo:   &mockAuditRepo{},
		notifier:    &mockNotifier{},
		accumulator: &stubAccumulator{},
	}
	env.directory = &mockDirectory{
		member: &entity.Member{ID: 1, MemberNumber: "M-0001", FullName: "Jordan Price", Active: true},
		policy: &entity.BenefitPolicy{
			ID:                  10,
			MemberID:            1,
			PolicyNumber:        "POL-2026-0001",
			PlanName:            "Standard Care",
			AnnualDeductible:    500,
			CoPayPercent:        20,
			OutOfNetworkPenalty: 15,
			OutOfPocketMax:      10000,
			AnnualLimit:         50000,
			EffectiveFrom:       time.Now().AddDate(-1, 0, 0),
			Active:              true,
		},
		provider: &entity.Provider{ID: 100, Name: "City Clinic", NetworkStatus: entity.NetworkIn, Active: true},
	}
	env.service = NewClaimService(
		env.claimRepo,
		env.lineRepo,
		env.attRepo,
		env.auditRepo,
		env.directory,
		&mockTxManager{},
		attachment.NewGate(attachment.NewKeywordClassifier()),
		costing.NewEngine(),
		env.accumulator,
		env.notifier,
		&mockLogger{},
	)
	return env
}

var (
	memberActor   = workflow.Actor{ID: "member-1", Roles: []string{entity.RoleMember}}
	officerActor  = workflow.Actor{ID: "officer-1", Roles: []string{entity.RoleClaimsOfficer}}
	reviewerActor = workflow.Actor{ID: "reviewer-1", Roles: []string{entity.RoleMedicalReviewer}}
	financeActor  = workflow.Actor{ID: "finance-1", Roles: []string{entity.RoleFinanceOfficer}}
)

func validCreateInput() CreateClaimInput {
	return CreateClaimInput{
		MemberID:        1,
		PolicyID:        10,
		ClaimType:       entity.ClaimTypeOutpatient,
		ProviderName:    "City Clinic",
		ServiceDate:     time.Now().AddDate(0, 0, -7),
		RequestedAmount: 1000,
		Lines: []ClaimLineInput{
			{ServiceCode: "CONS-01", Description: "Consultation", Quantity: 1, UnitPrice: 1000},
		},
		Attachments: []AttachmentInput{
			{FileName: "invoice.pdf", ContentType: "application/pdf", FileSize: 1024},
			{FileName: "discharge_summary.pdf", ContentType: "application/pdf", FileSize: 2048},
		},
	}
}

func TestClaimService_CreateClaim(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CreateClaimInput)
		wantErr bool
	}{
		{name: "valid claim"},
		{
			name:    "negative amount",
			mutate:  func(in *CreateClaimInput) { in.RequestedAmount = -50 },
			wantErr: true,
		},
		{
			name:    "future service date",
			mutate:  func(in *CreateClaimInput) { in.ServiceDate = time.Now().AddDate(0, 0, 7) },
			wantErr: true,
		},
		{
			name:    "blank provider",
			mutate:  func(in *CreateClaimInput) { in.ProviderName = "  " },
			wantErr: true,
		},
		{
			name:    "unknown claim type",
			mutate:  func(in *CreateClaimInput) { in.ClaimType = "COSMETIC" },
			wantErr: true,
		},
		{
			name:    "unknown member",
			mutate:  func(in *CreateClaimInput) { in.MemberID = 999 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			in := validCreateInput()
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			claim, err := env.service.CreateClaim(context.Background(), in, memberActor)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateClaim() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if claim.Status != entity.StatusDraft {
				t.Errorf("Status = %v, want %v", claim.Status, entity.StatusDraft)
			}
			if !strings.HasPrefix(claim.ClaimNumber, "CLM-") {
				t.Errorf("ClaimNumber = %q, want CLM- prefix", claim.ClaimNumber)
			}
			if claim.Version != 1 {
				t.Errorf("Version = %d, want 1", claim.Version)
			}
			if got := env.auditRepo.actions(claim.ID); len(got) != 1 || got[0] != entity.ActionCreate {
				t.Errorf("audit actions = %v, want [CREATE]", got)
			}
		})
	}
}

func TestClaimService_SubmitClaim_MissingRequired(t *testing.T) {
	env := newTestEnv()
	in := validCreateInput()
	in.Attachments = []AttachmentInput{
		{FileName: "receipt.jpg", ContentType: "image/jpeg", FileSize: 512},
	}
	claim, err := env.service.CreateClaim(context.Background(), in, memberActor)
	if err != nil {
		t.Fatalf("CreateClaim() error = %v", err)
	}

	_, err = env.service.SubmitClaim(context.Background(), claim.ID, memberActor)
	var attErr *AttachmentError
	if !errors.As(err, &attErr) {
		t.Fatalf("SubmitClaim() error = %v, want AttachmentError", err)
	}

	missing := map[attachment.Category]bool{}
	for _, c := range attErr.Result.MissingRequired {
		missing[c] = true
	}
	if !missing[attachment.CategoryMedicalReport] || !missing[attachment.CategoryItemizedBill] {
		t.Errorf("MissingRequired = %v, want medical report and itemized bill", attErr.Result.MissingRequired)
	}

	got, _ := env.service.GetClaim(context.Background(), claim.ID)
	if got.Status != entity.StatusDraft {
		t.Errorf("Status after blocked submit = %v, want DRAFT", got.Status)
	}
}

func TestClaimService_SubmitClaim(t *testing.T) {
	env := newTestEnv()
	claim, err := env.service.CreateClaim(context.Background(), validCreateInput(), memberActor)
	if err != nil {
		t.Fatalf("CreateClaim() error = %v", err)
	}

	submitted, err := env.service.SubmitClaim(context.Background(), claim.ID, memberActor)
	if err != nil {
		t.Fatalf("SubmitClaim() error = %v", err)
	}
	if submitted.Status != entity.StatusSubmitted {
		t.Errorf("Status = %v, want SUBMITTED", submitted.Status)
	}

	// Classifier verdicts are written back onto the stored attachments.
	if len(env.attRepo.categorized) != 2 {
		t.Errorf("categorized attachments = %d, want 2", len(env.attRepo.categorized))
	}

	if got := env.auditRepo.actions(claim.ID); len(got) != 2 || got[1] != entity.ActionSubmit {
		t.Errorf("audit actions = %v, want [CREATE SUBMIT]", got)
	}
}

func TestClaimService_Lifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	claim, err := env.service.CreateClaim(ctx, validCreateInput(), memberActor)
	if err != nil {
		t.Fatalf("CreateClaim() error = %v", err)
	}

	if _, err := env.service.SubmitClaim(ctx, claim.ID, memberActor); err != nil {
		t.Fatalf("SubmitClaim() error = %v", err)
	}

	if _, err := env.service.TransitionStatus(ctx, claim.ID, workflow.StatusUnderReview, "", officerActor); err != nil {
		t.Fatalf("TransitionStatus(UNDER_REVIEW) error = %v", err)
	}

	approved, err := env.service.ApproveClaim(ctx, claim.ID, 0, true, "covered per plan", reviewerActor)
	if err != nil {
		t.Fatalf("ApproveClaim() error = %v", err)
	}

	// 1000 requested, 500 deductible remaining, 20% co-pay on the rest:
	// patient 600, insurer 400.
	if approved.PatientCoPay != 600 {
		t.Errorf("PatientCoPay = %.2f, want 600.00", approved.PatientCoPay)
	}
	if approved.NetProviderAmount != 400 {
		t.Errorf("NetProviderAmount = %.2f, want 400.00", approved.NetProviderAmount)
	}
	if approved.ApprovedAmount != 400 {
		t.Errorf("ApprovedAmount = %.2f, want 400.00", approved.ApprovedAmount)
	}
	if approved.DeductibleApplied != 500 {
		t.Errorf("DeductibleApplied = %.2f, want 500.00", approved.DeductibleApplied)
	}
	if approved.PatientCoPay+approved.NetProviderAmount != approved.RequestedAmount {
		t.Errorf("patient %.2f + insurer %.2f != requested %.2f",
			approved.PatientCoPay, approved.NetProviderAmount, approved.RequestedAmount)
	}
	if approved.ReviewedAt == nil {
		t.Error("ReviewedAt not set on approval")
	}

	settled, err := env.service.SettleClaim(ctx, claim.ID, "PAY-2026-0001", "wire sent", financeActor)
	if err != nil {
		t.Fatalf("SettleClaim() error = %v", err)
	}
	if settled.Status != entity.StatusSettled {
		t.Errorf("Status = %v, want SETTLED", settled.Status)
	}
	if settled.PaymentReference != "PAY-2026-0001" {
		t.Errorf("PaymentReference = %q", settled.PaymentReference)
	}
	if settled.SettledAt == nil {
		t.Error("SettledAt not set")
	}

	wantActions := []string{
		entity.ActionCreate,
		entity.ActionSubmit,
		entity.ActionStatusChange,
		entity.ActionApprove,
		entity.ActionSettle,
	}
	got := env.auditRepo.actions(claim.ID)
	if len(got) != len(wantActions) {
		t.Fatalf("audit actions = %v, want %v", got, wantActions)
	}
	for i := range wantActions {
		if got[i] != wantActions[i] {
			t.Errorf("audit action[%d] = %v, want %v", i, got[i], wantActions[i])
		}
	}

	if len(env.notifier.actions) != 2 ||
		env.notifier.actions[0] != entity.ActionApprove ||
		env.notifier.actions[1] != entity.ActionSettle {
		t.Errorf("notified actions = %v, want [APPROVE SETTLE]", env.notifier.actions)
	}
}

func TestClaimService_ApproveClaim_Failures(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		amount    float64
		systemCal bool
		actor     workflow.Actor
		wantRule  string
		wantState bool
	}{
		{
			name:     "amount exceeds requested",
			status:   entity.StatusUnderReview,
			amount:   1500,
			actor:    reviewerActor,
			wantRule: "approved_amount_exceeds_requested",
		},
		{
			name:     "zero amount without system calculation",
			status:   entity.StatusUnderReview,
			amount:   0,
			actor:    reviewerActor,
			wantRule: "approved_amount_required",
		},
		{
			name:      "unauthorized role",
			status:    entity.StatusUnderReview,
			amount:    400,
			actor:     memberActor,
			wantState: true,
		},
		{
			name:      "approve from draft",
			status:    entity.StatusDraft,
			amount:    400,
			actor:     reviewerActor,
			wantState: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			claim := env.seedClaim(t, tt.status)

			_, err := env.service.ApproveClaim(context.Background(), claim.ID, tt.amount, tt.systemCal, "", tt.actor)
			if err == nil {
				t.Fatal("ApproveClaim() succeeded, want error")
			}

			if tt.wantRule != "" {
				var bizErr *BusinessRuleError
				if !errors.As(err, &bizErr) || bizErr.Rule != tt.wantRule {
					t.Errorf("error = %v, want BusinessRuleError rule %q", err, tt.wantRule)
				}
			}
			if tt.wantState {
				var stateErr *workflow.StateTransitionError
				if !errors.As(err, &stateErr) {
					t.Errorf("error = %v, want StateTransitionError", err)
				}
			}
		})
	}
}

func TestClaimService_RejectClaim(t *testing.T) {
	env := newTestEnv()
	claim := env.seedClaim(t, entity.StatusUnderReview)
	ctx := context.Background()

	if _, err := env.service.RejectClaim(ctx, claim.ID, "", reviewerActor); err == nil {
		t.Error("RejectClaim() with blank reason succeeded")
	}
	if _, err := env.service.RejectClaim(ctx, claim.ID, "too short", reviewerActor); err == nil {
		t.Error("RejectClaim() with short reason succeeded")
	}

	rejected, err := env.service.RejectClaim(ctx, claim.ID, "service not covered under the plan", reviewerActor)
	if err != nil {
		t.Fatalf("RejectClaim() error = %v", err)
	}
	if rejected.Status != entity.StatusRejected {
		t.Errorf("Status = %v, want REJECTED", rejected.Status)
	}
	if rejected.ReviewerComment != "service not covered under the plan" {
		t.Errorf("ReviewerComment = %q", rejected.ReviewerComment)
	}

	// REJECTED is terminal.
	if _, err := env.service.TransitionStatus(ctx, claim.ID, workflow.StatusUnderReview, "", officerActor); err == nil {
		t.Error("transition out of REJECTED succeeded")
	}
}

func TestClaimService_SettleClaim_Failures(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	underReview := env.seedClaim(t, entity.StatusUnderReview)
	if _, err := env.service.SettleClaim(ctx, underReview.ID, "PAY-001-X", "", financeActor); err == nil {
		t.Error("SettleClaim() before approval succeeded")
	}

	approved := env.seedApprovedClaim(t)
	if _, err := env.service.SettleClaim(ctx, approved.ID, "", "", financeActor); err == nil {
		t.Error("SettleClaim() with empty payment reference succeeded")
	}
	if _, err := env.service.SettleClaim(ctx, approved.ID, "!!", "", financeActor); err == nil {
		t.Error("SettleClaim() with malformed payment reference succeeded")
	}
	if _, err := env.service.SettleClaim(ctx, approved.ID, "PAY-2026-0099", "", reviewerActor); err == nil {
		t.Error("SettleClaim() by non-finance actor succeeded")
	}

	if _, err := env.service.SettleClaim(ctx, approved.ID, "PAY-2026-0099", "", financeActor); err != nil {
		t.Errorf("SettleClaim() error = %v", err)
	}
}

func TestClaimService_DeactivateClaim(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	claim := env.seedClaim(t, entity.StatusDraft)

	if err := env.service.DeactivateClaim(ctx, claim.ID, officerActor); err != nil {
		t.Fatalf("DeactivateClaim() error = %v", err)
	}

	got, err := env.service.GetClaim(ctx, claim.ID)
	if err != nil {
		t.Fatalf("GetClaim() error = %v", err)
	}
	if got.Active {
		t.Error("claim still active after deactivation")
	}

	var bizErr *BusinessRuleError
	if _, err := env.service.SubmitClaim(ctx, claim.ID, memberActor); !errors.As(err, &bizErr) {
		t.Errorf("SubmitClaim() on deactivated claim error = %v, want BusinessRuleError", err)
	}

	actions := env.auditRepo.actions(claim.ID)
	if actions[len(actions)-1] != entity.ActionDeactivate {
		t.Errorf("last audit action = %v, want DEACTIVATE", actions[len(actions)-1])
	}
}

func TestClaimService_VersionConflict(t *testing.T) {
	env := newTestEnv()
	claim := env.seedClaim(t, entity.StatusUnderReview)

	env.claimRepo.updateFunc = func(ctx context.Context, c *entity.Claim) error {
		return port.ErrVersionConflict
	}

	_, err := env.service.ApproveClaim(context.Background(), claim.ID, 400, false, "", reviewerActor)
	if !errors.Is(err, port.ErrVersionConflict) {
		t.Errorf("error = %v, want version conflict", err)
	}
}

func TestClaimService_AvailableTransitions(t *testing.T) {
	env := newTestEnv()
	claim := env.seedClaim(t, entity.StatusUnderReview)
	ctx := context.Background()

	reviewerTargets, err := env.service.AvailableTransitions(ctx, claim.ID, reviewerActor)
	if err != nil {
		t.Fatalf("AvailableTransitions() error = %v", err)
	}
	if len(reviewerTargets) != 3 {
		t.Errorf("reviewer targets = %v, want 3 transitions", reviewerTargets)
	}

	financeTargets, err := env.service.AvailableTransitions(ctx, claim.ID, financeActor)
	if err != nil {
		t.Fatalf("AvailableTransitions() error = %v", err)
	}
	if len(financeTargets) != 0 {
		t.Errorf("finance targets = %v, want none from UNDER_REVIEW", financeTargets)
	}
}

func TestClaimService_NotifierFailureDoesNotBlock(t *testing.T) {
	env := newTestEnv()
	claim := env.seedClaim(t, entity.StatusUnderReview)

	env.notifier.notifyFunc = func(ctx context.Context, c *entity.Claim, action, comment string) error {
		return fmt.Errorf("messenger unavailable")
	}

	approved, err := env.service.ApproveClaim(context.Background(), claim.ID, 0, true, "ok to pay", reviewerActor)
	if err != nil {
		t.Fatalf("ApproveClaim() error = %v", err)
	}
	if approved.Status != entity.StatusApproved {
		t.Errorf("Status = %v, want APPROVED", approved.Status)
	}
}

func TestClaimService_CostBreakdown(t *testing.T) {
	env := newTestEnv()
	env.accumulator.totals = costing.Totals{DeductibleMet: 500}
	claim := env.seedClaim(t, entity.StatusSubmitted)

	bd, err := env.service.CostBreakdown(context.Background(), claim.ID)
	if err != nil {
		t.Fatalf("CostBreakdown() error = %v", err)
	}

	// Deductible already met: 20% co-pay on the full amount.
	if bd.DeductibleApplied != 0 {
		t.Errorf("DeductibleApplied = %.2f, want 0", bd.DeductibleApplied)
	}
	if bd.PatientResponsibility != 200 {
		t.Errorf("PatientResponsibility = %.2f, want 200.00", bd.PatientResponsibility)
	}
	if bd.InsurerAmount != 800 {
		t.Errorf("InsurerAmount = %.2f, want 800.00", bd.InsurerAmount)
	}
}

// seedClaim creates a claim and walks it to the given status through the
// real service operations
func (env *testEnv) seedClaim(t *testing.T, status string) *entity.Claim {
	t.Helper()
	ctx := context.Background()

	claim, err := env.service.CreateClaim(ctx, validCreateInput(), memberActor)
	if err != nil {
		t.Fatalf("seed: CreateClaim() error = %v", err)
	}
	if status == entity.StatusDraft {
		return claim
	}

	if claim, err = env.service.SubmitClaim(ctx, claim.ID, memberActor); err != nil {
		t.Fatalf("seed: SubmitClaim() error = %v", err)
	}
	if status == entity.StatusSubmitted {
		return claim
	}

	if claim, err = env.service.TransitionStatus(ctx, claim.ID, workflow.StatusUnderReview, "", officerActor); err != nil {
		t.Fatalf("seed: TransitionStatus() error = %v", err)
	}
	if status == entity.StatusUnderReview {
		return claim
	}

	t.Fatalf("seed: unsupported status %v", status)
	return nil
}

func (env *testEnv) seedApprovedClaim(t *testing.T) *entity.Claim {
	t.Helper()
	claim := env.seedClaim(t, entity.StatusUnderReview)
	approved, err := env.service.ApproveClaim(context.Background(), claim.ID, 0, true, "approved", reviewerActor)
	if err != nil {
		t.Fatalf("seed: ApproveClaim() error = %v", err)
	}
	return approved
}
