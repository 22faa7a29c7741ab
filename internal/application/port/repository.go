package port

import (
	"context"
	"errors"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

var (
	// ErrNotFound is returned by repositories when no row matches
	ErrNotFound = errors.New("not found")

	// ErrVersionConflict is returned when an optimistic update matched no row
	// because the claim changed underneath the caller
	ErrVersionConflict = errors.New("claim version conflict")
)

// ClaimRepository defines persistence operations for Claim
type ClaimRepository interface {
	Create(ctx context.Context, claim *entity.Claim) error
	GetByID(ctx context.Context, id int64) (*entity.Claim, error)
	// Update persists the claim with an optimistic version check: the row is
	// matched on (id, version) and the stored version is bumped. A stale
	// version yields ErrVersionConflict.
	Update(ctx context.Context, claim *entity.Claim) error
	ListByMember(ctx context.Context, memberID int64, limit, offset int) ([]*entity.Claim, error)
	ListApprovedByMemberYear(ctx context.Context, memberID int64, year int) ([]*entity.Claim, error)
}

// ClaimLineRepository defines persistence operations for ClaimLine
type ClaimLineRepository interface {
	Create(ctx context.Context, line *entity.ClaimLine) error
	GetByClaimID(ctx context.Context, claimID int64) ([]*entity.ClaimLine, error)
}

// AttachmentRepository defines persistence operations for Attachment
type AttachmentRepository interface {
	Create(ctx context.Context, att *entity.Attachment) error
	GetByClaimID(ctx context.Context, claimID int64) ([]*entity.Attachment, error)
	UpdateCategory(ctx context.Context, id int64, category string) error
}

// AuditRepository is append-only: entries are never updated or deleted
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditLogEntry) error
	ListByClaimID(ctx context.Context, claimID int64) ([]*entity.AuditLogEntry, error)
}

// EligibilityCheckRepository persists eligibility audit records
type EligibilityCheckRepository interface {
	Create(ctx context.Context, check *entity.EligibilityCheck) error
}

// TransactionManager executes a function within one atomic unit of work
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
