package port

import (
	"context"
	"time"

	"github.com/clearbenefit/claims-engine/internal/domain/entity"
)

// MemberDirectory resolves member, policy and provider master data. The
// master data itself is owned by an external administration system; the
// adjudication core only reads it.
type MemberDirectory interface {
	GetMember(ctx context.Context, memberID int64) (*entity.Member, error)
	GetPolicy(ctx context.Context, policyID int64) (*entity.BenefitPolicy, error)
	// GetActivePolicy returns the member's active policy covering the given
	// service date.
	GetActivePolicy(ctx context.Context, memberID int64, serviceDate time.Time) (*entity.BenefitPolicy, error)
	GetProviderByName(ctx context.Context, name string) (*entity.Provider, error)
}

// DecisionNotifier delivers claim decision notifications. Failures must
// never block the decision itself; callers log and continue.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, claim *entity.Claim, action, comment string) error
}
