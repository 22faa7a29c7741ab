package repository

import (
	"context"
	"fmt"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/pkg/database"
	"go.uber.org/zap"
)

// AuditRepository handles audit log database operations. The log is
// append-only: there are no update or delete statements here and the table
// carries no mutable columns.
type AuditRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB, logger *zap.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Append writes one audit entry
func (r *AuditRepository) Append(ctx context.Context, entry *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_log (
			claim_id, action, previous_status, new_status, actor_id, comment, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		entry.ClaimID,
		entry.Action,
		entry.PreviousStatus,
		entry.NewStatus,
		entry.ActorID,
		entry.Comment,
		entry.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to append audit entry", zap.Error(err))
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	entry.ID = id
	return nil
}

// ListByClaimID returns a claim's audit entries in append order
func (r *AuditRepository) ListByClaimID(ctx context.Context, claimID int64) ([]*entity.AuditLogEntry, error) {
	query := `
		SELECT id, claim_id, action, previous_status, new_status, actor_id, comment, timestamp
		FROM audit_log
		WHERE claim_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditLogEntry
	for rows.Next() {
		var entry entity.AuditLogEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ClaimID,
			&entry.Action,
			&entry.PreviousStatus,
			&entry.NewStatus,
			&entry.ActorID,
			&entry.Comment,
			&entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// Verify interface compliance
var _ port.AuditRepository = (*AuditRepository)(nil)
