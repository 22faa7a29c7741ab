package repository

import (
	"context"
	"fmt"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/pkg/database"
	"go.uber.org/zap"
)

// AttachmentRepository handles attachment database operations
type AttachmentRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *database.DB, logger *zap.Logger) *AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new attachment
func (r *AttachmentRepository) Create(ctx context.Context, att *entity.Attachment) error {
	query := `
		INSERT INTO attachments (
			claim_id, file_name, file_path, content_type, file_size, category, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		att.ClaimID,
		att.FileName,
		att.FilePath,
		att.ContentType,
		att.FileSize,
		att.Category,
		att.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create attachment", zap.Error(err))
		return fmt.Errorf("failed to create attachment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	att.ID = id
	return nil
}

// GetByClaimID returns a claim's attachments in insertion order
func (r *AttachmentRepository) GetByClaimID(ctx context.Context, claimID int64) ([]*entity.Attachment, error) {
	query := `
		SELECT id, claim_id, file_name, file_path, content_type, file_size, category, created_at
		FROM attachments
		WHERE claim_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*entity.Attachment
	for rows.Next() {
		var att entity.Attachment
		if err := rows.Scan(
			&att.ID,
			&att.ClaimID,
			&att.FileName,
			&att.FilePath,
			&att.ContentType,
			&att.FileSize,
			&att.Category,
			&att.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, &att)
	}
	return attachments, rows.Err()
}

// UpdateCategory records a classifier verdict on a stored attachment
func (r *AttachmentRepository) UpdateCategory(ctx context.Context, id int64, category string) error {
	query := `UPDATE attachments SET category = ? WHERE id = ?`

	if _, err := r.db.Executor(ctx).ExecContext(ctx, query, category, id); err != nil {
		r.logger.Error("Failed to update attachment category", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to update attachment category: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.AttachmentRepository = (*AttachmentRepository)(nil)
