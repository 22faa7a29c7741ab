package repository

import (
	"context"
	"fmt"

	"github.com/clearbenefit/claims-engine/internal/application/port"
	"github.com/clearbenefit/claims-engine/internal/domain/entity"
	"github.com/clearbenefit/claims-engine/pkg/database"
	"go.uber.org/zap"
)

// ClaimLineRepository handles claim line database operations
type ClaimLineRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewClaimLineRepository creates a new claim line repository
func NewClaimLineRepository(db *database.DB, logger *zap.Logger) *ClaimLineRepository {
	return &ClaimLineRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new claim line
func (r *ClaimLineRepository) Create(ctx context.Context, line *entity.ClaimLine) error {
	query := `
		INSERT INTO claim_lines (
			claim_id, service_code, description, quantity, unit_price, amount, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Executor(ctx).ExecContext(ctx, query,
		line.ClaimID,
		line.ServiceCode,
		line.Description,
		line.Quantity,
		line.UnitPrice,
		line.Amount,
		line.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create claim line", zap.Error(err))
		return fmt.Errorf("failed to create claim line: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	line.ID = id
	return nil
}

// GetByClaimID returns a claim's lines in insertion order
func (r *ClaimLineRepository) GetByClaimID(ctx context.Context, claimID int64) ([]*entity.ClaimLine, error) {
	query := `
		SELECT id, claim_id, service_code, description, quantity, unit_price, amount, created_at
		FROM claim_lines
		WHERE claim_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Executor(ctx).QueryContext(ctx, query, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claim lines: %w", err)
	}
	defer rows.Close()

	var lines []*entity.ClaimLine
	for rows.Next() {
		var line entity.ClaimLine
		if err := rows.Scan(
			&line.ID,
			&line.ClaimID,
			&line.ServiceCode,
			&line.Description,
			&line.Quantity,
			&line.UnitPrice,
			&line.Amount,
			&line.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan claim line: %w", err)
		}
		lines = append(lines, &line)
	}
	return lines, rows.Err()
}

// Verify interface compliance
var _ port.ClaimLineRepository = (*ClaimLineRepository)(nil)
