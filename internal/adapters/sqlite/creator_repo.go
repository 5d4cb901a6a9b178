// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/sendgate/internal/ports/secondary"
)

// CreatorRepository implements secondary.CreatorRepository with SQLite.
type CreatorRepository struct {
	db *sql.DB
}

// NewCreatorRepository creates a new SQLite creator repository.
func NewCreatorRepository(db *sql.DB) *CreatorRepository {
	return &CreatorRepository{db: db}
}

// Create registers a creator.
func (r *CreatorRepository) Create(ctx context.Context, creator *secondary.CreatorRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO creators (id, display_name, page_type) VALUES (?, ?, ?)",
		creator.ID, creator.DisplayName, creator.PageType,
	)
	if err != nil {
		return fmt.Errorf("failed to create creator: %w", err)
	}

	return nil
}

// GetByID retrieves a creator by ID.
func (r *CreatorRepository) GetByID(ctx context.Context, id string) (*secondary.CreatorRecord, error) {
	var createdAt time.Time

	record := &secondary.CreatorRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, display_name, page_type, created_at FROM creators WHERE id = ?",
		id,
	).Scan(&record.ID, &record.DisplayName, &record.PageType, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("creator %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}

	record.CreatedAt = createdAt.Format(time.RFC3339)
	return record, nil
}

// List retrieves all registered creators.
func (r *CreatorRepository) List(ctx context.Context) ([]*secondary.CreatorRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, display_name, page_type, created_at FROM creators ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list creators: %w", err)
	}
	defer rows.Close()

	var creators []*secondary.CreatorRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.CreatorRecord{}
		if err := rows.Scan(&record.ID, &record.DisplayName, &record.PageType, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan creator: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		creators = append(creators, record)
	}

	return creators, rows.Err()
}

// Exists checks whether a creator is registered.
func (r *CreatorRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM creators WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check creator existence: %w", err)
	}
	return count > 0, nil
}

// Ensure CreatorRepository implements the interface
var _ secondary.CreatorRepository = (*CreatorRepository)(nil)
