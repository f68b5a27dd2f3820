package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fieldhouse/sports-cms-api/internal/models"
)

const batchColumns = "id, sports_academy_id, name, sport, head_coach, start_date, end_date, start_time, end_time, description, created_at, updated_at"

// BatchRepository manages persistence for standalone batch operations.
type BatchRepository struct {
	db *sqlx.DB
}

// NewBatchRepository constructs a new batch repository.
func NewBatchRepository(db *sqlx.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// FindByID returns a batch record by ID.
func (r *BatchRepository) FindByID(ctx context.Context, id string) (*models.Batch, error) {
	query := fmt.Sprintf("SELECT %s FROM batches WHERE id = $1", batchColumns)
	var batch models.Batch
	if err := r.db.GetContext(ctx, &batch, query, id); err != nil {
		return nil, err
	}
	return &batch, nil
}

// Create persists a batch linked to its academy.
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = now
	}
	batch.UpdatedAt = now

	const query = `INSERT INTO batches (id, sports_academy_id, name, sport, head_coach, start_date, end_date, start_time, end_time, description, created_at, updated_at) VALUES (:id, :sports_academy_id, :name, :sport, :head_coach, :start_date, :end_date, :start_time, :end_time, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, batch); err != nil {
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// UpdateScoped applies a partial update to the batch identified by both its
// own ID and the owning academy's ID. A zero-row match surfaces as
// sql.ErrNoRows so a wrong pairing never mutates an unrelated record.
func (r *BatchRepository) UpdateScoped(ctx context.Context, academyID, batchID string, patch models.BatchPatch) (*models.Batch, error) {
	sets := []string{}
	args := []interface{}{}

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Sport != nil {
		addSet("sport", *patch.Sport)
	}
	if patch.HeadCoach != nil {
		addSet("head_coach", *patch.HeadCoach)
	}
	if patch.StartDate != nil {
		addSet("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		addSet("end_date", *patch.EndDate)
	}
	if patch.StartTime != nil {
		addSet("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		addSet("end_time", *patch.EndTime)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	addSet("updated_at", time.Now().UTC())

	query := fmt.Sprintf("UPDATE batches SET %s WHERE id = $%d AND sports_academy_id = $%d",
		strings.Join(sets, ", "), len(args)+1, len(args)+2)
	args = append(args, batchID, academyID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update batch: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update batch rows: %w", err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}

	return r.FindByID(ctx, batchID)
}

// Delete removes a batch unconditionally by ID.
func (r *BatchRepository) Delete(ctx context.Context, batchID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM batches WHERE id = $1`, batchID); err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}
