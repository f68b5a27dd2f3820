package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fieldhouse/sports-cms-api/internal/models"
)

const academyColumns = "id, name, location, description, images, is_active, created_at, updated_at"

// AcademyRepository manages persistence for academies and their batches.
type AcademyRepository struct {
	db *sqlx.DB
}

// NewAcademyRepository constructs a new academy repository.
func NewAcademyRepository(db *sqlx.DB) *AcademyRepository {
	return &AcademyRepository{db: db}
}

// List returns one page of academies ordered by creation time, newest first.
// Batches are not joined here; callers needing them fetch per id.
func (r *AcademyRepository) List(ctx context.Context, page, perPage int) ([]models.Academy, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf("SELECT %s FROM academies ORDER BY created_at DESC LIMIT %d OFFSET %d", academyColumns, perPage, offset)
	var academies []models.Academy
	if err := r.db.SelectContext(ctx, &academies, query); err != nil {
		return nil, 0, fmt.Errorf("list academies: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM academies"); err != nil {
		return nil, 0, fmt.Errorf("count academies: %w", err)
	}
	return academies, total, nil
}

// FindByID returns an academy record by ID.
func (r *AcademyRepository) FindByID(ctx context.Context, id string) (*models.Academy, error) {
	query := fmt.Sprintf("SELECT %s FROM academies WHERE id = $1", academyColumns)
	var academy models.Academy
	if err := r.db.GetContext(ctx, &academy, query, id); err != nil {
		return nil, err
	}
	return &academy, nil
}

// FindDetailByID returns an academy with its batches ordered by start date.
func (r *AcademyRepository) FindDetailByID(ctx context.Context, id string) (*models.AcademyDetail, error) {
	academy, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	const batchQuery = `SELECT id, sports_academy_id, name, sport, head_coach, start_date, end_date, start_time, end_time, description, created_at, updated_at FROM batches WHERE sports_academy_id = $1 ORDER BY start_date ASC`
	batches := []models.Batch{}
	if err := r.db.SelectContext(ctx, &batches, batchQuery, id); err != nil {
		return nil, fmt.Errorf("list academy batches: %w", err)
	}
	return &models.AcademyDetail{Academy: *academy, Batches: batches}, nil
}

// ListAllWithBatches returns every academy with nested batches for the public
// listing. No pagination is applied on this read path.
func (r *AcademyRepository) ListAllWithBatches(ctx context.Context) ([]models.AcademyDetail, error) {
	query := fmt.Sprintf("SELECT %s FROM academies ORDER BY created_at DESC", academyColumns)
	var academies []models.Academy
	if err := r.db.SelectContext(ctx, &academies, query); err != nil {
		return nil, fmt.Errorf("list academies: %w", err)
	}

	const batchQuery = `SELECT id, sports_academy_id, name, sport, head_coach, start_date, end_date, start_time, end_time, description, created_at, updated_at FROM batches ORDER BY start_date ASC`
	var batches []models.Batch
	if err := r.db.SelectContext(ctx, &batches, batchQuery); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	byAcademy := make(map[string][]models.Batch, len(academies))
	for _, batch := range batches {
		byAcademy[batch.SportsAcademyID] = append(byAcademy[batch.SportsAcademyID], batch)
	}

	details := make([]models.AcademyDetail, 0, len(academies))
	for _, academy := range academies {
		children := byAcademy[academy.ID]
		if children == nil {
			children = []models.Batch{}
		}
		details = append(details, models.AcademyDetail{Academy: academy, Batches: children})
	}
	return details, nil
}

// Create persists an academy record.
func (r *AcademyRepository) Create(ctx context.Context, academy *models.Academy) error {
	if academy.ID == "" {
		academy.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if academy.CreatedAt.IsZero() {
		academy.CreatedAt = now
	}
	academy.UpdatedAt = now

	const query = `INSERT INTO academies (id, name, location, description, images, is_active, created_at, updated_at) VALUES (:id, :name, :location, :description, :images, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, academy); err != nil {
		return fmt.Errorf("create academy: %w", err)
	}
	return nil
}

// Update modifies the academy's scalar fields and images. When replaceBatches
// is set it also replaces the entire batch list inside the same transaction.
// Existing batch rows are discarded and new IDs generated.
func (r *AcademyRepository) Update(ctx context.Context, academy *models.Academy, batches []models.Batch, replaceBatches bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin academy update: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	academy.UpdatedAt = time.Now().UTC()
	const query = `UPDATE academies SET name = :name, location = :location, description = :description, images = :images, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	var result sql.Result
	if result, err = tx.NamedExecContext(ctx, query, academy); err != nil {
		return fmt.Errorf("update academy: %w", err)
	}
	var affected int64
	if affected, err = result.RowsAffected(); err != nil {
		return fmt.Errorf("update academy rows: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if replaceBatches {
		if _, err = tx.ExecContext(ctx, `DELETE FROM batches WHERE sports_academy_id = $1`, academy.ID); err != nil {
			return fmt.Errorf("clear academy batches: %w", err)
		}

		now := time.Now().UTC()
		for _, batch := range batches {
			payload := batch
			payload.ID = uuid.NewString()
			payload.SportsAcademyID = academy.ID
			payload.CreatedAt = now
			payload.UpdatedAt = now
			if _, err = tx.NamedExecContext(ctx, `INSERT INTO batches (id, sports_academy_id, name, sport, head_coach, start_date, end_date, start_time, end_time, description, created_at, updated_at) VALUES (:id, :sports_academy_id, :name, :sport, :head_coach, :start_date, :end_date, :start_time, :end_time, :description, :created_at, :updated_at)`, &payload); err != nil {
				return fmt.Errorf("insert academy batch: %w", err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit academy update: %w", err)
	}
	return nil
}

// Delete removes an academy row; its batches go with it via cascade.
func (r *AcademyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM academies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete academy: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete academy rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
