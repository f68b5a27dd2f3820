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

const infraColumns = "id, name, location, description, images, is_active, created_at, updated_at"

// InfrastructureRepository manages persistence for facility listings.
type InfrastructureRepository struct {
	db *sqlx.DB
}

// NewInfrastructureRepository constructs a new infrastructure repository.
func NewInfrastructureRepository(db *sqlx.DB) *InfrastructureRepository {
	return &InfrastructureRepository{db: db}
}

// List returns one page of infrastructure records, newest first.
func (r *InfrastructureRepository) List(ctx context.Context, page, perPage int) ([]models.Infrastructure, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf("SELECT %s FROM infrastructures ORDER BY created_at DESC LIMIT %d OFFSET %d", infraColumns, perPage, offset)
	var items []models.Infrastructure
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, 0, fmt.Errorf("list infrastructures: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM infrastructures"); err != nil {
		return nil, 0, fmt.Errorf("count infrastructures: %w", err)
	}
	return items, total, nil
}

// FindByID returns an infrastructure record by ID.
func (r *InfrastructureRepository) FindByID(ctx context.Context, id string) (*models.Infrastructure, error) {
	query := fmt.Sprintf("SELECT %s FROM infrastructures WHERE id = $1", infraColumns)
	var item models.Infrastructure
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create persists an infrastructure record.
func (r *InfrastructureRepository) Create(ctx context.Context, item *models.Infrastructure) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO infrastructures (id, name, location, description, images, is_active, created_at, updated_at) VALUES (:id, :name, :location, :description, :images, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create infrastructure: %w", err)
	}
	return nil
}

// Update modifies an infrastructure record.
func (r *InfrastructureRepository) Update(ctx context.Context, item *models.Infrastructure) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE infrastructures SET name = :name, location = :location, description = :description, images = :images, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update infrastructure: %w", err)
	}
	return nil
}

// Delete removes an infrastructure record.
func (r *InfrastructureRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM infrastructures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete infrastructure: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete infrastructure rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
