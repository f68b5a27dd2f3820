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

const testimonialColumns = "id, author, quote, rating, image, is_active, created_at, updated_at"

// TestimonialRepository manages persistence for testimonials.
type TestimonialRepository struct {
	db *sqlx.DB
}

// NewTestimonialRepository constructs a new testimonial repository.
func NewTestimonialRepository(db *sqlx.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

// List returns one page of testimonials, newest first.
func (r *TestimonialRepository) List(ctx context.Context, page, perPage int) ([]models.Testimonial, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf("SELECT %s FROM testimonials ORDER BY created_at DESC LIMIT %d OFFSET %d", testimonialColumns, perPage, offset)
	var items []models.Testimonial
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, 0, fmt.Errorf("list testimonials: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM testimonials"); err != nil {
		return nil, 0, fmt.Errorf("count testimonials: %w", err)
	}
	return items, total, nil
}

// FindByID returns a testimonial by ID.
func (r *TestimonialRepository) FindByID(ctx context.Context, id string) (*models.Testimonial, error) {
	query := fmt.Sprintf("SELECT %s FROM testimonials WHERE id = $1", testimonialColumns)
	var item models.Testimonial
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create persists a testimonial.
func (r *TestimonialRepository) Create(ctx context.Context, item *models.Testimonial) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO testimonials (id, author, quote, rating, image, is_active, created_at, updated_at) VALUES (:id, :author, :quote, :rating, :image, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}
	return nil
}

// Update modifies a testimonial.
func (r *TestimonialRepository) Update(ctx context.Context, item *models.Testimonial) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE testimonials SET author = :author, quote = :quote, rating = :rating, image = :image, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return nil
}

// Delete removes a testimonial.
func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete testimonial rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
