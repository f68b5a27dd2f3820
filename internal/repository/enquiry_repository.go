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

const enquiryColumns = "id, name, email, phone, subject, message, created_at"

// EnquiryRepository manages persistence for contact-form submissions.
type EnquiryRepository struct {
	db *sqlx.DB
}

// NewEnquiryRepository constructs a new enquiry repository.
func NewEnquiryRepository(db *sqlx.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

// List returns one page of enquiries, newest first.
func (r *EnquiryRepository) List(ctx context.Context, page, perPage int) ([]models.Enquiry, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf("SELECT %s FROM enquiries ORDER BY created_at DESC LIMIT %d OFFSET %d", enquiryColumns, perPage, offset)
	var enquiries []models.Enquiry
	if err := r.db.SelectContext(ctx, &enquiries, query); err != nil {
		return nil, 0, fmt.Errorf("list enquiries: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM enquiries"); err != nil {
		return nil, 0, fmt.Errorf("count enquiries: %w", err)
	}
	return enquiries, total, nil
}

// ListAll returns every enquiry for export, newest first.
func (r *EnquiryRepository) ListAll(ctx context.Context) ([]models.Enquiry, error) {
	query := fmt.Sprintf("SELECT %s FROM enquiries ORDER BY created_at DESC", enquiryColumns)
	var enquiries []models.Enquiry
	if err := r.db.SelectContext(ctx, &enquiries, query); err != nil {
		return nil, fmt.Errorf("list all enquiries: %w", err)
	}
	return enquiries, nil
}

// Create persists an enquiry.
func (r *EnquiryRepository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	if enquiry.ID == "" {
		enquiry.ID = uuid.NewString()
	}
	if enquiry.CreatedAt.IsZero() {
		enquiry.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO enquiries (id, name, email, phone, subject, message, created_at) VALUES (:id, :name, :email, :phone, :subject, :message, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enquiry); err != nil {
		return fmt.Errorf("create enquiry: %w", err)
	}
	return nil
}

// Delete removes an enquiry.
func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enquiry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete enquiry rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
