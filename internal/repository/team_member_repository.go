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

const teamMemberColumns = "id, name, role, bio, image, display_order, created_at, updated_at"

// TeamMemberRepository manages persistence for the About page roster.
type TeamMemberRepository struct {
	db *sqlx.DB
}

// NewTeamMemberRepository constructs a new team member repository.
func NewTeamMemberRepository(db *sqlx.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

// List returns one page of team members ordered by display order.
func (r *TeamMemberRepository) List(ctx context.Context, page, perPage int) ([]models.TeamMember, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	query := fmt.Sprintf("SELECT %s FROM team_members ORDER BY display_order ASC, created_at DESC LIMIT %d OFFSET %d", teamMemberColumns, perPage, offset)
	var members []models.TeamMember
	if err := r.db.SelectContext(ctx, &members, query); err != nil {
		return nil, 0, fmt.Errorf("list team members: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM team_members"); err != nil {
		return nil, 0, fmt.Errorf("count team members: %w", err)
	}
	return members, total, nil
}

// FindByID returns a team member by ID.
func (r *TeamMemberRepository) FindByID(ctx context.Context, id string) (*models.TeamMember, error) {
	query := fmt.Sprintf("SELECT %s FROM team_members WHERE id = $1", teamMemberColumns)
	var member models.TeamMember
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// Create persists a team member.
func (r *TeamMemberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	const query = `INSERT INTO team_members (id, name, role, bio, image, display_order, created_at, updated_at) VALUES (:id, :name, :role, :bio, :image, :display_order, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create team member: %w", err)
	}
	return nil
}

// Update modifies a team member.
func (r *TeamMemberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	member.UpdatedAt = time.Now().UTC()
	const query = `UPDATE team_members SET name = :name, role = :role, bio = :bio, image = :image, display_order = :display_order, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("update team member: %w", err)
	}
	return nil
}

// Delete removes a team member.
func (r *TeamMemberRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete team member rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
