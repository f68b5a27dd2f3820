package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ImageRefRepository reads the set of image URLs referenced anywhere in the
// database. The cleanup worker diffs this set against the bucket contents.
type ImageRefRepository struct {
	db *sqlx.DB
}

// NewImageRefRepository constructs a new image reference repository.
func NewImageRefRepository(db *sqlx.DB) *ImageRefRepository {
	return &ImageRefRepository{db: db}
}

// ListReferencedURLs returns every image URL referenced by any content table.
func (r *ImageRefRepository) ListReferencedURLs(ctx context.Context) ([]string, error) {
	const query = `
SELECT unnest(images) FROM academies
UNION
SELECT unnest(images) FROM infrastructures
UNION
SELECT image FROM team_members WHERE image IS NOT NULL
UNION
SELECT image FROM testimonials WHERE image IS NOT NULL`
	var urls []string
	if err := r.db.SelectContext(ctx, &urls, query); err != nil {
		return nil, fmt.Errorf("list referenced image urls: %w", err)
	}
	return urls, nil
}
