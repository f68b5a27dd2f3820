package models

import (
	"time"

	"github.com/lib/pq"
)

// Infrastructure is a facility listing shown on the infra vertical.
type Infrastructure struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Location    string         `db:"location" json:"location"`
	Description string         `db:"description" json:"description"`
	Images      pq.StringArray `db:"images" json:"images"`
	IsActive    bool           `db:"is_active" json:"isActive"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}
