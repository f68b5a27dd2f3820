package models

import "time"

// TeamMember appears on the About page roster.
type TeamMember struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	Bio          *string   `db:"bio" json:"bio,omitempty"`
	Image        *string   `db:"image" json:"image,omitempty"`
	DisplayOrder int       `db:"display_order" json:"displayOrder"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
