package models

import "time"

// Testimonial is a customer quote shown on public pages.
type Testimonial struct {
	ID        string    `db:"id" json:"id"`
	Author    string    `db:"author" json:"author"`
	Quote     string    `db:"quote" json:"quote"`
	Rating    int       `db:"rating" json:"rating"`
	Image     *string   `db:"image" json:"image,omitempty"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
