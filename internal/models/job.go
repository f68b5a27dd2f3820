package models

import "time"

// Job is an open position listed on the careers page.
type Job struct {
	ID             string    `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Department     string    `db:"department" json:"department"`
	Location       string    `db:"location" json:"location"`
	EmploymentType string    `db:"employment_type" json:"employmentType"`
	Description    string    `db:"description" json:"description"`
	IsActive       bool      `db:"is_active" json:"isActive"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
