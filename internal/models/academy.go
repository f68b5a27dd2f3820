package models

import (
	"time"

	"github.com/lib/pq"
)

// Academy is a training location owning display images and batches.
type Academy struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Location    string         `db:"location" json:"location"`
	Description string         `db:"description" json:"description"`
	Images      pq.StringArray `db:"images" json:"images"`
	IsActive    bool           `db:"is_active" json:"isActive"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

// AcademyDetail extends Academy with its batches ordered by start date.
type AcademyDetail struct {
	Academy
	Batches []Batch `json:"batches"`
}

// Batch is a scheduled training cohort belonging to exactly one academy.
type Batch struct {
	ID              string    `db:"id" json:"id"`
	SportsAcademyID string    `db:"sports_academy_id" json:"sportsAcademyId"`
	Name            string    `db:"name" json:"name"`
	Sport           string    `db:"sport" json:"sport"`
	HeadCoach       string    `db:"head_coach" json:"headCoach"`
	StartDate       time.Time `db:"start_date" json:"startDate"`
	EndDate         time.Time `db:"end_date" json:"endDate"`
	StartTime       string    `db:"start_time" json:"startTime"`
	EndTime         string    `db:"end_time" json:"endTime"`
	Description     *string   `db:"description" json:"description,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// BatchPatch carries the fields a scoped partial update may change.
// Nil fields are left untouched.
type BatchPatch struct {
	Name        *string
	Sport       *string
	HeadCoach   *string
	StartDate   *time.Time
	EndDate     *time.Time
	StartTime   *string
	EndTime     *string
	Description *string
}
