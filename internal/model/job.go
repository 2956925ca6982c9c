package model

import (
	"time"

	"github.com/google/uuid"
)

// JobType Enum Simulation
const (
	JobTypeScrapeProducts = "scrape_products"
)

// JobStatus constants
const (
	JobStatusQueued    = "queued"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// AutomationJob tracks one background automation run (catalog sync etc.)
type AutomationJob struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	JobType      string     `gorm:"type:varchar(50);not null" json:"job_type"`
	Status       string     `gorm:"type:varchar(20);default:'queued';not null;index" json:"status"`
	ErrorMessage string     `gorm:"type:text" json:"error_message,omitempty"`
	FinishedAt   *time.Time `json:"finished_at"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
