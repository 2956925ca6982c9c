package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog item synced from the source store
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock        int             `gorm:"type:int;default:0;not null" json:"stock"`
	URL          string          `gorm:"type:varchar(500)" json:"url"`
	Rating       *int            `gorm:"type:int" json:"rating"` // 0-5, nullable when never rated
	ImageURL     string          `gorm:"type:varchar(500)" json:"image_url"`
	SourceURL    string          `gorm:"type:varchar(500)" json:"source_url"`
	LastSyncedAt *time.Time      `json:"last_synced_at"` // Last time the product was synced from source
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"last_updated"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}
