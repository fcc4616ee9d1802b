package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Device is a solar or wind asset owned by exactly one user.
type Device struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	UserID       string  `gorm:"index;not null" json:"user_id"`
	Name         string  `json:"name"`
	Technology   string  `json:"technology"` // e.g. "Solar", "Wind"
	SystemSizeKW float64 `json:"system_size_kw"`
	LocationLat  float64 `json:"location_lat"`
	LocationLon  float64 `json:"location_lon"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (d *Device) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	// UTC keeps created_at ordering stable across offset changes
	d.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	d.UpdatedAt = d.CreatedAt
	return
}
