package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnergyReading is a single telemetry sample for a device. Readings are
// written by the ingest path and only ever read newest-first.
type EnergyReading struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	DeviceID     string    `gorm:"index;not null" json:"device_id"`
	ActivePowerP float64   `json:"active_power_p"`
	Voltage      float64   `json:"voltage"`
	Current      float64   `json:"current"`
	PowerFactor  float64   `json:"power_factor"`
	Timestamp    time.Time `gorm:"index" json:"timestamp"`
	CreatedAt    string    `json:"created_at"`
}

func (r *EnergyReading) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return
}
