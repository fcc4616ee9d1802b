package repositories

import "energy-dashboard/entities"

// Lookup methods return (nil, nil) when no row matches, so callers branch on
// the value rather than sniffing driver errors.

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	// CreateWithDevice persists the user and their default device as a
	// single transaction; on failure neither row exists.
	CreateWithDevice(user *entities.User, device *entities.Device) error
}

type DeviceRepository interface {
	Create(device *entities.Device) error
	GetByID(id string) (*entities.Device, error)
	// GetByUserID returns all devices owned by the user, oldest first.
	GetByUserID(userID string) ([]entities.Device, error)
	// FirstForUser returns the user's oldest device (created_at ASC, limit 1).
	FirstForUser(userID string) (*entities.Device, error)
}

type EnergyReadingRepository interface {
	Create(reading *entities.EnergyReading) error
	CreateBatch(readings []entities.EnergyReading) error
	// GetByDeviceID returns up to limit readings, newest first.
	GetByDeviceID(deviceID string, limit int) ([]entities.EnergyReading, error)
	// LatestForDevice returns the newest reading (timestamp DESC, limit 1).
	LatestForDevice(deviceID string) (*entities.EnergyReading, error)
}
