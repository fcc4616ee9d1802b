package repositories

import (
	"errors"

	"energy-dashboard/db"
	"energy-dashboard/entities"

	"gorm.io/gorm"
)

type energyReadingPgRepository struct {
	db db.Database
}

func NewEnergyReadingPgRepository(database db.Database) EnergyReadingRepository {
	return &energyReadingPgRepository{db: database}
}

func (r *energyReadingPgRepository) Create(reading *entities.EnergyReading) error {
	return r.db.GetDB().Create(reading).Error
}

func (r *energyReadingPgRepository) CreateBatch(readings []entities.EnergyReading) error {
	if len(readings) == 0 {
		return nil
	}
	return r.db.GetDB().Create(&readings).Error
}

func (r *energyReadingPgRepository) GetByDeviceID(deviceID string, limit int) ([]entities.EnergyReading, error) {
	if limit <= 0 {
		limit = 100
	}
	var readings []entities.EnergyReading
	err := r.db.GetDB().
		Where("device_id = ?", deviceID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&readings).Error
	return readings, err
}

func (r *energyReadingPgRepository) LatestForDevice(deviceID string) (*entities.EnergyReading, error) {
	var reading entities.EnergyReading
	err := r.db.GetDB().
		Where("device_id = ?", deviceID).
		Order("timestamp DESC").
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}
