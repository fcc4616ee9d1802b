package repositories

import (
	"errors"

	"energy-dashboard/db"
	"energy-dashboard/entities"

	"gorm.io/gorm"
)

type devicePgRepository struct {
	db db.Database
}

func NewDevicePgRepository(database db.Database) DeviceRepository {
	return &devicePgRepository{db: database}
}

func (r *devicePgRepository) Create(device *entities.Device) error {
	return r.db.GetDB().Create(device).Error
}

func (r *devicePgRepository) GetByID(id string) (*entities.Device, error) {
	var device entities.Device
	err := r.db.GetDB().Where("id = ?", id).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *devicePgRepository) GetByUserID(userID string) ([]entities.Device, error) {
	var devices []entities.Device
	err := r.db.GetDB().Where("user_id = ?", userID).Order("created_at ASC").Find(&devices).Error
	return devices, err
}

func (r *devicePgRepository) FirstForUser(userID string) (*entities.Device, error) {
	var device entities.Device
	err := r.db.GetDB().Where("user_id = ?", userID).Order("created_at ASC").First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}
