package usecases

import (
	"errors"
	"fmt"

	"energy-dashboard/entities"

	"gorm.io/gorm"
)

// In-memory repository fakes. IDs are assigned the way the gorm hooks would.

type fakeUserRepo struct {
	users         []entities.User
	devices       []entities.Device
	nextID        int
	failCreate    bool
	failFind      bool
	failDuplicate bool
}

func (f *fakeUserRepo) assignID() string {
	f.nextID++
	return fmt.Sprintf("user-%d", f.nextID)
}

func (f *fakeUserRepo) Create(user *entities.User) error {
	if user.ID == "" {
		user.ID = f.assignID()
	}
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entities.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	if f.failFind {
		return nil, errors.New("store unavailable")
	}
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateWithDevice(user *entities.User, device *entities.Device) error {
	if f.failCreate {
		return errors.New("store unavailable")
	}
	if f.failDuplicate {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == "" {
		user.ID = f.assignID()
	}
	device.UserID = user.ID
	if device.ID == "" {
		device.ID = user.ID + "-device"
	}
	// All-or-nothing: both appended or neither
	f.users = append(f.users, *user)
	f.devices = append(f.devices, *device)
	return nil
}

type fakeDeviceRepo struct {
	devices []entities.Device
	err     error
}

func (f *fakeDeviceRepo) Create(device *entities.Device) error {
	f.devices = append(f.devices, *device)
	return nil
}

func (f *fakeDeviceRepo) GetByID(id string) (*entities.Device, error) {
	for i := range f.devices {
		if f.devices[i].ID == id {
			d := f.devices[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeDeviceRepo) GetByUserID(userID string) ([]entities.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []entities.Device
	for _, d := range f.devices {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeviceRepo) FirstForUser(userID string) (*entities.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.devices {
		if f.devices[i].UserID == userID {
			d := f.devices[i]
			return &d, nil
		}
	}
	return nil, nil
}

type fakeReadingRepo struct {
	readings []entities.EnergyReading
}

func (f *fakeReadingRepo) Create(reading *entities.EnergyReading) error {
	f.readings = append(f.readings, *reading)
	return nil
}

func (f *fakeReadingRepo) CreateBatch(readings []entities.EnergyReading) error {
	f.readings = append(f.readings, readings...)
	return nil
}

func (f *fakeReadingRepo) GetByDeviceID(deviceID string, limit int) ([]entities.EnergyReading, error) {
	var out []entities.EnergyReading
	for i := len(f.readings) - 1; i >= 0 && len(out) < limit; i-- {
		if f.readings[i].DeviceID == deviceID {
			out = append(out, f.readings[i])
		}
	}
	return out, nil
}

func (f *fakeReadingRepo) LatestForDevice(deviceID string) (*entities.EnergyReading, error) {
	var latest *entities.EnergyReading
	for i := range f.readings {
		r := f.readings[i]
		if r.DeviceID != deviceID {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = &r
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}
