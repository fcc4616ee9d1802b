package usecases

import (
	"time"

	"energy-dashboard/entities"
	"energy-dashboard/repositories"
)

// DeviceSummary is the flattened device shape pages render.
type DeviceSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Technology   string  `json:"technology"`
	SystemSizeKW float64 `json:"system_size_kw"`
	LocationLat  float64 `json:"location_lat"`
	LocationLon  float64 `json:"location_lon"`
}

// ReadingSnapshot is the latest-reading tile data. Nil when the device has
// no readings yet.
type ReadingSnapshot struct {
	ActivePowerP float64   `json:"active_power_p"`
	Voltage      float64   `json:"voltage"`
	Current      float64   `json:"current"`
	PowerFactor  float64   `json:"power_factor"`
	Timestamp    time.Time `json:"timestamp"`
}

type PowerSample struct {
	Time  string  `json:"time"`
	Power float64 `json:"power"`
}

type MonthlyEnergy struct {
	Month  string  `json:"month"`
	Energy float64 `json:"energy"`
}

// DashboardData is the view-model for /dashboard: one device, its latest
// reading, and the chart series.
type DashboardData struct {
	Device         DeviceSummary    `json:"device"`
	LatestReading  *ReadingSnapshot `json:"latest_reading"`
	HistoricalData []PowerSample    `json:"historical_data"`
	MonthlyData    []MonthlyEnergy  `json:"monthly_data"`
}

// ProfileData is the view-model for /profile and /devices.
type ProfileData struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Devices []DeviceSummary `json:"devices"`
}

// Static chart series. Real per-device aggregation belongs to the telemetry
// rollup collaborator, which does not exist yet.
// TODO: replace with queries against aggregated readings once the rollup job lands.
var hourlyPowerSeries = []PowerSample{
	{Time: "06:00", Power: 1.2},
	{Time: "08:00", Power: 2.8},
	{Time: "10:00", Power: 4.1},
	{Time: "12:00", Power: 5.3},
	{Time: "14:00", Power: 4.9},
	{Time: "16:00", Power: 3.6},
	{Time: "18:00", Power: 1.9},
	{Time: "20:00", Power: 0.4},
}

var monthlyEnergySeries = []MonthlyEnergy{
	{Month: "Jan", Energy: 320},
	{Month: "Feb", Energy: 380},
	{Month: "Mar", Energy: 450},
	{Month: "Apr", Energy: 510},
	{Month: "May", Energy: 580},
	{Month: "Jun", Energy: 620},
	{Month: "Jul", Energy: 640},
	{Month: "Aug", Energy: 600},
	{Month: "Sep", Energy: 530},
	{Month: "Oct", Energy: 450},
	{Month: "Nov", Energy: 360},
	{Month: "Dec", Energy: 310},
}

type DashboardUseCase struct {
	Users    repositories.UserRepository
	Devices  repositories.DeviceRepository
	Readings repositories.EnergyReadingRepository
}

func NewDashboardUseCase(users repositories.UserRepository, devices repositories.DeviceRepository, readings repositories.EnergyReadingRepository) *DashboardUseCase {
	return &DashboardUseCase{Users: users, Devices: devices, Readings: readings}
}

func summarize(d *entities.Device) DeviceSummary {
	return DeviceSummary{
		ID:           d.ID,
		Name:         d.Name,
		Technology:   d.Technology,
		SystemSizeKW: d.SystemSizeKW,
		LocationLat:  d.LocationLat,
		LocationLon:  d.LocationLon,
	}
}

// Dashboard assembles the page snapshot for an authorized user. userID must
// come from a verified session, never from the client.
func (uc *DashboardUseCase) Dashboard(userID string) (*DashboardData, error) {
	device, err := uc.Devices.FirstForUser(userID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		// A user without devices still gets a rendered page
		return &DashboardData{
			Device:         DeviceSummary{ID: "N/A", Name: "No Device", Technology: "N/A"},
			LatestReading:  nil,
			HistoricalData: []PowerSample{},
			MonthlyData:    []MonthlyEnergy{},
		}, nil
	}

	latest, err := uc.Readings.LatestForDevice(device.ID)
	if err != nil {
		return nil, err
	}

	var snapshot *ReadingSnapshot
	if latest != nil {
		snapshot = &ReadingSnapshot{
			ActivePowerP: latest.ActivePowerP,
			Voltage:      latest.Voltage,
			Current:      latest.Current,
			PowerFactor:  latest.PowerFactor,
			Timestamp:    latest.Timestamp,
		}
	}

	return &DashboardData{
		Device:         summarize(device),
		LatestReading:  snapshot,
		HistoricalData: hourlyPowerSeries,
		MonthlyData:    monthlyEnergySeries,
	}, nil
}

// Profile returns the user's details plus every device they own. A session
// whose user no longer exists yields ErrUserNotFound; callers treat it
// exactly like a missing session.
func (uc *DashboardUseCase) Profile(userID string) (*ProfileData, error) {
	user, err := uc.Users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	devices, err := uc.Devices.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]DeviceSummary, 0, len(devices))
	for i := range devices {
		summaries = append(summaries, summarize(&devices[i]))
	}
	return &ProfileData{Name: user.Name, Email: user.Email, Devices: summaries}, nil
}
