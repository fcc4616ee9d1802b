package cache

import (
	"sync"

	"energy-dashboard/entities"
)

// ReadingBuffer holds accepted readings in memory until the ingest service
// bulk-inserts them. It also remembers the newest reading per device so the
// live feed can answer without touching the store.
type ReadingBuffer struct {
	mu      sync.RWMutex
	pending []entities.EnergyReading
	latest  map[string]entities.EnergyReading // deviceID -> newest buffered reading
}

func NewReadingBuffer() *ReadingBuffer {
	return &ReadingBuffer{
		pending: make([]entities.EnergyReading, 0),
		latest:  make(map[string]entities.EnergyReading),
	}
}

// Add appends a reading to the pending batch.
func (b *ReadingBuffer) Add(reading entities.EnergyReading) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, reading)

	if last, ok := b.latest[reading.DeviceID]; !ok || reading.Timestamp.After(last.Timestamp) {
		b.latest[reading.DeviceID] = reading
	}
}

// Drain removes and returns all pending readings. The per-device latest
// entries survive a drain; they describe state, not the batch.
func (b *ReadingBuffer) Drain() []entities.EnergyReading {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.pending
	b.pending = make([]entities.EnergyReading, 0)
	return out
}

// Len returns the number of pending readings.
func (b *ReadingBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.pending)
}

// TrimTo drops the oldest pending readings until at most max remain and
// returns how many were dropped.
func (b *ReadingBuffer) TrimTo(max int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if max < 0 || len(b.pending) <= max {
		return 0
	}
	dropped := len(b.pending) - max
	b.pending = append(make([]entities.EnergyReading, 0, max), b.pending[dropped:]...)
	return dropped
}

// Latest returns the newest reading seen for a device since startup.
func (b *ReadingBuffer) Latest(deviceID string) (entities.EnergyReading, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.latest[deviceID]
	return r, ok
}
