package services

import (
	"encoding/json"
	"time"

	"energy-dashboard/cache"
	"energy-dashboard/entities"
	"energy-dashboard/repositories"

	"go.uber.org/zap"
)

// Broadcaster fans a payload out to a device's live-feed subscribers.
type Broadcaster interface {
	Broadcast(deviceID string, payload []byte)
}

// defaultMaxPending bounds the buffer during a store outage.
const defaultMaxPending = 10000

// ReadingIngestor accepts readings from the ingest endpoint, pushes them to
// live viewers immediately, and bulk-inserts them into the store on an
// interval.
type ReadingIngestor struct {
	buffer     *cache.ReadingBuffer
	readings   repositories.EnergyReadingRepository
	live       Broadcaster
	log        *zap.Logger
	interval   time.Duration
	maxPending int
}

func NewReadingIngestor(readings repositories.EnergyReadingRepository, live Broadcaster, logger *zap.Logger, interval time.Duration) *ReadingIngestor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &ReadingIngestor{
		buffer:     cache.NewReadingBuffer(),
		readings:   readings,
		live:       live,
		log:        logger,
		interval:   interval,
		maxPending: defaultMaxPending,
	}
}

// Start launches the background flush loop.
func (ing *ReadingIngestor) Start() {
	ticker := time.NewTicker(ing.interval)
	go func() {
		for range ticker.C {
			ing.Flush()
		}
	}()
}

// Add accepts a reading: buffered for the next flush and broadcast to any
// live viewers of its device.
func (ing *ReadingIngestor) Add(reading entities.EnergyReading) {
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now().UTC()
	}
	ing.buffer.Add(reading)

	if ing.live != nil {
		if payload, err := json.Marshal(reading); err == nil {
			ing.live.Broadcast(reading.DeviceID, payload)
		}
	}
}

// Flush bulk-inserts everything buffered so far. Failed batches are
// re-queued so a store hiccup loses nothing.
func (ing *ReadingIngestor) Flush() {
	batch := ing.buffer.Drain()
	if len(batch) == 0 {
		return
	}
	if err := ing.readings.CreateBatch(batch); err != nil {
		ing.log.Error("bulk insert of readings failed, re-queueing batch",
			zap.Int("count", len(batch)), zap.Error(err))
		for _, r := range batch {
			ing.buffer.Add(r)
		}
		// A long outage must not grow the buffer without bound
		if dropped := ing.buffer.TrimTo(ing.maxPending); dropped > 0 {
			ing.log.Warn("reading buffer over capacity, dropped oldest readings",
				zap.Int("dropped", dropped), zap.Int("capacity", ing.maxPending))
		}
		return
	}
	ing.log.Info("flushed buffered readings", zap.Int("count", len(batch)))
}

// Latest returns the newest reading ingested for a device since startup,
// without touching the store.
func (ing *ReadingIngestor) Latest(deviceID string) (entities.EnergyReading, bool) {
	return ing.buffer.Latest(deviceID)
}

// Pending returns the number of readings awaiting flush.
func (ing *ReadingIngestor) Pending() int {
	return ing.buffer.Len()
}
