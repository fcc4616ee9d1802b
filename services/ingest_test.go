package services

import (
	"errors"
	"testing"
	"time"

	"energy-dashboard/entities"

	"go.uber.org/zap"
)

type fakeReadingRepo struct {
	batches  [][]entities.EnergyReading
	failNext bool
}

func (f *fakeReadingRepo) Create(reading *entities.EnergyReading) error { return nil }

func (f *fakeReadingRepo) CreateBatch(readings []entities.EnergyReading) error {
	if f.failNext {
		f.failNext = false
		return errors.New("store unavailable")
	}
	f.batches = append(f.batches, readings)
	return nil
}

func (f *fakeReadingRepo) GetByDeviceID(deviceID string, limit int) ([]entities.EnergyReading, error) {
	return nil, nil
}

func (f *fakeReadingRepo) LatestForDevice(deviceID string) (*entities.EnergyReading, error) {
	return nil, nil
}

type fakeBroadcaster struct {
	sent map[string][][]byte
}

func (f *fakeBroadcaster) Broadcast(deviceID string, payload []byte) {
	if f.sent == nil {
		f.sent = make(map[string][][]byte)
	}
	f.sent[deviceID] = append(f.sent[deviceID], payload)
}

func TestAddBroadcastsImmediately(t *testing.T) {
	repo := &fakeReadingRepo{}
	live := &fakeBroadcaster{}
	ing := NewReadingIngestor(repo, live, zap.NewNop(), time.Minute)

	ing.Add(entities.EnergyReading{DeviceID: "dev-1", ActivePowerP: 4.2})

	if len(live.sent["dev-1"]) != 1 {
		t.Errorf("expected 1 live broadcast, got %d", len(live.sent["dev-1"]))
	}
	if ing.Pending() != 1 {
		t.Errorf("expected 1 pending reading, got %d", ing.Pending())
	}
	if len(repo.batches) != 0 {
		t.Error("nothing should hit the store before a flush")
	}
}

func TestFlushPersistsBatch(t *testing.T) {
	repo := &fakeReadingRepo{}
	ing := NewReadingIngestor(repo, nil, zap.NewNop(), time.Minute)

	ing.Add(entities.EnergyReading{DeviceID: "dev-1"})
	ing.Add(entities.EnergyReading{DeviceID: "dev-1"})
	ing.Flush()

	if len(repo.batches) != 1 || len(repo.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2, got %+v", repo.batches)
	}
	if ing.Pending() != 0 {
		t.Errorf("buffer should be empty after flush, has %d", ing.Pending())
	}

	// An empty flush performs no insert
	ing.Flush()
	if len(repo.batches) != 1 {
		t.Error("empty flush should not insert")
	}
}

func TestFlushRequeuesOnFailure(t *testing.T) {
	repo := &fakeReadingRepo{failNext: true}
	ing := NewReadingIngestor(repo, nil, zap.NewNop(), time.Minute)

	ing.Add(entities.EnergyReading{DeviceID: "dev-1"})
	ing.Flush()

	if ing.Pending() != 1 {
		t.Fatalf("failed batch should be re-queued, pending=%d", ing.Pending())
	}

	ing.Flush()
	if len(repo.batches) != 1 || len(repo.batches[0]) != 1 {
		t.Errorf("retry should persist the re-queued reading, got %+v", repo.batches)
	}
}

func TestFlushBoundsBufferDuringOutage(t *testing.T) {
	repo := &fakeReadingRepo{failNext: true}
	ing := NewReadingIngestor(repo, nil, zap.NewNop(), time.Minute)
	ing.maxPending = 2

	ing.Add(entities.EnergyReading{DeviceID: "dev-1", ActivePowerP: 1.0})
	ing.Add(entities.EnergyReading{DeviceID: "dev-1", ActivePowerP: 2.0})
	ing.Add(entities.EnergyReading{DeviceID: "dev-1", ActivePowerP: 3.0})
	ing.Flush()

	if ing.Pending() != 2 {
		t.Fatalf("failed flush should re-queue at most maxPending, pending=%d", ing.Pending())
	}

	ing.Flush()
	if len(repo.batches) != 1 || len(repo.batches[0]) != 2 {
		t.Fatalf("retry should persist the capped batch, got %+v", repo.batches)
	}
	// The oldest reading is the one sacrificed
	if repo.batches[0][0].ActivePowerP != 2.0 || repo.batches[0][1].ActivePowerP != 3.0 {
		t.Errorf("expected the newest readings to survive, got %+v", repo.batches[0])
	}
}

func TestAddStampsMissingTimestamp(t *testing.T) {
	ing := NewReadingIngestor(&fakeReadingRepo{}, nil, zap.NewNop(), time.Minute)

	before := time.Now().UTC()
	ing.Add(entities.EnergyReading{DeviceID: "dev-1"})

	repo := &fakeReadingRepo{}
	ing.readings = repo
	ing.Flush()

	if len(repo.batches) != 1 {
		t.Fatal("expected a flushed batch")
	}
	stamped := repo.batches[0][0].Timestamp
	if stamped.Before(before) || stamped.After(time.Now().UTC()) {
		t.Errorf("missing timestamp should be stamped at ingest, got %v", stamped)
	}
}
