package service

import (
	"context"
	"sort"
	"sync"

	"github.com/voltswap/voltswap/internal/domain"
)

// memStore is an in-memory domain.Store for engine tests. InTx serializes on
// a mutex the way row locks serialize concurrent transfers, and restores a
// snapshot when the callback fails, mirroring a rollback.
type memStore struct {
	mu        sync.Mutex
	batteries map[string]domain.Battery
	stations  map[string]domain.Station
	transfers []domain.TransferRecord

	moveErr   error
	insertErr error
}

func newMemStore() *memStore {
	return &memStore{
		batteries: map[string]domain.Battery{},
		stations:  map[string]domain.Station{},
	}
}

func (m *memStore) addBattery(b domain.Battery) { m.batteries[b.ID] = b }
func (m *memStore) addStation(s domain.Station) { m.stations[s.ID] = s }

func (m *memStore) battery(id string) domain.Battery { return m.batteries[id] }

func (m *memStore) InTx(_ context.Context, fn func(tx domain.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapBatteries := make(map[string]domain.Battery, len(m.batteries))
	for k, v := range m.batteries {
		snapBatteries[k] = v
	}
	snapTransfers := append([]domain.TransferRecord(nil), m.transfers...)

	if err := fn(&memTx{s: m}); err != nil {
		m.batteries = snapBatteries
		m.transfers = snapTransfers
		return err
	}
	return nil
}

type memTx struct {
	s *memStore
}

func (t *memTx) BatteryForUpdate(_ context.Context, id string) (*domain.Battery, error) {
	b, ok := t.s.batteries[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (t *memTx) StationForUpdate(_ context.Context, id string) (*domain.Station, error) {
	s, ok := t.s.stations[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (t *memTx) CountBatteriesAtStation(_ context.Context, stationID string) (int, error) {
	n := 0
	for _, b := range t.s.batteries {
		if b.StationID == stationID {
			n++
		}
	}
	return n, nil
}

func (t *memTx) MoveBattery(_ context.Context, batteryID, stationID string, status domain.BatteryStatus) error {
	if t.s.moveErr != nil {
		return t.s.moveErr
	}
	b, ok := t.s.batteries[batteryID]
	if !ok {
		return domain.NotFoundf("battery %s not found", batteryID)
	}
	b.StationID = stationID
	b.Status = status
	t.s.batteries[batteryID] = b
	return nil
}

func (t *memTx) InsertTransfer(_ context.Context, rec *domain.TransferRecord) error {
	if t.s.insertErr != nil {
		return t.s.insertErr
	}
	t.s.transfers = append(t.s.transfers, *rec)
	return nil
}

func (m *memStore) ListTransfers(_ context.Context, f domain.TransferFilter) ([]domain.TransferRecord, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []domain.TransferRecord
	for _, rec := range m.transfers {
		if f.BatteryID != "" && rec.BatteryID != f.BatteryID {
			continue
		}
		if f.FromStationID != "" && rec.FromStationID != f.FromStationID {
			continue
		}
		if f.ToStationID != "" && rec.ToStationID != f.ToStationID {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		matched = append(matched, rec)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return nil, total, nil
	}
	end := len(matched)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}

func (m *memStore) GetTransfer(_ context.Context, id string) (*domain.TransferRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.transfers {
		if m.transfers[i].ID == id {
			rec := m.transfers[i]
			return &rec, nil
		}
	}
	return nil, domain.NotFoundf("transfer %s not found", id)
}
