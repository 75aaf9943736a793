package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/voltswap/voltswap/internal/domain"
)

const stationColumns = `id, name, address, capacity, status, created_at, updated_at`

// StationForUpdate loads a station and locks its row for the rest of the
// transaction. Holding this lock is what serializes concurrent capacity
// checks against the same destination. Returns (nil, nil) when absent.
func (t *Tx) StationForUpdate(ctx context.Context, id string) (*domain.Station, error) {
	var s domain.Station
	err := t.tx.GetContext(ctx, &s,
		`SELECT `+stationColumns+` FROM stations WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("load station", err)
	}
	return &s, nil
}

// CountBatteriesAtStation counts batteries currently assigned to a station,
// within the calling transaction's snapshot.
func (t *Tx) CountBatteriesAtStation(ctx context.Context, stationID string) (int, error) {
	var count int
	err := t.tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM batteries WHERE station_id = $1`, stationID)
	if err != nil {
		return 0, mapError("count batteries", err)
	}
	return count, nil
}

// StationOccupancy is a station with its derived battery count.
type StationOccupancy struct {
	domain.Station
	BatteryCount int `db:"battery_count" json:"battery_count"`
}

func (r *Repos) ListStations(ctx context.Context) ([]StationOccupancy, error) {
	var out []StationOccupancy
	err := r.db.SelectContext(ctx, &out, `
		SELECT s.id, s.name, s.address, s.capacity, s.status, s.created_at, s.updated_at,
			(SELECT COUNT(*) FROM batteries b WHERE b.station_id = s.id) AS battery_count
		FROM stations s ORDER BY s.name`)
	if err != nil {
		return nil, mapError("list stations", err)
	}
	return out, nil
}

func (r *Repos) ListBatteriesAtStation(ctx context.Context, stationID string) ([]domain.Battery, error) {
	var out []domain.Battery
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+batteryColumns+` FROM batteries WHERE station_id = $1 ORDER BY code`, stationID)
	if err != nil {
		return nil, mapError("list batteries", err)
	}
	return out, nil
}
