package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/voltswap/voltswap/internal/domain"
)

const batteryColumns = `id, code, model, capacity_kwh, voltage, charge_level, status,
	health_percent, cycle_count, last_charged_at, station_id, created_at, updated_at`

// BatteryForUpdate loads a battery and locks its row. Returns (nil, nil) when
// the battery does not exist.
func (t *Tx) BatteryForUpdate(ctx context.Context, id string) (*domain.Battery, error) {
	var b domain.Battery
	err := t.tx.GetContext(ctx, &b,
		`SELECT `+batteryColumns+` FROM batteries WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("load battery", err)
	}
	return &b, nil
}

// MoveBattery reassigns a battery to a station and sets its operational status.
func (t *Tx) MoveBattery(ctx context.Context, batteryID, stationID string, status domain.BatteryStatus) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE batteries SET station_id = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		batteryID, stationID, status)
	if err != nil {
		return mapError("move battery", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundf("battery %s not found", batteryID)
	}
	return nil
}

// GetBattery is a read outside any write transaction.
func (r *Repos) GetBattery(ctx context.Context, id string) (*domain.Battery, error) {
	var b domain.Battery
	err := r.db.GetContext(ctx, &b,
		`SELECT `+batteryColumns+` FROM batteries WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("battery %s not found", id)
	}
	if err != nil {
		return nil, mapError("get battery", err)
	}
	return &b, nil
}

// UpdateBatteryTelemetry applies a charge/health/cycle reading and returns the
// updated battery.
func (r *Repos) UpdateBatteryTelemetry(ctx context.Context, id string, chargeLevel, healthPercent, cycleCount int, recordedAt time.Time) (*domain.Battery, error) {
	var b domain.Battery
	err := r.db.GetContext(ctx, &b, `
		UPDATE batteries
		SET charge_level = $2, health_percent = $3, cycle_count = $4, last_charged_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+batteryColumns,
		id, chargeLevel, healthPercent, cycleCount, recordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("battery %s not found", id)
	}
	if err != nil {
		return nil, mapError("update battery telemetry", err)
	}
	return &b, nil
}
