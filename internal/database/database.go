package database

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

func Connect() (*sqlx.DB, error) {
	dsn := viper.GetString("DB_DSN")
	return sqlx.Connect("pgx", dsn)
}

// Migrate applies the schema. Statements are idempotent so startup can run
// them unconditionally.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	migrations := []string{
		migrationCreateStations,
		migrationCreateBatteries,
		migrationCreateTransfers,
	}

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("execute migration: %w", err)
		}
	}

	return nil
}

const migrationCreateStations = `
CREATE TABLE IF NOT EXISTS stations (
    id TEXT PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    capacity INT NOT NULL CHECK (capacity > 0),
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`

const migrationCreateBatteries = `
CREATE TABLE IF NOT EXISTS batteries (
    id TEXT PRIMARY KEY,
    code VARCHAR(50) NOT NULL,
    model VARCHAR(50) NOT NULL DEFAULT '',
    capacity_kwh DOUBLE PRECISION NOT NULL DEFAULT 0,
    voltage DOUBLE PRECISION NOT NULL DEFAULT 0,
    charge_level INT NOT NULL DEFAULT 0 CHECK (charge_level BETWEEN 0 AND 100),
    status VARCHAR(20) NOT NULL DEFAULT 'full',
    health_percent INT NOT NULL DEFAULT 100 CHECK (health_percent BETWEEN 0 AND 100),
    cycle_count INT NOT NULL DEFAULT 0,
    last_charged_at TIMESTAMP WITH TIME ZONE,
    station_id TEXT NOT NULL REFERENCES stations(id),
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    UNIQUE (station_id, code)
);
CREATE INDEX IF NOT EXISTS idx_batteries_station_id ON batteries(station_id);
`

const migrationCreateTransfers = `
CREATE TABLE IF NOT EXISTS transfers (
    id TEXT PRIMARY KEY,
    battery_id TEXT NOT NULL REFERENCES batteries(id),
    from_station_id TEXT NOT NULL REFERENCES stations(id),
    to_station_id TEXT NOT NULL REFERENCES stations(id),
    reason TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    actor_id TEXT NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'completed',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    CHECK (from_station_id <> to_station_id)
);
CREATE INDEX IF NOT EXISTS idx_transfers_battery_id ON transfers(battery_id);
CREATE INDEX IF NOT EXISTS idx_transfers_created_at ON transfers(created_at DESC);
`
