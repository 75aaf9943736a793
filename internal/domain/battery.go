package domain

import "time"

// BatteryStatus is the operational status of a physical battery.
// It is distinct from TransferStatus, which describes a relocation record.
type BatteryStatus string

const (
	BatteryFull        BatteryStatus = "full"
	BatteryCharging    BatteryStatus = "charging"
	BatteryInUse       BatteryStatus = "in_use"
	BatteryMaintenance BatteryStatus = "maintenance"
	BatteryReserved    BatteryStatus = "reserved"
)

// Battery is a physical, swappable power unit tracked by the platform.
type Battery struct {
	ID            string        `db:"id" json:"id"`
	Code          string        `db:"code" json:"code"`
	Model         string        `db:"model" json:"model"`
	CapacityKWh   float64       `db:"capacity_kwh" json:"capacity_kwh"`
	Voltage       float64       `db:"voltage" json:"voltage"`
	ChargeLevel   int           `db:"charge_level" json:"charge_level"`
	Status        BatteryStatus `db:"status" json:"status"`
	HealthPercent int           `db:"health_percent" json:"health_percent"`
	CycleCount    int           `db:"cycle_count" json:"cycle_count"`
	LastChargedAt *time.Time    `db:"last_charged_at" json:"last_charged_at,omitempty"`
	StationID     string        `db:"station_id" json:"station_id"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}
