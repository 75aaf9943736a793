package domain

import "time"

type StationStatus string

const (
	StationActive   StationStatus = "active"
	StationInactive StationStatus = "inactive"
)

// Station is a physical site holding batteries in a fixed number of slots.
// Its battery count is derived from Battery.StationID, never stored.
type Station struct {
	ID        string        `db:"id" json:"id"`
	Name      string        `db:"name" json:"name"`
	Address   string        `db:"address" json:"address"`
	Capacity  int           `db:"capacity" json:"capacity"`
	Status    StationStatus `db:"status" json:"status"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt time.Time     `db:"updated_at" json:"updated_at"`
}
