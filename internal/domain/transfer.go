package domain

import "time"

// TransferStatus is the declared status of a relocation record. It is a
// separate vocabulary from BatteryStatus and must never be assigned to one.
type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferInTransit TransferStatus = "in_transit"
	TransferCompleted TransferStatus = "completed"
	TransferCancelled TransferStatus = "cancelled"
)

// ParseTransferStatus validates a caller-supplied transfer status. An empty
// value defaults to completed.
func ParseTransferStatus(s string) (TransferStatus, error) {
	switch TransferStatus(s) {
	case "":
		return TransferCompleted, nil
	case TransferPending, TransferInTransit, TransferCompleted, TransferCancelled:
		return TransferStatus(s), nil
	}
	return "", InvalidRequestf("invalid transfer status %q", s)
}

// TransferRecord is one immutable audit entry for a battery relocation.
type TransferRecord struct {
	ID            string         `db:"id" json:"id"`
	BatteryID     string         `db:"battery_id" json:"battery_id"`
	FromStationID string         `db:"from_station_id" json:"from_station_id"`
	ToStationID   string         `db:"to_station_id" json:"to_station_id"`
	Reason        string         `db:"reason" json:"reason"`
	Note          string         `db:"note" json:"note,omitempty"`
	ActorID       string         `db:"actor_id" json:"actor_id"`
	Status        TransferStatus `db:"status" json:"status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`

	// Joined fields (not always populated).
	BatteryCode     string `db:"battery_code" json:"battery_code,omitempty"`
	FromStationName string `db:"from_station_name" json:"from_station_name,omitempty"`
	ToStationName   string `db:"to_station_name" json:"to_station_name,omitempty"`
}

// TransferFilter narrows a transfer listing. Zero values mean "any".
type TransferFilter struct {
	BatteryID     string
	FromStationID string
	ToStationID   string
	Status        TransferStatus
	Limit         int
	Offset        int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// TransferPage is one page of transfer records, newest first.
type TransferPage struct {
	Records    []TransferRecord `json:"records"`
	Pagination Pagination       `json:"pagination"`
}
