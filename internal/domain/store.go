package domain

import "context"

// Tx is the write-side view of the store inside one transaction. ForUpdate
// loads take a row lock held until commit or rollback; absent rows return
// (nil, nil) so the invariant checker owns the not-found classification.
type Tx interface {
	BatteryForUpdate(ctx context.Context, id string) (*Battery, error)
	StationForUpdate(ctx context.Context, id string) (*Station, error)
	CountBatteriesAtStation(ctx context.Context, stationID string) (int, error)
	MoveBattery(ctx context.Context, batteryID, stationID string, status BatteryStatus) error
	InsertTransfer(ctx context.Context, rec *TransferRecord) error
}

// Store is the engine's persistence boundary.
type Store interface {
	// InTx runs fn inside one transaction. A non-nil error from fn rolls the
	// transaction back and is returned unchanged.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	ListTransfers(ctx context.Context, f TransferFilter) ([]TransferRecord, int64, error)
	GetTransfer(ctx context.Context, id string) (*TransferRecord, error)
}
