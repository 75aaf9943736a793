package service

import "github.com/voltswap/voltswap/internal/domain"

// CheckRelocation decides whether moving battery b to the destination station
// is legal. b and dest may be nil when the row does not exist; destCount is
// the number of batteries at the destination, read under the same lock used
// for the subsequent write. Checks run in a fixed order and the first
// violation wins. Pure: no I/O, no side effects.
func CheckRelocation(b *domain.Battery, destID string, dest *domain.Station, destCount int) error {
	if b == nil {
		return domain.NotFoundf("battery not found")
	}
	if b.Status == domain.BatteryInUse {
		return domain.InvalidStatef("battery %s is in use", b.ID)
	}
	if b.StationID == destID {
		return domain.InvalidRequestf("battery %s is already at station %s", b.ID, destID)
	}
	if dest == nil {
		return domain.NotFoundf("station %s not found", destID)
	}
	if dest.Status != domain.StationActive {
		return domain.InvalidStatef("destination station %s is not active", dest.ID)
	}
	if destCount >= dest.Capacity {
		return domain.CapacityExceeded(dest.ID, destCount, dest.Capacity)
	}
	return nil
}
