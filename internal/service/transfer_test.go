package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltswap/voltswap/internal/domain"
)

// swapYard sets up the scenario used throughout: battery b1 charging at s1,
// destination s2 active with capacity 5 and 4 occupied slots.
func swapYard() *memStore {
	store := newMemStore()
	store.addStation(domain.Station{ID: "s1", Name: "Harbor North", Capacity: 10, Status: domain.StationActive})
	store.addStation(domain.Station{ID: "s2", Name: "Market Square", Capacity: 5, Status: domain.StationActive})
	store.addBattery(domain.Battery{ID: "b1", Code: "BT-001", Status: domain.BatteryCharging, StationID: "s1"})
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("occupied-%d", i)
		store.addBattery(domain.Battery{ID: id, Code: "BT-1" + id, Status: domain.BatteryFull, StationID: "s2"})
	}
	return store
}

func newTransferService(store *memStore) *TransferService {
	return NewTransferService(store, NewStatusPolicy(nil))
}

func TestInitiateMovesBatteryAndRecords(t *testing.T) {
	store := swapYard()
	svc := newTransferService(store)

	rec, err := svc.Initiate(context.Background(), TransferInput{
		BatteryID:   "b1",
		ToStationID: "s2",
		Reason:      "restock",
		ActorID:     "ops-7",
	})
	require.NoError(t, err)

	b := store.battery("b1")
	assert.Equal(t, "s2", b.StationID)
	assert.Equal(t, domain.BatteryCharging, b.Status, "relocation must not reset operational status")

	assert.Equal(t, "b1", rec.BatteryID)
	assert.Equal(t, "s1", rec.FromStationID)
	assert.Equal(t, "s2", rec.ToStationID)
	assert.Equal(t, domain.TransferCompleted, rec.Status, "declared status defaults to completed")
	assert.Equal(t, "ops-7", rec.ActorID)
	assert.Len(t, store.transfers, 1)
}

func TestInitiateRejectsWhenDestinationFills(t *testing.T) {
	store := swapYard()
	store.addBattery(domain.Battery{ID: "b2", Code: "BT-002", Status: domain.BatteryFull, StationID: "s1"})
	svc := newTransferService(store)

	_, err := svc.Initiate(context.Background(), TransferInput{
		BatteryID: "b1", ToStationID: "s2", Reason: "restock", ActorID: "ops-7",
	})
	require.NoError(t, err)

	// s2 now holds 5 of 5; the next inbound transfer must see the new count.
	_, err = svc.Initiate(context.Background(), TransferInput{
		BatteryID: "b2", ToStationID: "s2", Reason: "restock", ActorID: "ops-7",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindCapacityExceeded, domain.KindOf(err))

	var e *domain.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 5, e.Current)
	assert.Equal(t, 5, e.Capacity)
	assert.Equal(t, "s1", store.battery("b2").StationID)
}

func TestInitiateCapacityUnderConcurrency(t *testing.T) {
	store := swapYard()
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("extra-%d", i)
		store.addBattery(domain.Battery{ID: id, Code: "BT-2" + id, Status: domain.BatteryFull, StationID: "s1"})
	}
	svc := newTransferService(store)

	// One free slot at s2, four contenders.
	ids := []string{"b1", "extra-0", "extra-1", "extra-2"}
	var wg sync.WaitGroup
	results := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, results[i] = svc.Initiate(context.Background(), TransferInput{
				BatteryID: id, ToStationID: "s2", Reason: "restock", ActorID: "ops-7",
			})
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, domain.KindCapacityExceeded, domain.KindOf(err))
		}
	}
	assert.Equal(t, 1, succeeded)

	count := 0
	for _, id := range []string{"b1", "extra-0", "extra-1", "extra-2", "occupied-0", "occupied-1", "occupied-2", "occupied-3"} {
		if store.battery(id).StationID == "s2" {
			count++
		}
	}
	assert.Equal(t, 5, count, "committed occupancy must never exceed capacity")
}

func TestInitiateRollsBackWhenRecordingFails(t *testing.T) {
	store := swapYard()
	store.insertErr = domain.StorageError("insert transfer", errors.New("connection reset"))
	svc := newTransferService(store)

	_, err := svc.Initiate(context.Background(), TransferInput{
		BatteryID: "b1", ToStationID: "s2", Reason: "restock", ActorID: "ops-7",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindStorageUnavailable, domain.KindOf(err))

	b := store.battery("b1")
	assert.Equal(t, "s1", b.StationID, "battery mutation must not survive a failed record")
	assert.Equal(t, domain.BatteryCharging, b.Status)
	assert.Empty(t, store.transfers)
}

func TestInitiateInputValidation(t *testing.T) {
	store := swapYard()
	svc := newTransferService(store)

	tests := []struct {
		name     string
		in       TransferInput
		wantKind domain.ErrorKind
	}{
		{
			name:     "missing actor",
			in:       TransferInput{BatteryID: "b1", ToStationID: "s2", Reason: "restock"},
			wantKind: domain.KindUnauthenticated,
		},
		{
			name:     "missing battery",
			in:       TransferInput{ToStationID: "s2", Reason: "restock", ActorID: "ops-7"},
			wantKind: domain.KindInvalidRequest,
		},
		{
			name:     "missing destination",
			in:       TransferInput{BatteryID: "b1", Reason: "restock", ActorID: "ops-7"},
			wantKind: domain.KindInvalidRequest,
		},
		{
			name:     "missing reason",
			in:       TransferInput{BatteryID: "b1", ToStationID: "s2", ActorID: "ops-7"},
			wantKind: domain.KindInvalidRequest,
		},
		{
			name:     "invalid declared status",
			in:       TransferInput{BatteryID: "b1", ToStationID: "s2", Reason: "restock", Status: "done", ActorID: "ops-7"},
			wantKind: domain.KindInvalidRequest,
		},
		{
			name:     "unknown battery",
			in:       TransferInput{BatteryID: "ghost", ToStationID: "s2", Reason: "restock", ActorID: "ops-7"},
			wantKind: domain.KindNotFound,
		},
		{
			name:     "unknown station",
			in:       TransferInput{BatteryID: "b1", ToStationID: "ghost", Reason: "restock", ActorID: "ops-7"},
			wantKind: domain.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Initiate(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, domain.KindOf(err))
			assert.Empty(t, store.transfers, "no writes on rejected transfer")
		})
	}
}

func TestInitiateRejectsBatteryInUse(t *testing.T) {
	store := swapYard()
	store.addBattery(domain.Battery{ID: "b3", Code: "BT-003", Status: domain.BatteryInUse, StationID: "s1"})
	svc := newTransferService(store)

	_, err := svc.Initiate(context.Background(), TransferInput{
		BatteryID: "b3", ToStationID: "s2", Reason: "restock", ActorID: "ops-7",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidState, domain.KindOf(err))
}

func TestInitiateRejectsSameStation(t *testing.T) {
	store := swapYard()
	svc := newTransferService(store)

	_, err := svc.Initiate(context.Background(), TransferInput{
		BatteryID: "occupied-0", ToStationID: "s2", Reason: "restock", ActorID: "ops-7",
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidRequest, domain.KindOf(err))
}

func TestInitiateMaintenanceReasonReclassifiesBattery(t *testing.T) {
	store := swapYard()
	svc := newTransferService(store)

	rec, err := svc.Initiate(context.Background(), TransferInput{
		BatteryID: "b1", ToStationID: "s2", Reason: "cell repair after inspection", ActorID: "ops-7",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BatteryMaintenance, store.battery("b1").Status)
	// The record keeps the declared transfer status; the two status fields
	// have different vocabularies.
	assert.Equal(t, domain.TransferCompleted, rec.Status)
}

func TestInitiatePendingTransferKeepsBatteryStatus(t *testing.T) {
	store := swapYard()
	svc := newTransferService(store)

	rec, err := svc.Initiate(context.Background(), TransferInput{
		BatteryID: "b1", ToStationID: "s2", Reason: "repair", Status: "in_transit", ActorID: "ops-7",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransferInTransit, rec.Status)
	assert.Equal(t, domain.BatteryCharging, store.battery("b1").Status,
		"maintenance classification applies to completed transfers only")
}

func TestInitiateNotifiesAfterCommit(t *testing.T) {
	store := swapYard()
	svc := newTransferService(store)

	var notified []*domain.TransferRecord
	svc.AddNotifier(notifierFunc(func(rec *domain.TransferRecord, _ *domain.Battery, _ *domain.Station, _ int) {
		notified = append(notified, rec)
	}))

	_, err := svc.Initiate(context.Background(), TransferInput{
		BatteryID: "b1", ToStationID: "s2", Reason: "restock", ActorID: "ops-7",
	})
	require.NoError(t, err)
	require.Len(t, notified, 1)

	// Rejected transfers never notify.
	_, err = svc.Initiate(context.Background(), TransferInput{
		BatteryID: "ghost", ToStationID: "s2", Reason: "restock", ActorID: "ops-7",
	})
	require.Error(t, err)
	assert.Len(t, notified, 1)
}

type notifierFunc func(rec *domain.TransferRecord, battery *domain.Battery, dest *domain.Station, destCount int)

func (f notifierFunc) TransferRecorded(rec *domain.TransferRecord, battery *domain.Battery, dest *domain.Station, destCount int) {
	f(rec, battery, dest, destCount)
}
