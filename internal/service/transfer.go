package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/voltswap/voltswap/internal/domain"
)

// Notifier observes transfers after they commit. Implementations run on the
// request path but cannot fail or undo the transfer.
type Notifier interface {
	TransferRecorded(rec *domain.TransferRecord, battery *domain.Battery, dest *domain.Station, destCount int)
}

// TransferService relocates batteries between stations. Every run is a single
// transaction: load with row locks, check invariants, resolve the new battery
// status, move the battery, append the audit record, commit. Any failure rolls
// the whole unit back; retries are the caller's responsibility.
type TransferService struct {
	store     domain.Store
	policy    *StatusPolicy
	notifiers []Notifier
}

func NewTransferService(store domain.Store, policy *StatusPolicy) *TransferService {
	return &TransferService{store: store, policy: policy}
}

func (s *TransferService) AddNotifier(n Notifier) {
	s.notifiers = append(s.notifiers, n)
}

// TransferInput carries one relocation request. ActorID comes from the
// authenticated caller, never from the request body.
type TransferInput struct {
	BatteryID   string
	ToStationID string
	Reason      string
	Note        string
	Status      string
	ActorID     string
}

func (in *TransferInput) validate() (domain.TransferStatus, error) {
	if strings.TrimSpace(in.ActorID) == "" {
		return "", domain.Unauthenticatedf("actor identity required")
	}
	if strings.TrimSpace(in.BatteryID) == "" {
		return "", domain.InvalidRequestf("battery_id is required")
	}
	if strings.TrimSpace(in.ToStationID) == "" {
		return "", domain.InvalidRequestf("to_station_id is required")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return "", domain.InvalidRequestf("reason is required")
	}
	return domain.ParseTransferStatus(strings.TrimSpace(in.Status))
}

// Initiate performs one battery relocation and returns the created audit
// record with denormalized battery and station names.
func (s *TransferService) Initiate(ctx context.Context, in TransferInput) (*domain.TransferRecord, error) {
	status, err := in.validate()
	if err != nil {
		return nil, err
	}

	var (
		rec       *domain.TransferRecord
		battery   *domain.Battery
		dest      *domain.Station
		destCount int
	)

	err = s.store.InTx(ctx, func(tx domain.Tx) error {
		b, err := tx.BatteryForUpdate(ctx, in.BatteryID)
		if err != nil {
			return err
		}

		// The destination row lock serializes capacity checks: a concurrent
		// transfer into the same station blocks here until this one commits.
		st, err := tx.StationForUpdate(ctx, in.ToStationID)
		if err != nil {
			return err
		}

		count := 0
		if st != nil {
			if count, err = tx.CountBatteriesAtStation(ctx, st.ID); err != nil {
				return err
			}
		}

		if err := CheckRelocation(b, in.ToStationID, st, count); err != nil {
			return err
		}

		newStatus := s.policy.Resolve(b.Status, status, in.Reason)
		origin := b.StationID

		if err := tx.MoveBattery(ctx, b.ID, st.ID, newStatus); err != nil {
			return err
		}

		rec = &domain.TransferRecord{
			ID:            uuid.NewString(),
			BatteryID:     b.ID,
			FromStationID: origin,
			ToStationID:   st.ID,
			Reason:        strings.TrimSpace(in.Reason),
			Note:          strings.TrimSpace(in.Note),
			ActorID:       in.ActorID,
			Status:        status,
			CreatedAt:     time.Now().UTC(),
			BatteryCode:   b.Code,
			ToStationName: st.Name,
		}
		if err := tx.InsertTransfer(ctx, rec); err != nil {
			return err
		}

		b.StationID = st.ID
		b.Status = newStatus
		battery, dest, destCount = b, st, count+1
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("transfer_id", rec.ID).
		Str("battery_id", rec.BatteryID).
		Str("from_station", rec.FromStationID).
		Str("to_station", rec.ToStationID).
		Str("battery_status", string(battery.Status)).
		Str("actor", rec.ActorID).
		Msg("battery transferred")

	for _, n := range s.notifiers {
		n.TransferRecorded(rec, battery, dest, destCount)
	}

	// Re-read outside the transaction to fill the origin station name join.
	if full, err := s.store.GetTransfer(ctx, rec.ID); err == nil {
		return full, nil
	}
	return rec, nil
}
