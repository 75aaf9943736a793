package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voltswap/voltswap/internal/cloud"
	"github.com/voltswap/voltswap/internal/domain"
	"github.com/voltswap/voltswap/internal/repository"
)

// TelemetryService applies battery charge/health readings arriving over MQTT.
// It touches only telemetry columns; station assignment belongs to the
// transfer engine.
type TelemetryService struct {
	repos  *repository.Repos
	dynamo *cloud.DynamoDBClient
}

func NewTelemetryService(repos *repository.Repos, dynamo *cloud.DynamoDBClient) *TelemetryService {
	return &TelemetryService{repos: repos, dynamo: dynamo}
}

type telemetryReading struct {
	BatteryID     string    `json:"battery_id"`
	ChargeLevel   int       `json:"charge_level"`
	HealthPercent int       `json:"health_percent"`
	CycleCount    int       `json:"cycle_count"`
	RecordedAt    time.Time `json:"recorded_at"`
}

func (s *TelemetryService) FromMQTT(topic string, payload []byte) error {
	var r telemetryReading
	if err := json.Unmarshal(payload, &r); err != nil {
		return err
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now().UTC()
	}

	ctx := context.Background()
	b, err := s.repos.UpdateBatteryTelemetry(ctx, r.BatteryID, r.ChargeLevel, r.HealthPercent, r.CycleCount, r.RecordedAt)
	if err != nil {
		return err
	}

	if s.dynamo != nil {
		if err := s.dynamo.PutSnapshot(b, r.RecordedAt); err != nil {
			log.Error().Err(err).Str("battery_id", b.ID).Msg("snapshot write failed")
		}
	}
	return nil
}

// History returns a battery's snapshot readings within the window, newest
// first. The battery is resolved in the relational store first so unknown ids
// surface as not_found rather than an empty history.
func (s *TelemetryService) History(ctx context.Context, batteryID string, window time.Duration) ([]cloud.BatterySnapshot, error) {
	if strings.TrimSpace(batteryID) == "" {
		return nil, domain.InvalidRequestf("battery id is required")
	}
	if s.dynamo == nil {
		return nil, domain.StorageError("battery history requires cloud services", nil)
	}

	b, err := s.repos.GetBattery(ctx, batteryID)
	if err != nil {
		return nil, err
	}

	snapshots, err := s.dynamo.GetRecentSnapshots(b.ID, window)
	if err != nil {
		return nil, domain.StorageError("load battery history", err)
	}
	if snapshots == nil {
		snapshots = []cloud.BatterySnapshot{}
	}
	return snapshots, nil
}
