package service

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/voltswap/voltswap/internal/domain"
)

// TransferEventTopic carries one message per committed transfer.
const TransferEventTopic = "swap/transfers"

// TransferEventPublisher mirrors committed transfers onto the MQTT bus for
// downstream consumers (dashboards, station firmware).
type TransferEventPublisher struct {
	client mqtt.Client
}

func NewTransferEventPublisher(client mqtt.Client) *TransferEventPublisher {
	return &TransferEventPublisher{client: client}
}

type transferEvent struct {
	TransferID    string    `json:"transfer_id"`
	BatteryID     string    `json:"battery_id"`
	FromStationID string    `json:"from_station_id"`
	ToStationID   string    `json:"to_station_id"`
	Status        string    `json:"status"`
	BatteryStatus string    `json:"battery_status"`
	Timestamp     time.Time `json:"timestamp"`
}

func (p *TransferEventPublisher) TransferRecorded(rec *domain.TransferRecord, battery *domain.Battery, dest *domain.Station, destCount int) {
	payload, err := json.Marshal(transferEvent{
		TransferID:    rec.ID,
		BatteryID:     rec.BatteryID,
		FromStationID: rec.FromStationID,
		ToStationID:   rec.ToStationID,
		Status:        string(rec.Status),
		BatteryStatus: string(battery.Status),
		Timestamp:     rec.CreatedAt,
	})
	if err != nil {
		log.Error().Err(err).Msg("marshal transfer event")
		return
	}

	if token := p.client.Publish(TransferEventTopic, 0, false, payload); token.Wait() && token.Error() != nil {
		log.Error().Err(token.Error()).Str("transfer_id", rec.ID).Msg("publish transfer event")
	}
}
