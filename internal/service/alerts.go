package service

import (
	"github.com/rs/zerolog/log"

	"github.com/voltswap/voltswap/internal/cloud"
	"github.com/voltswap/voltswap/internal/domain"
)

// AlertNotifier pushes SNS notifications for transfers operators care about:
// a battery entering maintenance, or a station filling its last slot. Publish
// failures are logged and dropped; the transfer already committed.
type AlertNotifier struct {
	sns *cloud.SNSClient
}

func NewAlertNotifier(sns *cloud.SNSClient) *AlertNotifier {
	return &AlertNotifier{sns: sns}
}

func (n *AlertNotifier) TransferRecorded(rec *domain.TransferRecord, battery *domain.Battery, dest *domain.Station, destCount int) {
	if battery.Status == domain.BatteryMaintenance {
		if err := n.sns.SendMaintenanceAlert(battery.Code, dest.Name, rec.Reason); err != nil {
			log.Error().Err(err).Str("battery_id", battery.ID).Msg("maintenance alert failed")
		}
	}
	if destCount >= dest.Capacity {
		if err := n.sns.SendCapacityAlert(dest.ID, dest.Name, destCount, dest.Capacity); err != nil {
			log.Error().Err(err).Str("station_id", dest.ID).Msg("capacity alert failed")
		}
	}
}
