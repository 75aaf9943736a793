package main

import (
	"encoding/json"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/voltswap/voltswap/internal/config"
)

type reading struct {
	BatteryID     string    `json:"battery_id"`
	ChargeLevel   int       `json:"charge_level"`
	HealthPercent int       `json:"health_percent"`
	CycleCount    int       `json:"cycle_count"`
	RecordedAt    time.Time `json:"recorded_at"`
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	for i := 0; i < 100; i++ {
		r := reading{
			BatteryID:     "battery-001",
			ChargeLevel:   20 + rand.Intn(80),
			HealthPercent: 90 + rand.Intn(10),
			CycleCount:    100 + i,
			RecordedAt:    time.Now(),
		}
		payload, _ := json.Marshal(r)
		token := client.Publish("swap/telemetry", 0, false, payload)
		token.Wait()
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
