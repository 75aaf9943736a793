package service

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/voltswap/voltswap/internal/cloud"
	"github.com/voltswap/voltswap/internal/config"
	"github.com/voltswap/voltswap/internal/repository"
)

type Services struct {
	Repos     *repository.Repos
	Transfers *TransferService
	Queries   *QueryService
	Telemetry *TelemetryService
	Exports   *ExportService
}

// New wires the engine onto one store handle. Cloud collaborators are
// optional: when disabled the engine runs with alerts, snapshots and exports
// switched off.
func New(db *sqlx.DB) *Services {
	repos := repository.New(db)
	policy := NewStatusPolicy(config.MaintenanceKeywords())
	transfers := NewTransferService(repos, policy)

	var dynamo *cloud.DynamoDBClient
	var s3 *cloud.S3Client

	if config.UseCloudServices() {
		if config.SNSTopicArn() != "" {
			sns, err := cloud.NewSNSClient(config.AWSRegion(), config.SNSTopicArn())
			if err != nil {
				log.Error().Err(err).Msg("sns client init failed")
			} else {
				transfers.AddNotifier(NewAlertNotifier(sns))
			}
		}

		var err error
		if dynamo, err = cloud.NewDynamoDBClient(config.AWSRegion(), config.DynamoTable()); err != nil {
			log.Error().Err(err).Msg("dynamodb client init failed")
			dynamo = nil
		}
		if s3, err = cloud.NewS3Client(config.AWSRegion(), config.S3Bucket()); err != nil {
			log.Error().Err(err).Msg("s3 client init failed")
			s3 = nil
		}
	}

	return &Services{
		Repos:     repos,
		Transfers: transfers,
		Queries:   NewQueryService(repos),
		Telemetry: NewTelemetryService(repos, dynamo),
		Exports:   NewExportService(repos, s3),
	}
}
