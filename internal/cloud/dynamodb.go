package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/voltswap/voltswap/internal/domain"
)

// DynamoDBClient wraps AWS DynamoDB for battery telemetry snapshots. Snapshots
// are a sidecar of the relational store for dashboards; transfer decisions
// never read them.
type DynamoDBClient struct {
	svc   *dynamodb.Client
	table string
	ctx   context.Context
}

// NewDynamoDBClient creates a new DynamoDB client instance
func NewDynamoDBClient(region, table string) (*DynamoDBClient, error) {
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &DynamoDBClient{
		svc:   dynamodb.NewFromConfig(cfg),
		table: table,
		ctx:   ctx,
	}, nil
}

// BatterySnapshot is the DynamoDB item for one telemetry reading.
type BatterySnapshot struct {
	BatteryID     string `dynamodbav:"batteryId"`
	Timestamp     int64  `dynamodbav:"timestamp"`
	StationID     string `dynamodbav:"stationId"`
	ChargeLevel   int    `dynamodbav:"chargeLevel"`
	HealthPercent int    `dynamodbav:"healthPercent"`
	CycleCount    int    `dynamodbav:"cycleCount"`
	Status        string `dynamodbav:"status"`
}

// PutSnapshot stores the battery's latest telemetry reading.
func (c *DynamoDBClient) PutSnapshot(b *domain.Battery, recordedAt time.Time) error {
	snapshot := BatterySnapshot{
		BatteryID:     b.ID,
		Timestamp:     recordedAt.Unix(),
		StationID:     b.StationID,
		ChargeLevel:   b.ChargeLevel,
		HealthPercent: b.HealthPercent,
		CycleCount:    b.CycleCount,
		Status:        string(b.Status),
	}

	item, err := attributevalue.MarshalMap(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	}

	if _, err := c.svc.PutItem(c.ctx, input); err != nil {
		return fmt.Errorf("failed to put item in DynamoDB: %w", err)
	}
	return nil
}

// GetRecentSnapshots retrieves a battery's readings within the given window,
// newest first.
func (c *DynamoDBClient) GetRecentSnapshots(batteryID string, window time.Duration) ([]BatterySnapshot, error) {
	startTime := time.Now().Add(-window).Unix()

	input := &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("batteryId = :bid AND #ts > :startTime"),
		ExpressionAttributeNames: map[string]string{
			"#ts": "timestamp",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":bid":       &types.AttributeValueMemberS{Value: batteryID},
			":startTime": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", startTime)},
		},
		ScanIndexForward: aws.Bool(false), // Sort descending (newest first)
	}

	result, err := c.svc.Query(c.ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query DynamoDB: %w", err)
	}

	var snapshots []BatterySnapshot
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshots: %w", err)
	}

	return snapshots, nil
}
