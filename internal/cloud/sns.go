package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSClient wraps AWS SNS for operational notifications.
type SNSClient struct {
	svc      *sns.Client
	topicArn string
	ctx      context.Context
}

// NewSNSClient creates a new SNS client instance
func NewSNSClient(region, topicArn string) (*SNSClient, error) {
	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
		ctx:      ctx,
	}, nil
}

// SendAlert publishes a notification to the configured topic.
func (c *SNSClient) SendAlert(subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	if _, err := c.svc.Publish(c.ctx, input); err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	return nil
}

// SendCapacityAlert notifies operators that a station just filled its last slot.
func (c *SNSClient) SendCapacityAlert(stationID, stationName string, count, capacity int) error {
	subject := fmt.Sprintf("Swap Station Alert: %s at capacity", stationName)
	message := fmt.Sprintf(
		"Station Capacity Alert\n\n"+
			"Station: %s (%s)\n"+
			"Occupancy: %d of %d slots\n"+
			"Time: %s\n\n"+
			"Further inbound transfers will be rejected until slots free up.",
		stationName,
		stationID,
		count,
		capacity,
		time.Now().Format(time.RFC3339),
	)

	return c.SendAlert(subject, message)
}

// SendMaintenanceAlert notifies operators that a transfer sent a battery into
// maintenance.
func (c *SNSClient) SendMaintenanceAlert(batteryCode, stationName, reason string) error {
	subject := "Battery Maintenance Alert"
	message := fmt.Sprintf(
		"Battery Sent to Maintenance\n\n"+
			"Battery: %s\n"+
			"Now at: %s\n"+
			"Reason: %s\n\n"+
			"Please schedule the workshop intake.",
		batteryCode,
		stationName,
		reason,
	)

	return c.SendAlert(subject, message)
}
