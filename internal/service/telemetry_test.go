package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltswap/voltswap/internal/domain"
)

func TestHistoryRequiresBatteryID(t *testing.T) {
	svc := NewTelemetryService(nil, nil)

	_, err := svc.History(context.Background(), "  ", 24*time.Hour)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidRequest, domain.KindOf(err))
}

func TestHistoryRequiresCloudServices(t *testing.T) {
	svc := NewTelemetryService(nil, nil)

	_, err := svc.History(context.Background(), "b1", 24*time.Hour)
	require.Error(t, err)
	assert.Equal(t, domain.KindStorageUnavailable, domain.KindOf(err))
}
